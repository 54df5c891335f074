package greenops

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats n with thousand separators: 18248 becomes "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat rounds f to precision decimals and adds thousand separators
// to the integer part. Infinities and NaN are printed as "∞", "-∞" and "NaN".
func FormatFloat(f float64, precision int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "∞"
	case math.IsInf(f, -1):
		return "-∞"
	}

	precision = max(precision, 0)
	s := strconv.FormatFloat(f, 'f', precision, 64)

	intPart, frac, hasFrac := strings.Cut(s, ".")
	negative := strings.HasPrefix(intPart, "-")
	n, err := strconv.ParseInt(strings.TrimPrefix(intPart, "-"), 10, 64)
	if err != nil {
		return s
	}

	out := FormatNumber(n)
	if negative {
		out = "-" + out
	}
	if hasFrac {
		out += "." + frac
	}
	return out
}

// FormatLarge abbreviates millions and billions ("~5.2 million") and formats
// smaller values as grouped integers.
func FormatLarge(n float64) string {
	switch {
	case n >= BillionThreshold:
		return fmt.Sprintf("~%.1f billion", n/BillionThreshold)
	case n >= MillionThreshold:
		return fmt.Sprintf("~%.1f million", n/MillionThreshold)
	default:
		return FormatNumber(int64(math.Round(n)))
	}
}

// FormatKg formats a carbon quantity as "584,000 kg CO2", switching to
// tonnes ("1,259.0 t CO2") from a million kilograms.
func FormatKg(kg float64) string {
	if math.Abs(kg) >= MillionThreshold {
		return FormatFloat(kg/tonnesToKg, 1) + " t CO2"
	}
	return FormatFloat(kg, 0) + " kg CO2"
}
