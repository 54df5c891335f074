package greenops

import (
	"fmt"
	"math"
	"strings"
)

// Unit conversion factors to kilograms.
const (
	gramsToKg  = 0.001
	tonnesToKg = 1000.0
	poundsToKg = 0.453592
)

// ToKg converts value in unit (g, kg, t, lb, optionally suffixed CO2 or
// CO2e, case-insensitive) to kilograms.
func ToKg(value float64, unit string) (float64, error) {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, ErrNotFinite
	}
	if value < 0 {
		return 0, ErrNegativeValue
	}

	u := strings.ToLower(strings.TrimSpace(unit))
	u = strings.TrimSuffix(strings.TrimSuffix(u, "co2e"), "co2")

	var factor float64
	switch strings.TrimSpace(u) {
	case "g":
		factor = gramsToKg
	case "kg":
		factor = 1
	case "t", "tonne", "tonnes":
		factor = tonnesToKg
	case "lb", "lbs":
		factor = poundsToKg
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidUnit, unit)
	}
	return value * factor, nil
}

// Equivalencies computes every equivalency of kg. Quantities below
// MinEquivalencyKg return an empty Summary.
func Equivalencies(kg float64) (Summary, error) {
	if math.IsInf(kg, 0) || math.IsNaN(kg) {
		return Summary{Empty: true}, ErrNotFinite
	}
	if kg < 0 {
		return Summary{Empty: true}, ErrNegativeValue
	}
	if kg < MinEquivalencyKg {
		return Summary{Kg: kg, Empty: true}, nil
	}

	s := Summary{Kg: kg}
	for _, k := range Kinds() {
		v := kg / k.Factor()
		s.Items = append(s.Items, Equivalency{
			Kind:      k,
			Value:     v,
			Formatted: formatCount(v),
			Label:     k.Label(),
		})
	}

	miles, _ := s.Get(MilesDriven)
	phones, _ := s.Get(SmartphonesCharged)
	s.DisplayText = fmt.Sprintf("Equivalent to driving ~%s miles or charging ~%s smartphones",
		miles.Formatted, phones.Formatted)
	return s, nil
}

// Describe returns the one-line equivalency text for kg, or "" when kg is
// too small or not a valid quantity.
func Describe(kg float64) string {
	s, err := Equivalencies(kg)
	if err != nil || s.Empty {
		return ""
	}
	return s.DisplayText
}

func formatCount(v float64) string {
	if v >= MillionThreshold {
		return FormatLarge(v)
	}
	return FormatNumber(int64(math.Round(v)))
}
