// Package greenops turns kilograms of CO2 into relatable equivalencies and
// formats carbon quantities for display.
//
// Factors follow the EPA greenhouse gas equivalencies calculator.
package greenops

import "fmt"

type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors.
const (
	ErrInvalidUnit   constError = "invalid carbon unit"
	ErrNegativeValue constError = "negative carbon value"
	ErrNotFinite     constError = "carbon value is not finite"
)

// Divisors from kg CO2 to each equivalency: equivalency = kg / factor.
const (
	// MilesDrivenFactor is kg CO2 per mile of an average passenger vehicle.
	MilesDrivenFactor = 0.192

	// SmartphoneChargeFactor is kg CO2 per full smartphone charge.
	SmartphoneChargeFactor = 0.00822

	// TreeSeedlingFactor is kg CO2 sequestered by one seedling grown for ten years.
	TreeSeedlingFactor = 60.0

	// HomeDayFactor is kg CO2 of one day of average home electricity use.
	HomeDayFactor = 18.3
)

// Display thresholds.
const (
	// MinEquivalencyKg is the smallest quantity that gets equivalencies.
	MinEquivalencyKg = 1.0

	MillionThreshold = 1_000_000
	BillionThreshold = 1_000_000_000
)

// Kind is a category of equivalency.
type Kind int

const (
	// MilesDriven is miles driven in an average passenger vehicle.
	MilesDriven Kind = iota

	// SmartphonesCharged is full smartphone charges.
	SmartphonesCharged

	// TreeSeedlings is seedlings grown for ten years to absorb the carbon.
	TreeSeedlings

	// HomeDays is days of average home electricity use.
	HomeDays
)

// Kinds lists every equivalency in display order.
func Kinds() []Kind {
	return []Kind{MilesDriven, SmartphonesCharged, TreeSeedlings, HomeDays}
}

func (k Kind) String() string {
	switch k {
	case MilesDriven:
		return "MilesDriven"
	case SmartphonesCharged:
		return "SmartphonesCharged"
	case TreeSeedlings:
		return "TreeSeedlings"
	case HomeDays:
		return "HomeDays"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Label is the phrase shown after the number.
func (k Kind) Label() string {
	switch k {
	case MilesDriven:
		return "miles driven"
	case SmartphonesCharged:
		return "smartphones charged"
	case TreeSeedlings:
		return "tree seedlings grown for 10 years"
	case HomeDays:
		return "days of home electricity"
	default:
		return ""
	}
}

// Factor returns the kg CO2 divisor of k, or 0 for an unknown kind.
func (k Kind) Factor() float64 {
	switch k {
	case MilesDriven:
		return MilesDrivenFactor
	case SmartphonesCharged:
		return SmartphoneChargeFactor
	case TreeSeedlings:
		return TreeSeedlingFactor
	case HomeDays:
		return HomeDayFactor
	default:
		return 0
	}
}

// Equivalency is one computed equivalency.
type Equivalency struct {
	Kind      Kind    `json:"kind" yaml:"kind"`
	Value     float64 `json:"value" yaml:"value"`
	Formatted string  `json:"formatted" yaml:"formatted"`
	Label     string  `json:"label" yaml:"label"`
}

// Summary is every equivalency of one carbon quantity.
type Summary struct {
	Kg    float64       `json:"kg" yaml:"kg"`
	Items []Equivalency `json:"items,omitempty" yaml:"items,omitempty"`

	// DisplayText reads "Equivalent to driving ~X miles or charging ~Y smartphones".
	DisplayText string `json:"display_text,omitempty" yaml:"display_text,omitempty"`

	// Empty is set when Kg is below MinEquivalencyKg.
	Empty bool `json:"empty" yaml:"empty"`
}

// Get returns the equivalency of kind k, if present.
func (s Summary) Get(k Kind) (Equivalency, bool) {
	for _, e := range s.Items {
		if e.Kind == k {
			return e, true
		}
	}
	return Equivalency{}, false
}
