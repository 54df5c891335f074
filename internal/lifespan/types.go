// Package lifespan estimates the remaining structural life of a building.
//
// The estimate starts from a ratio-weighted sum of per-material expected
// lives, then applies usage and size bonuses, an environmental penalty,
// and maintenance adjustments before subtracting the building's age.
package lifespan

import "fmt"

// Usage is the primary occupancy of a building.
type Usage int

const (
	// UsageResidential is housing.
	UsageResidential Usage = iota

	// UsageCommercial is offices, retail and similar.
	UsageCommercial

	// UsagePublic is public or institutional use. Public buildings receive
	// the usage bonus.
	UsagePublic

	// UsageOther is any other occupancy.
	UsageOther
)

// String returns the display label of the Usage.
func (u Usage) String() string {
	switch u {
	case UsageResidential:
		return "Residential"
	case UsageCommercial:
		return "Commercial"
	case UsagePublic:
		return "Public"
	case UsageOther:
		return "Other"
	default:
		return fmt.Sprintf("Usage(%d)", int(u))
	}
}

// MarshalText encodes the usage as its label.
func (u Usage) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText accepts any label ParseUsage recognizes.
func (u *Usage) UnmarshalText(text []byte) error {
	v, ok := ParseUsage(string(text))
	if !ok {
		return fmt.Errorf("unknown usage %q", text)
	}
	*u = v
	return nil
}

// Environment is the dominant environmental exposure of a site.
// Categories are mutually exclusive.
type Environment int

const (
	// EnvironmentNormal carries no penalty.
	EnvironmentNormal Environment = iota

	// EnvironmentCoastal is salt-laden coastal exposure.
	EnvironmentCoastal

	// EnvironmentSeismic is a seismic zone.
	EnvironmentSeismic

	// EnvironmentHotHumid is a hot and humid climate.
	EnvironmentHotHumid

	// EnvironmentHighAltitudeDry is a high-altitude dry climate.
	EnvironmentHighAltitudeDry
)

// String returns the display label of the Environment.
func (e Environment) String() string {
	switch e {
	case EnvironmentNormal:
		return "Normal"
	case EnvironmentCoastal:
		return "Coastal"
	case EnvironmentSeismic:
		return "Seismic Zone"
	case EnvironmentHotHumid:
		return "Hot and Humid"
	case EnvironmentHighAltitudeDry:
		return "High-altitude Dry"
	default:
		return fmt.Sprintf("Environment(%d)", int(e))
	}
}

// MarshalText encodes the environment as its label.
func (e Environment) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText accepts any label ParseEnvironment recognizes.
func (e *Environment) UnmarshalText(text []byte) error {
	v, ok := ParseEnvironment(string(text))
	if !ok {
		return fmt.Errorf("unknown environment %q", text)
	}
	*e = v
	return nil
}

// Inspection records maintenance history and visible defects.
type Inspection struct {
	// RecentlyRepaired is true when the building was repaired in the last five years.
	RecentlyRepaired bool `json:"recently_repaired" yaml:"recently_repaired"`
	HasCracks        bool `json:"has_cracks" yaml:"has_cracks"`
	HasLeakage       bool `json:"has_leakage" yaml:"has_leakage"`
	HasCorrosion     bool `json:"has_corrosion" yaml:"has_corrosion"`
}

// Input is everything the estimator needs about one building.
type Input struct {
	YearBuilt int `json:"year_built" yaml:"year_built"`

	// MaterialRatios maps material identifier to a percentage (0-100).
	// Ratios need not sum to 100.
	MaterialRatios map[string]float64 `json:"material_ratios" yaml:"material_ratios"`

	Usage  Usage `json:"usage" yaml:"usage"`
	Floors int   `json:"floors" yaml:"floors"`

	// MaterialLives maps material identifier to its expected life in years.
	MaterialLives map[string]int `json:"material_lives" yaml:"material_lives"`

	Environment Environment `json:"environment" yaml:"environment"`
	Inspection  Inspection  `json:"inspection" yaml:"inspection"`

	// CurrentYear is the year the building's age is measured against.
	CurrentYear int `json:"current_year" yaml:"current_year"`
}

// Result is the stage-by-stage lifespan estimate in years.
type Result struct {
	// Base is the floored ratio-weighted material life.
	Base int `json:"base" yaml:"base"`

	// AfterEnvironment includes the usage/size bonus and environment penalty.
	AfterEnvironment int `json:"after_environment" yaml:"after_environment"`

	// AfterInspection includes the maintenance adjustments.
	AfterInspection int `json:"after_inspection" yaml:"after_inspection"`

	// FinalLife is the remaining life after subtracting the building's age,
	// never below zero.
	FinalLife int `json:"final_life" yaml:"final_life"`
}

// Stage is one labelled step of the estimate, used for charts.
type Stage struct {
	Label string `json:"label" yaml:"label"`
	Years int    `json:"years" yaml:"years"`
}

// Stages returns the estimate as an ordered breakdown.
func (r Result) Stages() []Stage {
	return []Stage{
		{Label: "Base", Years: r.Base},
		{Label: "After Env", Years: r.AfterEnvironment},
		{Label: "After Inspection", Years: r.AfterInspection},
		{Label: "Final", Years: r.FinalLife},
	}
}
