// Package zeb plans the renewable-energy installation that offsets a
// building's carbon, and decides whether the building reaches zero-energy
// (ZEB) status within its life span.
package zeb

import "fmt"

// EnergySource is a renewable generation technology.
type EnergySource int

const (
	// SourceSolar is photovoltaic generation, about 4 h/day at rated output.
	SourceSolar EnergySource = iota

	// SourceWind is wind turbines, about 6 h/day.
	SourceWind

	// SourceGeothermal is geothermal generation, about 7.2 h/day.
	SourceGeothermal

	// SourceBiomass is biomass generation, about 8 h/day.
	SourceBiomass

	// SourceHydropower is small hydro, about 12 h/day.
	SourceHydropower
)

// Annual yield per installed kilowatt, in kWh/kW/year.
const (
	SolarGenerationPerKW      = 1460.0
	WindGenerationPerKW       = 2190.0
	GeothermalGenerationPerKW = 2630.0
	BiomassGenerationPerKW    = 2920.0
	HydroGenerationPerKW      = 4380.0
)

// Sources lists every energy source in display order.
func Sources() []EnergySource {
	return []EnergySource{SourceSolar, SourceWind, SourceGeothermal, SourceBiomass, SourceHydropower}
}

// String returns the display label of the source.
func (s EnergySource) String() string {
	switch s {
	case SourceSolar:
		return "Solar"
	case SourceWind:
		return "Wind"
	case SourceGeothermal:
		return "Geothermal"
	case SourceBiomass:
		return "Biomass"
	case SourceHydropower:
		return "Hydropower"
	default:
		return fmt.Sprintf("EnergySource(%d)", int(s))
	}
}

// GenerationPerKW returns the annual yield per installed kW. Sources outside
// the known set fall back to the solar yield.
func (s EnergySource) GenerationPerKW() float64 {
	switch s {
	case SourceSolar:
		return SolarGenerationPerKW
	case SourceWind:
		return WindGenerationPerKW
	case SourceGeothermal:
		return GeothermalGenerationPerKW
	case SourceBiomass:
		return BiomassGenerationPerKW
	case SourceHydropower:
		return HydroGenerationPerKW
	default:
		return SolarGenerationPerKW
	}
}

// Defaults for the optional planning parameters.
const (
	// DefaultReductionFactor is kg CO2 offset per kWh of renewable generation.
	DefaultReductionFactor = 0.45

	// DefaultInstallAreaPerKW is m2 of installation area per kW of capacity.
	DefaultInstallAreaPerKW = 3.5
)

// PlanInput describes one building and the offset target.
type PlanInput struct {
	// MaterialRatios maps material identifier to a percentage (0-100).
	MaterialRatios map[string]float64 `json:"material_ratios" yaml:"material_ratios"`

	// BuildingArea is gross floor area in m2.
	BuildingArea float64 `json:"building_area" yaml:"building_area"`

	// EnergyUse is annual energy consumption in kWh.
	EnergyUse float64 `json:"energy_use" yaml:"energy_use"`

	// EmissionFactor is grid carbon intensity in kg CO2/kWh.
	EmissionFactor float64 `json:"emission_factor" yaml:"emission_factor"`

	LifeSpanYears     int          `json:"life_span_years" yaml:"life_span_years"`
	OffsetPeriodYears int          `json:"offset_period_years" yaml:"offset_period_years"`
	EnergySource      EnergySource `json:"energy_source" yaml:"energy_source"`

	ReductionFactor  float64 `json:"reduction_factor" yaml:"reduction_factor"`
	InstallAreaPerKW float64 `json:"install_area_per_kw" yaml:"install_area_per_kw"`

	// CurrentYear is the first year of the offset timeline.
	CurrentYear int `json:"current_year" yaml:"current_year"`
}

// NewPlanInput returns a PlanInput with the default reduction factor and
// installation density filled in.
func NewPlanInput() PlanInput {
	return PlanInput{
		ReductionFactor:  DefaultReductionFactor,
		InstallAreaPerKW: DefaultInstallAreaPerKW,
	}
}

// OffsetPoint is the cumulative offset reached by the end of Year.
type OffsetPoint struct {
	Year       int     `json:"year" yaml:"year"`
	Cumulative float64 `json:"cumulative" yaml:"cumulative"`
}

// Result is a complete carbon offset plan. All carbon quantities are kg CO2.
type Result struct {
	EmbeddedCarbon         float64 `json:"embedded_carbon" yaml:"embedded_carbon"`
	OperatingCarbonPerYear float64 `json:"operating_carbon_per_year" yaml:"operating_carbon_per_year"`
	TotalCarbon            float64 `json:"total_carbon" yaml:"total_carbon"`

	AnnualOffsetTarget float64 `json:"annual_offset_target" yaml:"annual_offset_target"`
	AnnualEnergyNeeded float64 `json:"annual_energy_needed_kwh" yaml:"annual_energy_needed_kwh"`
	RequiredCapacityKW float64 `json:"required_capacity_kw" yaml:"required_capacity_kw"`
	RequiredAreaM2     float64 `json:"required_area_m2" yaml:"required_area_m2"`

	// AnnualOffset is the yearly offset the sized installation achieves.
	AnnualOffset float64 `json:"annual_offset" yaml:"annual_offset"`

	// OffsetCompletionYear is the first year the cumulative offset covers
	// TotalCarbon, or nil if that never happens within the life span.
	OffsetCompletionYear *int `json:"offset_completion_year,omitempty" yaml:"offset_completion_year,omitempty"`

	IsZEB          bool          `json:"is_zeb" yaml:"is_zeb"`
	OffsetTimeline []OffsetPoint `json:"offset_timeline" yaml:"offset_timeline"`
}

// CompletionYear returns the offset completion year and whether one exists.
func (r Result) CompletionYear() (int, bool) {
	if r.OffsetCompletionYear == nil {
		return 0, false
	}
	return *r.OffsetCompletionYear, true
}

// Comparison is the plan for the same building under another energy source.
type Comparison struct {
	Source EnergySource `json:"source" yaml:"source"`
	Result Result       `json:"result" yaml:"result"`
}

// MarshalText encodes the source as its label.
func (s EnergySource) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText accepts any label ParseEnergySource recognizes.
func (s *EnergySource) UnmarshalText(text []byte) error {
	v, ok := ParseEnergySource(string(text))
	if !ok {
		return fmt.Errorf("%w: energy source %q", ErrInvalidParameter, text)
	}
	*s = v
	return nil
}
