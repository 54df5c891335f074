package zeb

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseEnergySource maps a label to an EnergySource. English and Korean
// labels are accepted, case-insensitively. Unknown labels return SourceSolar
// and false, matching the solar fallback of GenerationPerKW.
func ParseEnergySource(label string) (EnergySource, bool) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "solar", "pv", "태양광":
		return SourceSolar, true
	case "wind", "풍력":
		return SourceWind, true
	case "geothermal", "지열":
		return SourceGeothermal, true
	case "biomass", "bio", "바이오":
		return SourceBiomass, true
	case "hydropower", "hydro", "수력":
		return SourceHydropower, true
	default:
		return SourceSolar, false
	}
}

// RawPlanInput is the form-level representation of a PlanInput, with every
// scalar still in text form. Empty ReductionFactor and InstallAreaPerKW
// select the defaults.
type RawPlanInput struct {
	MaterialRatios    map[string]float64
	BuildingArea      string
	EnergyUse         string
	EmissionFactor    string
	LifeSpanYears     string
	OffsetPeriodYears string
	EnergySource      string
	ReductionFactor   string
	InstallAreaPerKW  string
	CurrentYear       int
}

// PlanStrings parses raw and plans it against the built-in table.
// Any unparsable or non-finite number returns an error wrapping
// ErrInvalidParameter.
func PlanStrings(raw RawPlanInput) (Result, error) {
	in, err := ParsePlanInput(raw)
	if err != nil {
		return Result{}, err
	}
	return Plan(in), nil
}

// ParsePlanInput converts raw into a PlanInput.
func ParsePlanInput(raw RawPlanInput) (PlanInput, error) {
	in := NewPlanInput()
	in.MaterialRatios = raw.MaterialRatios
	in.CurrentYear = raw.CurrentYear
	in.EnergySource, _ = ParseEnergySource(raw.EnergySource)

	floats := []struct {
		name     string
		raw      string
		dst      *float64
		optional bool
	}{
		{"building area", raw.BuildingArea, &in.BuildingArea, false},
		{"energy use", raw.EnergyUse, &in.EnergyUse, false},
		{"emission factor", raw.EmissionFactor, &in.EmissionFactor, false},
		{"reduction factor", raw.ReductionFactor, &in.ReductionFactor, true},
		{"install area per kW", raw.InstallAreaPerKW, &in.InstallAreaPerKW, true},
	}
	for _, f := range floats {
		s := strings.TrimSpace(f.raw)
		if s == "" && f.optional {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return PlanInput{}, fmt.Errorf("%w: %s %q", ErrInvalidParameter, f.name, f.raw)
		}
		*f.dst = v
	}

	ints := []struct {
		name string
		raw  string
		dst  *int
	}{
		{"life span", raw.LifeSpanYears, &in.LifeSpanYears},
		{"offset period", raw.OffsetPeriodYears, &in.OffsetPeriodYears},
	}
	for _, f := range ints {
		v, err := strconv.Atoi(strings.TrimSpace(f.raw))
		if err != nil {
			return PlanInput{}, fmt.Errorf("%w: %s %q", ErrInvalidParameter, f.name, f.raw)
		}
		*f.dst = v
	}

	return in, nil
}
