package lifespan

import (
	"strconv"
	"strings"
)

// ParseUsage maps a usage label to a Usage. English and Korean labels are
// accepted, case-insensitively. Unrecognized labels return UsageOther and false.
func ParseUsage(label string) (Usage, bool) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "residential", "주거", "주거시설":
		return UsageResidential, true
	case "commercial", "상업", "상업시설":
		return UsageCommercial, true
	case "public", "institutional", "공공", "공공시설":
		return UsagePublic, true
	case "other", "기타":
		return UsageOther, true
	default:
		return UsageOther, false
	}
}

// ParseEnvironment maps an environment label to an Environment. English and
// Korean labels are accepted, case-insensitively. Unrecognized labels return
// EnvironmentNormal and false.
func ParseEnvironment(label string) (Environment, bool) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "", "normal", "none", "일반":
		return EnvironmentNormal, true
	case "coastal", "해안", "해안 지역":
		return EnvironmentCoastal, true
	case "seismic", "seismic zone", "지진대":
		return EnvironmentSeismic, true
	case "hot and humid", "hot-humid", "고온다습":
		return EnvironmentHotHumid, true
	case "high-altitude dry", "high-altitude-dry", "고산건조":
		return EnvironmentHighAltitudeDry, true
	default:
		return EnvironmentNormal, false
	}
}

// StringInput is the form-level representation of an Input, where the
// construction year arrives as free text.
type StringInput struct {
	YearBuilt      string
	MaterialRatios map[string]float64
	Usage          string
	Floors         int
	MaterialLives  map[string]int
	Environment    string
	Inspection     Inspection
	CurrentYear    int
}

// EstimateStrings parses in and runs Estimate. A year that does not parse
// as an integer yields the zero Result instead of an error. Unrecognized
// usage and environment labels carry no bonus or penalty.
func EstimateStrings(in StringInput) Result {
	year, err := strconv.Atoi(strings.TrimSpace(in.YearBuilt))
	if err != nil {
		return Result{}
	}

	usage, _ := ParseUsage(in.Usage)
	env, _ := ParseEnvironment(in.Environment)

	return Estimate(Input{
		YearBuilt:      year,
		MaterialRatios: in.MaterialRatios,
		Usage:          usage,
		Floors:         in.Floors,
		MaterialLives:  in.MaterialLives,
		Environment:    env,
		Inspection:     in.Inspection,
		CurrentYear:    in.CurrentYear,
	})
}
