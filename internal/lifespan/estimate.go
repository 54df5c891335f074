package lifespan

import (
	"math"

	"github.com/rshade/zern/internal/materials"
)

// Adjustments applied on top of the material base life, in years.
const (
	PublicUsageBonus = 10
	HighRiseBonus    = 5

	// HighRiseFloors is the floor count at which HighRiseBonus applies.
	HighRiseFloors = 10

	CoastalPenalty         = 5
	SeismicPenalty         = 3
	HotHumidPenalty        = 2
	HighAltitudeDryPenalty = 1

	RecentRepairBonus = 10
	CrackPenalty      = 5
	LeakagePenalty    = 3
	CorrosionPenalty  = 3
)

// Estimate computes the remaining structural life of a building.
//
// An empty material mix yields the zero Result. The result is deterministic
// for a given Input; the caller supplies CurrentYear.
func Estimate(in Input) Result {
	if len(in.MaterialRatios) == 0 {
		return Result{}
	}

	life := baseLife(in.MaterialRatios, in.MaterialLives)
	base := life

	if in.Usage == UsagePublic {
		life += PublicUsageBonus
	}
	if in.Floors >= HighRiseFloors {
		life += HighRiseBonus
	}
	life -= environmentPenalty(in.Environment)
	afterEnv := life

	life += inspectionAdjustment(in.Inspection)
	afterInspection := life

	age := in.CurrentYear - in.YearBuilt
	final := max(afterInspection-age, 0)

	return Result{
		Base:             base,
		AfterEnvironment: afterEnv,
		AfterInspection:  afterInspection,
		FinalLife:        final,
	}
}

// baseLife sums life * ratio/100 over materials with a known life. Ratios of
// materials without a life entry are ignored, and the sum is not
// renormalised by the contributing ratio total.
func baseLife(ratios map[string]float64, lives map[string]int) int {
	var weighted, totalRatio float64
	for _, name := range materials.SortedKeys(ratios) {
		life, ok := lives[name]
		if !ok {
			continue
		}
		ratio := ratios[name]
		weighted += float64(life) * (ratio / 100.0)
		totalRatio += ratio
	}

	if totalRatio <= 0 {
		return 0
	}
	return int(math.Floor(weighted))
}

func environmentPenalty(env Environment) int {
	switch env {
	case EnvironmentCoastal:
		return CoastalPenalty
	case EnvironmentSeismic:
		return SeismicPenalty
	case EnvironmentHotHumid:
		return HotHumidPenalty
	case EnvironmentHighAltitudeDry:
		return HighAltitudeDryPenalty
	case EnvironmentNormal:
		return 0
	default:
		return 0
	}
}

func inspectionAdjustment(insp Inspection) int {
	adj := 0
	if insp.RecentlyRepaired {
		adj += RecentRepairBonus
	}
	if insp.HasCracks {
		adj -= CrackPenalty
	}
	if insp.HasLeakage {
		adj -= LeakagePenalty
	}
	if insp.HasCorrosion {
		adj -= CorrosionPenalty
	}
	return adj
}
