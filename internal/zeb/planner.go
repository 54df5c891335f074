package zeb

import (
	"github.com/rshade/zern/internal/materials"
)

// Planner computes offset plans against a material table.
// A Planner is immutable and safe for concurrent use.
type Planner struct {
	table *materials.Table
}

// NewPlanner returns a Planner backed by table, or by the built-in table when nil.
func NewPlanner(table *materials.Table) *Planner {
	if table == nil {
		table = materials.Default()
	}
	return &Planner{table: table}
}

// Table returns the material table the planner uses.
func (p *Planner) Table() *materials.Table {
	return p.table
}

// Plan computes an offset plan using the built-in material table.
func Plan(in PlanInput) Result {
	return NewPlanner(nil).Plan(in)
}

// Plan computes the carbon totals, sizes a renewable installation that offsets
// the total over the offset period, and walks the life span year by year to
// find when the cumulative offset covers the total.
//
// Zero divisors are not guarded: a zero offset period, reduction factor or
// generation yield produces +Inf or NaN in the dependent fields.
func (p *Planner) Plan(in PlanInput) Result {
	embedded := p.table.EmbeddedCarbon(in.MaterialRatios, in.BuildingArea)
	operating := in.EnergyUse * in.EmissionFactor
	total := embedded + float64(in.LifeSpanYears)*operating

	generationPerKW := in.EnergySource.GenerationPerKW()
	annualTarget := total / float64(in.OffsetPeriodYears)
	energyNeeded := annualTarget / in.ReductionFactor
	capacityKW := energyNeeded / generationPerKW
	areaM2 := capacityKW * in.InstallAreaPerKW
	annualOffset := generationPerKW * capacityKW * in.ReductionFactor

	timeline := make([]OffsetPoint, 0, max(in.LifeSpanYears, 0))
	var cumulative float64
	var completion *int
	for i := range max(in.LifeSpanYears, 0) {
		cumulative += annualOffset
		year := in.CurrentYear + i
		timeline = append(timeline, OffsetPoint{Year: year, Cumulative: cumulative})
		if completion == nil && cumulative >= total {
			y := year
			completion = &y
		}
	}

	// Implied by the loop bound while the search stays inside the life span.
	isZEB := completion != nil && *completion <= in.CurrentYear+in.LifeSpanYears

	return Result{
		EmbeddedCarbon:         embedded,
		OperatingCarbonPerYear: operating,
		TotalCarbon:            total,
		AnnualOffsetTarget:     annualTarget,
		AnnualEnergyNeeded:     energyNeeded,
		RequiredCapacityKW:     capacityKW,
		RequiredAreaM2:         areaM2,
		AnnualOffset:           annualOffset,
		OffsetCompletionYear:   completion,
		IsZEB:                  isZEB,
		OffsetTimeline:         timeline,
	}
}

// Compare plans the same building under every energy source other than
// in.EnergySource, in Sources order.
func (p *Planner) Compare(in PlanInput) []Comparison {
	out := make([]Comparison, 0, len(Sources())-1)
	for _, src := range Sources() {
		if src == in.EnergySource {
			continue
		}
		alt := in
		alt.EnergySource = src
		out = append(out, Comparison{Source: src, Result: p.Plan(alt)})
	}
	return out
}
