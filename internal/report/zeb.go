package report

import (
	"io"
	"strconv"

	"github.com/rshade/zern/internal/greenops"
	"github.com/rshade/zern/internal/zeb"
)

// ZEBDocument is a carbon offset plan with its inputs and, optionally, the
// same plan under the other energy sources.
type ZEBDocument struct {
	Input         zeb.PlanInput    `json:"input" yaml:"input"`
	Result        zeb.Result       `json:"result" yaml:"result"`
	Comparisons   []zeb.Comparison `json:"comparisons,omitempty" yaml:"comparisons,omitempty"`
	Equivalencies greenops.Summary `json:"equivalencies" yaml:"equivalencies"`
}

// NewZEBDocument plans in with planner and, when compare is set, every
// alternative source.
func NewZEBDocument(planner *zeb.Planner, in zeb.PlanInput, compare bool) ZEBDocument {
	doc := ZEBDocument{Input: in, Result: planner.Plan(in)}
	if compare {
		doc.Comparisons = planner.Compare(in)
	}

	// Non-finite or negative totals leave an empty summary.
	doc.Equivalencies, _ = greenops.Equivalencies(doc.Result.TotalCarbon)
	return doc
}

// WriteZEB renders doc in format to w.
func WriteZEB(w io.Writer, format Format, doc ZEBDocument) error {
	return write(w, format, doc)
}

// CompletionText returns the completion year, or "not within life span".
func CompletionText(r zeb.Result) string {
	if year, ok := r.CompletionYear(); ok {
		return strconv.Itoa(year)
	}
	return "not within life span"
}

func (d ZEBDocument) layout() layout {
	in, r := d.Input, d.Result

	carbon := section{
		Title: "Carbon",
		Rows: [][2]string{
			{"Embedded carbon", greenops.FormatKg(r.EmbeddedCarbon)},
			{"Operating carbon per year", greenops.FormatKg(r.OperatingCarbonPerYear)},
			{"Total carbon over life span", greenops.FormatKg(r.TotalCarbon)},
		},
	}
	if !d.Equivalencies.Empty && d.Equivalencies.DisplayText != "" {
		carbon.Rows = append(carbon.Rows, [2]string{"Equivalency", d.Equivalencies.DisplayText})
		if trees, ok := d.Equivalencies.Get(greenops.TreeSeedlings); ok {
			carbon.Rows = append(carbon.Rows, [2]string{"Tree seedlings to absorb", trees.Formatted})
		}
	}

	l := layout{
		Title: "Carbon Neutrality (ZEB) Plan",
		Sections: []section{
			carbon,
			{
				Title: "Energy",
				Rows: [][2]string{
					{"Energy source", in.EnergySource.String()},
					{"Annual offset target", greenops.FormatKg(r.AnnualOffsetTarget)},
					{"Annual energy needed", greenops.FormatFloat(r.AnnualEnergyNeeded, 0) + " kWh"},
					{"Required capacity", greenops.FormatFloat(r.RequiredCapacityKW, 2) + " kW"},
					{"Required installation area", greenops.FormatFloat(r.RequiredAreaM2, 2) + " m2"},
					{"Annual offset achieved", greenops.FormatKg(r.AnnualOffset)},
				},
			},
			{
				Title: "Building",
				Rows: [][2]string{
					{"Building area", greenops.FormatFloat(in.BuildingArea, 0) + " m2"},
					{"Life span", years(in.LifeSpanYears)},
					{"Offset period", years(in.OffsetPeriodYears)},
					{"Offset completion year", CompletionText(r)},
					{"ZEB", yesNo(r.IsZEB)},
				},
			},
		},
		Grids: []grid{timelineGrid(r)},
	}

	if len(d.Comparisons) > 0 {
		l.Grids = append(l.Grids, comparisonGrid(in, r, d.Comparisons))
	}
	return l
}

func timelineGrid(r zeb.Result) grid {
	g := grid{Title: "Offset Timeline", Header: []string{"Year", "Cumulative offset (kg)", "Covered"}}
	for _, pt := range r.OffsetTimeline {
		g.Rows = append(g.Rows, []any{pt.Year, pt.Cumulative, pt.Cumulative >= r.TotalCarbon})
	}
	return g
}

func comparisonGrid(in zeb.PlanInput, r zeb.Result, comps []zeb.Comparison) grid {
	g := grid{
		Title:  "Comparison",
		Header: []string{"Source", "Capacity (kW)", "Area (m2)", "Completion", "ZEB"},
	}
	row := func(src zeb.EnergySource, res zeb.Result) []any {
		return []any{src.String(), res.RequiredCapacityKW, res.RequiredAreaM2, CompletionText(res), res.IsZEB}
	}

	g.Rows = append(g.Rows, row(in.EnergySource, r))
	for _, c := range comps {
		g.Rows = append(g.Rows, row(c.Source, c.Result))
	}
	return g
}
