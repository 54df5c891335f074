package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/rshade/zern/internal/renovation"
)

// RenovationDocument is a simulated building portfolio.
type RenovationDocument struct {
	renovation.Report `yaml:",inline"`
}

// WriteRenovation renders doc in format to w.
func WriteRenovation(w io.Writer, format Format, doc RenovationDocument) error {
	return write(w, format, doc)
}

func (d RenovationDocument) layout() layout {
	s := d.Summary

	summary := section{
		Title: "Portfolio",
		Rows: [][2]string{
			{"Buildings", strconv.Itoa(s.Buildings)},
			{"ZEB capable", strconv.Itoa(s.ZEBCount)},
			{"Scheduled repairs", strconv.Itoa(s.TotalRepairs)},
		},
	}
	if s.Buildings > 0 {
		summary.Rows = append(summary.Rows,
			[2]string{"Longest projected life", years(s.LongestLife) + " (" + s.LongestLifeName + ")"},
			[2]string{"Renewal window", strconv.Itoa(s.EarliestRenewal) + " - " + strconv.Itoa(s.LatestRenewal)},
		)
	}

	schedule := grid{
		Title: "Schedule",
		Header: []string{
			"Building", "Built", "Initial life", "Repair cycle", "Repairs",
			"Projected life", "Renewal", "ZEB", "Repair years",
		},
	}
	for _, p := range d.Projections {
		b := p.Building
		schedule.Rows = append(schedule.Rows, []any{
			b.Name, b.BuiltYear, b.InitialLife, b.RepairCycle, p.Repairs,
			p.ProjectedLife, p.RenewalYear, b.IsZEB, joinYears(p.RepairYears),
		})
	}

	return layout{
		Title:    "City Renovation Simulation",
		Sections: []section{summary},
		Grids:    []grid{schedule},
	}
}

func joinYears(ys []int) string {
	if len(ys) == 0 {
		return "-"
	}
	parts := make([]string, len(ys))
	for i, y := range ys {
		parts[i] = strconv.Itoa(y)
	}
	return strings.Join(parts, " ")
}
