package renovation

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/zern/internal/logging"
)

// Projection is the lifecycle outlook for one building.
type Projection struct {
	Building      Building   `json:"building" yaml:"building"`
	Repairs       int        `json:"repairs" yaml:"repairs"`
	ProjectedLife int        `json:"projected_life" yaml:"projected_life"`
	RenewalYear   int        `json:"renewal_year" yaml:"renewal_year"`
	RepairYears   []int      `json:"repair_years" yaml:"repair_years"`
	Timeline      []YearMark `json:"timeline" yaml:"timeline"`
}

// Summary aggregates a portfolio.
type Summary struct {
	Buildings int `json:"buildings" yaml:"buildings"`
	ZEBCount  int `json:"zeb_count" yaml:"zeb_count"`

	// LongestLife is the largest projected life, held by LongestLifeName.
	LongestLife     int    `json:"longest_life" yaml:"longest_life"`
	LongestLifeName string `json:"longest_life_name" yaml:"longest_life_name"`

	// EarliestRenewal and LatestRenewal bound the portfolio's renewal years.
	// Both are zero for an empty portfolio.
	EarliestRenewal int `json:"earliest_renewal" yaml:"earliest_renewal"`
	LatestRenewal   int `json:"latest_renewal" yaml:"latest_renewal"`

	TotalRepairs int `json:"total_repairs" yaml:"total_repairs"`
}

// Report is a simulated portfolio. Projections follow input order.
type Report struct {
	Projections []Projection `json:"projections" yaml:"projections"`
	Summary     Summary      `json:"summary" yaml:"summary"`
}

// Project computes the outlook for b.
func Project(b Building) Projection {
	return Projection{
		Building:      b,
		Repairs:       b.Repairs(),
		ProjectedLife: b.ProjectedLife(),
		RenewalYear:   b.RenewalYear(),
		RepairYears:   b.RepairYears(),
		Timeline:      b.Timeline(),
	}
}

// Simulate projects every building concurrently with at most
// runtime.NumCPU() workers. It stops early and returns the context error
// when ctx is cancelled.
func Simulate(ctx context.Context, buildings []Building) (Report, error) {
	log := logging.FromContext(ctx)

	projections := make([]Projection, len(buildings))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, b := range buildings {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			projections[i] = Project(b)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	report := Report{Projections: projections, Summary: Summarize(projections)}
	log.Debug().
		Str("component", "renovation").
		Int("buildings", report.Summary.Buildings).
		Int("zeb_count", report.Summary.ZEBCount).
		Msg("portfolio simulated")
	return report, nil
}

// Summarize aggregates projections.
func Summarize(projections []Projection) Summary {
	s := Summary{Buildings: len(projections)}
	for i, p := range projections {
		if p.Building.IsZEB {
			s.ZEBCount++
		}
		s.TotalRepairs += p.Repairs

		if i == 0 || p.ProjectedLife > s.LongestLife {
			s.LongestLife = p.ProjectedLife
			s.LongestLifeName = p.Building.Name
		}
		if i == 0 || p.RenewalYear < s.EarliestRenewal {
			s.EarliestRenewal = p.RenewalYear
		}
		if i == 0 || p.RenewalYear > s.LatestRenewal {
			s.LatestRenewal = p.RenewalYear
		}
	}
	return s
}
