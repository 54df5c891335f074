package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rshade/zern/internal/logging"
	"github.com/rshade/zern/internal/renovation"
	"github.com/rshade/zern/internal/report"
	"github.com/rshade/zern/internal/tui"
)

// renovationParams holds the flags of the renovation command.
type renovationParams struct {
	file     string
	timeline bool
	output   outputParams
}

// NewRenovationCmd creates the "renovation" command that simulates a city's
// building portfolio.
func NewRenovationCmd() *cobra.Command {
	var params renovationParams

	cmd := &cobra.Command{
		Use:   "renovation",
		Short: "Simulate repair and renewal schedules for a building portfolio",
		Long: `Simulate repair and renewal schedules for a portfolio of buildings.

The portfolio is a YAML file with a buildings list, or an Excel workbook
whose first sheet has a header row with the columns name, built_year,
initial_life, repair_cycle, extension_per_repair and is_zeb. Malformed
spreadsheet rows are skipped with a warning.`,
		Example: renovationExample,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeRenovation(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.file, "file", "", "Portfolio file (.yaml, .yml or .xlsx)")
	cmd.Flags().BoolVar(&params.timeline, "timeline", false, "Print a year-by-year timeline per building")
	addOutputFlags(cmd, &params.output)
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

const renovationExample = `  # Simulate a YAML portfolio
  zern renovation --file city.yaml

  # Import a spreadsheet and show the timelines
  zern renovation --file city.xlsx --timeline

  # Export the schedule as a workbook
  zern renovation --file city.yaml --output xlsx --out schedule.xlsx`

func executeRenovation(cmd *cobra.Command, params renovationParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	buildings, err := renovation.LoadPortfolio(ctx, params.file)
	if err != nil {
		return fmt.Errorf("loading portfolio: %w", err)
	}

	rep, err := renovation.Simulate(ctx, buildings)
	if err != nil {
		return err
	}
	log.Debug().Ctx(ctx).
		Str("operation", "renovation").
		Str("file", params.file).
		Int("buildings", rep.Summary.Buildings).
		Msg("portfolio simulated")

	doc := report.RenovationDocument{Report: rep}
	if err = emit(cmd, params.output, func(w io.Writer, f report.Format) error {
		return report.WriteRenovation(w, f, doc)
	}); err != nil {
		return err
	}

	if format, _ := params.output.resolve(); params.timeline && params.output.out == "" && format == report.FormatTable {
		for _, p := range rep.Projections {
			_, _ = fmt.Fprintln(cmd.OutOrStdout())
			_, _ = fmt.Fprint(cmd.OutOrStdout(), tui.RenderRenovationTimeline(p.Building, 0))
		}
	}
	return nil
}
