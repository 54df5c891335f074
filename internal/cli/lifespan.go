package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rshade/zern/internal/config"
	"github.com/rshade/zern/internal/lifespan"
	"github.com/rshade/zern/internal/logging"
	"github.com/rshade/zern/internal/report"
	"github.com/rshade/zern/internal/tui"
)

// lifespanParams holds the flags of the lifespan command.
type lifespanParams struct {
	yearBuilt   int
	materials   []string
	lives       []string
	usage       string
	floors      int
	environment string
	inspection  lifespan.Inspection
	repairCycle int
	extension   int
	chart       bool
	output      outputParams
}

// NewLifespanCmd creates the "lifespan" command that predicts a building's
// remaining structural life.
func NewLifespanCmd() *cobra.Command {
	var params lifespanParams

	cmd := &cobra.Command{
		Use:   "lifespan",
		Short: "Predict a building's remaining structural life",
		Long: `Predict a building's remaining structural life from its material mix,
usage, height, environment and inspection findings.

The base life is the ratio-weighted life of each material. Public use and
10 or more floors add years; harsh environments and visible defects
subtract them. The building's age is then deducted. The result also shows
the life extended by periodic major repairs and the simplified initial
carbon emission of the material mix.`,
		Example: lifespanExample,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeLifespan(cmd, params)
		},
	}

	f := cmd.Flags()
	f.IntVar(&params.yearBuilt, "year-built", 0, "Year the building was completed")
	f.StringArrayVar(&params.materials, "material", nil, "Material share as name=percent (repeatable)")
	f.StringArrayVar(&params.lives, "life", nil, "Expected material life as name=years (repeatable)")
	f.StringVar(&params.usage, "usage", "residential", "Usage: residential, commercial, public or other")
	f.IntVar(&params.floors, "floors", 1, "Number of floors")
	f.StringVar(&params.environment, "environment", "normal",
		"Environment: normal, coastal, seismic, hot-humid or high-altitude-dry")
	f.BoolVar(&params.inspection.RecentlyRepaired, "repaired", false, "Repaired within the last five years")
	f.BoolVar(&params.inspection.HasCracks, "cracks", false, "Cracks found")
	f.BoolVar(&params.inspection.HasLeakage, "leakage", false, "Leakage found")
	f.BoolVar(&params.inspection.HasCorrosion, "corrosion", false, "Corrosion found")
	f.IntVar(&params.repairCycle, "repair-cycle", lifespan.DefaultRepairCycle,
		"Years between major repairs (default from configuration)")
	f.IntVar(&params.extension, "repair-extension", lifespan.DefaultExtensionPerRepair,
		"Years of life added by each major repair (default from configuration)")
	f.BoolVar(&params.chart, "chart", false, "Print a bar chart of the estimate stages after the table")
	addOutputFlags(cmd, &params.output)

	_ = cmd.MarkFlagRequired("year-built")
	_ = cmd.MarkFlagRequired("material")

	return cmd
}

const lifespanExample = `  # Concrete and steel public building on the coast with cracks
  zern lifespan --year-built 2000 --material "Reinforced Concrete=60" --material Steel=40 \
    --life "Reinforced Concrete=80" --life Steel=70 --usage public --floors 12 \
    --environment coastal --cracks

  # Same, as YAML with a custom repair schedule
  zern lifespan --year-built 2000 --material Wood=100 --life Wood=40 \
    --repair-cycle 15 --repair-extension 5 --output yaml`

// buildLifespanInput converts the flags into an estimator input.
func buildLifespanInput(cmd *cobra.Command, params lifespanParams) (lifespan.Input, error) {
	ratios, err := parseRatios(params.materials)
	if err != nil {
		return lifespan.Input{}, err
	}
	lives, err := parseLives(params.lives)
	if err != nil {
		return lifespan.Input{}, err
	}

	usage, ok := lifespan.ParseUsage(params.usage)
	if !ok {
		return lifespan.Input{}, fmt.Errorf("unknown usage %q", params.usage)
	}
	env, ok := lifespan.ParseEnvironment(params.environment)
	if !ok {
		return lifespan.Input{}, fmt.Errorf("unknown environment %q", params.environment)
	}

	return lifespan.Input{
		YearBuilt:      params.yearBuilt,
		MaterialRatios: ratios,
		Usage:          usage,
		Floors:         params.floors,
		MaterialLives:  lives,
		Environment:    env,
		Inspection:     params.inspection,
		CurrentYear:    currentYear(cmd),
	}, nil
}

// repairPlan uses the repair flags when given and the configured schedule otherwise.
func repairPlan(cmd *cobra.Command, params lifespanParams) lifespan.RepairPlan {
	plan := config.GetGlobalConfig().RepairPlan()
	if cmd.Flags().Changed("repair-cycle") {
		plan.Cycle = params.repairCycle
	}
	if cmd.Flags().Changed("repair-extension") {
		plan.ExtensionPerRepair = params.extension
	}
	return plan
}

func executeLifespan(cmd *cobra.Command, params lifespanParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	in, err := buildLifespanInput(cmd, params)
	if err != nil {
		return err
	}
	for name := range in.MaterialRatios {
		if _, ok := in.MaterialLives[name]; !ok {
			log.Warn().Ctx(ctx).Str("material", name).Msg("no --life given, material does not contribute to the base life")
		}
	}

	table, err := materialsTable(cmd)
	if err != nil {
		return err
	}
	warnUnknownMaterials(cmd, table, in.MaterialRatios)

	doc := report.NewLifespanDocument(in, repairPlan(cmd, params), table)
	log.Debug().Ctx(ctx).
		Str("operation", "lifespan").
		Int("base", doc.Prediction.Base).
		Int("after_environment", doc.Prediction.AfterEnvironment).
		Int("after_inspection", doc.Prediction.AfterInspection).
		Int("final_life", doc.Prediction.FinalLife).
		Int("extended_life", doc.Prediction.ExtendedLife).
		Msg("lifespan predicted")

	if err = emit(cmd, params.output, func(w io.Writer, f report.Format) error {
		return report.WriteLifespan(w, f, doc)
	}); err != nil {
		return err
	}

	if format, _ := params.output.resolve(); params.chart && params.output.out == "" && format == report.FormatTable {
		_, _ = fmt.Fprintln(cmd.OutOrStdout())
		_, _ = fmt.Fprint(cmd.OutOrStdout(), tui.RenderStageChart(doc.Prediction.Stages(), 0))
	}
	return nil
}
