package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/zern/internal/config"
	"github.com/rshade/zern/internal/logging"
	"github.com/rshade/zern/internal/report"
	"github.com/rshade/zern/internal/tui"
	"github.com/rshade/zern/internal/zeb"
)

// zebParams holds the flags of the zeb command.
type zebParams struct {
	materials        []string
	area             float64
	energyUse        float64
	emissionFactor   string
	lifeSpan         int
	offsetPeriod     int
	source           string
	reductionFactor  float64
	installAreaPerKW float64
	fromLifespan     string
	compare          bool
	interactive      bool
	output           outputParams
}

// NewZEBCmd creates the "zeb" command that plans a carbon-offsetting
// renewable installation.
func NewZEBCmd() *cobra.Command {
	var params zebParams

	cmd := &cobra.Command{
		Use:   "zeb",
		Short: "Plan the renewable installation that makes a building carbon neutral",
		Long: `Plan the renewable installation that offsets a building's carbon.

Embedded carbon comes from the material mix and floor area; operating carbon
from annual energy use and the grid emission factor. Their total over the
life span is offset over the offset period, which sizes the installation's
capacity and area for the chosen energy source. The building is a zero
energy building (ZEB) when the cumulative offset covers the total carbon
within its life span.`,
		Example: zebExample,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeZEB(cmd, params)
		},
	}

	f := cmd.Flags()
	f.StringArrayVar(&params.materials, "material", nil, "Material share as name=percent (repeatable)")
	f.Float64Var(&params.area, "area", 0, "Gross floor area in m2")
	f.Float64Var(&params.energyUse, "energy-use", 0, "Annual energy use in kWh")
	f.StringVar(&params.emissionFactor, "emission-factor", "",
		"Grid emission factor per kWh; kg by default, or suffixed g, kg, t or lb (e.g. 450g)")
	f.IntVar(&params.lifeSpan, "life-span", 0, "Building life span in years")
	f.IntVar(&params.offsetPeriod, "offset-period", 0, "Years over which the total carbon is offset")
	f.StringVar(&params.source, "source", "",
		"Energy source: solar, wind, geothermal, biomass or hydropower (default from configuration)")
	f.Float64Var(&params.reductionFactor, "reduction-factor", zeb.DefaultReductionFactor,
		"kg CO2 offset per kWh generated (default from configuration)")
	f.Float64Var(&params.installAreaPerKW, "install-area", zeb.DefaultInstallAreaPerKW,
		"Installation area per kW in m2 (default from configuration)")
	f.StringVar(&params.fromLifespan, "from-lifespan", "",
		"Lifespan report (JSON or YAML from 'zern lifespan') supplying the life span and material mix")
	f.BoolVar(&params.compare, "compare", false, "Also plan the building with every other energy source")
	f.BoolVar(&params.interactive, "interactive", false, "Browse the result in an interactive viewer")
	addOutputFlags(cmd, &params.output)

	for _, name := range []string{"area", "energy-use", "emission-factor", "offset-period"} {
		_ = cmd.MarkFlagRequired(name)
	}
	cmd.MarkFlagsOneRequired("life-span", "from-lifespan")

	return cmd
}

const zebExample = `  # Solar plan for a 1000 m2 concrete and steel building
  zern zeb --material "Reinforced Concrete=60" --material Steel=40 --area 1000 \
    --energy-use 50000 --emission-factor 0.45 --life-span 30 --offset-period 20

  # Compare every energy source and browse the result
  zern zeb --material Wood=100 --area 500 --energy-use 20000 --emission-factor 0.45 \
    --life-span 40 --offset-period 25 --compare --interactive

  # PDF report
  zern zeb --material Steel=100 --area 800 --energy-use 30000 --emission-factor 0.5 \
    --life-span 50 --offset-period 30 --source wind --out plan.pdf

  # Plan over the remaining life predicted by the lifespan command
  zern lifespan --year-built 2000 --material Wood=100 --life Wood=60 --output json --out life.json
  zern zeb --from-lifespan life.json --area 500 --energy-use 20000 --emission-factor 0.45 \
    --offset-period 25

  # Emission factor in grams per kWh
  zern zeb --material Wood=100 --area 500 --energy-use 20000 --emission-factor 450g/kWh \
    --life-span 40 --offset-period 25`

// buildPlanInput converts the flags into a planner input, taking the energy
// source and installation assumptions from configuration unless given.
func buildPlanInput(cmd *cobra.Command, params zebParams) (zeb.PlanInput, error) {
	ratios, err := parseRatios(params.materials)
	if err != nil {
		return zeb.PlanInput{}, err
	}
	factor, err := parseMassPerKWh(params.emissionFactor)
	if err != nil {
		return zeb.PlanInput{}, fmt.Errorf("%w: %w", zeb.ErrInvalidParameter, err)
	}

	lifeSpan := params.lifeSpan
	if params.fromLifespan != "" {
		prior, loadErr := loadLifespanDocument(params.fromLifespan)
		if loadErr != nil {
			return zeb.PlanInput{}, loadErr
		}
		if !cmd.Flags().Changed("life-span") {
			lifeSpan = prior.Prediction.FinalLife
		}
		if len(params.materials) == 0 {
			ratios = prior.Input.MaterialRatios
		}
	}

	cfg := config.GetGlobalConfig()
	in := zeb.NewPlanInput()
	in.MaterialRatios = ratios
	in.BuildingArea = params.area
	in.EnergyUse = params.energyUse
	in.EmissionFactor = factor
	in.LifeSpanYears = lifeSpan
	in.OffsetPeriodYears = params.offsetPeriod
	in.CurrentYear = currentYear(cmd)
	in.EnergySource = cfg.EnergySource()
	in.ReductionFactor = cfg.Defaults.ReductionFactor
	in.InstallAreaPerKW = cfg.Defaults.InstallAreaPerKW

	if params.source != "" {
		src, ok := zeb.ParseEnergySource(params.source)
		if !ok {
			return zeb.PlanInput{}, fmt.Errorf("%w: energy source %q", zeb.ErrInvalidParameter, params.source)
		}
		in.EnergySource = src
	}
	if cmd.Flags().Changed("reduction-factor") {
		in.ReductionFactor = params.reductionFactor
	}
	if cmd.Flags().Changed("install-area") {
		in.InstallAreaPerKW = params.installAreaPerKW
	}
	return in, nil
}

// loadLifespanDocument reads a report written by the lifespan command.
func loadLifespanDocument(path string) (report.LifespanDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return report.LifespanDocument{}, fmt.Errorf("opening lifespan report: %w", err)
	}
	defer func() { _ = f.Close() }()

	doc, err := report.ReadLifespanDocument(f)
	if err != nil {
		return report.LifespanDocument{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func executeZEB(cmd *cobra.Command, params zebParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	in, err := buildPlanInput(cmd, params)
	if err != nil {
		return err
	}

	table, err := materialsTable(cmd)
	if err != nil {
		return err
	}
	warnUnknownMaterials(cmd, table, in.MaterialRatios)

	doc := report.NewZEBDocument(zeb.NewPlanner(table), in, params.compare)
	log.Debug().Ctx(ctx).
		Str("operation", "zeb").
		Stringer("source", in.EnergySource).
		Float64("total_carbon", doc.Result.TotalCarbon).
		Float64("required_kw", doc.Result.RequiredCapacityKW).
		Bool("is_zeb", doc.Result.IsZEB).
		Msg("offset plan computed")

	if params.interactive {
		if isTerminal(os.Stdin) && isTerminal(os.Stdout) {
			return tui.RunZEB(ctx, doc, cmd.InOrStdin(), cmd.OutOrStdout())
		}
		log.Warn().Ctx(ctx).Msg("--interactive needs a terminal, falling back to table output")
		params.output = outputParams{format: string(report.FormatTable), out: params.output.out}
	}

	return emit(cmd, params.output, func(w io.Writer, f report.Format) error {
		return report.WriteZEB(w, f, doc)
	})
}
