package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/zern/internal/config"
	"github.com/rshade/zern/internal/greenops"
	"github.com/rshade/zern/internal/materials"
	"github.com/rshade/zern/internal/report"
)

// errBinaryNeedsOut is returned when pdf or xlsx output has nowhere to go.
var errBinaryNeedsOut = errors.New("binary output formats require --out")

func stringFlag(cmd *cobra.Command, name string) string {
	if f := cmd.Flag(name); f != nil {
		return f.Value.String()
	}
	return ""
}

func boolFlag(cmd *cobra.Command, name string) bool {
	v, _ := strconv.ParseBool(stringFlag(cmd, name))
	return v
}

func intFlag(cmd *cobra.Command, name string) int {
	v, _ := strconv.Atoi(stringFlag(cmd, name))
	return v
}

// currentYear returns --year, else the configured year, else the wall clock.
func currentYear(cmd *cobra.Command) int {
	if y := intFlag(cmd, flagYear); y > 0 {
		return y
	}
	return config.GetGlobalConfig().CurrentYear(time.Now())
}

// materialsTable returns the table named by --materials, else the
// configured one.
func materialsTable(cmd *cobra.Command) (*materials.Table, error) {
	if path := stringFlag(cmd, flagMaterials); path != "" {
		return materials.LoadFile(path)
	}
	return config.GetGlobalConfig().MaterialsTable()
}

// splitPair splits "name=value" at the last '='. Material names may
// contain spaces but not '='.
func splitPair(pair string) (string, string, error) {
	i := strings.LastIndex(pair, "=")
	if i <= 0 || i == len(pair)-1 {
		return "", "", fmt.Errorf("expected name=value, got %q", pair)
	}
	return strings.TrimSpace(pair[:i]), strings.TrimSpace(pair[i+1:]), nil
}

// parseRatios turns repeated --material name=percent flags into a ratio map.
func parseRatios(pairs []string) (map[string]float64, error) {
	ratios := make(map[string]float64, len(pairs))
	for _, p := range pairs {
		name, raw, err := splitPair(p)
		if err != nil {
			return nil, fmt.Errorf("--material: %w", err)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("--material %s: invalid ratio %q", name, raw)
		}
		ratios[name] += v
	}
	return ratios, nil
}

// parseLives turns repeated --life name=years flags into a life map.
func parseLives(pairs []string) (map[string]int, error) {
	lives := make(map[string]int, len(pairs))
	for _, p := range pairs {
		name, raw, err := splitPair(p)
		if err != nil {
			return nil, fmt.Errorf("--life: %w", err)
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("--life %s: invalid years %q", name, raw)
		}
		lives[name] = v
	}
	return lives, nil
}

// parseMassPerKWh parses a grid emission factor such as "0.45", "450g",
// "0.45 kgCO2e/kWh" or "0.00045t" into kg CO2 per kWh. A bare number is
// already in kg.
func parseMassPerKWh(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if lower := strings.ToLower(s); strings.HasSuffix(lower, "/kwh") {
		s = strings.TrimSpace(s[:len(s)-len("/kwh")])
	}

	end := strings.IndexFunc(s, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.' && r != '-' && r != '+' && r != 'e' && r != 'E'
	})
	number, unit := s, ""
	if end >= 0 {
		number, unit = strings.TrimSpace(s[:end]), s[end:]
	}

	v, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid emission factor %q", raw)
	}
	if unit == "" {
		return v, nil
	}
	kg, err := greenops.ToKg(v, unit)
	if err != nil {
		return 0, fmt.Errorf("emission factor %q: %w", raw, err)
	}
	return kg, nil
}

// warnUnknownMaterials logs every material the table has no factors for.
func warnUnknownMaterials(cmd *cobra.Command, table *materials.Table, ratios map[string]float64) {
	ctx := cmd.Context()
	for _, name := range materials.SortedKeys(ratios) {
		if _, ok := table.Lookup(name); !ok {
			logger.Warn().Ctx(ctx).Str("material", name).
				Msg("material not in the emission table, it contributes no carbon")
		}
	}
}

// outputParams holds the shared --output and --out flags.
type outputParams struct {
	format string
	out    string
}

func addOutputFlags(cmd *cobra.Command, p *outputParams) {
	cmd.Flags().StringVar(&p.format, "output", "",
		"Output format: table, json, yaml, pdf or xlsx (default from configuration)")
	cmd.Flags().StringVar(&p.out, "out", "",
		"Write the report to this file instead of stdout; without --output its extension picks the format")
}

// resolve returns the requested format. Without --output the extension of
// --out decides, then the configured default.
func (p outputParams) resolve() (report.Format, error) {
	if p.format == "" && p.out != "" {
		if f, ok := report.FormatForPath(p.out); ok {
			return f, nil
		}
	}
	name := p.format
	if name == "" {
		name = config.GetDefaultOutputFormat()
	}
	return report.ParseFormat(name)
}

// path returns --out, adding the format's extension when it has none.
func (p outputParams) path(format report.Format) string {
	if filepath.Ext(p.out) == "" {
		return p.out + format.Extension()
	}
	return p.out
}

// emit renders a report to --out or the command's stdout.
func emit(cmd *cobra.Command, p outputParams, render func(io.Writer, report.Format) error) error {
	format, err := p.resolve()
	if err != nil {
		return err
	}

	if p.out == "" {
		if format.Binary() {
			return fmt.Errorf("%w: %s", errBinaryNeedsOut, format)
		}
		return render(cmd.OutOrStdout(), format)
	}

	path := p.path(format)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err = render(f, format); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}

	logger.Debug().Ctx(cmd.Context()).Str("path", path).Str("format", string(format)).Msg("report written")
	cmd.Printf("Report written to %s\n", path)
	return nil
}
