package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/term"

	"github.com/rshade/zern/internal/cli"
	"github.com/rshade/zern/internal/config"
	"github.com/rshade/zern/internal/lifespan"
	"github.com/rshade/zern/internal/report"
	"github.com/rshade/zern/internal/zeb"
)

// runRoot executes the root command with args in an isolated ZERN_HOME and
// returns everything written to stdout and stderr.
func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvHome, t.TempDir())
	for _, key := range []string{
		config.EnvProjectDir, config.EnvLogLevel, config.EnvLogFormat,
		config.EnvOutputFormat, config.EnvMaterialsFile, config.EnvCurrentYear,
	} {
		t.Setenv(key, "")
	}
	t.Cleanup(config.ResetGlobalConfigForTest)

	var buf bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

var lifespanArgs = []string{ //nolint:gochecknoglobals // Shared test fixture
	"lifespan", "--year", "2025",
	"--year-built", "2000",
	"--material", "Reinforced Concrete=60", "--material", "Steel=40",
	"--life", "Reinforced Concrete=80", "--life", "Steel=70",
	"--usage", "public", "--floors", "12", "--environment", "coastal", "--cracks",
}

var zebArgs = []string{ //nolint:gochecknoglobals // Shared test fixture
	"zeb", "--year", "2025",
	"--material", "Reinforced Concrete=60", "--material", "Steel=40",
	"--area", "1000", "--energy-use", "50000", "--emission-factor", "0.45",
	"--life-span", "30", "--offset-period", "20",
}

func with(base []string, extra ...string) []string {
	return append(append([]string{}, base...), extra...)
}

func TestNewRootCmd(t *testing.T) {
	root := cli.NewRootCmd("1.2.3")
	assert.Equal(t, "zern", root.Use)
	assert.Equal(t, "1.2.3", root.Version)

	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"lifespan", "zeb", "renovation", "materials", "config"})

	for _, flag := range []string{"debug", "config", "project-dir", "materials", "year"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}

	lifespanCmd, _, err := root.Find([]string{"lifespan"})
	require.NoError(t, err)
	assert.Contains(t, lifespanCmd.Long, "10 or more floors",
		"help matches the high-rise threshold of %d floors", lifespan.HighRiseFloors)
}

func TestLifespanCmd(t *testing.T) {
	tests := []struct {
		name     string
		extra    []string
		contains []string
	}{
		{
			name:     "table",
			contains: []string{"56 years", "71 years", "28 years", "4,580 kg CO2", "After Inspection"},
		},
		{
			name:     "repair flags override defaults",
			extra:    []string{"--repair-cycle", "20", "--repair-extension", "5"},
			contains: []string{"66 years"},
		},
		{
			name:     "stage chart",
			extra:    []string{"--chart"},
			contains: []string{"LIFESPAN STAGES", "81 yr"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runRoot(t, with(lifespanArgs, tt.extra...)...)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestLifespanCmd_JSON(t *testing.T) {
	out, err := runRoot(t, with(lifespanArgs, "--output", "json")...)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	pred := got["prediction"].(map[string]any)
	assert.InDelta(t, 56, pred["final_life"], 0)
	assert.InDelta(t, 4580, got["initial_emission_kg"], 0)
}

func TestLifespanCmd_ConfigDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("defaults:\n  repair_cycle: 28\n  extension_per_repair: 10\n"), 0o600))

	out, err := runRoot(t, with(lifespanArgs, "--config", path)...)
	require.NoError(t, err)
	assert.Contains(t, out, "76 years")
}

func TestLifespanCmd_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown usage", with(lifespanArgs, "--usage", "stadium"), "unknown usage"},
		{"unknown environment", with(lifespanArgs, "--environment", "lunar"), "unknown environment"},
		{"bad ratio", with(lifespanArgs, "--material", "Wood=lots"), "invalid ratio"},
		{"bad pair", with(lifespanArgs, "--life", "Wood"), "expected name=value"},
		{"missing year built", []string{"lifespan", "--material", "Wood=100"}, "year-built"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runRoot(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestZEBCmd_Table(t *testing.T) {
	out, err := runRoot(t, with(zebArgs, "--compare")...)
	require.NoError(t, err)

	assert.Contains(t, out, "584,000 kg CO2")
	assert.Contains(t, out, "1,259.0 t CO2")
	assert.Contains(t, out, "95.81 kW")
	assert.Contains(t, out, "2045")
	assert.Contains(t, out, "Hydropower")
}

func TestZEBCmd_Source(t *testing.T) {
	out, err := runRoot(t, with(zebArgs, "--source", "wind", "--output", "yaml")...)
	require.NoError(t, err)
	assert.Contains(t, out, "energy_source: Wind")

	_, err = runRoot(t, with(zebArgs, "--source", "coal")...)
	require.ErrorIs(t, err, zeb.ErrInvalidParameter)
}

func TestZEBCmd_Output(t *testing.T) {
	_, err := runRoot(t, with(zebArgs, "--output", "pdf")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "require --out")

	_, err = runRoot(t, with(zebArgs, "--output", "html")...)
	require.ErrorIs(t, err, report.ErrUnknownFormat)

	path := filepath.Join(t.TempDir(), "plan.xlsx")
	out, err := runRoot(t, with(zebArgs, "--output", "xlsx", "--out", path)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to "+path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.Equal(t, []string{"Summary", "Offset Timeline"}, f.GetSheetList())
}

func TestZEBCmd_InteractiveFallsBackWithoutTerminal(t *testing.T) {
	if term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) {
		t.Skip("running in a terminal")
	}

	out, err := runRoot(t, with(zebArgs, "--interactive")...)
	require.NoError(t, err)
	assert.Contains(t, out, "584,000 kg CO2")
}

const portfolio = `
buildings:
  - name: City Hall
    built_year: 1998
    initial_life: 50
    repair_cycle: 10
    extension_per_repair: 3
    is_zeb: true
  - name: Depot
    built_year: 1975
    initial_life: 30
`

func TestRenovationCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "city.yaml")
	require.NoError(t, os.WriteFile(path, []byte(portfolio), 0o600))

	out, err := runRoot(t, "renovation", "--file", path, "--timeline")
	require.NoError(t, err)
	assert.Contains(t, out, "65 years (City Hall)")
	assert.Contains(t, out, "2005 - 2063")
	assert.Contains(t, out, "projected life 30 yr")

	_, err = runRoot(t, "renovation", "--file", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading portfolio")
}

func TestMaterialsCmd(t *testing.T) {
	out, err := runRoot(t, "materials", "--output", "json")
	require.NoError(t, err)

	var got report.MaterialsDocument
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "1.0.0", got.Version)
	assert.InDelta(t, 11000, got.Materials["Steel"].UnitEmission, 0)
}

func TestMaterialsCmd_OverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "materials.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`version: 1.1.0
materials:
  Glass:
    unit_emission: 800
    unit_carbon_per_area: 410
`), 0o600))

	out, err := runRoot(t, "materials", "--materials", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Glass")
	assert.Contains(t, out, "Masonry")
}

func TestConfigCmds(t *testing.T) {
	home := t.TempDir()

	run := func(args ...string) (string, error) {
		t.Setenv(config.EnvHome, home)
		t.Cleanup(config.ResetGlobalConfigForTest)

		var buf bytes.Buffer
		cmd := cli.NewRootCmd("test")
		cmd.SetOut(&buf)
		cmd.SetErr(&buf)
		cmd.SetArgs(args)
		err := cmd.Execute()
		return buf.String(), err
	}

	out, err := run("config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(home, "config.yaml"))
	assert.FileExists(t, filepath.Join(home, "config.yaml"))

	_, err = run("config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = run("config", "init", "--force")
	require.NoError(t, err)

	out, err = run("config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "default_format: table")
	assert.Contains(t, out, "repair_cycle: 10")

	out, err = run("config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("output:\n  default_format: html\n"), 0o600))
	_, err = run("config", "validate", bad)
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestConfigCmds_RepairBrokenConfig(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  default_format: csv\n"), 0o600))

	run := func(args ...string) (string, error) {
		t.Setenv(config.EnvHome, home)
		t.Setenv(config.EnvOutputFormat, "")
		t.Cleanup(config.ResetGlobalConfigForTest)

		var buf bytes.Buffer
		cmd := cli.NewRootCmd("test")
		cmd.SetOut(&buf)
		cmd.SetErr(&buf)
		cmd.SetArgs(args)
		err := cmd.Execute()
		return buf.String(), err
	}

	_, err := run(lifespanArgs...)
	require.Error(t, err, "calculator commands refuse an invalid config")

	_, err = run("config", "validate")
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	out, err := run("config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "default_format: csv")

	_, err = run("config", "init", "--force")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "default_format: table")

	out, err = run("config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
}

func TestZEBCmd_EmissionFactorUnits(t *testing.T) {
	for _, factor := range []string{"450g", "450 g/kWh", "0.45kgCO2e/kWh", "0.00045t"} {
		t.Run(factor, func(t *testing.T) {
			out, err := runRoot(t, with(zebArgs, "--emission-factor", factor)...)
			require.NoError(t, err)
			assert.Contains(t, out, "1,259.0 t CO2")
		})
	}

	for _, factor := range []string{"lots", "NaN", "Inf", "3 furlongs", "-2g"} {
		t.Run("invalid "+factor, func(t *testing.T) {
			_, err := runRoot(t, with(zebArgs, "--emission-factor", factor)...)
			require.ErrorIs(t, err, zeb.ErrInvalidParameter)
		})
	}
}

func TestZEBCmd_OutPathSelectsFormat(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "plan.yaml")
	_, err := runRoot(t, with(zebArgs, "--out", yamlPath)...)
	require.NoError(t, err)
	data, err := os.ReadFile(yamlPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "energy_source: Solar")

	out, err := runRoot(t, with(zebArgs, "--output", "json", "--out", filepath.Join(dir, "plan"))...)
	require.NoError(t, err)
	jsonPath := filepath.Join(dir, "plan.json")
	assert.Contains(t, out, "Report written to "+jsonPath)
	assert.FileExists(t, jsonPath)
}

func TestZEBCmd_FromLifespan(t *testing.T) {
	lifePath := filepath.Join(t.TempDir(), "life.json")
	_, err := runRoot(t, with(lifespanArgs, "--out", lifePath)...)
	require.NoError(t, err)

	base := []string{
		"zeb", "--year", "2025", "--from-lifespan", lifePath,
		"--area", "1000", "--energy-use", "50000", "--emission-factor", "0.45",
		"--offset-period", "20", "--output", "yaml",
	}

	out, err := runRoot(t, base...)
	require.NoError(t, err)
	assert.Contains(t, out, "life_span_years: 56")
	assert.Contains(t, out, "Reinforced Concrete: 60")

	out, err = runRoot(t, with(base, "--life-span", "40")...)
	require.NoError(t, err)
	assert.Contains(t, out, "life_span_years: 40")

	_, err = runRoot(t, with(base, "--from-lifespan", filepath.Join(t.TempDir(), "missing.json"))...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening lifespan report")

	_, err = runRoot(t, "zeb", "--area", "1000", "--energy-use", "50000",
		"--emission-factor", "0.45", "--offset-period", "20")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "life-span")
}
