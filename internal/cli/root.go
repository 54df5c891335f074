// Package cli implements the zern command line.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/zern/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// Persistent flag names.
const (
	flagDebug     = "debug"
	flagConfig    = "config"
	flagProject   = "project-dir"
	flagMaterials = "materials"
	flagYear      = "year"
)

// NewRootCmd creates the root Cobra command for the zern CLI. It wires up
// configuration, logging and tracing, and the lifespan, zeb, renovation,
// materials and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:           "zern",
		Short:         "Building lifespan and carbon-neutrality calculator",
		Long:          "zern estimates how long a building will last and sizes the renewable installation that offsets its carbon.",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			logResult = setupLogging(cmd)
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return logResult.Close()
		},
	}

	pf := cmd.PersistentFlags()
	pf.Bool(flagDebug, false, "enable debug logging")
	pf.String(flagConfig, "", "config file (default $ZERN_HOME/config.yaml)")
	pf.String(flagProject, "", "project directory holding a .zern overlay (default: search upwards)")
	pf.String(flagMaterials, "", "material table YAML merged over the built-in table")
	pf.Int(flagYear, 0, "evaluation year (default: config, then the current year)")

	cmd.AddCommand(
		NewLifespanCmd(),
		NewZEBCmd(),
		NewRenovationCmd(),
		NewMaterialsCmd(),
		newConfigCmd(),
	)
	return cmd
}

const rootCmdExample = `  # Predict the remaining life of a 1995 concrete and steel office
  zern lifespan --year-built 1995 --material "Reinforced Concrete=70" --material Steel=30 \
    --life "Reinforced Concrete=60" --life Steel=50 --usage commercial --floors 12

  # Plan a solar installation and compare it with the other sources
  zern zeb --material "Reinforced Concrete=60" --material Steel=40 --area 1000 \
    --energy-use 50000 --emission-factor 0.45 --life-span 30 --offset-period 20 --compare

  # Simulate a city portfolio and export the schedule to Excel
  zern renovation --file portfolio.xlsx --output xlsx --out schedule.xlsx

  # Show the active material table
  zern materials`

const configCmdName = "config"

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: configCmdName, Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigValidateCmd())
	return cmd
}
