// Package config loads zern's settings from $ZERN_HOME/config.yaml, an
// optional project overlay, a .env file and ZERN_* environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rshade/zern/internal/lifespan"
	"github.com/rshade/zern/internal/logging"
	"github.com/rshade/zern/internal/materials"
	"github.com/rshade/zern/internal/zeb"
)

// Output formats understood by the report package.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatPDF   = "pdf"
	FormatXLSX  = "xlsx"
)

// configFileName is the name of the config file inside a config directory.
const configFileName = "config.yaml"

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the complete zern configuration.
type Config struct {
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
	Defaults  DefaultsConfig  `yaml:"defaults"`
	Materials MaterialsConfig `yaml:"materials"`

	// path is the file the config was loaded from, if any.
	path string
}

// OutputConfig controls result rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
}

// LoggingConfig controls the zerolog logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// DefaultsConfig holds the planning and repair assumptions used when a
// command does not receive an explicit flag.
type DefaultsConfig struct {
	ReductionFactor    float64 `yaml:"reduction_factor"`
	InstallAreaPerKW   float64 `yaml:"install_area_per_kw"`
	RepairCycle        int     `yaml:"repair_cycle"`
	ExtensionPerRepair int     `yaml:"extension_per_repair"`
	EnergySource       string  `yaml:"energy_source"`

	// CurrentYear pins the evaluation year. Zero means the wall-clock year.
	CurrentYear int `yaml:"current_year,omitempty"`
}

// MaterialsConfig points at an optional material table file.
type MaterialsConfig struct {
	File string `yaml:"file,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Output: OutputConfig{DefaultFormat: FormatTable},
		Logging: LoggingConfig{
			Level:  "info",
			Format: logging.FormatConsole,
		},
		Defaults: DefaultsConfig{
			ReductionFactor:    zeb.DefaultReductionFactor,
			InstallAreaPerKW:   zeb.DefaultInstallAreaPerKW,
			RepairCycle:        lifespan.DefaultRepairCycle,
			ExtensionPerRepair: lifespan.DefaultExtensionPerRepair,
			EnergySource:       zeb.SourceSolar.String(),
		},
	}
}

// New returns the configuration from the user config directory, with
// environment overrides applied. A missing or unreadable file yields the
// built-in defaults.
func New() *Config {
	return load(context.Background())
}

// load is New with warnings logged to the logger carried by ctx.
func load(ctx context.Context) *Config {
	cfg := Default()

	dir, err := GetConfigDir()
	if err == nil {
		path := filepath.Join(dir, configFileName)
		if _, statErr := os.Stat(path); statErr == nil {
			if loaded, loadErr := Load(path); loadErr == nil {
				cfg = loaded
			}
		}
	}

	cfg.ApplyEnv(ctx, os.LookupEnv)
	return cfg
}

// Load reads path on top of the built-in defaults. Sections absent from the
// file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg := Default()
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	cfg.path = path
	return cfg, nil
}

// Path returns the file the config was loaded from, or "".
func (c *Config) Path() string {
	return c.path
}

// Save writes the config as YAML to path, creating its directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	c.path = path
	return nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	var errs []error

	formats := []string{FormatTable, FormatJSON, FormatYAML, FormatPDF, FormatXLSX}
	if !slices.Contains(formats, strings.ToLower(c.Output.DefaultFormat)) {
		errs = append(errs, fmt.Errorf("output.default_format %q must be one of %s",
			c.Output.DefaultFormat, strings.Join(formats, ", ")))
	}

	if err := logging.ValidateFormat(c.Logging.Format); err != nil {
		errs = append(errs, fmt.Errorf("logging.format: %w", err))
	}

	d := c.Defaults
	if d.ReductionFactor <= 0 {
		errs = append(errs, fmt.Errorf("defaults.reduction_factor must be positive, got %g", d.ReductionFactor))
	}
	if d.InstallAreaPerKW <= 0 {
		errs = append(errs, fmt.Errorf("defaults.install_area_per_kw must be positive, got %g", d.InstallAreaPerKW))
	}
	if d.RepairCycle <= 0 {
		errs = append(errs, fmt.Errorf("defaults.repair_cycle must be positive, got %d", d.RepairCycle))
	}
	if d.ExtensionPerRepair < 0 {
		errs = append(errs, fmt.Errorf("defaults.extension_per_repair must not be negative, got %d", d.ExtensionPerRepair))
	}
	if _, ok := zeb.ParseEnergySource(d.EnergySource); !ok {
		errs = append(errs, fmt.Errorf("defaults.energy_source %q is not a known source", d.EnergySource))
	}
	if d.CurrentYear < 0 {
		errs = append(errs, fmt.Errorf("defaults.current_year must not be negative, got %d", d.CurrentYear))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// EnergySource returns the configured default energy source.
func (c *Config) EnergySource() zeb.EnergySource {
	src, _ := zeb.ParseEnergySource(c.Defaults.EnergySource)
	return src
}

// RepairPlan returns the configured default repair schedule.
func (c *Config) RepairPlan() lifespan.RepairPlan {
	return lifespan.RepairPlan{
		Cycle:              c.Defaults.RepairCycle,
		ExtensionPerRepair: c.Defaults.ExtensionPerRepair,
	}
}

// MaterialsTable returns the built-in material table, with the configured
// table file merged on top when one is set.
func (c *Config) MaterialsTable() (*materials.Table, error) {
	if c.Materials.File == "" {
		return materials.Default(), nil
	}
	return materials.LoadFile(c.Materials.File)
}
