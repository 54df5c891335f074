package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/rshade/zern/internal/logging"
)

// Environment variables that override the config file.
const (
	EnvHome          = "ZERN_HOME"
	EnvProjectDir    = "ZERN_PROJECT_DIR"
	EnvLogLevel      = "ZERN_LOG_LEVEL"
	EnvLogFormat     = "ZERN_LOG_FORMAT"
	EnvOutputFormat  = "ZERN_OUTPUT_FORMAT"
	EnvMaterialsFile = "ZERN_MATERIALS_FILE"
	EnvCurrentYear   = "ZERN_CURRENT_YEAR"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// LoadDotEnv loads KEY=value pairs from the given files into the process
// environment without overriding variables that are already set. With no
// arguments it reads ".env" in the working directory. Missing files are
// not an error.
func LoadDotEnv(ctx context.Context, files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", f, err)
		}
		logging.FromContext(ctx).Debug().Ctx(ctx).
			Str("component", "config").Str("file", f).Msg("loaded environment file")
	}
	return nil
}

// ApplyEnv overrides settings from ZERN_* variables found through lookup.
// An unparsable ZERN_CURRENT_YEAR is logged to the logger carried by ctx
// and ignored.
func (c *Config) ApplyEnv(ctx context.Context, lookup LookupFunc) {
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		c.Logging.Format = v
	}
	if v, ok := lookup(EnvOutputFormat); ok && v != "" {
		c.Output.DefaultFormat = v
	}
	if v, ok := lookup(EnvMaterialsFile); ok && v != "" {
		c.Materials.File = v
	}
	if v, ok := lookup(EnvCurrentYear); ok && v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			logging.FromContext(ctx).Warn().Ctx(ctx).
				Str("component", "config").Str(EnvCurrentYear, v).Msg("ignoring unparsable current year")
		} else {
			c.Defaults.CurrentYear = year
		}
	}
}

// CurrentYear returns the configured evaluation year, or the year of now
// when none is pinned.
func (c *Config) CurrentYear(now time.Time) int {
	if c.Defaults.CurrentYear > 0 {
		return c.Defaults.CurrentYear
	}
	return now.Year()
}
