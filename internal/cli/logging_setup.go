package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/zern/internal/config"
	"github.com/rshade/zern/internal/logging"
)

// loadConfig resolves the configuration for this invocation and installs it
// as the global config. Order: built-in defaults, the user config (or
// --config), the project overlay, .env, then ZERN_* variables.
func loadConfig(cmd *cobra.Command) error {
	// Warnings raised before logging is configured go to stderr.
	bootstrap := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.RFC3339}).
		Level(zerolog.WarnLevel).With().Timestamp().Logger()
	ctx := bootstrap.WithContext(cmd.Context())

	if err := config.LoadDotEnv(ctx); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}

	var cfg *config.Config
	if path := stringFlag(cmd, flagConfig); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		loaded.ApplyEnv(ctx, os.LookupEnv)
		cfg = loaded
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			cwd = "."
		}
		projectDir := config.ResolveProjectDir(ctx, stringFlag(cmd, flagProject), cwd)
		cfg = config.NewWithProjectDir(ctx, projectDir)
	}

	// The config commands must run against a broken file so it can be
	// inspected, validated and overwritten.
	if !inConfigGroup(cmd) {
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	config.SetGlobalConfig(cfg)
	return nil
}

// inConfigGroup reports whether cmd is the config command or one of its
// subcommands.
func inConfigGroup(cmd *cobra.Command) bool {
	for c := cmd; c != nil && c.HasParent(); c = c.Parent() {
		if c.Name() == configCmdName {
			return true
		}
	}
	return false
}

// setupLogging configures logging based on config file, environment, and CLI flags.
func setupLogging(cmd *cobra.Command) *logging.LogPathResult {
	loggingCfg := config.GetLoggingConfig()

	if boolFlag(cmd, flagDebug) {
		loggingCfg.Level = "debug"
		loggingCfg.Format = logging.FormatConsole
		loggingCfg.File = ""
	}

	if loggingCfg.File != "" {
		if err := config.EnsureLogDir(); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not create log directory: %v\n", err)
		}
	}

	result := logging.NewLoggerWithPath(loggingCfg.ToLoggingConfig())
	logger = logging.ComponentLogger(result.Logger, "cli")

	if result.UsingFile {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.With().Str("trace_id", traceID).Logger().WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Debug().Ctx(ctx).Str("command", cmd.Name()).Str("trace_id", traceID).Msg("command started")
	return &result
}
