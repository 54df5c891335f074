package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rshade/zern/internal/logging"
)

// projectDirName is the per-project config directory.
const projectDirName = ".zern"

// ResolveProjectDir determines the project-local .zern directory. It checks,
// in order, flagValue, ZERN_PROJECT_DIR, and a walk up from startDir looking
// for an existing .zern directory. The returned path is absolute, or empty
// when no project is found. Nothing is created.
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsProjectDir(ctx, flagValue)
	}

	if envDir := os.Getenv(EnvProjectDir); envDir != "" {
		return toAbsProjectDir(ctx, envDir)
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}

	home, _ := GetConfigDir()
	for {
		candidate := filepath.Join(dir, projectDirName)
		// The user config directory is not a project.
		if candidate != home {
			if info, statErr := os.Stat(candidate); statErr == nil && info.IsDir() {
				return candidate
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// NewWithProjectDir loads the user configuration and shallow-merges
// projectDir/config.yaml on top. Environment overrides are re-applied after
// the merge. A missing or broken overlay leaves the user configuration.
func NewWithProjectDir(ctx context.Context, projectDir string) *Config {
	cfg := load(ctx)

	if projectDir == "" {
		return cfg
	}

	overlayPath := filepath.Join(projectDir, configFileName)
	if _, err := os.Stat(overlayPath); err != nil {
		return cfg
	}

	merged := load(ctx)
	if err := ShallowMergeYAML(merged, overlayPath); err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Str("operation", "merge_project_config").
			Err(err).
			Str("overlay_path", overlayPath).
			Msg("failed to merge project config, using user config")
		return cfg
	}

	merged.ApplyEnv(ctx, os.LookupEnv)
	return merged
}

// toAbsProjectDir converts dir to an absolute path ending in .zern.
func toAbsProjectDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		abs = dir
	}

	if filepath.Base(abs) == projectDirName {
		return abs
	}

	return filepath.Join(abs, projectDirName)
}
