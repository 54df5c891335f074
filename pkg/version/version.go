// Package version reports the zern build version.
package version

import "github.com/Masterminds/semver/v3"

// Set at build time with
// -ldflags "-X github.com/rshade/zern/pkg/version.version=v1.2.3 -X ...commit=abc".
//
//nolint:gochecknoglobals // Overridden by the linker.
var (
	version = "v0.1.0-dev"
	commit  = "unknown"
)

// GetVersion returns the build version.
func GetVersion() string {
	return version
}

// GetCommit returns the commit the binary was built from.
func GetCommit() string {
	return commit
}

// Semver parses the build version. It fails for hand-rolled builds whose
// version was overridden with something that is not a semantic version.
func Semver() (*semver.Version, error) {
	return semver.NewVersion(version)
}
