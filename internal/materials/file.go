package materials

import (
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// SupportedVersions is the semver constraint a table file's version must satisfy.
const SupportedVersions = ">= 1.0.0, < 2.0.0"

// File is the on-disk YAML layout of a material table.
//
//	version: 1.1.0
//	materials:
//	  Cross-Laminated Timber:
//	    unit_emission: 110
//	    unit_carbon_per_area: 95
type File struct {
	Version   string             `yaml:"version"`
	Materials map[string]Factors `yaml:"materials"`
}

// CheckVersion reports whether version satisfies SupportedVersions.
func CheckVersion(version string) error {
	if version == "" {
		return fmt.Errorf("%w: version is required", ErrUnsupportedVersion)
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q is not a semantic version: %w", ErrUnsupportedVersion, version, err)
	}

	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return fmt.Errorf("parsing supported version constraint: %w", err)
	}

	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedVersion, v, SupportedVersions)
	}
	return nil
}

// Parse decodes a YAML table file. When base is non-nil the file's entries
// are merged onto it, so a file only needs to list the materials it adds or
// replaces; otherwise the file must describe a complete table.
func Parse(data []byte, base *Table) (*Table, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing material table: %w", err)
	}

	if err := CheckVersion(f.Version); err != nil {
		return nil, err
	}

	if base != nil {
		return base.Merge(f.Version, f.Materials)
	}
	return NewTable(f.Version, f.Materials)
}

// LoadFile reads a table file from path and merges it onto the built-in table.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading material table %s: %w", path, err)
	}

	t, err := Parse(data, Default())
	if err != nil {
		return nil, fmt.Errorf("loading material table %s: %w", path, err)
	}
	return t, nil
}
