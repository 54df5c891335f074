// Package materials holds the reference table of per-material carbon factors.
//
// Every calculator that needs a material's emission factor looks it up here.
// Lookups of unknown materials return zero rather than an error, so a
// material the table does not know simply contributes nothing.
package materials

import (
	"fmt"
	"math"
	"sort"
)

// Canonical material identifiers of the built-in table.
const (
	ReinforcedConcrete = "Reinforced Concrete"
	Steel              = "Steel"
	Masonry            = "Masonry"
	Wood               = "Wood"
)

// DefaultVersion is the schema version of the built-in table.
const DefaultVersion = "1.0.0"

// Factors are the two carbon factors recorded for a material.
type Factors struct {
	// UnitEmission is kg CO2 for a 100% allocation of the material, used by
	// the simplified whole-building estimate.
	UnitEmission float64 `json:"unit_emission" yaml:"unit_emission"`

	// UnitCarbonPerArea is kg CO2 per m2 of floor area at 100% allocation.
	UnitCarbonPerArea float64 `json:"unit_carbon_per_area" yaml:"unit_carbon_per_area"`
}

// Table maps material identifiers to their factors. A Table is never
// mutated after construction; Merge returns a new value.
type Table struct {
	version   string
	materials map[string]Factors
}

//nolint:gochecknoglobals // Immutable reference table, initialized once.
var defaultTable = mustNewTable(DefaultVersion, map[string]Factors{
	ReinforcedConcrete: {UnitEmission: 300, UnitCarbonPerArea: 320.0},
	Steel:              {UnitEmission: 11000, UnitCarbonPerArea: 980.0},
	Masonry:            {UnitEmission: 500, UnitCarbonPerArea: 250.0},
	Wood:               {UnitEmission: 150, UnitCarbonPerArea: 120.0},
})

// Default returns the built-in material table.
func Default() *Table {
	return defaultTable
}

// NewTable validates entries and returns a table owning a private copy of them.
func NewTable(version string, entries map[string]Factors) (*Table, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no materials", ErrInvalidTable)
	}

	copied := make(map[string]Factors, len(entries))
	for name, f := range entries {
		if name == "" {
			return nil, fmt.Errorf("%w: empty material name", ErrInvalidTable)
		}
		if !validFactor(f.UnitEmission) || !validFactor(f.UnitCarbonPerArea) {
			return nil, fmt.Errorf("%w: material %q has a negative or non-finite factor", ErrInvalidTable, name)
		}
		copied[name] = f
	}

	return &Table{version: version, materials: copied}, nil
}

func mustNewTable(version string, entries map[string]Factors) *Table {
	t, err := NewTable(version, entries)
	if err != nil {
		panic(err)
	}
	return t
}

func validFactor(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Version returns the schema version the table was built from.
func (t *Table) Version() string {
	return t.version
}

// Lookup returns the factors for name and whether the material is known.
func (t *Table) Lookup(name string) (Factors, bool) {
	f, ok := t.materials[name]
	return f, ok
}

// UnitEmission returns kg CO2 for a full allocation of name, or 0 if unknown.
func (t *Table) UnitEmission(name string) float64 {
	return t.materials[name].UnitEmission
}

// UnitCarbonPerArea returns kg CO2/m2 for a full allocation of name, or 0 if unknown.
func (t *Table) UnitCarbonPerArea(name string) float64 {
	return t.materials[name].UnitCarbonPerArea
}

// Names returns the material identifiers in sorted order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.materials))
	for name := range t.materials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Entries returns a copy of the table contents.
func (t *Table) Entries() map[string]Factors {
	out := make(map[string]Factors, len(t.materials))
	for name, f := range t.materials {
		out[name] = f
	}
	return out
}

// Merge returns a new table holding t's entries with overrides applied on
// top. The version of the result is the overrides' version when non-empty.
func (t *Table) Merge(version string, overrides map[string]Factors) (*Table, error) {
	merged := t.Entries()
	for name, f := range overrides {
		merged[name] = f
	}
	if version == "" {
		version = t.version
	}
	return NewTable(version, merged)
}

// InitialEmission estimates the whole-building emission from the material
// mix alone: round(Σ unitEmission * ratio/100). Unknown materials add 0.
func (t *Table) InitialEmission(ratios map[string]float64) int {
	var total float64
	for _, name := range SortedKeys(ratios) {
		total += t.UnitEmission(name) * (ratios[name] / 100.0)
	}
	return int(math.Round(total))
}

// EmbeddedCarbon returns Σ (ratio/100) * unitCarbonPerArea * area in kg CO2.
// Keys are summed in sorted order so the result does not depend on map
// iteration order.
func (t *Table) EmbeddedCarbon(ratios map[string]float64, area float64) float64 {
	var total float64
	for _, name := range SortedKeys(ratios) {
		ratio := ratios[name] / 100.0
		total += ratio * t.UnitCarbonPerArea(name) * area
	}
	return total
}

// SortedKeys returns the keys of a ratio map in sorted order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
