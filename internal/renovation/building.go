// Package renovation projects the lifecycle of a portfolio of buildings
// under periodic major repairs, for city-scale renewal planning.
package renovation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/rshade/zern/internal/lifespan"
)

type constError string

func (e constError) Error() string { return string(e) }

// ErrInvalidBuilding is returned when a building's fields cannot be parsed
// or fall outside their allowed range.
const ErrInvalidBuilding constError = "invalid building"

// MaxLife caps the initial, extension and projected life of a building in
// years. It bounds Timeline, which allocates one mark per projected year.
const MaxLife = 1000

// Building is one entry of a renovation portfolio.
type Building struct {
	ID                 string `json:"id" yaml:"id"`
	Name               string `json:"name" yaml:"name"`
	BuiltYear          int    `json:"built_year" yaml:"built_year"`
	InitialLife        int    `json:"initial_life" yaml:"initial_life"`
	RepairCycle        int    `json:"repair_cycle" yaml:"repair_cycle"`
	ExtensionPerRepair int    `json:"extension_per_repair" yaml:"extension_per_repair"`
	IsZEB              bool   `json:"is_zeb" yaml:"is_zeb"`
}

// NewBuilding returns a Building with a fresh ULID.
func NewBuilding(name string, builtYear, initialLife, repairCycle, extension int, isZEB bool) Building {
	return Building{
		ID:                 NewID(),
		Name:               name,
		BuiltYear:          builtYear,
		InitialLife:        initialLife,
		RepairCycle:        repairCycle,
		ExtensionPerRepair: extension,
		IsZEB:              isZEB,
	}
}

// NewID returns a new building identifier.
func NewID() string {
	return ulid.Make().String()
}

// ParseBuilding builds a Building from form fields. Every numeric field must
// parse as an integer; otherwise the error wraps ErrInvalidBuilding and names
// the field.
func ParseBuilding(name, builtYear, initialLife, repairCycle, extension string, isZEB bool) (Building, error) {
	year, err := parseField("built_year", builtYear)
	if err != nil {
		return Building{}, err
	}
	life, err := parseField("initial_life", initialLife)
	if err != nil {
		return Building{}, err
	}
	cycle, err := parseField("repair_cycle", repairCycle)
	if err != nil {
		return Building{}, err
	}
	ext, err := parseField("extension_per_repair", extension)
	if err != nil {
		return Building{}, err
	}

	b := NewBuilding(strings.TrimSpace(name), year, life, cycle, ext, isZEB)
	if err = b.Validate(); err != nil {
		return Building{}, err
	}
	return b, nil
}

// Validate checks that every numeric field is non-negative and that the
// lives stay within MaxLife. Errors wrap ErrInvalidBuilding.
func (b Building) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{ColumnBuiltYear, b.BuiltYear},
		{ColumnInitialLife, b.InitialLife},
		{ColumnRepairCycle, b.RepairCycle},
		{ColumnExtension, b.ExtensionPerRepair},
	}
	for _, f := range fields {
		if f.value < 0 {
			return fmt.Errorf("%w: %s %d must not be negative", ErrInvalidBuilding, f.name, f.value)
		}
	}
	if b.InitialLife > MaxLife {
		return fmt.Errorf("%w: %s %d exceeds %d", ErrInvalidBuilding, ColumnInitialLife, b.InitialLife, MaxLife)
	}
	if b.ExtensionPerRepair > MaxLife {
		return fmt.Errorf("%w: %s %d exceeds %d", ErrInvalidBuilding, ColumnExtension, b.ExtensionPerRepair, MaxLife)
	}
	if life := b.ProjectedLife(); life > MaxLife {
		return fmt.Errorf("%w: projected life %d exceeds %d", ErrInvalidBuilding, life, MaxLife)
	}
	return nil
}

func parseField(name, raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrInvalidBuilding, name, raw)
	}
	return v, nil
}

func (b Building) repairPlan() lifespan.RepairPlan {
	return lifespan.RepairPlan{Cycle: b.RepairCycle, ExtensionPerRepair: b.ExtensionPerRepair}
}

// Repairs returns the number of major repairs during the initial life.
func (b Building) Repairs() int {
	return b.repairPlan().Repairs(b.InitialLife)
}

// ProjectedLife is the initial life extended by every scheduled repair, or
// the initial life when the building has no repair cycle.
func (b Building) ProjectedLife() int {
	return b.repairPlan().ExtendedLife(b.InitialLife)
}

// RenewalYear is the year the projected life runs out.
func (b Building) RenewalYear() int {
	return b.BuiltYear + b.ProjectedLife()
}

// YearMark is one year of a building's projected life.
type YearMark struct {
	Index  int  `json:"index" yaml:"index"`
	Year   int  `json:"year" yaml:"year"`
	Repair bool `json:"repair" yaml:"repair"`
}

// Timeline returns one mark per projected year, counted from BuiltYear.
// A year is a repair year when its index is a positive multiple of the
// repair cycle.
func (b Building) Timeline() []YearMark {
	life := max(b.ProjectedLife(), 0)
	marks := make([]YearMark, life)
	for i := range life {
		marks[i] = YearMark{
			Index:  i,
			Year:   b.BuiltYear + i,
			Repair: b.RepairCycle > 0 && i > 0 && i%b.RepairCycle == 0,
		}
	}
	return marks
}

// RepairYears returns the calendar years of scheduled repairs.
func (b Building) RepairYears() []int {
	var years []int
	for _, m := range b.Timeline() {
		if m.Repair {
			years = append(years, m.Year)
		}
	}
	return years
}
