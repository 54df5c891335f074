package renovation

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/rshade/zern/internal/logging"
)

// Portfolio is the YAML layout of a building list.
//
//	buildings:
//	  - name: City Hall
//	    built_year: 1998
//	    initial_life: 50
//	    repair_cycle: 10
//	    extension_per_repair: 3
//	    is_zeb: true
type Portfolio struct {
	Buildings []Building `yaml:"buildings"`
}

// Workbook column headers, matched case-insensitively.
const (
	ColumnName        = "name"
	ColumnBuiltYear   = "built_year"
	ColumnInitialLife = "initial_life"
	ColumnRepairCycle = "repair_cycle"
	ColumnExtension   = "extension_per_repair"
	ColumnIsZEB       = "is_zeb"
)

// Columns lists the workbook headers in their canonical order.
func Columns() []string {
	return []string{ColumnName, ColumnBuiltYear, ColumnInitialLife, ColumnRepairCycle, ColumnExtension, ColumnIsZEB}
}

// LoadPortfolio reads buildings from a .yaml/.yml or .xlsx file.
func LoadPortfolio(ctx context.Context, path string) ([]Building, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading portfolio %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParsePortfolio(data)
	case ".xlsx":
		return ReadWorkbook(ctx, bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unsupported portfolio format %q", filepath.Ext(path))
	}
}

// ParsePortfolio decodes a YAML portfolio. Buildings without an ID get one.
// The first building that fails Validate rejects the whole portfolio.
func ParsePortfolio(data []byte) ([]Building, error) {
	var p Portfolio
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing portfolio: %w", err)
	}

	for i := range p.Buildings {
		if err := p.Buildings[i].Validate(); err != nil {
			return nil, fmt.Errorf("building %d (%s): %w", i+1, p.Buildings[i].Name, err)
		}
		if p.Buildings[i].ID == "" {
			p.Buildings[i].ID = NewID()
		}
	}
	return p.Buildings, nil
}

// ReadWorkbook reads buildings from the first sheet of an Excel workbook. The
// first row is a header naming the columns; name, built_year, initial_life,
// repair_cycle and extension_per_repair are required, is_zeb is optional.
// Rows that do not parse or fail Validate are skipped with a warning on the
// logger carried by ctx.
func ReadWorkbook(ctx context.Context, r io.Reader) ([]Building, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q is empty", ErrInvalidBuilding, sheet)
	}

	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range Columns()[:5] {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrInvalidBuilding, col)
		}
	}

	cell := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var buildings []Building
	for n, row := range rows[1:] {
		if isBlank(row) {
			continue
		}

		isZEB, _ := strconv.ParseBool(strings.TrimSpace(cell(row, ColumnIsZEB)))
		b, parseErr := ParseBuilding(
			cell(row, ColumnName),
			cell(row, ColumnBuiltYear),
			cell(row, ColumnInitialLife),
			cell(row, ColumnRepairCycle),
			cell(row, ColumnExtension),
			isZEB,
		)
		if parseErr != nil {
			logging.FromContext(ctx).Warn().Ctx(ctx).
				Str("component", "renovation").
				Str("sheet", sheet).
				Int("row", n+2).
				Err(parseErr).
				Msg("skipping malformed portfolio row")
			continue
		}
		buildings = append(buildings, b)
	}
	return buildings, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
