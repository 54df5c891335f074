package report

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"
)

// Excel limits sheet names to 31 characters.
const maxSheetName = 31

const summarySheet = "Summary"

// renderXLSX writes l as a workbook: sections on a Summary sheet and one
// sheet per grid.
func renderXLSX(w io.Writer, l layout) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return fmt.Errorf("naming summary sheet: %w", err)
	}

	row := 1
	if err := setRow(f, summarySheet, row, []any{l.Title}); err != nil {
		return err
	}
	row += 2

	for _, s := range l.Sections {
		if err := setRow(f, summarySheet, row, []any{s.Title}); err != nil {
			return err
		}
		row++
		for _, kv := range s.Rows {
			if err := setRow(f, summarySheet, row, []any{kv[0], kv[1]}); err != nil {
				return err
			}
			row++
		}
		row++
	}
	if err := f.SetColWidth(summarySheet, "A", "B", 32); err != nil {
		return fmt.Errorf("sizing summary columns: %w", err)
	}

	for _, g := range l.Grids {
		name := g.Title
		if len(name) > maxSheetName {
			name = name[:maxSheetName]
		}
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %q: %w", name, err)
		}

		header := make([]any, len(g.Header))
		for i, h := range g.Header {
			header[i] = h
		}
		if err := setRow(f, name, 1, header); err != nil {
			return err
		}
		for i, r := range g.Rows {
			if err := setRow(f, name, i+2, xlsxCells(r)); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err = f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing %s!%s: %w", sheet, cell, err)
	}
	return nil
}

// xlsxCells converts non-finite floats to text, which spreadsheets cannot
// store as numbers.
func xlsxCells(row []any) []any {
	out := make([]any, len(row))
	for i, v := range row {
		if x, ok := v.(float64); ok && (math.IsInf(x, 0) || math.IsNaN(x)) {
			out[i] = cellText(x)
			continue
		}
		out[i] = v
	}
	return out
}
