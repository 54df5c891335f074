package report

import (
	"fmt"
	"io"

	"github.com/phpdave11/gofpdf"
)

// A4 portrait content width in mm with the default 10 mm margins.
const pdfContentWidth = 190.0

// renderPDF writes l as an A4 PDF document.
func renderPDF(w io.Writer, l layout) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(l.Title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(l.Title))
	pdf.Ln(12)

	for _, s := range l.Sections {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, tr(s.Title))
		pdf.Ln(8)

		pdf.SetFont("Helvetica", "", 10)
		for _, row := range s.Rows {
			pdf.CellFormat(70, 6, tr(row[0]), "", 0, "L", false, 0, "")
			pdf.MultiCell(0, 6, tr(row[1]), "", "L", false)
		}
		pdf.Ln(4)
	}

	for _, g := range l.Grids {
		if len(g.Header) == 0 {
			continue
		}
		colWidth := pdfContentWidth / float64(len(g.Header))

		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, tr(g.Title))
		pdf.Ln(8)

		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for _, h := range g.Header {
			pdf.CellFormat(colWidth, 6, tr(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 9)
		for _, row := range g.Rows {
			for i := range g.Header {
				var v any
				if i < len(row) {
					v = row[i]
				}
				align := "R"
				if _, ok := v.(string); ok {
					align = "L"
				}
				pdf.CellFormat(colWidth, 6, tr(cellText(v)), "1", 0, align, false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(4)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}
