package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rshade/zern/internal/greenops"
)

// tabwriterPadding is the minimum padding between table columns.
const tabwriterPadding = 2

// layout is the format-neutral shape of a document: a title, labelled
// key/value sections and tabular grids.
type layout struct {
	Title    string
	Sections []section
	Grids    []grid
}

type section struct {
	Title string
	Rows  [][2]string
}

// grid is a table. Cells hold string, int, float64 or bool values so
// spreadsheets keep them numeric.
type grid struct {
	Title  string
	Header []string
	Rows   [][]any
}

// cellText formats one grid cell for text and PDF output.
func cellText(v any) string {
	switch x := v.(type) {
	case nil:
		return "-"
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return greenops.FormatFloat(x, 2)
	case bool:
		return yesNo(x)
	default:
		return fmt.Sprint(x)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// renderTable writes l as aligned plain text.
func renderTable(w io.Writer, l layout) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)

	if _, err := fmt.Fprintf(tw, "%s\n%s\n", l.Title, strings.Repeat("=", len(l.Title))); err != nil {
		return fmt.Errorf("writing title: %w", err)
	}

	for _, s := range l.Sections {
		if _, err := fmt.Fprintf(tw, "\n%s\n", s.Title); err != nil {
			return fmt.Errorf("writing section: %w", err)
		}
		for _, row := range s.Rows {
			if _, err := fmt.Fprintf(tw, "  %s:\t%s\n", row[0], row[1]); err != nil {
				return fmt.Errorf("writing row: %w", err)
			}
		}
	}

	for _, g := range l.Grids {
		if _, err := fmt.Fprintf(tw, "\n%s\n", g.Title); err != nil {
			return fmt.Errorf("writing grid title: %w", err)
		}

		seps := make([]string, len(g.Header))
		for i, h := range g.Header {
			seps[i] = strings.Repeat("-", len(h))
		}
		if _, err := fmt.Fprintf(tw, "%s\n%s\n",
			strings.Join(g.Header, "\t"), strings.Join(seps, "\t")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}

		for _, row := range g.Rows {
			cells := make([]string, len(row))
			for i, c := range row {
				cells[i] = cellText(c)
			}
			if _, err := fmt.Fprintln(tw, strings.Join(cells, "\t")); err != nil {
				return fmt.Errorf("writing row: %w", err)
			}
		}
	}

	return tw.Flush()
}
