// Package report renders calculation results as text tables, JSON, YAML,
// PDF documents and Excel workbooks.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type constError string

func (e constError) Error() string { return string(e) }

// ErrUnknownFormat is returned for an output format that is not supported.
const ErrUnknownFormat constError = "unknown output format"

// Format is an output format.
type Format string

// Supported formats.
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatPDF   Format = "pdf"
	FormatXLSX  Format = "xlsx"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatTable, FormatJSON, FormatYAML, FormatPDF, FormatXLSX}
}

// ParseFormat maps a case-insensitive name to a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q (want one of table, json, yaml, pdf, xlsx)", ErrUnknownFormat, s)
}

// Binary reports whether the format produces a binary document that should
// be written to a file rather than a terminal.
func (f Format) Binary() bool {
	return f == FormatPDF || f == FormatXLSX
}

// Extension returns the conventional file extension, with the dot.
func (f Format) Extension() string {
	switch f {
	case FormatTable:
		return ".txt"
	case FormatJSON:
		return ".json"
	case FormatYAML:
		return ".yaml"
	case FormatPDF:
		return ".pdf"
	case FormatXLSX:
		return ".xlsx"
	default:
		return ""
	}
}

// FormatForPath returns the format whose extension matches path. ".yml" is
// read as YAML.
func FormatForPath(path string) (Format, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return "", false
	}
	if ext == ".yml" {
		return FormatYAML, true
	}
	for _, f := range Formats() {
		if f.Extension() == ext {
			return f, true
		}
	}
	return "", false
}

// document is anything the package can render.
type document interface {
	layout() layout
}

// write renders doc in format to w.
func write(w io.Writer, format Format, doc document) error {
	switch format {
	case FormatTable:
		return renderTable(w, doc.layout())
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case FormatPDF:
		return renderPDF(w, doc.layout())
	case FormatXLSX:
		return renderXLSX(w, doc.layout())
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}
}
