package report

import (
	"io"

	"github.com/rshade/zern/internal/materials"
)

// MaterialsDocument is a material emission table.
type MaterialsDocument struct {
	Version   string                       `json:"version" yaml:"version"`
	Materials map[string]materials.Factors `json:"materials" yaml:"materials"`
}

// NewMaterialsDocument snapshots t.
func NewMaterialsDocument(t *materials.Table) MaterialsDocument {
	return MaterialsDocument{Version: t.Version(), Materials: t.Entries()}
}

// WriteMaterials renders doc in format to w.
func WriteMaterials(w io.Writer, format Format, doc MaterialsDocument) error {
	return write(w, format, doc)
}

func (d MaterialsDocument) layout() layout {
	g := grid{
		Title:  "Materials",
		Header: []string{"Material", "Unit emission (kg CO2)", "Carbon per area (kg CO2/m2)"},
	}
	for _, name := range materials.SortedKeys(d.Materials) {
		f := d.Materials[name]
		g.Rows = append(g.Rows, []any{name, f.UnitEmission, f.UnitCarbonPerArea})
	}

	return layout{
		Title:    "Material Emission Table",
		Sections: []section{{Title: "Table", Rows: [][2]string{{"Version", d.Version}}}},
		Grids:    []grid{g},
	}
}
