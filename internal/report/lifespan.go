package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rshade/zern/internal/greenops"
	"github.com/rshade/zern/internal/lifespan"
	"github.com/rshade/zern/internal/materials"
)

// LifespanDocument is a lifespan estimate with its inputs.
type LifespanDocument struct {
	Input      lifespan.Input      `json:"input" yaml:"input"`
	Prediction lifespan.Prediction `json:"prediction" yaml:"prediction"`

	// InitialEmission is the whole-building emission estimate in kg CO2.
	InitialEmission int `json:"initial_emission_kg" yaml:"initial_emission_kg"`
}

// NewLifespanDocument runs the prediction for in and plan against table.
func NewLifespanDocument(in lifespan.Input, plan lifespan.RepairPlan, table *materials.Table) LifespanDocument {
	if table == nil {
		table = materials.Default()
	}
	return LifespanDocument{
		Input:           in,
		Prediction:      lifespan.Predict(in, plan),
		InitialEmission: table.InitialEmission(in.MaterialRatios),
	}
}

// ReadLifespanDocument decodes a lifespan document written as JSON or YAML.
func ReadLifespanDocument(r io.Reader) (LifespanDocument, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return LifespanDocument{}, fmt.Errorf("reading lifespan document: %w", err)
	}

	var doc LifespanDocument
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		err = json.Unmarshal(data, &doc)
	} else {
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return LifespanDocument{}, fmt.Errorf("decoding lifespan document: %w", err)
	}
	return doc, nil
}

// WriteLifespan renders doc in format to w.
func WriteLifespan(w io.Writer, format Format, doc LifespanDocument) error {
	return write(w, format, doc)
}

func (d LifespanDocument) layout() layout {
	in, p := d.Input, d.Prediction

	prediction := [][2]string{
		{"Remaining life", years(p.FinalLife)},
		{"Repair cycle", years(p.Repair.Cycle)},
		{"Repairs", strconv.Itoa(p.Repairs)},
		{"Extended life with repairs", years(p.ExtendedLife)},
		{"Recommended remodel in", years(p.RemodelAfter)},
		{"Initial emission", greenops.FormatKg(float64(d.InitialEmission))},
	}
	if text := greenops.Describe(float64(d.InitialEmission)); text != "" {
		prediction = append(prediction, [2]string{"Equivalency", text})
	}

	return layout{
		Title: "Building Lifespan Prediction",
		Sections: []section{
			{
				Title: "Building",
				Rows: [][2]string{
					{"Year built", strconv.Itoa(in.YearBuilt)},
					{"Evaluated in", strconv.Itoa(in.CurrentYear)},
					{"Usage", in.Usage.String()},
					{"Floors", strconv.Itoa(in.Floors)},
					{"Environment", in.Environment.String()},
					{"Materials", ratioList(in.MaterialRatios)},
					{"Inspection", inspectionText(in.Inspection)},
				},
			},
			{Title: "Prediction", Rows: prediction},
		},
		Grids: []grid{stageGrid(p.Stages())},
	}
}

func stageGrid(stages []lifespan.Stage) grid {
	g := grid{Title: "Stages", Header: []string{"Stage", "Years"}}
	for _, s := range stages {
		g.Rows = append(g.Rows, []any{s.Label, s.Years})
	}
	return g
}

func years(n int) string {
	if n == 1 {
		return "1 year"
	}
	return fmt.Sprintf("%d years", n)
}

// ratioList formats material ratios as "Reinforced Concrete 60%, Steel 40%".
func ratioList(ratios map[string]float64) string {
	if len(ratios) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(ratios))
	for _, name := range materials.SortedKeys(ratios) {
		parts = append(parts, name+" "+strconv.FormatFloat(ratios[name], 'f', -1, 64)+"%")
	}
	return strings.Join(parts, ", ")
}

func inspectionText(in lifespan.Inspection) string {
	var notes []string
	if in.RecentlyRepaired {
		notes = append(notes, "recently repaired")
	}
	if in.HasCracks {
		notes = append(notes, "cracks")
	}
	if in.HasLeakage {
		notes = append(notes, "leakage")
	}
	if in.HasCorrosion {
		notes = append(notes, "corrosion")
	}
	if len(notes) == 0 {
		return "no findings"
	}
	return strings.Join(notes, ", ")
}
