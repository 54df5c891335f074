package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/zern/internal/lifespan"
	"github.com/rshade/zern/internal/renovation"
)

func TestRenderStageChart(t *testing.T) {
	stages := []lifespan.Stage{
		{Label: "Base", Years: 40},
		{Label: "After Env", Years: 20},
		{Label: "Final", Years: 0},
	}

	out := RenderStageChart(stages, 10)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	assert.Len(t, lines, 4)
	assert.Contains(t, lines[0], "LIFESPAN STAGES")
	assert.Equal(t, 10, strings.Count(lines[1], barFull))
	assert.Equal(t, 5, strings.Count(lines[2], barFull))
	assert.Equal(t, 0, strings.Count(lines[3], barFull))
	assert.Equal(t, 10, strings.Count(lines[3], barEmpty))
	assert.Contains(t, lines[3], "0 yr")
}

func TestRenderStageChart_DefaultWidth(t *testing.T) {
	out := RenderStageChart([]lifespan.Stage{{Label: "Final", Years: 7}}, 0)
	assert.Equal(t, defaultChartWidth, strings.Count(out, barFull))
}

func TestRenderRenovationTimeline(t *testing.T) {
	b := renovation.NewBuilding("City Hall", 1998, 50, 10, 3, true)

	out := RenderRenovationTimeline(b, 0)
	assert.Contains(t, out, "City Hall")
	assert.Contains(t, out, "projected life 65 yr")
	assert.Contains(t, out, "renewal 2063")
	assert.Contains(t, out, "ZEB")
	assert.Equal(t, 65, strings.Count(out, barFull))

	scaled := RenderRenovationTimeline(b, 20)
	assert.Equal(t, 17, strings.Count(scaled, barFull))
}
