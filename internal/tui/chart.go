package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/zern/internal/lifespan"
	"github.com/rshade/zern/internal/renovation"
)

const (
	defaultChartWidth = 40
	stageLabelWidth   = 18
)

// RenderStageChart draws one horizontal bar per estimate stage, scaled to
// the largest stage. width is the bar length of the largest stage.
func RenderStageChart(stages []lifespan.Stage, width int) string {
	if width <= 0 {
		width = defaultChartWidth
	}

	longest := 0
	for _, s := range stages {
		longest = max(longest, s.Years)
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("LIFESPAN STAGES"))
	b.WriteString("\n")

	for i, s := range stages {
		n := 0
		if longest > 0 && s.Years > 0 {
			n = max(s.Years*width/longest, 1)
		}

		color := ColorHeader
		if i == len(stages)-1 {
			color = ColorOK
		}
		bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat(barFull, n))
		pad := LabelStyle.Render(strings.Repeat(barEmpty, width-n))

		fmt.Fprintf(&b, "%s %s%s %s\n",
			LabelStyle.Render(fmt.Sprintf("%-*s", stageLabelWidth, s.Label)),
			bar, pad,
			ValueStyle.Render(fmt.Sprintf("%d yr", s.Years)))
	}
	return b.String()
}

// RenderRenovationTimeline draws a building's projected life as one cell
// per year: repair years in the warning color, other years green for ZEB
// buildings and muted otherwise. Lives longer than width are scaled down.
func RenderRenovationTimeline(b renovation.Building, width int) string {
	if width <= 0 {
		width = defaultChartWidth * 2
	}

	marks := b.Timeline()
	step := 1
	if len(marks) > width {
		step = (len(marks) + width - 1) / width
	}

	base := ColorMuted
	if b.IsZEB {
		base = ColorOK
	}

	var cells strings.Builder
	for i := 0; i < len(marks); i += step {
		repair := false
		for _, m := range marks[i:min(i+step, len(marks))] {
			repair = repair || m.Repair
		}
		color := base
		if repair {
			color = ColorWarning
		}
		cells.WriteString(lipgloss.NewStyle().Foreground(color).Render(barFull))
	}

	zebText := WarnStyle.Render("not ZEB")
	if b.IsZEB {
		zebText = OKStyle.Render("ZEB")
	}

	return fmt.Sprintf("%s\n%s\n%s\n",
		HeaderStyle.Render(b.Name),
		cells.String(),
		LabelStyle.Render(fmt.Sprintf("built %d  projected life %d yr  renewal %d  ",
			b.BuiltYear, b.ProjectedLife(), b.RenewalYear()))+zebText)
}
