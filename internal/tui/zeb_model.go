package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/zern/internal/greenops"
	"github.com/rshade/zern/internal/report"
)

// Tab is one page of the ZEB result viewer.
type Tab int

const (
	// TabCarbon shows embedded, operating and total carbon.
	TabCarbon Tab = iota
	// TabEnergy shows the sized installation.
	TabEnergy
	// TabBuilding shows the building and its offset timeline.
	TabBuilding
	// TabComparison shows the plan under every energy source.
	TabComparison

	tabCount
)

// String returns the tab title.
func (t Tab) String() string {
	switch t {
	case TabCarbon:
		return "Carbon"
	case TabEnergy:
		return "Energy"
	case TabBuilding:
		return "Building"
	case TabComparison:
		return "Comparison"
	case tabCount:
	}
	return fmt.Sprintf("Tab(%d)", int(t))
}

const (
	zebDefaultWidth  = 80
	zebDefaultHeight = 24

	// Rows taken by the tab bar, the summary line and help.
	zebChromeRows  = 10
	zebMinTableRow = 5
)

// ZEBModel is the Bubble Tea model for browsing a carbon offset plan.
type ZEBModel struct {
	doc report.ZEBDocument

	active     Tab
	timeline   table.Model
	comparison table.Model
	quitting   bool

	width  int
	height int
}

// NewZEBModel builds a viewer over doc, opened on the Carbon tab.
func NewZEBModel(doc report.ZEBDocument) *ZEBModel {
	m := &ZEBModel{
		doc:    doc,
		active: TabCarbon,
		width:  zebDefaultWidth,
		height: zebDefaultHeight,
	}
	m.timeline = newTable(timelineColumns(), m.timelineRows(), m.tableHeight())
	m.comparison = newTable(comparisonColumns(), m.comparisonRows(), m.tableHeight())
	return m
}

// RunZEB runs the viewer until the user quits or ctx is cancelled.
func RunZEB(ctx context.Context, doc report.ZEBDocument, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(NewZEBModel(doc),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running ZEB viewer: %w", err)
	}
	return nil
}

// Active returns the tab being shown.
func (m *ZEBModel) Active() Tab {
	return m.active
}

// Init initializes the model.
func (m *ZEBModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m *ZEBModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.timeline.SetHeight(m.tableHeight())
		m.comparison.SetHeight(m.tableHeight())
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

//nolint:exhaustive // Only tab navigation and quit keys are handled here.
func (m *ZEBModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyRight, tea.KeyTab:
		m.active = (m.active + 1) % tabCount
		return m, nil

	case tea.KeyLeft, tea.KeyShiftTab:
		m.active = (m.active + tabCount - 1) % tabCount
		return m, nil

	case tea.KeyRunes:
		key := string(msg.Runes)
		if key == "q" {
			m.quitting = true
			return m, tea.Quit
		}
		if len(key) == 1 && key[0] >= '1' && key[0] < '1'+byte(tabCount) {
			m.active = Tab(key[0] - '1')
			return m, nil
		}
	}

	// Remaining keys scroll the table on the active tab.
	var cmd tea.Cmd
	switch m.active {
	case TabBuilding:
		m.timeline, cmd = m.timeline.Update(msg)
	case TabComparison:
		m.comparison, cmd = m.comparison.Update(msg)
	case TabCarbon, TabEnergy, tabCount:
	}
	return m, cmd
}

// View renders the current view.
func (m *ZEBModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch m.active {
	case TabCarbon:
		b.WriteString(m.renderCarbon())
	case TabEnergy:
		b.WriteString(m.renderEnergy())
	case TabBuilding:
		b.WriteString(m.renderBuilding())
	case TabComparison:
		b.WriteString(m.renderComparison())
	case tabCount:
	}

	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render("←/→ or 1-4: switch tab • ↑/↓: scroll • q: quit"))
	return b.String()
}

func (m *ZEBModel) renderTabs() string {
	tabs := make([]string, 0, tabCount)
	for t := range tabCount {
		label := fmt.Sprintf("%d %s", int(t)+1, t)
		if t == m.active {
			tabs = append(tabs, ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, TabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *ZEBModel) renderCarbon() string {
	r := m.doc.Result
	rows := [][2]string{
		{"Embedded carbon", greenops.FormatKg(r.EmbeddedCarbon)},
		{"Operating carbon / year", greenops.FormatKg(r.OperatingCarbonPerYear)},
		{"Total carbon", greenops.FormatKg(r.TotalCarbon)},
	}

	out := renderPairs(rows)
	if eq := m.doc.Equivalencies; !eq.Empty && eq.DisplayText != "" {
		out += "\n" + SubtleStyle.Render(eq.DisplayText) + "\n"
	}
	return BoxStyle.Render(strings.TrimRight(out, "\n")) + "\n"
}

func (m *ZEBModel) renderEnergy() string {
	in, r := m.doc.Input, m.doc.Result
	rows := [][2]string{
		{"Energy source", in.EnergySource.String()},
		{"Annual offset target", greenops.FormatKg(r.AnnualOffsetTarget)},
		{"Annual energy needed", greenops.FormatFloat(r.AnnualEnergyNeeded, 0) + " kWh"},
		{"Required capacity", greenops.FormatFloat(r.RequiredCapacityKW, 2) + " kW"},
		{"Installation area", greenops.FormatFloat(r.RequiredAreaM2, 2) + " m2"},
		{"Annual offset", greenops.FormatKg(r.AnnualOffset)},
	}
	return BoxStyle.Render(strings.TrimRight(renderPairs(rows), "\n")) + "\n"
}

func (m *ZEBModel) renderBuilding() string {
	in, r := m.doc.Input, m.doc.Result

	zeb := WarnStyle.Render("not reached")
	if r.IsZEB {
		zeb = OKStyle.Render("reached")
	}

	header := fmt.Sprintf("%s %s   %s %s   %s %s   %s %s\n",
		LabelStyle.Render("Life span:"), ValueStyle.Render(fmt.Sprintf("%d yr", in.LifeSpanYears)),
		LabelStyle.Render("Offset period:"), ValueStyle.Render(fmt.Sprintf("%d yr", in.OffsetPeriodYears)),
		LabelStyle.Render("Completion:"), ValueStyle.Render(report.CompletionText(r)),
		LabelStyle.Render("ZEB:"), zeb,
	)
	return header + "\n" + m.timeline.View() + "\n"
}

func (m *ZEBModel) renderComparison() string {
	if len(m.doc.Comparisons) == 0 {
		return SubtleStyle.Render("No comparison computed. Rerun with --compare.") + "\n"
	}
	return m.comparison.View() + "\n"
}

func renderPairs(rows [][2]string) string {
	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r[0]))
	}

	var b strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&b, "%s  %s\n",
			LabelStyle.Render(fmt.Sprintf("%-*s", width, r[0])),
			ValueStyle.Render(r[1]))
	}
	return b.String()
}

func (m *ZEBModel) tableHeight() int {
	return max(m.height-zebChromeRows, zebMinTableRow)
}

func newTable(cols []table.Column, rows []table.Row, height int) table.Model {
	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)
	return t
}

func timelineColumns() []table.Column {
	return []table.Column{
		{Title: "Year", Width: 6},
		{Title: "Cumulative offset", Width: 20},
		{Title: "Covered", Width: 8},
	}
}

func (m *ZEBModel) timelineRows() []table.Row {
	r := m.doc.Result
	rows := make([]table.Row, 0, len(r.OffsetTimeline))
	for _, pt := range r.OffsetTimeline {
		covered := "-"
		if pt.Cumulative >= r.TotalCarbon {
			covered = "yes"
		}
		rows = append(rows, table.Row{fmt.Sprint(pt.Year), greenops.FormatKg(pt.Cumulative), covered})
	}
	return rows
}

func comparisonColumns() []table.Column {
	return []table.Column{
		{Title: "Source", Width: 12},
		{Title: "Capacity (kW)", Width: 14},
		{Title: "Area (m2)", Width: 12},
		{Title: "Completion", Width: 22},
		{Title: "ZEB", Width: 5},
	}
}

func (m *ZEBModel) comparisonRows() []table.Row {
	if len(m.doc.Comparisons) == 0 {
		return nil
	}

	row := func(name string, capacity, area float64, completion string, isZEB bool) table.Row {
		z := "no"
		if isZEB {
			z = "yes"
		}
		return table.Row{
			name,
			greenops.FormatFloat(capacity, 2),
			greenops.FormatFloat(area, 2),
			completion,
			z,
		}
	}

	in, r := m.doc.Input, m.doc.Result
	rows := []table.Row{row(in.EnergySource.String()+" *", r.RequiredCapacityKW, r.RequiredAreaM2,
		report.CompletionText(r), r.IsZEB)}
	for _, c := range m.doc.Comparisons {
		rows = append(rows, row(c.Source.String(), c.Result.RequiredCapacityKW, c.Result.RequiredAreaM2,
			report.CompletionText(c.Result), c.Result.IsZEB))
	}
	return rows
}
