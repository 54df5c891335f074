// Package tui holds the Bubble Tea result viewer and the lipgloss charts
// printed by the CLI.
package tui

import "github.com/charmbracelet/lipgloss"

// Palette.
const (
	ColorHeader    = lipgloss.Color("39")
	ColorLabel     = lipgloss.Color("245")
	ColorValue     = lipgloss.Color("255")
	ColorMuted     = lipgloss.Color("240")
	ColorOK        = lipgloss.Color("42")
	ColorWarning   = lipgloss.Color("214")
	ColorCritical  = lipgloss.Color("196")
	ColorHighlight = lipgloss.Color("57")
	ColorBorder    = lipgloss.Color("62")
)

// Styles shared by the viewer and the charts.
//
//nolint:gochecknoglobals // Immutable lipgloss styles.
var (
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)
	LabelStyle  = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorValue)
	SubtleStyle = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
	OKStyle     = lipgloss.NewStyle().Bold(true).Foreground(ColorOK)
	WarnStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorWarning)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	TabStyle       = lipgloss.NewStyle().Foreground(ColorLabel).Padding(0, 2)
	ActiveTabStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorValue).Background(ColorHighlight).Padding(0, 2)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorHeader).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(ColorBorder)
	TableSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorValue).Background(ColorHighlight)
)

// Bar glyphs for the charts.
const (
	barFull  = "█"
	barEmpty = "░"
)
