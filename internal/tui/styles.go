package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/agenda/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	colorBg          lipgloss.Color
	colorBgSelection lipgloss.Color

	TitleStyle lipgloss.Style

	DayHeaderStyle         lipgloss.Style
	DayHeaderTodayStyle    lipgloss.Style
	DayHeaderSelectedStyle lipgloss.Style

	FreeStyle   lipgloss.Style
	MarkedStyle lipgloss.Style
	DoneStyle   lipgloss.Style
	ClosedStyle lipgloss.Style
	EmptyStyle  lipgloss.Style
	BorderStyle lipgloss.Style
	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style
	PromptStyle lipgloss.Style

	HelpKeyStyle  lipgloss.Style
	HelpDescStyle lipgloss.Style

	AppStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)

	base := lipgloss.NewStyle().Background(p.Bg).Foreground(p.Fg)
	cell := base.Padding(0, 1)

	return &Styles{
		colorBg:          p.Bg,
		colorBgSelection: p.BgSelection,

		TitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.TextOnAccent).
			Background(p.Accent).
			Padding(0, 1),

		DayHeaderStyle:         cell.Bold(true).Foreground(p.Accent),
		DayHeaderTodayStyle:    cell.Bold(true).Underline(true).Foreground(p.Accent),
		DayHeaderSelectedStyle: cell.Bold(true).Foreground(p.Accent).Background(p.BgSelection),

		FreeStyle:   cell.Foreground(p.Free),
		MarkedStyle: cell.Foreground(p.TextOnMarked).Background(p.MarkedBg),
		DoneStyle:   cell.Foreground(p.Done).Background(p.DoneBg),
		ClosedStyle: cell.Italic(true).Foreground(p.Closed),
		EmptyStyle:  cell,
		BorderStyle: base.Foreground(p.FgMuted),
		StatusStyle: base.Foreground(p.FgMuted),
		ErrorStyle:  base.Foreground(p.Closed).Bold(true),
		PromptStyle: base.Foreground(p.Accent),

		HelpKeyStyle:  lipgloss.NewStyle().Foreground(p.Accent),
		HelpDescStyle: lipgloss.NewStyle().Foreground(p.FgMuted),

		AppStyle: base,
	}
}

// selected returns s with the selection background applied.
func (s *Styles) selected(style lipgloss.Style) lipgloss.Style {
	return style.Background(s.colorBgSelection)
}
