package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/agenda/internal/agenda"
	"github.com/javiermolinar/agenda/internal/availability"
	"github.com/javiermolinar/agenda/internal/dateutil"
	"github.com/javiermolinar/agenda/internal/tui/view"
)

const (
	closedLabel = "fechado"
	noTimeLabel = "sem horários"
	minCellW    = 5
)

// View renders the week view.
func (m Model) View() string {
	state := view.ViewState{
		Width:            m.width,
		Height:           m.height,
		EmptyPlaceholder: "Loading...",
	}
	if m.width > 0 && m.height > 0 {
		state.Content = m.renderAppContent()
	}
	return view.Render(state)
}

func (m Model) renderAppContent() string {
	helpLine := m.help.View(m.keys)
	footerH := view.FooterHeight(m.prompting, lipgloss.Height(helpLine))
	gridH := m.height - 1 - footerH
	if gridH < 4 {
		return "Terminal too small"
	}

	title := m.renderTitle()
	grid := m.renderGrid(gridH)
	footer := view.RenderFooter(view.FooterViewState{
		InnerW:     m.width,
		FooterH:    footerH,
		PromptLine: m.promptLine(),
		StatusLine: m.statusLine(),
		HelpLine:   helpLine,
		Bg:         m.styles.colorBg,
	})

	content := lipgloss.JoinVertical(lipgloss.Left, title, grid, footer)
	return view.Fill(m.styles.AppStyle.Render(content), m.width, m.height, m.styles.colorBg)
}

func (m Model) renderTitle() string {
	title := m.styles.TitleStyle.Render("Agenda")
	if m.week == nil {
		return title
	}
	sub := fmt.Sprintf(" Semana %s - %s · %s", dateutil.DayMonth(m.week.Start), dateutil.DayMonth(m.week.End), m.duration)
	if m.loading {
		sub += " · carregando..."
	}
	return title + m.styles.StatusStyle.Render(sub)
}

func (m Model) renderGrid(gridH int) string {
	if m.week == nil {
		return view.Place(m.styles.StatusStyle.Render("Loading..."), m.width, gridH, lipgloss.Center, m.styles.colorBg)
	}

	days := m.week.Days
	dates := make([]time.Time, len(days))
	for i, d := range days {
		dates[i] = d.Date
	}
	labels, todayCols := view.HeaderLabels(dates, m.now())

	cellW := m.cellWidth(len(days))
	columns := make([]view.Column, len(days))
	for i, d := range days {
		col := view.Column{
			Header:      labels[i],
			HeaderStyle: m.styles.DayHeaderStyle,
			Cells:       m.dayCells(d, cellW),
			Filler:      m.styles.EmptyStyle,
		}
		if todayCols[i] {
			col.HeaderStyle = m.styles.DayHeaderTodayStyle
		}
		if i == m.selected {
			col.HeaderStyle = m.styles.DayHeaderSelectedStyle
			for j := range col.Cells {
				col.Cells[j].Style = m.styles.selected(col.Cells[j].Style)
			}
			col.Filler = m.styles.selected(col.Filler)
		}
		columns[i] = col
	}

	return view.RenderGrid(view.GridViewState{
		Width:       m.width,
		Height:      gridH,
		Columns:     columns,
		BorderStyle: m.styles.BorderStyle,
		Bg:          m.styles.colorBg,
	})
}

// cellWidth is the text width available in each of n columns.
func (m Model) cellWidth(n int) int {
	if n == 0 {
		return minCellW
	}
	// Borders take n+1 cells and padding two per column.
	return max((m.width-(n+1))/n-2, minCellW)
}

// dayCells lists a day's marked and free times, or a closed marker.
func (m Model) dayCells(d *availability.DayView, width int) []view.Cell {
	if d.Closed {
		return []view.Cell{{Text: view.Truncate(closedLabel, width), Style: m.styles.ClosedStyle}}
	}
	entries := availability.Entries(d)
	if len(entries) == 0 {
		return []view.Cell{{Text: view.Truncate(noTimeLabel, width), Style: m.styles.StatusStyle}}
	}

	cells := make([]view.Cell, 0, len(entries))
	for _, e := range entries {
		if e.Free() {
			cells = append(cells, view.Cell{Text: e.Time, Style: m.styles.FreeStyle})
			continue
		}
		style := m.styles.MarkedStyle
		if e.Session.Status == agenda.StatusDone {
			style = m.styles.DoneStyle
		}
		cells = append(cells, view.Cell{Text: view.Truncate(sessionCell(e.Session), width), Style: style})
	}
	return cells
}

// sessionCell renders "HH:MM Client", with a check mark once done.
func sessionCell(s *agenda.Session) string {
	name := s.ClientName
	if name == "" {
		name = "Cliente?"
	}
	text := s.Time + " " + name
	if s.Status == agenda.StatusDone {
		text += " ✓"
	}
	return text
}

func (m Model) promptLine() string {
	if !m.prompting {
		return ""
	}
	return m.prompt.View()
}

func (m Model) statusLine() string {
	if m.statusMsg == "" {
		return ""
	}
	if m.statusErr {
		return m.styles.ErrorStyle.Render("Error: " + m.statusMsg)
	}
	return m.styles.StatusStyle.Render(m.statusMsg)
}
