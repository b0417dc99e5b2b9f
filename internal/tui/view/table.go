package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Cell is one styled line of a day column.
type Cell struct {
	Text  string
	Style lipgloss.Style
}

// Column is a day of the week grid. Columns may differ in length; the
// shorter ones are padded with empty cells in Filler style.
type Column struct {
	Header      string
	HeaderStyle lipgloss.Style
	Cells       []Cell
	Filler      lipgloss.Style
}

// GridViewState holds the columns and frame of the week grid.
type GridViewState struct {
	Width       int
	Height      int
	Columns     []Column
	BorderStyle lipgloss.Style
	Bg          lipgloss.Color
}

// rows transposes the columns into table rows and their cell styles.
func (s GridViewState) rows() ([][]string, [][]lipgloss.Style) {
	n := 0
	for _, c := range s.Columns {
		n = max(n, len(c.Cells))
	}
	rows := make([][]string, n)
	styles := make([][]lipgloss.Style, n)
	for r := 0; r < n; r++ {
		rows[r] = make([]string, len(s.Columns))
		styles[r] = make([]lipgloss.Style, len(s.Columns))
		for c, col := range s.Columns {
			if r < len(col.Cells) {
				rows[r][c] = col.Cells[r].Text
				styles[r][c] = col.Cells[r].Style
				continue
			}
			styles[r][c] = col.Filler
		}
	}
	return rows, styles
}

// RenderGrid draws the columns side by side in a rounded lipgloss table,
// top aligned in a Width x Height box.
func RenderGrid(state GridViewState) string {
	if state.Height <= 0 {
		return ""
	}

	headers := make([]string, len(state.Columns))
	for i, c := range state.Columns {
		headers[i] = c.Header
	}
	rows, styles := state.rows()

	t := table.New().
		Headers(headers...).
		Width(max(state.Width, 0)).
		Height(state.Height).
		Border(lipgloss.RoundedBorder()).
		BorderColumn(true).
		BorderRow(false).
		BorderStyle(state.BorderStyle).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col < 0 || col >= len(state.Columns) {
				return lipgloss.NewStyle()
			}
			if row == table.HeaderRow {
				return state.Columns[col].HeaderStyle
			}
			if row < 0 || row >= len(styles) {
				return state.Columns[col].Filler
			}
			return styles[row][col]
		})

	return Place(t.Render(), state.Width, state.Height, lipgloss.Top, state.Bg)
}
