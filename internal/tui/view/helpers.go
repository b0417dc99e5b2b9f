package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Place positions content in a w x h box, left aligned, and fills the
// remaining cells with bg.
func Place(content string, w, h int, vAlign lipgloss.Position, bg lipgloss.Color) string {
	placed := lipgloss.Place(w, h, lipgloss.Left, vAlign, content,
		lipgloss.WithWhitespaceBackground(bg))
	return Fill(placed, w, h, bg)
}

// Fill forces content to exactly width x height cells. Long lines are cut,
// short ones padded with bg, missing lines added and extra lines dropped.
func Fill(content string, width, height int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return content
	}
	pad := lipgloss.NewStyle().Background(bg)
	src := strings.Split(content, "\n")
	out := make([]string, height)
	for i := range out {
		var line string
		if i < len(src) {
			line = src[i]
		}
		switch w := lipgloss.Width(line); {
		case w > width:
			out[i] = ansi.Truncate(line, width, "")
		case w < width:
			out[i] = line + pad.Render(strings.Repeat(" ", width-w))
		default:
			out[i] = line
		}
	}
	return strings.Join(out, "\n")
}

// Truncate cuts s to width cells, ending with an ellipsis when shortened.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
