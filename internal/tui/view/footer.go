package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FooterViewState holds the strings needed to render the footer section.
type FooterViewState struct {
	InnerW     int
	FooterH    int
	PromptLine string
	StatusLine string
	HelpLine   string
	Bg         lipgloss.Color
}

// FooterHeight returns the lines the footer needs: status, help and the
// prompt when it is open.
func FooterHeight(prompting bool, helpLines int) int {
	h := 1 + max(helpLines, 1)
	if prompting {
		h++
	}
	return h
}

// RenderFooter renders prompt, status and help lines.
func RenderFooter(state FooterViewState) string {
	if state.FooterH <= 0 {
		return ""
	}

	lines := make([]string, 0, 3)
	if state.PromptLine != "" {
		lines = append(lines, state.PromptLine)
	}
	lines = append(lines, state.StatusLine, state.HelpLine)

	return Place(strings.Join(lines, "\n"), state.InnerW, state.FooterH, lipgloss.Bottom, state.Bg)
}
