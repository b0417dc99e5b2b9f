package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

const defaultTermWidth = 80

// Output colours. Free times are what the user is looking for, so they get
// the strongest colour; anything that cannot be booked is faint.
var (
	colorFree   = color.New(color.FgGreen)
	colorMarked = color.New(color.FgCyan, color.Bold)
	colorClosed = color.New(color.FgRed, color.Faint)
	colorHeader = color.New(color.Bold)
	colorMuted  = color.New(color.FgWhite, color.Faint)
)

// termWidth reports the width of stdout, or defaultTermWidth when stdout is
// not a terminal.
func termWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultTermWidth
	}
	if width, _, err := term.GetSize(fd); err == nil && width > 0 {
		return width
	}
	return defaultTermWidth
}

// DisableColor turns off colour output for every command.
func DisableColor() { color.NoColor = true }

// EnableColor turns colour output back on.
func EnableColor() { color.NoColor = false }

func formatFree(s string) string   { return colorFree.Sprint(s) }
func formatMarked(s string) string { return colorMarked.Sprint(s) }
func formatClosed(s string) string { return colorClosed.Sprint(s) }
func formatHeader(s string) string { return colorHeader.Sprint(s) }
func formatMuted(s string) string  { return colorMuted.Sprint(s) }
