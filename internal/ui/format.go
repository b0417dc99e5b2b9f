package ui

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/javiermolinar/agenda/internal/agenda"
	"github.com/javiermolinar/agenda/internal/availability"
)

// closedLabel marks a day with no bookable time.
const closedLabel = "fechado"

// FormatDuration formats minutes as a human-readable duration.
func FormatDuration(minutes int) string {
	if minutes == 0 {
		return "0m"
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%dm", hours, mins)
}

func statusSymbol(s agenda.Status) string {
	switch {
	case s == agenda.StatusScheduled:
		return "○"
	case s == agenda.StatusConfirmed:
		return "●"
	case s == agenda.StatusDone:
		return "✓"
	case s.IsCancelled():
		return "✗"
	default:
		return "?"
	}
}

// truncate shortens s to at most width runes, marking the cut with "…".
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	r := []rune(s)
	return string(r[:width-1]) + "…"
}

// pad right-pads s with spaces to width runes.
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// printDay prints one day's marked sessions and free times in time order.
func printDay(w io.Writer, v *availability.DayView) {
	header := availability.DayLabel(v)
	if v.Closed {
		fmt.Fprintf(w, "  %s  %s\n", formatHeader(header), formatClosed(closedLabel))
		return
	}
	fmt.Fprintf(w, "  %s  %s\n", formatHeader(header),
		formatMuted(fmt.Sprintf("%s-%s · %s", v.DayStart, v.DayEnd, v.Duration)))

	entries := availability.Entries(v)
	if len(entries) == 0 {
		fmt.Fprintf(w, "    %s\n", formatMuted("no free time"))
		return
	}
	for _, e := range entries {
		if e.Free() {
			fmt.Fprintf(w, "    %s\n", formatFree(e.Time))
			continue
		}
		fmt.Fprintf(w, "    %s %s\n", statusSymbol(e.Session.Status), formatMarked(availability.SessionLine(e.Session)))
	}
}

// printWeekGrid prints the week as side-by-side day columns sized to width.
func printWeekGrid(w io.Writer, week *availability.WeekView, width int) {
	if len(week.Days) == 0 {
		return
	}
	colWidth := min(max(width/len(week.Days)-1, 6), 18)

	columns := make([][]availability.Entry, len(week.Days))
	rows := 0
	for i, v := range week.Days {
		columns[i] = availability.Entries(v)
		rows = max(rows, len(columns[i]))
	}

	var b strings.Builder
	for _, v := range week.Days {
		b.WriteString(formatHeader(pad(truncate(availability.DayLabel(v), colWidth), colWidth)))
		b.WriteByte(' ')
	}
	fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	fmt.Fprintln(w, strings.Repeat("─", min(width, (colWidth+1)*len(week.Days))))

	for r := 0; r < max(rows, 1); r++ {
		b.Reset()
		for i, v := range week.Days {
			b.WriteString(gridCell(v, columns[i], r, colWidth))
			b.WriteByte(' ')
		}
		fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	}
}

func gridCell(v *availability.DayView, entries []availability.Entry, row, width int) string {
	if v.Closed {
		if row == 0 {
			return formatClosed(pad(closedLabel, width))
		}
		return pad("", width)
	}
	if row >= len(entries) {
		return pad("", width)
	}
	e := entries[row]
	if e.Free() {
		return formatFree(pad(e.Time, width))
	}
	return formatMarked(pad(truncate(e.Time+" "+e.Session.ClientName, width), width))
}
