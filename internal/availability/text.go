package availability

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/javiermolinar/agenda/internal/agenda"
	"github.com/javiermolinar/agenda/internal/dateutil"
	"github.com/javiermolinar/agenda/internal/slots"
)

// ExportHeader opens the shareable week message.
const ExportHeader = "Horários da semana:"

// Entry is one row of a day column: a marked session or a free time.
type Entry struct {
	Time    string
	Session *agenda.Session // nil for free times
}

// Free reports whether the entry is an open time.
func (e Entry) Free() bool {
	return e.Session == nil
}

// Entries merges the day's marked sessions with its free times, ordered by
// time. A free time equal to a marked session's start is not repeated.
func Entries(v *DayView) []Entry {
	out := make([]Entry, 0, len(v.Marked)+len(v.Free))
	taken := make(map[string]bool, len(v.Marked))
	for _, s := range v.Marked {
		out = append(out, Entry{Time: s.Time, Session: s})
		taken[s.Time] = true
	}
	for _, t := range v.Free {
		if !taken[t] {
			out = append(out, Entry{Time: t})
		}
	}
	slices.SortStableFunc(out, func(a, b Entry) int {
		am, _ := slots.ParseClock(a.Time)
		bm, _ := slots.ParseClock(b.Time)
		return cmp.Compare(am, bm)
	})
	return out
}

// Times returns the sorted, duplicate-free union of marked and free times.
func Times(v *DayView) []string {
	var out []string
	for _, e := range Entries(v) {
		out = append(out, e.Time)
	}
	return slices.Compact(out)
}

// SessionLine formats a marked session as "HH:MM Client 1h", with a check
// mark once the session is done.
func SessionLine(s *agenda.Session) string {
	name := s.ClientName
	if name == "" {
		name = "Cliente?"
	}
	line := fmt.Sprintf("%s %s", s.Time, name)
	if s.Duration != "" {
		line += " " + s.Duration
	}
	if s.Status == agenda.StatusDone {
		line += " ✅"
	}
	return line
}

// DayLabel returns "Segunda (03/02)".
func DayLabel(v *DayView) string {
	return fmt.Sprintf("%s (%s)", dateutil.WeekdayLabel(v.Date.Weekday()), dateutil.DayMonth(v.Date))
}

// ExportText renders the week as the message sent to clients. Days with
// nothing to show are left out.
func ExportText(w *WeekView) string {
	var b strings.Builder
	b.WriteString(ExportHeader)
	b.WriteString("\n\n")
	for _, v := range w.Days {
		entries := Entries(v)
		if len(entries) == 0 {
			continue
		}
		b.WriteString(DayLabel(v))
		b.WriteByte('\n')
		for _, e := range entries {
			if e.Free() {
				b.WriteString(e.Time)
			} else {
				b.WriteString(SessionLine(e.Session))
			}
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	return strings.TrimSpace(b.String())
}

// DayText lists the day's free times, one per line.
func DayText(v *DayView) string {
	return strings.Join(v.Free, "\n")
}
