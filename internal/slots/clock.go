// Package slots computes the bookable start times of a single professional's day.
//
// Everything in this package is a pure function of its inputs: no I/O, no
// shared state, safe to call from many goroutines at once.
package slots

import (
	"fmt"
	"time"
)

// MinutesPerDay is the number of minutes in a wall-clock day.
const MinutesPerDay = 24 * 60

// ParseClock converts "HH:MM" (or "HH:MM:SS", as stored by some databases)
// to minutes since midnight. ok is false for anything else.
func ParseClock(s string) (minutes int, ok bool) {
	switch len(s) {
	case 5:
	case 8:
		if s[5] != ':' {
			return 0, false
		}
		s = s[:5]
	default:
		return 0, false
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// FormatClock converts minutes since midnight to "HH:MM".
// Values outside a day are clamped.
func FormatClock(m int) string {
	if m < 0 {
		m = 0
	}
	if m >= MinutesPerDay {
		m = MinutesPerDay - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ValidClock reports whether s is a well-formed "HH:MM" time.
func ValidClock(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, ok := ParseClock(s)
	return ok
}
