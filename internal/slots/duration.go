package slots

import (
	"regexp"
	"strconv"
)

// DefaultDurationMinutes is used for empty or unrecognized duration codes.
const DefaultDurationMinutes = 60

// DurationCodes lists the standard duration codes offered to operators.
var DurationCodes = []string{"30min", "1h", "1h30", "2h"}

var knownDurations = map[string]int{
	"30min": 30,
	"1h":    60,
	"1h30":  90,
	"2h":    120,
}

var durationPattern = regexp.MustCompile(`(\d+)h(\d+)?`)

// DurationMinutes maps a duration code ("30min", "1h", "1h30", "2h" or any
// "<N>h<M>") to minutes. Unrecognized codes, and codes longer than a day,
// yield DefaultDurationMinutes.
func DurationMinutes(code string) int {
	if m, ok := parseDuration(code); ok {
		return m
	}
	return DefaultDurationMinutes
}

// ValidDurationCode reports whether code is a known code or matches the
// "<N>h<M>" pattern with a result between one minute and a whole day.
func ValidDurationCode(code string) bool {
	_, ok := parseDuration(code)
	return ok
}

func parseDuration(code string) (int, bool) {
	if m, ok := knownDurations[code]; ok {
		return m, true
	}
	match := durationPattern.FindStringSubmatch(code)
	if match == nil {
		return 0, false
	}
	h, err := strconv.Atoi(match[1])
	if err != nil || h > MinutesPerDay/60 {
		return 0, false
	}
	m := 0
	if match[2] != "" {
		if m, err = strconv.Atoi(match[2]); err != nil || m > MinutesPerDay {
			return 0, false
		}
	}
	total := h*60 + m
	if total <= 0 || total > MinutesPerDay {
		return 0, false
	}
	return total, true
}
