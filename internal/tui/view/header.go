package view

import (
	"time"

	"github.com/javiermolinar/agenda/internal/dateutil"
)

// HeaderLabels builds column labels ("Seg 03/02") and marks today's column.
func HeaderLabels(days []time.Time, today time.Time) ([]string, map[int]bool) {
	labels := make([]string, 0, len(days))
	todayCols := make(map[int]bool)

	for i, d := range days {
		label := ShortWeekday(d.Weekday()) + " " + dateutil.DayMonth(d)
		if sameDay(d, today) {
			label = "*" + label + "*"
			todayCols[i] = true
		}
		labels = append(labels, label)
	}

	return labels, todayCols
}

// ShortWeekday returns the three letter weekday label ("Seg", "Sáb").
func ShortWeekday(wd time.Weekday) string {
	r := []rune(dateutil.WeekdayLabel(wd))
	if len(r) > 3 {
		r = r[:3]
	}
	return string(r)
}

func sameDay(a, b time.Time) bool {
	ya, ma, da := a.Date()
	yb, mb, db := b.Date()
	return ya == yb && ma == mb && da == db
}
