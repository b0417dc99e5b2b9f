package slots

import (
	"slices"
	"time"
)

const dateLayout = "2006-01-02"

// Defaults for a working day, in minutes since midnight.
const (
	DefaultDayStart    = 8 * 60     // 08:00
	DefaultWeekdayEnd  = 20*60 + 10 // 20:10
	DefaultSaturdayEnd = 16*60 + 10 // 16:10
	DefaultBlockPush   = 120        // a block ending within 2h of opening delays it
	DefaultGranularity = 15
)

// Session is the slice of a booked session the engine cares about.
type Session struct {
	Date     string // YYYY-MM-DD
	Time     string // HH:MM, empty when not yet set
	Duration string // duration code
	Status   string
}

// occupies reports whether a session with this status holds its time.
func (s Session) occupies() bool {
	switch s.Status {
	case "scheduled", "done", "confirmed":
		return true
	default:
		return false
	}
}

// Block closes a whole day (FullDay) or the range [Start, End).
type Block struct {
	Date    string
	Start   string
	End     string
	FullDay bool
}

// Kind tags where an occupied interval came from.
type Kind int

const (
	KindSession Kind = iota
	KindBlock
)

// Interval is a half-open minute range [Start, End).
type Interval struct {
	Start int
	End   int
	Kind  Kind
}

// Overlaps reports whether the two ranges share at least one minute.
// Ranges that only touch (a.End == b.Start) do not overlap.
func (a Interval) Overlaps(b Interval) bool {
	return a.Start < b.End && a.End > b.Start
}

// Hours describes the opening hours the engine works within.
// Zero fields take the package defaults.
type Hours struct {
	DayStart    int
	WeekdayEnd  int
	SaturdayEnd int
	BlockPush   int
}

// DefaultHours returns the standard opening hours.
func DefaultHours() Hours {
	return Hours{
		DayStart:    DefaultDayStart,
		WeekdayEnd:  DefaultWeekdayEnd,
		SaturdayEnd: DefaultSaturdayEnd,
		BlockPush:   DefaultBlockPush,
	}
}

func (h Hours) withDefaults() Hours {
	d := DefaultHours()
	if h.DayStart > 0 {
		d.DayStart = h.DayStart
	}
	if h.WeekdayEnd > 0 {
		d.WeekdayEnd = h.WeekdayEnd
	}
	if h.SaturdayEnd > 0 {
		d.SaturdayEnd = h.SaturdayEnd
	}
	if h.BlockPush > 0 {
		d.BlockPush = h.BlockPush
	}
	return d
}

func (h Hours) end(wd time.Weekday) int {
	if wd == time.Saturday {
		return h.SaturdayEnd
	}
	return h.WeekdayEnd
}

// Params holds one day's snapshot.
type Params struct {
	Date time.Time

	// Duration is the requested slot length in minutes. When not positive,
	// DurationCode is resolved instead.
	Duration     int
	DurationCode string

	// Granularity is the minimum gap between the end of one interval and the
	// start of the next. Not positive means DefaultGranularity.
	Granularity int

	Sessions         []Session
	Blocks           []Block
	CustomSlots      []string
	DayStartOverride string
	Hours            Hours
}

// duration never exceeds a day, so slot ends cannot overflow.
func (p Params) duration() int {
	if p.Duration > 0 {
		return min(p.Duration, MinutesPerDay)
	}
	return DurationMinutes(p.DurationCode)
}

func (p Params) granularity() int {
	if p.Granularity > 0 {
		return p.Granularity
	}
	return DefaultGranularity
}

// Window returns the effective working window [start, end] for the day.
// ok is false when the day is closed (no date, Sunday, full-day block).
func Window(p Params) (start, end int, ok bool) {
	day, ok := p.openDay()
	if !ok {
		return 0, 0, false
	}
	h := p.Hours.withDefaults()
	start = resolveDayStart(p.DayStartOverride, h, blockIntervals(day, p.Blocks))
	return start, h.end(p.Date.Weekday()), true
}

func (p Params) openDay() (string, bool) {
	if p.Date.IsZero() || p.Date.Weekday() == time.Sunday {
		return "", false
	}
	day := p.Date.Format(dateLayout)
	for _, b := range p.Blocks {
		if b.Date == day && b.FullDay {
			return "", false
		}
	}
	return day, true
}

// Compute returns the ascending, duplicate-free "HH:MM" start times that can
// take a new booking of the requested duration on p.Date.
//
// Once anything is marked on the day (a session, a block or a usable custom
// slot), suggestions radiate out from the earliest mark: packed backwards
// towards opening, then forwards through the gaps that follow it. With nothing
// marked after opening, the day is swept from its start.
func Compute(p Params) []string {
	day, ok := p.openDay()
	if !ok {
		return []string{}
	}

	h := p.Hours.withDefaults()
	blocks := blockIntervals(day, p.Blocks)
	occupied := append(slices.Clone(blocks), sessionIntervals(day, p.Sessions)...)
	slices.SortStableFunc(occupied, func(a, b Interval) int { return a.Start - b.Start })

	w := window{
		start:    resolveDayStart(p.DayStartOverride, h, blocks),
		end:      h.end(p.Date.Weekday()),
		length:   p.duration(),
		gap:      p.granularity(),
		occupied: occupied,
	}
	custom := parseCustomSlots(p.CustomSlots)

	var free []int
	if anchor, ok := w.anchor(custom); ok && anchor > w.start {
		free = append(w.fillBefore(anchor), w.fillAfter(anchor)...)
	} else {
		free = w.sweep()
	}
	free = append(free, w.acceptedCustom(custom)...)

	slices.Sort(free)
	free = slices.Compact(free)

	out := make([]string, len(free))
	for i, m := range free {
		out[i] = FormatClock(m)
	}
	return out
}

// resolveDayStart applies the override, then lets partial blocks ending
// shortly after opening push it later.
//
// Only blocks whose end falls strictly inside (start, start+BlockPush) count.
// An earlier variant moved opening to the latest block end of the whole day,
// which closed everything before an evening block; that rule is not used.
func resolveDayStart(override string, h Hours, blocks []Interval) int {
	start := h.DayStart
	if m, ok := ParseClock(override); ok {
		start = m
	}
	pushed := start
	for _, b := range blocks {
		if b.End > start && b.End < start+h.BlockPush {
			pushed = max(pushed, b.End)
		}
	}
	return pushed
}

func blockIntervals(day string, blocks []Block) []Interval {
	var out []Interval
	for _, b := range blocks {
		if b.Date != day || b.FullDay {
			continue
		}
		start, ok1 := ParseClock(b.Start)
		end, ok2 := ParseClock(b.End)
		if !ok1 || !ok2 || end <= start {
			continue
		}
		out = append(out, Interval{Start: start, End: end, Kind: KindBlock})
	}
	return out
}

func sessionIntervals(day string, sessions []Session) []Interval {
	var out []Interval
	for _, s := range sessions {
		if s.Date != day || !s.occupies() || s.Duration == "" {
			continue
		}
		start, ok := ParseClock(s.Time)
		if !ok {
			continue
		}
		end := start + DurationMinutes(s.Duration)
		if end <= start {
			continue
		}
		out = append(out, Interval{Start: start, End: end, Kind: KindSession})
	}
	return out
}

func parseCustomSlots(raw []string) []int {
	out := make([]int, 0, len(raw))
	for _, s := range raw {
		if m, ok := ParseClock(s); ok {
			out = append(out, m)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// window is one day's working hours plus everything already occupying it.
type window struct {
	start, end  int
	length, gap int
	occupied    []Interval // sorted by Start
}

func (w window) slot(start int) Interval {
	return Interval{Start: start, End: start + w.length}
}

func (w window) conflicts(c Interval) bool {
	return slices.ContainsFunc(w.occupied, c.Overlaps)
}

// anchor is the earliest marked time: an occupied start, or a custom slot
// that fits without touching any occupancy.
func (w window) anchor(custom []int) (int, bool) {
	marks := make([]int, 0, len(w.occupied)+len(custom))
	for _, o := range w.occupied {
		marks = append(marks, o.Start)
	}
	for _, c := range custom {
		if !w.conflicts(w.slot(c)) {
			marks = append(marks, c)
		}
	}
	if len(marks) == 0 {
		return 0, false
	}
	return slices.Min(marks), true
}

// fillBefore packs slots backwards from the anchor, closest first, until a
// candidate would start before opening.
func (w window) fillBefore(anchor int) []int {
	var out []int
	step := w.length + w.gap
	for start := anchor - w.gap - w.length; start >= w.start; start -= step {
		c := w.slot(start)
		// Slots must end by closing time, even right before an anchor past it.
		if c.End > w.end || w.conflicts(c) {
			continue
		}
		if slices.ContainsFunc(out, func(f int) bool { return w.slot(f).Overlaps(c) }) {
			continue
		}
		out = append(out, start)
	}
	return out
}

// fillAfter walks the gaps that follow the anchor's own interval. When
// several intervals start at the anchor, the longest one ends it.
func (w window) fillAfter(anchor int) []int {
	last := anchor + w.length
	found := false
	for _, o := range w.occupied {
		if o.Start != anchor {
			continue
		}
		if !found || o.End > last {
			last = o.End
		}
		found = true
	}
	from := last

	var out []int
	for _, o := range w.occupied {
		if o.Start < from {
			continue
		}
		if o.Start >= last+w.gap {
			out = append(out, w.fillInterval(last+w.gap, o.Start-w.gap)...)
		}
		last = max(last, o.End)
	}
	if last < w.end {
		out = append(out, w.fillInterval(last+w.gap, w.end)...)
	}
	return out
}

// sweep fills the day from opening: the leading gap, every inner gap and
// the tail.
func (w window) sweep() []int {
	if len(w.occupied) == 0 {
		return w.fillInterval(w.start, w.end)
	}

	var out []int
	first, final := w.occupied[0], w.occupied[len(w.occupied)-1]
	if first.Start >= w.start+w.gap {
		out = append(out, w.fillInterval(w.start, first.Start-w.gap)...)
	}
	for i := 0; i < len(w.occupied)-1; i++ {
		end, next := w.occupied[i].End, w.occupied[i+1].Start
		if next >= end+w.gap {
			out = append(out, w.fillInterval(end+w.gap, next-w.gap)...)
		}
	}
	if final.End < w.end {
		out = append(out, w.fillInterval(final.End+w.gap, w.end)...)
	}
	return out
}

// fillInterval places slots forward from windowStart, one every
// length+gap minutes, keeping those that fit before windowEnd and clear all
// occupancy. The window never extends past closing time, even when the
// occupancy bounding it starts after close.
func (w window) fillInterval(windowStart, windowEnd int) []int {
	windowEnd = min(windowEnd, w.end)
	var out []int
	for start := max(windowStart, w.start); start+w.length <= windowEnd; start += w.length + w.gap {
		if !w.conflicts(w.slot(start)) {
			out = append(out, start)
		}
	}
	return out
}

// acceptedCustom returns the custom slots that sit inside working hours and
// keep a full gap away from every occupied interval.
func (w window) acceptedCustom(custom []int) []int {
	var out []int
	for _, c := range custom {
		s := w.slot(c)
		if s.Start < w.start || s.End > w.end {
			continue
		}
		padded := slices.ContainsFunc(w.occupied, func(o Interval) bool {
			return s.Overlaps(Interval{Start: o.Start - w.gap, End: o.End + w.gap})
		})
		if !padded {
			out = append(out, c)
		}
	}
	return out
}
