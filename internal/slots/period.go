// Package slots computes bookable dates and times for a doctor. Everything
// here is pure: same inputs, same outputs, no I/O.
package slots

import "fmt"

// Period buckets a slot by time of day for display grouping.
type Period string

const (
	PeriodMorning   Period = "morning"
	PeriodAfternoon Period = "afternoon"
	PeriodEvening   Period = "evening"
)

// PeriodOf maps an hour (0-23) to its display period: before noon is
// morning, 12 through 16 is afternoon, 17 onward is evening.
func PeriodOf(hour int) Period {
	switch {
	case hour < 12:
		return PeriodMorning
	case hour < 17:
		return PeriodAfternoon
	default:
		return PeriodEvening
	}
}

// Label12Hour renders minutes-since-midnight as a 12-hour display label,
// e.g. 570 -> "9:30 AM".
func Label12Hour(minuteOfDay int) string {
	h := minuteOfDay / 60
	m := minuteOfDay % 60

	suffix := "AM"
	display := h
	switch {
	case h == 0:
		display = 12
	case h == 12:
		suffix = "PM"
	case h > 12:
		display = h - 12
		suffix = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", display, m, suffix)
}
