// Package schedule holds doctor weekly availability and calendar-date
// overrides. Rows are maintained by clinic administration; the booking
// engine only reads them.
package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// SpecialDateType classifies calendar-date overrides.
type SpecialDateType string

const (
	// SpecialDateHoliday makes the date fully unselectable.
	SpecialDateHoliday SpecialDateType = "HOLIDAY"
	// SpecialDateModifiedHours narrows the working window for the date.
	SpecialDateModifiedHours SpecialDateType = "MODIFIED_HOURS"
)

// DoctorSchedule is one weekly recurring availability row. At most one
// active row exists per (doctor, weekday).
type DoctorSchedule struct {
	DoctorID        string `json:"doctor_id"`
	DayOfWeek       int    `json:"day_of_week"` // 0=Sunday .. 6=Saturday
	StartTime       string `json:"start_time"`  // "09:00", 24-hour
	EndTime         string `json:"end_time"`
	IsActive        bool   `json:"is_active"`
	SlotDurationMin int    `json:"slot_duration_min"`
	BufferTimeMin   int    `json:"buffer_time_min"`
	BreakStart      string `json:"break_start,omitempty"`
	BreakEnd        string `json:"break_end,omitempty"`
}

// SpecialDate is a calendar-date override taking precedence over the
// weekly schedule. An empty DoctorID means the entry applies globally.
type SpecialDate struct {
	DoctorID      string          `json:"doctor_id,omitempty"`
	Date          time.Time       `json:"date"`
	Type          SpecialDateType `json:"type"`
	OverrideStart string          `json:"override_start,omitempty"`
	OverrideEnd   string          `json:"override_end,omitempty"`
}

// AppliesTo reports whether the entry covers the given doctor on the given
// calendar day. Time-of-day on either side is ignored.
func (s SpecialDate) AppliesTo(doctorID string, date time.Time) bool {
	if s.DoctorID != "" && s.DoctorID != doctorID {
		return false
	}
	return sameDay(s.Date, date)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

var (
	ErrInvalidTimeOfDay = errors.New("time of day must be HH:MM in 24-hour form")
	ErrInvalidWindow    = errors.New("schedule window must satisfy start < break < end")
)

// TimeOfDayPattern is the strict 24-hour HH:MM shape; "9:5" does not match.
var TimeOfDayPattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// MinuteOfDay parses strict "HH:MM" into minutes since midnight.
func MinuteOfDay(hhmm string) (int, error) {
	m := TimeOfDayPattern.FindStringSubmatch(hhmm)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, hhmm)
	}
	h, _ := strconv.Atoi(m[1])
	mins, _ := strconv.Atoi(m[2])
	return h*60 + mins, nil
}

// Validate checks the row invariants: HH:MM fields parse, the break window
// sits strictly inside the working window, and the slot duration is positive.
func (r DoctorSchedule) Validate() error {
	if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
		return fmt.Errorf("schedule: day_of_week %d out of range", r.DayOfWeek)
	}
	start, err := MinuteOfDay(r.StartTime)
	if err != nil {
		return err
	}
	end, err := MinuteOfDay(r.EndTime)
	if err != nil {
		return err
	}
	if start >= end {
		return ErrInvalidWindow
	}
	if r.SlotDurationMin <= 0 {
		return fmt.Errorf("schedule: slot duration must be positive, got %d", r.SlotDurationMin)
	}
	if r.BufferTimeMin < 0 {
		return fmt.Errorf("schedule: buffer time must not be negative, got %d", r.BufferTimeMin)
	}
	if (r.BreakStart == "") != (r.BreakEnd == "") {
		return ErrInvalidWindow
	}
	if r.BreakStart != "" {
		bs, err := MinuteOfDay(r.BreakStart)
		if err != nil {
			return err
		}
		be, err := MinuteOfDay(r.BreakEnd)
		if err != nil {
			return err
		}
		if !(start < bs && bs < be && be < end) {
			return ErrInvalidWindow
		}
	}
	return nil
}
