package slots

import (
	"fmt"
	"time"

	"github.com/brightcare/booking-engine/internal/schedule"
)

// TimeSlot is one bookable time on a given date. Derived, never stored;
// recomputed on every date change.
type TimeSlot struct {
	Time   string `json:"time"` // "HH:MM", 24-hour
	Period Period `json:"period"`
	Label  string `json:"label"` // 12-hour display form
}

// Generate produces the ordered bookable slots for one doctor on one date.
// rows are the doctor's weekly schedule, specials the calendar overrides
// applying to the doctor, booked the "HH:MM" times already taken by
// non-cancelled appointments on that date.
//
// A HOLIDAY override yields no slots. A MODIFIED_HOURS override narrows the
// working window for the date. Slots step by duration+buffer from the window
// start; a slot is dropped when its start falls inside the break window,
// when its end would pass the window end, or when it collides with a booked
// time.
func Generate(date time.Time, rows []schedule.DoctorSchedule, specials []schedule.SpecialDate, booked []string) []TimeSlot {
	row, ok := activeRowFor(date, rows)
	if !ok {
		return nil
	}

	start, err := schedule.MinuteOfDay(row.StartTime)
	if err != nil {
		return nil
	}
	end, err := schedule.MinuteOfDay(row.EndTime)
	if err != nil {
		return nil
	}

	doctorID := row.DoctorID
	for _, s := range specials {
		if !s.AppliesTo(doctorID, date) {
			continue
		}
		switch s.Type {
		case schedule.SpecialDateHoliday:
			return nil
		case schedule.SpecialDateModifiedHours:
			if o, err := schedule.MinuteOfDay(s.OverrideStart); err == nil && o > start {
				start = o
			}
			if o, err := schedule.MinuteOfDay(s.OverrideEnd); err == nil && o < end {
				end = o
			}
		}
	}

	breakStart, breakEnd := -1, -1
	if row.BreakStart != "" && row.BreakEnd != "" {
		if bs, err := schedule.MinuteOfDay(row.BreakStart); err == nil {
			if be, err := schedule.MinuteOfDay(row.BreakEnd); err == nil {
				breakStart, breakEnd = bs, be
			}
		}
	}

	taken := make(map[string]struct{}, len(booked))
	for _, b := range booked {
		taken[b] = struct{}{}
	}

	step := row.SlotDurationMin + row.BufferTimeMin
	if step <= 0 {
		return nil
	}

	var out []TimeSlot
	for t := start; t+row.SlotDurationMin <= end; t += step {
		if breakStart >= 0 && t >= breakStart && t < breakEnd {
			continue
		}
		hhmm := fmt.Sprintf("%02d:%02d", t/60, t%60)
		if _, clash := taken[hhmm]; clash {
			continue
		}
		out = append(out, TimeSlot{
			Time:   hhmm,
			Period: PeriodOf(t / 60),
			Label:  Label12Hour(t),
		})
	}
	return out
}

// activeRowFor picks the active schedule row matching the date's weekday.
func activeRowFor(date time.Time, rows []schedule.DoctorSchedule) (schedule.DoctorSchedule, bool) {
	weekday := int(date.Weekday())
	for _, row := range rows {
		if row.IsActive && row.DayOfWeek == weekday {
			return row, true
		}
	}
	return schedule.DoctorSchedule{}, false
}
