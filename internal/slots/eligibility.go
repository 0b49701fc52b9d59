package slots

import (
	"time"

	"github.com/brightcare/booking-engine/internal/doctors"
	"github.com/brightcare/booking-engine/internal/schedule"
)

// IsDateSelectable decides whether a calendar date can be offered at all.
// Rules run in order, first rejection wins:
//
//  1. dates before today are never selectable;
//  2. weekends are excluded unless an active row covers that weekday or the
//     doctor is flagged always-available (weekend exclusion is a default,
//     not a hard rule);
//  3. a HOLIDAY override blocks the date for everyone, always-available
//     doctors included;
//  4. an always-available doctor takes any remaining date;
//  5. otherwise the weekday needs an active schedule row.
//
// today is passed in rather than read from the clock so the predicate stays
// pure.
func IsDateSelectable(today, date time.Time, rows []schedule.DoctorSchedule, specials []schedule.SpecialDate, doc *doctors.Doctor) bool {
	today = midnight(today)
	date = midnight(date)

	if date.Before(today) {
		return false
	}

	weekday := date.Weekday()
	if weekday == time.Saturday || weekday == time.Sunday {
		if !hasActiveRow(rows, int(weekday)) && (doc == nil || !doc.AlwaysAvailable) {
			return false
		}
	}

	doctorID := ""
	if doc != nil {
		doctorID = doc.ID
	}
	for _, s := range specials {
		if s.Type == schedule.SpecialDateHoliday && s.AppliesTo(doctorID, date) {
			return false
		}
	}

	if doc != nil && doc.AlwaysAvailable {
		return true
	}

	return hasActiveRow(rows, int(weekday))
}

// SelectableDates renders the rolling date strip: the next windowDays
// calendar days starting today, filtered through IsDateSelectable.
func SelectableDates(today time.Time, windowDays int, rows []schedule.DoctorSchedule, specials []schedule.SpecialDate, doc *doctors.Doctor) []time.Time {
	today = midnight(today)

	var out []time.Time
	for i := 0; i < windowDays; i++ {
		d := today.AddDate(0, 0, i)
		if IsDateSelectable(today, d, rows, specials, doc) {
			out = append(out, d)
		}
	}
	return out
}

// Midnight truncates t to midnight in its own location.
func Midnight(t time.Time) time.Time {
	return midnight(t)
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func hasActiveRow(rows []schedule.DoctorSchedule, weekday int) bool {
	for _, row := range rows {
		if row.IsActive && row.DayOfWeek == weekday {
			return true
		}
	}
	return false
}
