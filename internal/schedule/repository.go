package schedule

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// ErrScheduleUnavailable wraps fetch failures so callers can distinguish
// "could not load the schedule" from "no availability". Date selection
// defaults to fully restrictive when this is returned.
var ErrScheduleUnavailable = errors.New("schedule unavailable")

// Repository defines read access to weekly schedules and special dates
type Repository interface {
	// RowsForDoctor returns the doctor's schedule rows ordered by weekday.
	RowsForDoctor(ctx context.Context, doctorID string) ([]DoctorSchedule, error)
	// SpecialDates returns doctor-specific and global overrides intersecting
	// [from, to).
	SpecialDates(ctx context.Context, doctorID string, from, to time.Time) ([]SpecialDate, error)
}

// InMemoryRepository is an in-memory implementation of Repository
type InMemoryRepository struct {
	mu       sync.RWMutex
	rows     map[string][]DoctorSchedule
	specials []SpecialDate
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{rows: make(map[string][]DoctorSchedule)}
}

// PutRow adds or replaces the row for the row's (doctor, weekday).
func (r *InMemoryRepository) PutRow(row DoctorSchedule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := r.rows[row.DoctorID]
	for i := range rows {
		if rows[i].DayOfWeek == row.DayOfWeek {
			rows[i] = row
			return
		}
	}
	r.rows[row.DoctorID] = append(rows, row)
}

// PutSpecialDate records a calendar override.
func (r *InMemoryRepository) PutSpecialDate(s SpecialDate) {
	r.mu.Lock()
	r.specials = append(r.specials, s)
	r.mu.Unlock()
}

// RowsForDoctor returns the doctor's rows ordered by weekday.
func (r *InMemoryRepository) RowsForDoctor(ctx context.Context, doctorID string) ([]DoctorSchedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := append([]DoctorSchedule(nil), r.rows[doctorID]...)
	sort.Slice(rows, func(i, j int) bool { return rows[i].DayOfWeek < rows[j].DayOfWeek })
	return rows, nil
}

// SpecialDates returns overrides for the doctor (or global) within [from, to).
func (r *InMemoryRepository) SpecialDates(ctx context.Context, doctorID string, from, to time.Time) ([]SpecialDate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []SpecialDate
	for _, s := range r.specials {
		if s.DoctorID != "" && s.DoctorID != doctorID {
			continue
		}
		if s.Date.Before(from) || !s.Date.Before(to) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}
