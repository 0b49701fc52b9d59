package appointments

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for appointment storage
type Repository interface {
	// Create persists the appointment atomically with respect to slot
	// uniqueness: a concurrent create for the same (doctor, date, time)
	// yields exactly one success, the other receives ErrSlotTaken.
	Create(ctx context.Context, appt *Appointment) (*Appointment, error)
	// BookedTimes returns the "HH:MM" times of non-cancelled appointments
	// for the doctor on the given calendar day, ascending.
	BookedTimes(ctx context.Context, doctorID string, date time.Time) ([]string, error)
}

// InMemoryRepository is an in-memory implementation of Repository. The
// slot-uniqueness check and insert happen under one lock, giving it the
// same conflict semantics as the database's partial unique index.
type InMemoryRepository struct {
	mu    sync.Mutex
	byID  map[string]*Appointment
	slots map[string]string // slotKey -> appointment id, non-cancelled only
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byID:  make(map[string]*Appointment),
		slots: make(map[string]string),
	}
}

func slotKey(doctorID string, date time.Time, hhmm string) string {
	return fmt.Sprintf("%s|%s|%s", doctorID, date.Format("2006-01-02"), hhmm)
}

// Create inserts the appointment, enforcing slot uniqueness.
func (r *InMemoryRepository) Create(ctx context.Context, appt *Appointment) (*Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := slotKey(appt.DoctorID, appt.Date, appt.Time)
	if _, taken := r.slots[key]; taken {
		return nil, ErrSlotTaken
	}

	stored := *appt
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now()
	if stored.Status == "" {
		stored.Status = StatusConfirmed
	}

	r.byID[stored.ID] = &stored
	r.slots[key] = stored.ID
	return &stored, nil
}

// BookedTimes lists non-cancelled times for the doctor on the day.
func (r *InMemoryRepository) BookedTimes(ctx context.Context, doctorID string, date time.Time) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	day := date.Format("2006-01-02")
	var out []string
	for _, a := range r.byID {
		if a.DoctorID == doctorID && a.Status != StatusCancelled && a.Date.Format("2006-01-02") == day {
			out = append(out, a.Time)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Cancel marks an appointment cancelled and frees its slot. Not part of the
// booking flow; exists so seeded fixtures can model cancelled rows.
func (r *InMemoryRepository) Cancel(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("appointments: %s not found", id)
	}
	a.Status = StatusCancelled
	delete(r.slots, slotKey(a.DoctorID, a.Date, a.Time))
	return nil
}
