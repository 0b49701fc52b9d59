package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brightcare/booking-engine/internal/appointments"
	"github.com/brightcare/booking-engine/internal/doctors"
	"github.com/brightcare/booking-engine/internal/observability/metrics"
	"github.com/brightcare/booking-engine/internal/schedule"
	"github.com/brightcare/booking-engine/internal/slots"
	"github.com/brightcare/booking-engine/pkg/logging"
)

// AvailabilityService resolves selectable dates and bookable times by
// combining the schedule repository, the doctor directory and the booked
// appointment set. It is the SlotSource behind both the wizard and the
// HTTP availability endpoints.
type AvailabilityService struct {
	schedules    schedule.Repository
	doctors      doctors.Repository
	appointments appointments.Repository
	windowDays   int
	metrics      *metrics.BookingMetrics
	logger       *logging.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewAvailabilityService wires the availability resolver.
func NewAvailabilityService(
	schedules schedule.Repository,
	doctorRepo doctors.Repository,
	appts appointments.Repository,
	windowDays int,
	m *metrics.BookingMetrics,
	logger *logging.Logger,
) *AvailabilityService {
	if windowDays <= 0 {
		windowDays = 14
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &AvailabilityService{
		schedules:    schedules,
		doctors:      doctorRepo,
		appointments: appts,
		windowDays:   windowDays,
		metrics:      m,
		logger:       logger,
		now:          time.Now,
	}
}

// Schedule returns the doctor's weekly rows plus the special dates covering
// the rolling window. Fetch failures come back as ErrScheduleUnavailable so
// the caller can default to "nothing selectable" rather than guessing.
func (s *AvailabilityService) Schedule(ctx context.Context, doctorID string) ([]schedule.DoctorSchedule, []schedule.SpecialDate, error) {
	rows, err := s.schedules.RowsForDoctor(ctx, doctorID)
	if err != nil {
		return nil, nil, wrapUnavailable(err)
	}
	from := slots.Midnight(s.now())
	specials, err := s.schedules.SpecialDates(ctx, doctorID, from, from.AddDate(0, 0, s.windowDays))
	if err != nil {
		return nil, nil, wrapUnavailable(err)
	}
	return rows, specials, nil
}

// SelectableDates renders the rolling date strip for a doctor.
func (s *AvailabilityService) SelectableDates(ctx context.Context, doctorID string) ([]time.Time, error) {
	doc, err := s.doctors.GetByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	rows, specials, err := s.Schedule(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return slots.SelectableDates(s.now(), s.windowDays, rows, specials, doc), nil
}

// AvailableSlots computes the bookable times for a doctor on a date,
// excluding times already taken by non-cancelled appointments.
func (s *AvailabilityService) AvailableSlots(ctx context.Context, doctorID string, date time.Time) ([]slots.TimeSlot, error) {
	rows, err := s.schedules.RowsForDoctor(ctx, doctorID)
	if err != nil {
		s.metrics.ObserveSlotFetch("schedule_error")
		return nil, wrapUnavailable(err)
	}

	day := slots.Midnight(date)
	specials, err := s.schedules.SpecialDates(ctx, doctorID, day, day.AddDate(0, 0, 1))
	if err != nil {
		s.metrics.ObserveSlotFetch("schedule_error")
		return nil, wrapUnavailable(err)
	}

	booked, err := s.appointments.BookedTimes(ctx, doctorID, day)
	if err != nil {
		s.metrics.ObserveSlotFetch("appointments_error")
		return nil, wrapUnavailable(err)
	}

	out := slots.Generate(day, rows, specials, booked)
	s.metrics.ObserveSlotFetch("ok")
	return out, nil
}

func wrapUnavailable(err error) error {
	if err == nil || errors.Is(err, schedule.ErrScheduleUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", schedule.ErrScheduleUnavailable, err)
}
