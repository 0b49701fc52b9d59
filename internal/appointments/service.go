package appointments

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/brightcare/booking-engine/internal/observability/metrics"
	"github.com/brightcare/booking-engine/pkg/logging"
)

var appointmentsTracer = otel.Tracer("brightcare.internal.appointments")

// Notifier dispatches post-booking notifications. Implementations must be
// best-effort: nothing they return reaches the patient.
type Notifier interface {
	// DispatchBookingCreated returns once the dispatch is queued; delivery
	// happens on a detached goroutine owned by the implementation.
	DispatchBookingCreated(appt *Appointment)
}

// Service validates, normalizes and persists booking submissions.
type Service struct {
	repo     Repository
	notifier Notifier
	metrics  *metrics.BookingMetrics
	logger   *logging.Logger
}

// NewService constructs a submission service. notifier and m may be nil.
func NewService(repo Repository, notifier Notifier, m *metrics.BookingMetrics, logger *logging.Logger) *Service {
	if repo == nil {
		panic("appointments: repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{repo: repo, notifier: notifier, metrics: m, logger: logger}
}

// Submit turns a completed draft into a confirmed appointment or a typed
// failure. Validation errors never reach the repository; repository
// conflicts surface as ErrSlotTaken. On success exactly one notification
// dispatch is triggered, asynchronously, and its failures never propagate.
func (s *Service) Submit(ctx context.Context, req *SubmitRequest) (*Appointment, error) {
	ctx, span := appointmentsTracer.Start(ctx, "appointments.submit")
	defer span.End()
	span.SetAttributes(attribute.String("brightcare.doctor_id", req.DoctorID))

	start := time.Now()

	if verr := req.Validate(); verr != nil {
		s.metrics.ObserveSubmission("invalid", time.Since(start).Seconds())
		return nil, verr
	}

	appt := req.normalize()
	created, err := s.repo.Create(ctx, appt)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, ErrSlotTaken) {
			s.metrics.ObserveSubmission("conflict", time.Since(start).Seconds())
			s.logger.Info("slot conflict on submission",
				"doctor_id", appt.DoctorID,
				"date", appt.Date.Format("2006-01-02"),
				"time", appt.Time,
			)
			return nil, ErrSlotTaken
		}
		s.metrics.ObserveSubmission("error", time.Since(start).Seconds())
		s.logger.Error("appointment create failed", "error", err, "doctor_id", appt.DoctorID)
		return nil, &SubmissionError{Code: "persistence_failure", Message: "could not save the appointment"}
	}

	s.metrics.ObserveSubmission("confirmed", time.Since(start).Seconds())
	s.logger.Info("appointment confirmed",
		"id", created.ID,
		"doctor_id", created.DoctorID,
		"date", created.Date.Format("2006-01-02"),
		"time", created.Time,
	)

	if s.notifier != nil {
		s.notifier.DispatchBookingCreated(created)
	}
	return created, nil
}
