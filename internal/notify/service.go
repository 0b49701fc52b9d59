// Package notify delivers best-effort post-booking notifications. Nothing
// here ever blocks or fails a confirmed booking: dispatches run on detached
// goroutines and failures are logged and swallowed.
package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/brightcare/booking-engine/internal/appointments"
	"github.com/brightcare/booking-engine/internal/events"
	"github.com/brightcare/booking-engine/internal/observability/metrics"
	"github.com/brightcare/booking-engine/pkg/logging"
)

// Service fans booking events out to the configured channels. Either
// channel may be nil.
type Service struct {
	webhook WebhookSender
	email   EmailSender
	metrics *metrics.BookingMetrics
	logger  *logging.Logger
	timeout time.Duration

	wg sync.WaitGroup
}

// NewService creates a notification service.
func NewService(webhook WebhookSender, email EmailSender, m *metrics.BookingMetrics, timeout time.Duration, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Service{webhook: webhook, email: email, metrics: m, timeout: timeout, logger: logger}
}

// DispatchBookingCreated queues one delivery for the appointment and
// returns immediately. Satisfies appointments.Notifier.
func (s *Service) DispatchBookingCreated(appt *appointments.Appointment) {
	evt := events.AppointmentBookedV1{
		EventID:       uuid.NewString(),
		AppointmentID: appt.ID,
		DoctorID:      appt.DoctorID,
		PatientName:   appt.PatientName,
		Email:         appt.Email,
		Phone:         appt.Phone,
		Date:          appt.Date.Format("2006-01-02"),
		Time:          appt.Time,
		Notes:         appt.Notes,
		BookedAt:      appt.CreatedAt,
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		// Detached from the request: the booking is already committed.
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		s.deliver(ctx, evt)
	}()
}

func (s *Service) deliver(ctx context.Context, evt events.AppointmentBookedV1) {
	if s.webhook != nil {
		if err := s.webhook.Send(ctx, events.EventAppointmentBooked, evt); err != nil {
			s.metrics.ObserveNotification("webhook", "failed")
			s.logger.Error("booking webhook dispatch failed",
				"error", err,
				"event_id", evt.EventID,
				"appointment_id", evt.AppointmentID,
			)
		} else {
			s.metrics.ObserveNotification("webhook", "delivered")
		}
	}

	if s.email != nil && evt.Email != "" {
		msg := EmailMessage{
			To:      evt.Email,
			ToName:  evt.PatientName,
			Subject: "Your appointment is confirmed",
			Body: fmt.Sprintf("Hi %s,\n\nYour appointment on %s at %s is confirmed.\n\nSee you then!",
				evt.PatientName, evt.Date, evt.Time),
		}
		if err := s.email.Send(ctx, msg); err != nil {
			s.metrics.ObserveNotification("email", "failed")
			s.logger.Error("confirmation email dispatch failed",
				"error", err,
				"event_id", evt.EventID,
				"appointment_id", evt.AppointmentID,
			)
		} else {
			s.metrics.ObserveNotification("email", "delivered")
		}
	}
}

// Wait blocks until all queued deliveries finish. Used on shutdown and in
// tests.
func (s *Service) Wait() {
	s.wg.Wait()
}
