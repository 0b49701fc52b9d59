// Package events defines the versioned payloads emitted by the booking
// engine. Payload shapes are append-only; breaking changes get a new
// versioned type.
package events

import "time"

// EventAppointmentBooked is the event name sent with AppointmentBookedV1.
const EventAppointmentBooked = "appointment.booked"

// AppointmentBookedV1 is dispatched after a booking is persisted. Delivery
// is best-effort; a dispatch failure never invalidates the booking.
type AppointmentBookedV1 struct {
	EventID       string    `json:"event_id"`
	AppointmentID string    `json:"appointment_id"`
	DoctorID      string    `json:"doctor_id"`
	DoctorName    string    `json:"doctor_name,omitempty"`
	PatientName   string    `json:"patient_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Date          string    `json:"date"` // ISO calendar date
	Time          string    `json:"time"` // "HH:MM"
	Notes         string    `json:"notes,omitempty"`
	BookedAt      time.Time `json:"booked_at"`
}
