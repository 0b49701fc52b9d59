// Package appointments validates, normalizes and persists bookings. The
// create operation is atomic against the one-appointment-per-slot invariant.
package appointments

import "time"

// Appointment statuses. Only non-cancelled rows count toward slot
// uniqueness.
const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Appointment is the persisted booking record. Never mutated by the client
// after creation.
type Appointment struct {
	ID          string    `json:"id"`
	DoctorID    string    `json:"doctor_id"`
	PatientName string    `json:"patient_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"` // digits only, leading "+" for international
	Date        time.Time `json:"date"`  // midnight local
	Time        string    `json:"time"`  // "HH:MM", 24-hour
	Notes       string    `json:"notes,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// SubmitRequest is the completed booking draft handed to Submit. Fields
// arrive as the user typed them; Submit validates and normalizes.
type SubmitRequest struct {
	DoctorID    string    `json:"doctor_id"`
	Date        time.Time `json:"date"`
	Time        string    `json:"time"`
	PatientName string    `json:"patient_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Notes       string    `json:"notes"`
}
