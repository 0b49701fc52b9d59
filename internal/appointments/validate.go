package appointments

import (
	"regexp"
	"strings"
	"time"

	"github.com/brightcare/booking-engine/internal/doctors"
	"github.com/brightcare/booking-engine/internal/schedule"
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigitPattern = regexp.MustCompile(`\D`)
)

// Validate runs the submission rules in order and reports the first
// violation. It performs no I/O; a draft that fails here never reaches the
// network.
func (r *SubmitRequest) Validate() *ValidationError {
	if doctors.ParseID(r.DoctorID) == doctors.IDKindInvalid {
		return &ValidationError{Field: "doctor", Message: "select a doctor"}
	}
	if r.Date.IsZero() {
		return &ValidationError{Field: "date", Message: "select a date"}
	}
	if !schedule.TimeOfDayPattern.MatchString(r.Time) {
		return &ValidationError{Field: "time", Message: "select a valid time"}
	}
	if strings.TrimSpace(r.PatientName) == "" {
		return &ValidationError{Field: "patient_name", Message: "enter the patient name"}
	}
	if !emailPattern.MatchString(strings.TrimSpace(r.Email)) {
		return &ValidationError{Field: "email", Message: "enter a valid email address"}
	}
	if len(nonDigitPattern.ReplaceAllString(r.Phone, "")) < 10 {
		return &ValidationError{Field: "phone", Message: "enter a phone number with at least 10 digits"}
	}
	return nil
}

// normalize converts a validated request into the canonical appointment
// fields: trimmed text, digit-only phone with "+" when an international
// prefix is present, date truncated to midnight local.
func (r *SubmitRequest) normalize() *Appointment {
	return &Appointment{
		DoctorID:    strings.TrimSpace(r.DoctorID),
		PatientName: strings.TrimSpace(r.PatientName),
		Email:       strings.TrimSpace(r.Email),
		Phone:       NormalizePhone(r.Phone),
		Date:        midnightLocal(r.Date),
		Time:        r.Time,
		Notes:       strings.TrimSpace(r.Notes),
		Status:      StatusConfirmed,
	}
}

// NormalizePhone strips everything but digits and prepends "+" when more
// than 10 digits remain, on the assumption the international prefix is
// already included.
func NormalizePhone(raw string) string {
	digits := nonDigitPattern.ReplaceAllString(raw, "")
	if len(digits) > 10 {
		return "+" + digits
	}
	return digits
}

func midnightLocal(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
