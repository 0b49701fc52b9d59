package booking

import (
	"strings"
	"time"

	"github.com/brightcare/booking-engine/internal/appointments"
	"github.com/brightcare/booking-engine/internal/doctors"
)

// Draft is the in-progress booking accumulated across wizard steps. It is
// owned by exactly one wizard session and discarded on close.
type Draft struct {
	Doctor       *doctors.Doctor
	SelectedDate time.Time
	SelectedTime string
	PatientName  string
	Email        string
	Phone        string
	Notes        string
}

// hasDoctor reports whether the doctor step is complete.
func (d *Draft) hasDoctor() bool {
	return d.Doctor != nil
}

// hasDateTime reports whether the date/time step is complete.
func (d *Draft) hasDateTime() bool {
	return !d.SelectedDate.IsZero() && d.SelectedTime != ""
}

// hasDetails reports whether the patient details step is complete. Full
// field validation happens at submission; this gate only checks presence.
func (d *Draft) hasDetails() bool {
	return strings.TrimSpace(d.PatientName) != "" &&
		strings.TrimSpace(d.Email) != "" &&
		strings.TrimSpace(d.Phone) != ""
}

// toSubmitRequest converts the draft for the submission service.
func (d *Draft) toSubmitRequest() *appointments.SubmitRequest {
	req := &appointments.SubmitRequest{
		Date:        d.SelectedDate,
		Time:        d.SelectedTime,
		PatientName: d.PatientName,
		Email:       d.Email,
		Phone:       d.Phone,
		Notes:       d.Notes,
	}
	if d.Doctor != nil {
		req.DoctorID = d.Doctor.ID
	}
	return req
}
