package booking

import "errors"

var (
	// ErrInvalidTransition is returned for a step change the wizard does not
	// allow (skipping ahead, backing out of Confirmed).
	ErrInvalidTransition = errors.New("booking: transition not allowed")

	// ErrNoDoctorSelected gates leaving the doctor step.
	ErrNoDoctorSelected = errors.New("booking: select a doctor first")

	// ErrNoDateTimeSelected gates leaving the date/time step.
	ErrNoDateTimeSelected = errors.New("booking: select a date and time first")

	// ErrDetailsIncomplete gates leaving the patient details step.
	ErrDetailsIncomplete = errors.New("booking: patient details incomplete")

	// ErrTimeNotAvailable is returned when the chosen time is not in the
	// current slot set for the selected date.
	ErrTimeNotAvailable = errors.New("booking: time not in the available slots")

	// ErrSlotsNotLoaded is returned when a time is chosen before the slot
	// fetch for the selected date has finished.
	ErrSlotsNotLoaded = errors.New("booking: slots still loading")

	// ErrSubmissionInFlight guards the submit action: a second submit while
	// one is running is refused instead of double-booking.
	ErrSubmissionInFlight = errors.New("booking: submission already in progress")

	// ErrWizardClosed is returned for any operation after Close.
	ErrWizardClosed = errors.New("booking: wizard closed")
)
