// Package booking implements the multi-step appointment wizard: a linear
// state machine from doctor selection through confirmation, with
// generation-tagged slot fetches and a guarded atomic submission.
package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/brightcare/booking-engine/internal/appointments"
	"github.com/brightcare/booking-engine/internal/doctors"
	"github.com/brightcare/booking-engine/internal/schedule"
	"github.com/brightcare/booking-engine/internal/slots"
	"github.com/brightcare/booking-engine/pkg/logging"
)

// Step is a wizard state. Transitions are linear: forward one step at a
// time, gated by step-local validation; back one step at a time, except out
// of Confirmed.
type Step int

const (
	StepSelectingDoctor Step = iota
	StepSelectingDateTime
	StepEnteringDetails
	StepReviewingSummary
	StepConfirmed
)

func (s Step) String() string {
	switch s {
	case StepSelectingDoctor:
		return "selecting_doctor"
	case StepSelectingDateTime:
		return "selecting_datetime"
	case StepEnteringDetails:
		return "entering_details"
	case StepReviewingSummary:
		return "reviewing_summary"
	case StepConfirmed:
		return "confirmed"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// SlotSource loads the bookable times for a doctor on a date.
type SlotSource interface {
	AvailableSlots(ctx context.Context, doctorID string, date time.Time) ([]slots.TimeSlot, error)
}

// Submitter performs the atomic create-appointment operation.
type Submitter interface {
	Submit(ctx context.Context, req *appointments.SubmitRequest) (*appointments.Appointment, error)
}

// Wizard is one booking session. All methods are safe for concurrent use;
// the session itself is owned by a single user.
type Wizard struct {
	mu sync.Mutex

	step      Step
	draft     Draft
	confirmed *appointments.Appointment
	closed    bool

	slotSource   SlotSource
	submitter    Submitter
	fetchTimeout time.Duration
	logger       *logging.Logger

	// Slot fetch state. fetchGen tags each fetch; only the response
	// carrying the latest tag may update the wizard, so a stale response
	// for a superseded date is discarded no matter when it arrives.
	fetchGen    uint64
	loading     bool
	available   []slots.TimeSlot
	slotsErr    error
	cancelFetch context.CancelFunc

	submitting bool
}

// NewWizard opens a booking session with an empty draft.
func NewWizard(slotSource SlotSource, submitter Submitter, fetchTimeout time.Duration, logger *logging.Logger) *Wizard {
	if logger == nil {
		logger = logging.Default()
	}
	if fetchTimeout <= 0 {
		fetchTimeout = 12 * time.Second
	}
	return &Wizard{
		step:         StepSelectingDoctor,
		slotSource:   slotSource,
		submitter:    submitter,
		fetchTimeout: fetchTimeout,
		logger:       logger,
	}
}

// Step returns the current wizard state.
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Draft returns a copy of the accumulated draft.
func (w *Wizard) Draft() Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft
}

// SelectDoctor records the chosen doctor. Allowed only on the doctor step.
// Choosing a different doctor discards any previously fetched slots and
// selected time; they belong to the old doctor and must never survive the
// switch.
func (w *Wizard) SelectDoctor(doc *doctors.Doctor) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWizardClosed
	}
	if w.step != StepSelectingDoctor {
		return ErrInvalidTransition
	}
	if doc == nil {
		return ErrNoDoctorSelected
	}

	if w.draft.Doctor == nil || w.draft.Doctor.ID != doc.ID {
		w.draft.SelectedDate = time.Time{}
		w.draft.SelectedTime = ""
		w.available = nil
		w.slotsErr = nil
		w.loading = false
		w.fetchGen++ // orphan any in-flight fetch for the old doctor
	}
	w.draft.Doctor = doc
	return nil
}

// SelectDate records the chosen date and starts an asynchronous slot fetch
// for it. Any previously selected time is cleared; it may not be valid for
// the new date.
func (w *Wizard) SelectDate(date time.Time) error {
	w.mu.Lock()

	if w.closed {
		w.mu.Unlock()
		return ErrWizardClosed
	}
	if w.step != StepSelectingDateTime {
		w.mu.Unlock()
		return ErrInvalidTransition
	}
	if w.draft.Doctor == nil {
		w.mu.Unlock()
		return ErrNoDoctorSelected
	}

	w.draft.SelectedDate = date
	w.draft.SelectedTime = ""
	w.available = nil
	w.slotsErr = nil
	w.loading = true

	w.fetchGen++
	gen := w.fetchGen

	if w.cancelFetch != nil {
		w.cancelFetch()
	}
	ctx, cancel := context.WithTimeout(context.Background(), w.fetchTimeout)
	w.cancelFetch = cancel

	doctorID := w.draft.Doctor.ID
	w.mu.Unlock()

	go func() {
		defer cancel()
		got, err := w.slotSource.AvailableSlots(ctx, doctorID, date)

		w.mu.Lock()
		defer w.mu.Unlock()
		if w.closed || gen != w.fetchGen {
			// Superseded by a newer selection or the session ended; this
			// response must not touch state.
			return
		}
		w.loading = false
		if err != nil {
			w.available = nil
			w.slotsErr = fmt.Errorf("%w: %w", schedule.ErrScheduleUnavailable, err)
			w.logger.Error("slot fetch failed", "doctor_id", doctorID, "date", date.Format("2006-01-02"), "error", err)
			return
		}
		w.available = got
	}()
	return nil
}

// AvailableSlots reports the current slot set for the selected date.
// loading distinguishes "still fetching" from a settled result, and err
// distinguishes "unable to load" from genuinely zero slots.
func (w *Wizard) AvailableSlots() (list []slots.TimeSlot, loading bool, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]slots.TimeSlot(nil), w.available...), w.loading, w.slotsErr
}

// SelectTime records the chosen time. The time must be present in the
// fetched slot set for the selected date.
func (w *Wizard) SelectTime(hhmm string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWizardClosed
	}
	if w.step != StepSelectingDateTime {
		return ErrInvalidTransition
	}
	if w.draft.SelectedDate.IsZero() {
		return ErrNoDateTimeSelected
	}
	if w.loading {
		return ErrSlotsNotLoaded
	}
	if w.slotsErr != nil {
		return w.slotsErr
	}
	for _, s := range w.available {
		if s.Time == hhmm {
			w.draft.SelectedTime = hhmm
			return nil
		}
	}
	return ErrTimeNotAvailable
}

// EnterDetails records the patient contact fields.
func (w *Wizard) EnterDetails(name, email, phone, notes string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWizardClosed
	}
	if w.step != StepEnteringDetails {
		return ErrInvalidTransition
	}
	w.draft.PatientName = name
	w.draft.Email = email
	w.draft.Phone = phone
	w.draft.Notes = notes
	return nil
}

// Next advances one step, gated by that step's completeness. Confirmed is
// reached through Submit, never through Next.
func (w *Wizard) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWizardClosed
	}
	switch w.step {
	case StepSelectingDoctor:
		if !w.draft.hasDoctor() {
			return ErrNoDoctorSelected
		}
		w.step = StepSelectingDateTime
	case StepSelectingDateTime:
		if !w.draft.hasDateTime() {
			return ErrNoDateTimeSelected
		}
		w.step = StepEnteringDetails
	case StepEnteringDetails:
		if !w.draft.hasDetails() {
			return ErrDetailsIncomplete
		}
		w.step = StepReviewingSummary
	default:
		return ErrInvalidTransition
	}
	return nil
}

// Back moves one step backward. Allowed everywhere except Confirmed, which
// is terminal.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWizardClosed
	}
	switch w.step {
	case StepSelectingDoctor, StepConfirmed:
		return ErrInvalidTransition
	default:
		w.step--
	}
	return nil
}

// Submit hands the draft to the submission service. Only one submission may
// run at a time; a conflict sends the wizard back to date/time selection
// with the slot set cleared so a fresh fetch happens.
func (w *Wizard) Submit(ctx context.Context) (*appointments.Appointment, error) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil, ErrWizardClosed
	}
	if w.step != StepReviewingSummary {
		w.mu.Unlock()
		return nil, ErrInvalidTransition
	}
	if w.submitting {
		w.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	w.submitting = true
	req := w.draft.toSubmitRequest()
	w.mu.Unlock()

	created, err := w.submitter.Submit(ctx, req)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitting = false
	if w.closed {
		return nil, ErrWizardClosed
	}
	if err != nil {
		if errors.Is(err, appointments.ErrSlotTaken) {
			// The slot disappeared between fetch and submit: back to
			// date/time with stale slots dropped.
			w.step = StepSelectingDateTime
			w.draft.SelectedTime = ""
			w.available = nil
			w.slotsErr = nil
		}
		return nil, err
	}
	w.step = StepConfirmed
	w.confirmed = created
	return created, nil
}

// Confirmed returns the created appointment once the wizard reaches the
// terminal step.
func (w *Wizard) Confirmed() *appointments.Appointment {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.confirmed
}

// Close ends the session: the draft is discarded and any in-flight fetch
// can no longer touch state. Close is idempotent.
func (w *Wizard) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	w.closed = true
	if w.cancelFetch != nil {
		w.cancelFetch()
		w.cancelFetch = nil
	}
	w.draft = Draft{}
	w.available = nil
	w.slotsErr = nil
	w.loading = false
}
