package appointments

import (
	"errors"
	"fmt"
)

// ErrSlotTaken is returned when the chosen (doctor, date, time) was booked
// between slot fetch and submission. The wizard reacts by sending the user
// back to date/time selection with a fresh slot fetch.
var ErrSlotTaken = errors.New("slot already booked")

// ValidationError reports the first failed submission rule. Recoverable:
// the user corrects the field and resubmits. Never logged as a system fault.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// SubmissionError is a persistence rejection other than a slot conflict.
// The code is machine-readable for support traceability; the message is
// shown verbatim.
type SubmissionError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submission rejected (%s): %s", e.Code, e.Message)
}
