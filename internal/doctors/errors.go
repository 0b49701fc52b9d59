package doctors

import "errors"

var (
	// ErrDoctorNotFound is returned when a doctor id has no directory entry
	ErrDoctorNotFound = errors.New("doctor not found")

	// ErrInvalidDoctorID is returned for identifiers that are neither UUID nor slug
	ErrInvalidDoctorID = errors.New("doctor id must be a UUID or a slug")
)
