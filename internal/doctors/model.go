// Package doctors provides the doctor directory consumed by the booking flow.
package doctors

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// IDKind distinguishes the identifier schemes used by the doctor directory.
// Upstream rows carry either a UUIDv4 or a human-readable slug; both are
// legitimate, so validation accepts either rather than assuming one format.
type IDKind int

const (
	IDKindInvalid IDKind = iota
	IDKindUUID
	IDKindSlug
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ParseID classifies a doctor identifier. Returns IDKindInvalid for anything
// that is neither a UUID nor a slug.
func ParseID(raw string) IDKind {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return IDKindInvalid
	}
	if _, err := uuid.Parse(raw); err == nil {
		return IDKindUUID
	}
	if slugPattern.MatchString(raw) {
		return IDKindSlug
	}
	return IDKindInvalid
}

// Doctor is a bookable provider from the directory.
type Doctor struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Speciality string  `json:"speciality"`
	Image      string  `json:"image,omitempty"`
	Fee        int     `json:"fee"`
	Available  bool    `json:"available"`
	Experience string  `json:"experience,omitempty"`
	Rating     float64 `json:"rating,omitempty"`

	// AlwaysAvailable marks generic/overflow entries that are bookable on any
	// weekday regardless of schedule rows. Holidays still apply.
	AlwaysAvailable bool `json:"always_available,omitempty"`
}
