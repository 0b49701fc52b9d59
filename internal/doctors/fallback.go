package doctors

// FallbackList is the fixed directory served when the repository is
// unreachable. The booking flow degrades to these entries instead of
// blocking entirely; the handler marks the response as degraded so the
// client can surface a retry affordance.
func FallbackList() []*Doctor {
	return []*Doctor{
		{
			ID:         "general-physician",
			Name:       "General Physician",
			Speciality: "General Medicine",
			Fee:        500,
			Available:  true,
			// Overflow entry: bookable any weekday the clinic is open.
			AlwaysAvailable: true,
		},
		{
			ID:         "dr-anita-rao",
			Name:       "Dr. Anita Rao",
			Speciality: "Dermatology",
			Fee:        800,
			Available:  true,
			Experience: "12 years",
			Rating:     4.8,
		},
		{
			ID:         "dr-vikram-shetty",
			Name:       "Dr. Vikram Shetty",
			Speciality: "Orthopaedics",
			Fee:        900,
			Available:  true,
			Experience: "15 years",
			Rating:     4.7,
		},
	}
}
