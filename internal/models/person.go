package models

// Person is someone sharing a receipt.
type Person struct {
	// ID is the unique identifier for the person (UUID format).
	ID string

	// Name is the display name. It may be empty while being edited and
	// does not need to be unique.
	Name string

	// Paid is a manual acknowledgement that this person has settled up.
	// It is never derived from computed totals.
	Paid bool
}
