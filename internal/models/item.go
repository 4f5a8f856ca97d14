package models

import (
	"slices"

	"github.com/mmynk/receiptsplitter/internal/money"
)

// Item represents a single line item on a receipt.
// Items can be shared among multiple people.
type Item struct {
	// ID is the unique identifier for the item (UUID format).
	ID string

	// Name is the name or description of the item (e.g., "Pizza", "Beer").
	Name string

	// Price is the non-negative pre-tax price of this item.
	Price float64

	// Responsible lists the IDs of the people who split this item evenly.
	// Empty means the item is unassigned. Order is insertion order and
	// entries are unique.
	Responsible []string
}

// IsAssignedTo reports whether personID is responsible for the item.
func (i *Item) IsAssignedTo(personID string) bool {
	return slices.Contains(i.Responsible, personID)
}

// SetPriceText parses a price typed as text. Invalid input sets the price to 0.
func (i *Item) SetPriceText(text string) {
	i.Price = money.Parse(text)
}

// unassign drops personID from the responsible set, reporting whether it was present.
func (i *Item) unassign(personID string) bool {
	idx := slices.Index(i.Responsible, personID)
	if idx < 0 {
		return false
	}
	i.Responsible = slices.Delete(i.Responsible, idx, idx+1)
	return true
}
