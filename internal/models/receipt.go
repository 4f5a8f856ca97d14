package models

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/mmynk/receiptsplitter/internal/money"
)

var (
	ErrPersonNotFound   = errors.New("person not found")
	ErrItemNotFound     = errors.New("item not found")
	ErrInvalidSplitMode = errors.New("invalid split mode")
	ErrInvalidReceipt   = errors.New("invalid receipt")
)

// SplitMode governs how tax and tip are distributed across people.
type SplitMode string

const (
	// SplitProportional weights tax and tip by each person's item subtotal.
	SplitProportional SplitMode = "proportional"
	// SplitEqual divides tax and tip evenly across every person on the receipt.
	SplitEqual SplitMode = "equal"
)

// ParseSplitMode converts text into a SplitMode. Empty text selects the
// default, SplitProportional.
func ParseSplitMode(text string) (SplitMode, error) {
	switch SplitMode(strings.ToLower(strings.TrimSpace(text))) {
	case "", SplitProportional:
		return SplitProportional, nil
	case SplitEqual:
		return SplitEqual, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSplitMode, text)
	}
}

// Receipt represents a bill with items to be split among people.
type Receipt struct {
	// ID is the unique identifier for the receipt (UUID format).
	ID string

	// Title is the human-readable name for the receipt.
	Title string

	// Tax and Tip are top-level amounts, independent of the items.
	Tax float64
	Tip float64

	// People is the ordered list of people on the receipt.
	People []Person

	// Items are the individual line items, in insertion order.
	Items []Item

	// SplitMode selects how Tax and Tip are shared. The zero value behaves
	// as SplitProportional.
	SplitMode SplitMode

	// CreatedAt is the Unix timestamp when the receipt was stored.
	CreatedAt int64
}

// NewReceipt creates an empty receipt with a fresh ID.
func NewReceipt(title string) *Receipt {
	return &Receipt{
		ID:        uuid.New().String(),
		Title:     title,
		SplitMode: SplitProportional,
	}
}

// Mode returns the effective split mode.
func (r *Receipt) Mode() SplitMode {
	if r.SplitMode == "" {
		return SplitProportional
	}
	return r.SplitMode
}

// SetTaxText parses tax typed as text. Invalid input sets tax to 0.
func (r *Receipt) SetTaxText(text string) {
	r.Tax = money.Parse(text)
}

// SetTipText parses tip typed as text. Invalid input sets tip to 0.
func (r *Receipt) SetTipText(text string) {
	r.Tip = money.Parse(text)
}

// AddPerson appends a person with a fresh ID, an empty name and paid unset.
func (r *Receipt) AddPerson() Person {
	p := Person{ID: uuid.New().String()}
	r.People = append(r.People, p)
	return p
}

// Person looks up a person by ID.
func (r *Receipt) Person(id string) (Person, bool) {
	idx := r.personIndex(id)
	if idx < 0 {
		return Person{}, false
	}
	return r.People[idx], true
}

// UpdatePerson applies fn to the person with the given ID.
// The ID itself cannot be changed.
func (r *Receipt) UpdatePerson(id string, fn func(p *Person)) error {
	idx := r.personIndex(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrPersonNotFound, id)
	}
	fn(&r.People[idx])
	r.People[idx].ID = id
	return nil
}

// RemovePerson deletes a person and removes their ID from every item's
// responsible set. Items themselves are kept.
func (r *Receipt) RemovePerson(id string) error {
	idx := r.personIndex(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrPersonNotFound, id)
	}
	r.People = slices.Delete(r.People, idx, idx+1)
	for i := range r.Items {
		r.Items[i].unassign(id)
	}
	return nil
}

// AddItem appends an item with a fresh ID, price 0 and nobody responsible.
func (r *Receipt) AddItem() Item {
	it := Item{ID: uuid.New().String()}
	r.Items = append(r.Items, it)
	return it
}

// Item looks up an item by ID.
func (r *Receipt) Item(id string) (Item, bool) {
	idx := r.itemIndex(id)
	if idx < 0 {
		return Item{}, false
	}
	return r.Items[idx], true
}

// UpdateItem applies fn to the item with the given ID. The ID and the
// responsible set are preserved; use ToggleResponsible to change assignments.
func (r *Receipt) UpdateItem(id string, fn func(it *Item)) error {
	idx := r.itemIndex(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	responsible := r.Items[idx].Responsible
	fn(&r.Items[idx])
	r.Items[idx].ID = id
	r.Items[idx].Responsible = responsible
	r.Items[idx].Price = money.Sanitize(r.Items[idx].Price)
	return nil
}

// RemoveItem deletes an item by ID.
func (r *Receipt) RemoveItem(id string) error {
	idx := r.itemIndex(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	r.Items = slices.Delete(r.Items, idx, idx+1)
	return nil
}

// ToggleResponsible flips whether personID is responsible for itemID and
// returns the new membership state.
func (r *Receipt) ToggleResponsible(itemID, personID string) (bool, error) {
	idx := r.itemIndex(itemID)
	if idx < 0 {
		return false, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}
	if r.personIndex(personID) < 0 {
		return false, fmt.Errorf("%w: %s", ErrPersonNotFound, personID)
	}

	item := &r.Items[idx]
	if item.unassign(personID) {
		return false, nil
	}
	item.Responsible = append(item.Responsible, personID)
	return true, nil
}

// Clone returns a deep copy of the receipt.
func (r *Receipt) Clone() *Receipt {
	if r == nil {
		return nil
	}
	c := *r
	c.People = slices.Clone(r.People)
	if r.Items != nil {
		c.Items = make([]Item, len(r.Items))
		for i, it := range r.Items {
			it.Responsible = slices.Clone(it.Responsible)
			c.Items[i] = it
		}
	}
	return &c
}

// Validate checks the invariants a stored receipt must satisfy: unique IDs,
// responsible sets that reference people on the receipt, and finite
// non-negative amounts.
func (r *Receipt) Validate() error {
	switch r.SplitMode {
	case "", SplitProportional, SplitEqual:
	default:
		return fmt.Errorf("%w: %w: %q", ErrInvalidReceipt, ErrInvalidSplitMode, r.SplitMode)
	}
	if !validAmount(r.Tax) || !validAmount(r.Tip) {
		return fmt.Errorf("%w: tax and tip must be finite and non-negative", ErrInvalidReceipt)
	}

	people := make(map[string]struct{}, len(r.People))
	for _, p := range r.People {
		if p.ID == "" {
			return fmt.Errorf("%w: person without id", ErrInvalidReceipt)
		}
		if _, dup := people[p.ID]; dup {
			return fmt.Errorf("%w: duplicate person id %s", ErrInvalidReceipt, p.ID)
		}
		people[p.ID] = struct{}{}
	}

	items := make(map[string]struct{}, len(r.Items))
	for _, it := range r.Items {
		if it.ID == "" {
			return fmt.Errorf("%w: item without id", ErrInvalidReceipt)
		}
		if _, dup := items[it.ID]; dup {
			return fmt.Errorf("%w: duplicate item id %s", ErrInvalidReceipt, it.ID)
		}
		items[it.ID] = struct{}{}

		if !validAmount(it.Price) {
			return fmt.Errorf("%w: item %s has invalid price", ErrInvalidReceipt, it.ID)
		}
		seen := make(map[string]struct{}, len(it.Responsible))
		for _, pid := range it.Responsible {
			if _, ok := people[pid]; !ok {
				return fmt.Errorf("%w: item %s references unknown person %s", ErrInvalidReceipt, it.ID, pid)
			}
			if _, dup := seen[pid]; dup {
				return fmt.Errorf("%w: item %s lists person %s twice", ErrInvalidReceipt, it.ID, pid)
			}
			seen[pid] = struct{}{}
		}
	}
	return nil
}

func (r *Receipt) personIndex(id string) int {
	return slices.IndexFunc(r.People, func(p Person) bool { return p.ID == id })
}

func (r *Receipt) itemIndex(id string) int {
	return slices.IndexFunc(r.Items, func(it Item) bool { return it.ID == id })
}

func validAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
