package calculator

import (
	"cmp"
	"slices"

	"github.com/mmynk/receiptsplitter/internal/models"
	"github.com/mmynk/receiptsplitter/internal/money"
)

// PersonItem represents an item's share for one person.
type PersonItem struct {
	ItemID string
	Name   string
	Share  float64 // This person's share of the item price
}

// PersonTotal represents one person's calculated share of a receipt.
// It is derived on demand and never stored.
type PersonTotal struct {
	PersonID string
	Name     string

	// Subtotal is the sum of this person's item shares (pre-tax).
	Subtotal float64

	// TaxShare and TipShare follow the receipt's split mode.
	TaxShare float64
	TipShare float64

	// Total is Subtotal + TaxShare + TipShare.
	Total float64

	// Items are the items this person shares, in receipt order.
	Items []PersonItem
}

// ComputeTotals computes how much each person on the receipt owes.
//
// Algorithm:
//   - Each item's price is divided evenly among its responsible people.
//     Unassigned items contribute to nobody's subtotal.
//   - Proportional mode: tax/tip share = amount × subtotal / sum(subtotals),
//     or 0 for everyone when no cost is assigned.
//   - Equal mode: tax/tip share = amount / len(people) for every person,
//     whether or not they have items.
//
// One row is returned per person, sorted by name (byte order, stable).
// Responsible IDs that do not match a person are ignored. The receipt is
// not modified.
func ComputeTotals(r *models.Receipt) []PersonTotal {
	if r == nil || len(r.People) == 0 {
		return []PersonTotal{}
	}

	index := make(map[string]int, len(r.People))
	totals := make([]PersonTotal, len(r.People))
	for i, p := range r.People {
		index[p.ID] = i
		totals[i] = PersonTotal{PersonID: p.ID, Name: p.Name}
	}

	// Split each item among the responsible people that still exist
	for _, item := range r.Items {
		owners := resolveOwners(item.Responsible, index)
		if len(owners) == 0 {
			continue
		}

		share := money.Sanitize(item.Price) / float64(len(owners))
		for _, i := range owners {
			totals[i].Subtotal += share
			totals[i].Items = append(totals[i].Items, PersonItem{
				ItemID: item.ID,
				Name:   item.Name,
				Share:  share,
			})
		}
	}

	var allSubtotals float64
	for _, t := range totals {
		allSubtotals += t.Subtotal
	}

	tax := money.Sanitize(r.Tax)
	tip := money.Sanitize(r.Tip)
	peopleCount := float64(len(r.People))

	for i := range totals {
		t := &totals[i]
		switch r.Mode() {
		case models.SplitEqual:
			t.TaxShare = tax / peopleCount
			t.TipShare = tip / peopleCount
		default:
			var ratio float64
			if allSubtotals > 0 {
				ratio = t.Subtotal / allSubtotals
			}
			t.TaxShare = tax * ratio
			t.TipShare = tip * ratio
		}
		t.Total = t.Subtotal + t.TaxShare + t.TipShare
	}

	slices.SortStableFunc(totals, func(a, b PersonTotal) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return totals
}

// resolveOwners maps responsible IDs to person indexes, dropping unknown and
// repeated IDs.
func resolveOwners(responsible []string, index map[string]int) []int {
	owners := make([]int, 0, len(responsible))
	for _, id := range responsible {
		i, ok := index[id]
		if !ok || slices.Contains(owners, i) {
			continue
		}
		owners = append(owners, i)
	}
	return owners
}
