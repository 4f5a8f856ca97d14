package calculator

import (
	"github.com/mmynk/receiptsplitter/internal/models"
	"github.com/mmynk/receiptsplitter/internal/money"
)

// Summary holds the receipt-level figures shown to the whole group.
type Summary struct {
	// ItemsSubtotal is the sum of every item price, assigned or not.
	ItemsSubtotal float64

	// AssignedSubtotal is the part of ItemsSubtotal attributed to people.
	AssignedSubtotal float64

	// UnassignedSubtotal is the cost nobody is responsible for yet.
	UnassignedSubtotal float64

	Tax float64
	Tip float64

	// GrandTotal is ItemsSubtotal + Tax + Tip.
	GrandTotal float64

	// AttributedTotal is the sum of every person's total. It falls short of
	// GrandTotal while items are unassigned, and in proportional mode when
	// nobody has a subtotal yet.
	AttributedTotal float64
}

// Summarize computes receipt-level totals. totals must come from
// ComputeTotals on the same receipt.
func Summarize(r *models.Receipt, totals []PersonTotal) Summary {
	var s Summary
	if r == nil {
		return s
	}

	for _, item := range r.Items {
		s.ItemsSubtotal += money.Sanitize(item.Price)
	}
	for _, t := range totals {
		s.AssignedSubtotal += t.Subtotal
		s.AttributedTotal += t.Total
	}

	s.UnassignedSubtotal = s.ItemsSubtotal - s.AssignedSubtotal
	if s.UnassignedSubtotal < 0 {
		s.UnassignedSubtotal = 0
	}
	s.Tax = money.Sanitize(r.Tax)
	s.Tip = money.Sanitize(r.Tip)
	s.GrandTotal = s.ItemsSubtotal + s.Tax + s.Tip
	return s
}
