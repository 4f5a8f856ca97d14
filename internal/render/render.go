// Package render turns computed totals into display rows.
package render

import (
	"github.com/mmynk/receiptsplitter/internal/calculator"
	"github.com/mmynk/receiptsplitter/internal/models"
	"github.com/mmynk/receiptsplitter/internal/money"
)

// Row is one person's line in the totals table.
type Row struct {
	calculator.PersonTotal

	// Paid reports whether the person has settled their share.
	Paid bool

	SubtotalText string
	TaxText      string
	TipText      string
	TotalText    string
}

// Rows joins totals with the receipt's paid flags, keeping the order of
// totals. A total whose person is no longer on the receipt is unpaid.
func Rows(r *models.Receipt, totals []calculator.PersonTotal) []Row {
	paid := make(map[string]bool)
	if r != nil {
		for _, p := range r.People {
			paid[p.ID] = p.Paid
		}
	}

	rows := make([]Row, len(totals))
	for i, t := range totals {
		rows[i] = Row{
			PersonTotal:  t,
			Paid:         paid[t.PersonID],
			SubtotalText: money.Format(t.Subtotal),
			TaxText:      money.Format(t.TaxShare),
			TipText:      money.Format(t.TipShare),
			TotalText:    money.Format(t.Total),
		}
	}
	return rows
}

// Outstanding sums the totals of people who have not paid.
func Outstanding(rows []Row) float64 {
	var sum float64
	for _, row := range rows {
		if !row.Paid {
			sum += row.Total
		}
	}
	return sum
}
