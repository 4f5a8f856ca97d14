package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/receiptsplitter/internal/calculator"
	"github.com/mmynk/receiptsplitter/internal/models"
	"github.com/mmynk/receiptsplitter/internal/money"
	"github.com/mmynk/receiptsplitter/internal/render"
	"github.com/mmynk/receiptsplitter/internal/storage"
	"github.com/mmynk/receiptsplitter/pkg/api"
)

// toConnectError maps domain and storage errors to Connect codes.
func toConnectError(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound),
		errors.Is(err, models.ErrPersonNotFound),
		errors.Is(err, models.ErrItemNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, models.ErrInvalidSplitMode),
		errors.Is(err, models.ErrInvalidReceipt):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func toAPIPerson(p models.Person) api.Person {
	return api.Person{ID: p.ID, Name: p.Name, Paid: p.Paid}
}

func toAPIItem(item models.Item) api.Item {
	responsible := make([]string, len(item.Responsible))
	copy(responsible, item.Responsible)
	return api.Item{
		ID:          item.ID,
		Name:        item.Name,
		Price:       item.Price,
		Responsible: responsible,
	}
}

func toAPIReceipt(r *models.Receipt) api.Receipt {
	people := make([]api.Person, len(r.People))
	for i, p := range r.People {
		people[i] = toAPIPerson(p)
	}
	items := make([]api.Item, len(r.Items))
	for i, item := range r.Items {
		items[i] = toAPIItem(item)
	}
	return api.Receipt{
		ID:        r.ID,
		Title:     r.Title,
		Tax:       r.Tax,
		Tip:       r.Tip,
		SplitMode: string(r.Mode()),
		People:    people,
		Items:     items,
		CreatedAt: r.CreatedAt,
	}
}

// fromAPIReceipt builds a receipt for computation only. Amounts are
// sanitized; the split mode must be valid.
func fromAPIReceipt(msg api.Receipt) (*models.Receipt, error) {
	mode, err := models.ParseSplitMode(msg.SplitMode)
	if err != nil {
		return nil, err
	}

	r := &models.Receipt{
		ID:        msg.ID,
		Title:     msg.Title,
		Tax:       money.Sanitize(msg.Tax),
		Tip:       money.Sanitize(msg.Tip),
		SplitMode: mode,
		People:    make([]models.Person, len(msg.People)),
		Items:     make([]models.Item, len(msg.Items)),
	}
	for i, p := range msg.People {
		r.People[i] = models.Person{ID: p.ID, Name: p.Name, Paid: p.Paid}
	}
	for i, item := range msg.Items {
		r.Items[i] = models.Item{
			ID:          item.ID,
			Name:        item.Name,
			Price:       money.Sanitize(item.Price),
			Responsible: append([]string(nil), item.Responsible...),
		}
	}
	return r, nil
}

// computeTotals runs the split engine and renders the result.
func computeTotals(r *models.Receipt) api.Totals {
	totals := calculator.ComputeTotals(r)
	summary := calculator.Summarize(r, totals)
	rows := render.Rows(r, totals)

	people := make([]api.PersonTotal, len(rows))
	for i, row := range rows {
		items := make([]api.PersonItem, len(row.Items))
		for j, it := range row.Items {
			items[j] = api.PersonItem{ItemID: it.ItemID, Name: it.Name, Share: it.Share}
		}
		people[i] = api.PersonTotal{
			PersonID:     row.PersonID,
			Name:         row.Name,
			Paid:         row.Paid,
			Subtotal:     row.Subtotal,
			TaxShare:     row.TaxShare,
			TipShare:     row.TipShare,
			Total:        row.Total,
			Items:        items,
			SubtotalText: row.SubtotalText,
			TaxText:      row.TaxText,
			TipText:      row.TipText,
			TotalText:    row.TotalText,
		}
	}

	return api.Totals{
		People: people,
		Summary: api.Summary{
			ItemsSubtotal:      summary.ItemsSubtotal,
			AssignedSubtotal:   summary.AssignedSubtotal,
			UnassignedSubtotal: summary.UnassignedSubtotal,
			Tax:                summary.Tax,
			Tip:                summary.Tip,
			GrandTotal:         summary.GrandTotal,
			AttributedTotal:    summary.AttributedTotal,
			Outstanding:        render.Outstanding(rows),
		},
	}
}

func toReceiptResponse(r *models.Receipt) *api.ReceiptResponse {
	return &api.ReceiptResponse{
		Receipt: toAPIReceipt(r),
		Totals:  computeTotals(r),
	}
}
