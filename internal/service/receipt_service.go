package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/receiptsplitter/internal/calculator"
	"github.com/mmynk/receiptsplitter/internal/models"
	"github.com/mmynk/receiptsplitter/internal/storage"
	"github.com/mmynk/receiptsplitter/pkg/api"
	"github.com/mmynk/receiptsplitter/pkg/api/apiconnect"
)

// Ensure ReceiptService implements the Connect handler interface
var _ apiconnect.ReceiptServiceHandler = (*ReceiptService)(nil)

// ReceiptService implements the Connect ReceiptService
type ReceiptService struct {
	store storage.Store
}

// NewReceiptService creates a new ReceiptService with the given storage backend.
func NewReceiptService(store storage.Store) *ReceiptService {
	return &ReceiptService{store: store}
}

// modify applies fn to the stored receipt atomically and logs failures
// under op.
func (s *ReceiptService) modify(ctx context.Context, op, receiptID string, fn func(r *models.Receipt) error) (*models.Receipt, error) {
	r, err := s.store.ModifyReceipt(ctx, receiptID, fn)
	if err != nil {
		slog.Error(op+" failed", "receipt_id", receiptID, "error", err)
		return nil, toConnectError(err)
	}
	return r, nil
}

// CreateReceipt creates an empty receipt and persists it to storage.
func (s *ReceiptService) CreateReceipt(ctx context.Context, req *connect.Request[api.CreateReceiptRequest]) (*connect.Response[api.ReceiptResponse], error) {
	mode, err := models.ParseSplitMode(req.Msg.SplitMode)
	if err != nil {
		slog.Error("CreateReceipt split mode validation failed", "split_mode", req.Msg.SplitMode, "error", err)
		return nil, toConnectError(err)
	}

	r := models.NewReceipt(req.Msg.Title)
	r.SplitMode = mode
	r.SetTaxText(req.Msg.Tax)
	r.SetTipText(req.Msg.Tip)

	// Save to storage (sets CreatedAt)
	if err := s.store.CreateReceipt(ctx, r); err != nil {
		slog.Error("CreateReceipt failed", "error", err)
		return nil, toConnectError(err)
	}
	slog.Info("Receipt created", "receipt_id", r.ID, "split_mode", r.Mode())

	return connect.NewResponse(toReceiptResponse(r)), nil
}

// GetReceipt retrieves a receipt with its current totals.
func (s *ReceiptService) GetReceipt(ctx context.Context, req *connect.Request[api.GetReceiptRequest]) (*connect.Response[api.ReceiptResponse], error) {
	r, err := s.store.GetReceipt(ctx, req.Msg.ReceiptID)
	if err != nil {
		slog.Error("GetReceipt failed", "receipt_id", req.Msg.ReceiptID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(toReceiptResponse(r)), nil
}

// ListReceipts returns every stored receipt in creation order.
func (s *ReceiptService) ListReceipts(ctx context.Context, _ *connect.Request[api.ListReceiptsRequest]) (*connect.Response[api.ListReceiptsResponse], error) {
	receipts, err := s.store.ListReceipts(ctx)
	if err != nil {
		slog.Error("ListReceipts failed", "error", err)
		return nil, toConnectError(err)
	}

	summaries := make([]api.ReceiptSummary, len(receipts))
	for i, r := range receipts {
		summary := calculator.Summarize(r, calculator.ComputeTotals(r))
		summaries[i] = api.ReceiptSummary{
			ID:          r.ID,
			Title:       r.Title,
			PeopleCount: len(r.People),
			ItemCount:   len(r.Items),
			GrandTotal:  summary.GrandTotal,
			CreatedAt:   r.CreatedAt,
		}
	}
	return connect.NewResponse(&api.ListReceiptsResponse{Receipts: summaries}), nil
}

// UpdateReceipt changes the title, tax, tip or split mode of a receipt.
func (s *ReceiptService) UpdateReceipt(ctx context.Context, req *connect.Request[api.UpdateReceiptRequest]) (*connect.Response[api.ReceiptResponse], error) {
	msg := req.Msg

	var mode models.SplitMode
	if msg.SplitMode != nil {
		var err error
		if mode, err = models.ParseSplitMode(*msg.SplitMode); err != nil {
			slog.Error("UpdateReceipt split mode validation failed", "split_mode", *msg.SplitMode, "error", err)
			return nil, toConnectError(err)
		}
	}

	r, err := s.modify(ctx, "UpdateReceipt", msg.ReceiptID, func(r *models.Receipt) error {
		if msg.Title != nil {
			r.Title = *msg.Title
		}
		if msg.Tax != nil {
			r.SetTaxText(*msg.Tax)
		}
		if msg.Tip != nil {
			r.SetTipText(*msg.Tip)
		}
		if msg.SplitMode != nil {
			r.SplitMode = mode
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(toReceiptResponse(r)), nil
}

// DeleteReceipt removes a receipt from storage.
func (s *ReceiptService) DeleteReceipt(ctx context.Context, req *connect.Request[api.DeleteReceiptRequest]) (*connect.Response[api.DeleteReceiptResponse], error) {
	if err := s.store.DeleteReceipt(ctx, req.Msg.ReceiptID); err != nil {
		slog.Error("DeleteReceipt failed", "receipt_id", req.Msg.ReceiptID, "error", err)
		return nil, toConnectError(err)
	}
	slog.Info("Receipt deleted", "receipt_id", req.Msg.ReceiptID)
	return connect.NewResponse(&api.DeleteReceiptResponse{}), nil
}

// AddPerson appends a person to a receipt.
func (s *ReceiptService) AddPerson(ctx context.Context, req *connect.Request[api.AddPersonRequest]) (*connect.Response[api.AddPersonResponse], error) {
	var person models.Person
	r, err := s.modify(ctx, "AddPerson", req.Msg.ReceiptID, func(r *models.Receipt) error {
		person = r.AddPerson()
		return r.UpdatePerson(person.ID, func(p *models.Person) {
			p.Name = req.Msg.Name
			person = *p
		})
	})
	if err != nil {
		return nil, err
	}
	slog.Debug("Person added", "receipt_id", r.ID, "person_id", person.ID)

	return connect.NewResponse(&api.AddPersonResponse{
		Person:  toAPIPerson(person),
		Receipt: toAPIReceipt(r),
		Totals:  computeTotals(r),
	}), nil
}

// UpdatePerson renames a person or changes their paid flag.
func (s *ReceiptService) UpdatePerson(ctx context.Context, req *connect.Request[api.UpdatePersonRequest]) (*connect.Response[api.ReceiptResponse], error) {
	msg := req.Msg
	r, err := s.modify(ctx, "UpdatePerson", msg.ReceiptID, func(r *models.Receipt) error {
		return r.UpdatePerson(msg.PersonID, func(p *models.Person) {
			if msg.Name != nil {
				p.Name = *msg.Name
			}
			if msg.Paid != nil {
				p.Paid = *msg.Paid
			}
		})
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(toReceiptResponse(r)), nil
}

// RemovePerson removes a person and every assignment that references them.
func (s *ReceiptService) RemovePerson(ctx context.Context, req *connect.Request[api.RemovePersonRequest]) (*connect.Response[api.ReceiptResponse], error) {
	r, err := s.modify(ctx, "RemovePerson", req.Msg.ReceiptID, func(r *models.Receipt) error {
		return r.RemovePerson(req.Msg.PersonID)
	})
	if err != nil {
		return nil, err
	}
	slog.Debug("Person removed", "receipt_id", r.ID, "person_id", req.Msg.PersonID)
	return connect.NewResponse(toReceiptResponse(r)), nil
}

// AddItem appends an unassigned item to a receipt.
func (s *ReceiptService) AddItem(ctx context.Context, req *connect.Request[api.AddItemRequest]) (*connect.Response[api.AddItemResponse], error) {
	var item models.Item
	r, err := s.modify(ctx, "AddItem", req.Msg.ReceiptID, func(r *models.Receipt) error {
		item = r.AddItem()
		return r.UpdateItem(item.ID, func(it *models.Item) {
			it.Name = req.Msg.Name
			it.SetPriceText(req.Msg.Price)
		})
	})
	if err != nil {
		return nil, err
	}
	item, _ = r.Item(item.ID)
	slog.Debug("Item added", "receipt_id", r.ID, "item_id", item.ID, "price", item.Price)

	return connect.NewResponse(&api.AddItemResponse{
		Item:    toAPIItem(item),
		Receipt: toAPIReceipt(r),
		Totals:  computeTotals(r),
	}), nil
}

// UpdateItem renames or reprices an item. Assignments are kept.
func (s *ReceiptService) UpdateItem(ctx context.Context, req *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.ReceiptResponse], error) {
	msg := req.Msg
	r, err := s.modify(ctx, "UpdateItem", msg.ReceiptID, func(r *models.Receipt) error {
		return r.UpdateItem(msg.ItemID, func(it *models.Item) {
			if msg.Name != nil {
				it.Name = *msg.Name
			}
			if msg.Price != nil {
				it.SetPriceText(*msg.Price)
			}
		})
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(toReceiptResponse(r)), nil
}

// RemoveItem deletes an item from a receipt.
func (s *ReceiptService) RemoveItem(ctx context.Context, req *connect.Request[api.RemoveItemRequest]) (*connect.Response[api.ReceiptResponse], error) {
	r, err := s.modify(ctx, "RemoveItem", req.Msg.ReceiptID, func(r *models.Receipt) error {
		return r.RemoveItem(req.Msg.ItemID)
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(toReceiptResponse(r)), nil
}

// ToggleAssignment flips whether a person shares an item.
func (s *ReceiptService) ToggleAssignment(ctx context.Context, req *connect.Request[api.ToggleAssignmentRequest]) (*connect.Response[api.ToggleAssignmentResponse], error) {
	msg := req.Msg
	var assigned bool
	r, err := s.modify(ctx, "ToggleAssignment", msg.ReceiptID, func(r *models.Receipt) error {
		var err error
		assigned, err = r.ToggleResponsible(msg.ItemID, msg.PersonID)
		return err
	})
	if err != nil {
		return nil, err
	}
	slog.Debug("Assignment toggled",
		"receipt_id", r.ID,
		"item_id", msg.ItemID,
		"person_id", msg.PersonID,
		"assigned", assigned,
	)

	return connect.NewResponse(&api.ToggleAssignmentResponse{
		Assigned: assigned,
		Receipt:  toAPIReceipt(r),
		Totals:   computeTotals(r),
	}), nil
}

// ComputeTotals computes the split of a stored receipt.
func (s *ReceiptService) ComputeTotals(ctx context.Context, req *connect.Request[api.ComputeTotalsRequest]) (*connect.Response[api.TotalsResponse], error) {
	r, err := s.store.GetReceipt(ctx, req.Msg.ReceiptID)
	if err != nil {
		slog.Error("ComputeTotals failed", "receipt_id", req.Msg.ReceiptID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.TotalsResponse{Totals: computeTotals(r)}), nil
}

// CalculateTotals computes the split of a receipt supplied in the request
// without storing it.
func (s *ReceiptService) CalculateTotals(_ context.Context, req *connect.Request[api.CalculateTotalsRequest]) (*connect.Response[api.TotalsResponse], error) {
	r, err := fromAPIReceipt(req.Msg.Receipt)
	if err != nil {
		slog.Error("CalculateTotals failed", "error", err)
		return nil, toConnectError(err)
	}

	totals := computeTotals(r)
	for _, pt := range totals.People {
		slog.Debug("Person total",
			"person", pt.Name,
			"subtotal", pt.Subtotal,
			"tax", pt.TaxShare,
			"tip", pt.TipShare,
			"total", pt.Total,
			"items_count", len(pt.Items),
		)
	}
	return connect.NewResponse(&api.TotalsResponse{Totals: totals}), nil
}
