package service

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/receiptsplitter/internal/storage/sqlite"
	"github.com/mmynk/receiptsplitter/pkg/api"
	"github.com/mmynk/receiptsplitter/pkg/api/apiconnect"
)

// setupTestServer creates a test server backed by a temporary SQLite database
func setupTestServer(t *testing.T) (*apiconnect.ReceiptServiceClient, func()) {
	t.Helper()

	// Create temp database
	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	path, handler := apiconnect.NewReceiptServiceHandler(NewReceiptService(store))
	mux := http.NewServeMux()
	mux.Handle(path, handler)

	server := httptest.NewServer(mux)
	client := apiconnect.NewReceiptServiceClient(http.DefaultClient, server.URL)

	cleanup := func() {
		server.Close()
		store.Close()
		os.Remove(tmpFile.Name())
	}
	return client, cleanup
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// dinnerFixture is A and B with a 40 item for A and a 20 item shared by both.
type dinnerFixture struct {
	receiptID string
	alice     string
	bob       string
	steak     string
	wine      string
}

func createDinner(t *testing.T, client *apiconnect.ReceiptServiceClient) dinnerFixture {
	t.Helper()
	ctx := context.Background()

	created, err := client.CreateReceipt(ctx, connect.NewRequest(&api.CreateReceiptRequest{
		Title: "Dinner",
		Tax:   "6",
		Tip:   "9",
	}))
	if err != nil {
		t.Fatalf("CreateReceipt failed: %v", err)
	}
	f := dinnerFixture{receiptID: created.Msg.Receipt.ID}

	addPerson := func(name string) string {
		resp, err := client.AddPerson(ctx, connect.NewRequest(&api.AddPersonRequest{ReceiptID: f.receiptID, Name: name}))
		if err != nil {
			t.Fatalf("AddPerson %s failed: %v", name, err)
		}
		return resp.Msg.Person.ID
	}
	addItem := func(name, price string) string {
		resp, err := client.AddItem(ctx, connect.NewRequest(&api.AddItemRequest{ReceiptID: f.receiptID, Name: name, Price: price}))
		if err != nil {
			t.Fatalf("AddItem %s failed: %v", name, err)
		}
		return resp.Msg.Item.ID
	}
	toggle := func(itemID, personID string) {
		resp, err := client.ToggleAssignment(ctx, connect.NewRequest(&api.ToggleAssignmentRequest{
			ReceiptID: f.receiptID,
			ItemID:    itemID,
			PersonID:  personID,
		}))
		if err != nil {
			t.Fatalf("ToggleAssignment failed: %v", err)
		}
		if !resp.Msg.Assigned {
			t.Fatalf("expected assignment to be on")
		}
	}

	f.alice = addPerson("A")
	f.bob = addPerson("B")
	f.steak = addItem("Steak", "40")
	f.wine = addItem("Wine", "20")
	toggle(f.steak, f.alice)
	toggle(f.wine, f.alice)
	toggle(f.wine, f.bob)
	return f
}

func TestReceipt_ProportionalSplit(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	f := createDinner(t, client)

	resp, err := client.ComputeTotals(context.Background(), connect.NewRequest(&api.ComputeTotalsRequest{ReceiptID: f.receiptID}))
	if err != nil {
		t.Fatalf("ComputeTotals failed: %v", err)
	}

	people := resp.Msg.Totals.People
	if len(people) != 2 {
		t.Fatalf("expected 2 totals, got %d", len(people))
	}

	// A: $50 subtotal, $5 tax (50/60 * 6), $7.50 tip, $62.50 total
	// B: $10 subtotal, $1 tax, $1.50 tip, $12.50 total
	tests := []struct {
		got  api.PersonTotal
		name string
		sub  float64
		tax  float64
		tip  float64
		tot  float64
		text string
	}{
		{people[0], "A", 50, 5, 7.5, 62.5, "62.50"},
		{people[1], "B", 10, 1, 1.5, 12.5, "12.50"},
	}
	for _, tt := range tests {
		if tt.got.Name != tt.name {
			t.Errorf("expected %s, got %s", tt.name, tt.got.Name)
		}
		if !almostEqual(tt.got.Subtotal, tt.sub) {
			t.Errorf("%s subtotal: expected %v, got %v", tt.name, tt.sub, tt.got.Subtotal)
		}
		if !almostEqual(tt.got.TaxShare, tt.tax) {
			t.Errorf("%s tax: expected %v, got %v", tt.name, tt.tax, tt.got.TaxShare)
		}
		if !almostEqual(tt.got.TipShare, tt.tip) {
			t.Errorf("%s tip: expected %v, got %v", tt.name, tt.tip, tt.got.TipShare)
		}
		if !almostEqual(tt.got.Total, tt.tot) {
			t.Errorf("%s total: expected %v, got %v", tt.name, tt.tot, tt.got.Total)
		}
		if tt.got.TotalText != tt.text {
			t.Errorf("%s total text: expected %s, got %s", tt.name, tt.text, tt.got.TotalText)
		}
	}

	// Verify itemized breakdown
	if len(people[0].Items) != 2 {
		t.Errorf("A items: expected 2, got %d", len(people[0].Items))
	}
	if len(people[1].Items) != 1 || people[1].Items[0].Name != "Wine" || people[1].Items[0].Share != 10 {
		t.Errorf("B items: expected Wine share 10, got %+v", people[1].Items)
	}

	summary := resp.Msg.Totals.Summary
	if summary.GrandTotal != 75 {
		t.Errorf("GrandTotal: expected 75, got %f", summary.GrandTotal)
	}
	if !almostEqual(summary.AttributedTotal, 75) {
		t.Errorf("AttributedTotal: expected 75, got %f", summary.AttributedTotal)
	}
	if summary.UnassignedSubtotal != 0 {
		t.Errorf("UnassignedSubtotal: expected 0, got %f", summary.UnassignedSubtotal)
	}
}

func TestReceipt_EqualSplit(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	f := createDinner(t, client)

	mode := "equal"
	resp, err := client.UpdateReceipt(context.Background(), connect.NewRequest(&api.UpdateReceiptRequest{
		ReceiptID: f.receiptID,
		SplitMode: &mode,
	}))
	if err != nil {
		t.Fatalf("UpdateReceipt failed: %v", err)
	}

	if resp.Msg.Receipt.SplitMode != "equal" {
		t.Errorf("expected split mode equal, got %s", resp.Msg.Receipt.SplitMode)
	}
	if resp.Msg.Receipt.Title != "Dinner" || resp.Msg.Receipt.Tax != 6 {
		t.Errorf("unset fields should be unchanged, got %+v", resp.Msg.Receipt)
	}

	people := resp.Msg.Totals.People
	if len(people) != 2 {
		t.Fatalf("expected 2 totals, got %d", len(people))
	}
	for _, pt := range people {
		if pt.TaxShare != 3 || pt.TipShare != 4.5 {
			t.Errorf("%s: expected tax 3 and tip 4.5, got %v and %v", pt.Name, pt.TaxShare, pt.TipShare)
		}
	}
	if people[0].Total != 57.5 {
		t.Errorf("A total: expected 57.5, got %f", people[0].Total)
	}
	if people[1].Total != 17.5 {
		t.Errorf("B total: expected 17.5, got %f", people[1].Total)
	}
}

func TestReceipt_GetReceipt(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	f := createDinner(t, client)

	resp, err := client.GetReceipt(context.Background(), connect.NewRequest(&api.GetReceiptRequest{ReceiptID: f.receiptID}))
	if err != nil {
		t.Fatalf("GetReceipt failed: %v", err)
	}

	r := resp.Msg.Receipt
	if r.Title != "Dinner" {
		t.Errorf("expected title 'Dinner', got '%s'", r.Title)
	}
	if r.SplitMode != "proportional" {
		t.Errorf("expected default split mode proportional, got %s", r.SplitMode)
	}
	if r.CreatedAt == 0 {
		t.Error("expected CreatedAt to be set")
	}
	if len(r.People) != 2 || r.People[0].ID != f.alice || r.People[1].ID != f.bob {
		t.Errorf("unexpected people: %+v", r.People)
	}
	if len(r.Items) != 2 || r.Items[1].ID != f.wine {
		t.Fatalf("unexpected items: %+v", r.Items)
	}
	if got := r.Items[1].Responsible; len(got) != 2 || got[0] != f.alice || got[1] != f.bob {
		t.Errorf("unexpected wine responsible: %v", got)
	}
}

func TestToggleAssignment_Twice(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	f := createDinner(t, client)

	resp, err := client.ToggleAssignment(context.Background(), connect.NewRequest(&api.ToggleAssignmentRequest{
		ReceiptID: f.receiptID,
		ItemID:    f.wine,
		PersonID:  f.bob,
	}))
	if err != nil {
		t.Fatalf("ToggleAssignment failed: %v", err)
	}
	if resp.Msg.Assigned {
		t.Error("expected second toggle to remove the assignment")
	}

	// Alice now carries the whole receipt
	people := resp.Msg.Totals.People
	if people[0].Total != 75 {
		t.Errorf("A total: expected 75, got %f", people[0].Total)
	}
	if people[1].Total != 0 {
		t.Errorf("B total: expected 0, got %f", people[1].Total)
	}
}

func TestRemovePerson_Cascades(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	f := createDinner(t, client)

	resp, err := client.RemovePerson(context.Background(), connect.NewRequest(&api.RemovePersonRequest{
		ReceiptID: f.receiptID,
		PersonID:  f.bob,
	}))
	if err != nil {
		t.Fatalf("RemovePerson failed: %v", err)
	}

	r := resp.Msg.Receipt
	if len(r.People) != 1 {
		t.Fatalf("expected 1 person, got %d", len(r.People))
	}
	if len(r.Items) != 2 {
		t.Errorf("items must survive person removal, got %d", len(r.Items))
	}
	for _, item := range r.Items {
		for _, id := range item.Responsible {
			if id == f.bob {
				t.Errorf("item %s still references removed person", item.Name)
			}
		}
	}

	people := resp.Msg.Totals.People
	if len(people) != 1 || people[0].Subtotal != 60 {
		t.Errorf("expected A subtotal 60, got %+v", people)
	}
}

func TestUpdateItem_KeepsAssignments(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	f := createDinner(t, client)

	name := "Red wine"
	price := "30"
	resp, err := client.UpdateItem(context.Background(), connect.NewRequest(&api.UpdateItemRequest{
		ReceiptID: f.receiptID,
		ItemID:    f.wine,
		Name:      &name,
		Price:     &price,
	}))
	if err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}

	wine := resp.Msg.Receipt.Items[1]
	if wine.ID != f.wine || wine.Name != "Red wine" || wine.Price != 30 {
		t.Errorf("unexpected item: %+v", wine)
	}
	if len(wine.Responsible) != 2 {
		t.Errorf("expected assignments to be kept, got %v", wine.Responsible)
	}
	if resp.Msg.Totals.People[1].Subtotal != 15 {
		t.Errorf("B subtotal: expected 15, got %f", resp.Msg.Totals.People[1].Subtotal)
	}
}

func TestRemoveItem(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	f := createDinner(t, client)

	resp, err := client.RemoveItem(context.Background(), connect.NewRequest(&api.RemoveItemRequest{
		ReceiptID: f.receiptID,
		ItemID:    f.steak,
	}))
	if err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	if len(resp.Msg.Receipt.Items) != 1 {
		t.Errorf("expected 1 item, got %d", len(resp.Msg.Receipt.Items))
	}
	if resp.Msg.Totals.Summary.ItemsSubtotal != 20 {
		t.Errorf("ItemsSubtotal: expected 20, got %f", resp.Msg.Totals.Summary.ItemsSubtotal)
	}
}

func TestUpdatePerson_Paid(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	f := createDinner(t, client)

	paid := true
	resp, err := client.UpdatePerson(context.Background(), connect.NewRequest(&api.UpdatePersonRequest{
		ReceiptID: f.receiptID,
		PersonID:  f.alice,
		Paid:      &paid,
	}))
	if err != nil {
		t.Fatalf("UpdatePerson failed: %v", err)
	}

	if p := resp.Msg.Receipt.People[0]; !p.Paid || p.Name != "A" {
		t.Errorf("expected A to be paid with name kept, got %+v", p)
	}
	if !resp.Msg.Totals.People[0].Paid {
		t.Error("expected paid flag on A's total")
	}
	// Paid never changes the computed numbers
	if !almostEqual(resp.Msg.Totals.People[0].Total, 62.5) {
		t.Errorf("A total: expected 62.5, got %f", resp.Msg.Totals.People[0].Total)
	}
	if !almostEqual(resp.Msg.Totals.Summary.Outstanding, 12.5) {
		t.Errorf("Outstanding: expected 12.5, got %f", resp.Msg.Totals.Summary.Outstanding)
	}
}

func TestLenientAmounts(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	created, err := client.CreateReceipt(ctx, connect.NewRequest(&api.CreateReceiptRequest{Tax: "abc", Tip: "-5"}))
	if err != nil {
		t.Fatalf("CreateReceipt failed: %v", err)
	}
	if created.Msg.Receipt.Tax != 0 || created.Msg.Receipt.Tip != 0 {
		t.Errorf("expected invalid amounts to become 0, got tax %f tip %f", created.Msg.Receipt.Tax, created.Msg.Receipt.Tip)
	}

	item, err := client.AddItem(ctx, connect.NewRequest(&api.AddItemRequest{
		ReceiptID: created.Msg.Receipt.ID,
		Name:      "Mystery",
		Price:     "12,50",
	}))
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if item.Msg.Item.Price != 0 {
		t.Errorf("expected price 0, got %f", item.Msg.Item.Price)
	}
}

func TestCalculateTotals_Stateless(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()

	resp, err := client.CalculateTotals(context.Background(), connect.NewRequest(&api.CalculateTotalsRequest{
		Receipt: api.Receipt{
			Tax:       3,
			SplitMode: "equal",
			People: []api.Person{
				{ID: "a", Name: "Alice"},
				{ID: "b", Name: "Bob"},
				{ID: "c", Name: "Charlie"},
			},
			Items: []api.Item{
				{ID: "pizza", Name: "Pizza", Price: 30, Responsible: []string{"a", "ghost"}},
			},
		},
	}))
	if err != nil {
		t.Fatalf("CalculateTotals failed: %v", err)
	}

	people := resp.Msg.Totals.People
	if len(people) != 3 {
		t.Fatalf("expected 3 totals, got %d", len(people))
	}
	// Unknown IDs are ignored, so Alice carries the whole pizza
	if people[0].Name != "Alice" || people[0].Subtotal != 30 {
		t.Errorf("expected Alice subtotal 30, got %+v", people[0])
	}
	// Equal mode charges everybody, items or not
	for _, pt := range people {
		if pt.TaxShare != 1 {
			t.Errorf("%s tax: expected 1, got %f", pt.Name, pt.TaxShare)
		}
	}

	list, err := client.ListReceipts(context.Background(), connect.NewRequest(&api.ListReceiptsRequest{}))
	if err != nil {
		t.Fatalf("ListReceipts failed: %v", err)
	}
	if len(list.Msg.Receipts) != 0 {
		t.Errorf("CalculateTotals must not store anything, got %d receipts", len(list.Msg.Receipts))
	}
}

func TestListAndDeleteReceipts(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	f := createDinner(t, client)
	other, err := client.CreateReceipt(ctx, connect.NewRequest(&api.CreateReceiptRequest{Title: "Lunch"}))
	if err != nil {
		t.Fatalf("CreateReceipt failed: %v", err)
	}

	list, err := client.ListReceipts(ctx, connect.NewRequest(&api.ListReceiptsRequest{}))
	if err != nil {
		t.Fatalf("ListReceipts failed: %v", err)
	}
	if len(list.Msg.Receipts) != 2 {
		t.Fatalf("expected 2 receipts, got %d", len(list.Msg.Receipts))
	}
	first := list.Msg.Receipts[0]
	if first.ID != f.receiptID || first.PeopleCount != 2 || first.ItemCount != 2 || first.GrandTotal != 75 {
		t.Errorf("unexpected summary: %+v", first)
	}

	if _, err := client.DeleteReceipt(ctx, connect.NewRequest(&api.DeleteReceiptRequest{ReceiptID: f.receiptID})); err != nil {
		t.Fatalf("DeleteReceipt failed: %v", err)
	}

	list, err = client.ListReceipts(ctx, connect.NewRequest(&api.ListReceiptsRequest{}))
	if err != nil {
		t.Fatalf("ListReceipts failed: %v", err)
	}
	if len(list.Msg.Receipts) != 1 || list.Msg.Receipts[0].ID != other.Msg.Receipt.ID {
		t.Errorf("expected only Lunch to remain, got %+v", list.Msg.Receipts)
	}
}

func TestErrorCodes(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	f := createDinner(t, client)
	ctx := context.Background()

	badMode := "weird"
	tests := []struct {
		name string
		call func() error
		want connect.Code
	}{
		{
			name: "unknown receipt",
			call: func() error {
				_, err := client.GetReceipt(ctx, connect.NewRequest(&api.GetReceiptRequest{ReceiptID: "missing"}))
				return err
			},
			want: connect.CodeNotFound,
		},
		{
			name: "delete unknown receipt",
			call: func() error {
				_, err := client.DeleteReceipt(ctx, connect.NewRequest(&api.DeleteReceiptRequest{ReceiptID: "missing"}))
				return err
			},
			want: connect.CodeNotFound,
		},
		{
			name: "toggle unknown person",
			call: func() error {
				_, err := client.ToggleAssignment(ctx, connect.NewRequest(&api.ToggleAssignmentRequest{
					ReceiptID: f.receiptID,
					ItemID:    f.wine,
					PersonID:  "missing",
				}))
				return err
			},
			want: connect.CodeNotFound,
		},
		{
			name: "update unknown item",
			call: func() error {
				_, err := client.UpdateItem(ctx, connect.NewRequest(&api.UpdateItemRequest{ReceiptID: f.receiptID, ItemID: "missing"}))
				return err
			},
			want: connect.CodeNotFound,
		},
		{
			name: "remove unknown person",
			call: func() error {
				_, err := client.RemovePerson(ctx, connect.NewRequest(&api.RemovePersonRequest{ReceiptID: f.receiptID, PersonID: "missing"}))
				return err
			},
			want: connect.CodeNotFound,
		},
		{
			name: "create with bad split mode",
			call: func() error {
				_, err := client.CreateReceipt(ctx, connect.NewRequest(&api.CreateReceiptRequest{SplitMode: badMode}))
				return err
			},
			want: connect.CodeInvalidArgument,
		},
		{
			name: "update with bad split mode",
			call: func() error {
				_, err := client.UpdateReceipt(ctx, connect.NewRequest(&api.UpdateReceiptRequest{ReceiptID: f.receiptID, SplitMode: &badMode}))
				return err
			},
			want: connect.CodeInvalidArgument,
		},
		{
			name: "calculate with bad split mode",
			call: func() error {
				_, err := client.CalculateTotals(ctx, connect.NewRequest(&api.CalculateTotalsRequest{Receipt: api.Receipt{SplitMode: badMode}}))
				return err
			},
			want: connect.CodeInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if got := connect.CodeOf(err); got != tt.want {
				t.Errorf("expected code %v, got %v", tt.want, got)
			}
		})
	}

	// Failed calls leave the receipt untouched
	resp, err := client.GetReceipt(ctx, connect.NewRequest(&api.GetReceiptRequest{ReceiptID: f.receiptID}))
	if err != nil {
		t.Fatalf("GetReceipt failed: %v", err)
	}
	if resp.Msg.Receipt.SplitMode != "proportional" || len(resp.Msg.Receipt.People) != 2 {
		t.Errorf("receipt changed by failed calls: %+v", resp.Msg.Receipt)
	}
}
