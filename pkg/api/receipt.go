// Package api defines the wire messages of the receiptsplitter.v1
// ReceiptService. Messages are plain structs carried by the JSON codec.
package api

// Person is a person on a receipt.
type Person struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Paid bool   `json:"paid"`
}

// Item is a receipt line item.
type Item struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Responsible []string `json:"responsible"`
}

// Receipt is the full editable state of one receipt.
type Receipt struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Tax       float64  `json:"tax"`
	Tip       float64  `json:"tip"`
	SplitMode string   `json:"split_mode"`
	People    []Person `json:"people"`
	Items     []Item   `json:"items"`
	CreatedAt int64    `json:"created_at,omitempty"`
}

// PersonItem is one person's share of an item.
type PersonItem struct {
	ItemID string  `json:"item_id"`
	Name   string  `json:"name"`
	Share  float64 `json:"share"`
}

// PersonTotal is one row of the totals table.
type PersonTotal struct {
	PersonID string       `json:"person_id"`
	Name     string       `json:"name"`
	Paid     bool         `json:"paid"`
	Subtotal float64      `json:"subtotal"`
	TaxShare float64      `json:"tax_share"`
	TipShare float64      `json:"tip_share"`
	Total    float64      `json:"total"`
	Items    []PersonItem `json:"items"`

	// Display strings, two decimal places.
	SubtotalText string `json:"subtotal_text"`
	TaxText      string `json:"tax_text"`
	TipText      string `json:"tip_text"`
	TotalText    string `json:"total_text"`
}

// Summary holds receipt-level totals.
type Summary struct {
	ItemsSubtotal      float64 `json:"items_subtotal"`
	AssignedSubtotal   float64 `json:"assigned_subtotal"`
	UnassignedSubtotal float64 `json:"unassigned_subtotal"`
	Tax                float64 `json:"tax"`
	Tip                float64 `json:"tip"`
	GrandTotal         float64 `json:"grand_total"`
	AttributedTotal    float64 `json:"attributed_total"`
	Outstanding        float64 `json:"outstanding"`
}

// Totals is the computed split of a receipt, sorted by person name.
type Totals struct {
	People  []PersonTotal `json:"people"`
	Summary Summary       `json:"summary"`
}

// ReceiptSummary is a receipt as shown in a listing.
type ReceiptSummary struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	PeopleCount int     `json:"people_count"`
	ItemCount   int     `json:"item_count"`
	GrandTotal  float64 `json:"grand_total"`
	CreatedAt   int64   `json:"created_at"`
}
