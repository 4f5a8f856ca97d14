package api

// Amounts on edit requests are text and parsed leniently: anything that is
// not a non-negative number counts as 0. Pointer fields are optional and
// left unchanged when nil.

type CreateReceiptRequest struct {
	Title     string `json:"title"`
	Tax       string `json:"tax"`
	Tip       string `json:"tip"`
	SplitMode string `json:"split_mode"`
}

type GetReceiptRequest struct {
	ReceiptID string `json:"receipt_id"`
}

type ListReceiptsRequest struct{}

type ListReceiptsResponse struct {
	Receipts []ReceiptSummary `json:"receipts"`
}

type UpdateReceiptRequest struct {
	ReceiptID string  `json:"receipt_id"`
	Title     *string `json:"title,omitempty"`
	Tax       *string `json:"tax,omitempty"`
	Tip       *string `json:"tip,omitempty"`
	SplitMode *string `json:"split_mode,omitempty"`
}

type DeleteReceiptRequest struct {
	ReceiptID string `json:"receipt_id"`
}

type DeleteReceiptResponse struct{}

type AddPersonRequest struct {
	ReceiptID string `json:"receipt_id"`
	Name      string `json:"name"`
}

type AddPersonResponse struct {
	Person  Person  `json:"person"`
	Receipt Receipt `json:"receipt"`
	Totals  Totals  `json:"totals"`
}

type UpdatePersonRequest struct {
	ReceiptID string  `json:"receipt_id"`
	PersonID  string  `json:"person_id"`
	Name      *string `json:"name,omitempty"`
	Paid      *bool   `json:"paid,omitempty"`
}

type RemovePersonRequest struct {
	ReceiptID string `json:"receipt_id"`
	PersonID  string `json:"person_id"`
}

type AddItemRequest struct {
	ReceiptID string `json:"receipt_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
}

type AddItemResponse struct {
	Item    Item    `json:"item"`
	Receipt Receipt `json:"receipt"`
	Totals  Totals  `json:"totals"`
}

type UpdateItemRequest struct {
	ReceiptID string  `json:"receipt_id"`
	ItemID    string  `json:"item_id"`
	Name      *string `json:"name,omitempty"`
	Price     *string `json:"price,omitempty"`
}

type RemoveItemRequest struct {
	ReceiptID string `json:"receipt_id"`
	ItemID    string `json:"item_id"`
}

type ToggleAssignmentRequest struct {
	ReceiptID string `json:"receipt_id"`
	ItemID    string `json:"item_id"`
	PersonID  string `json:"person_id"`
}

type ToggleAssignmentResponse struct {
	// Assigned is the membership state after the toggle.
	Assigned bool    `json:"assigned"`
	Receipt  Receipt `json:"receipt"`
	Totals   Totals  `json:"totals"`
}

type ComputeTotalsRequest struct {
	ReceiptID string `json:"receipt_id"`
}

// CalculateTotalsRequest carries a receipt that is not stored.
type CalculateTotalsRequest struct {
	Receipt Receipt `json:"receipt"`
}

type TotalsResponse struct {
	Totals Totals `json:"totals"`
}

// ReceiptResponse is returned by calls that read or change a whole receipt.
type ReceiptResponse struct {
	Receipt Receipt `json:"receipt"`
	Totals  Totals  `json:"totals"`
}


func (x *GetReceiptRequest) GetReceiptID() string {
	if x != nil {
		return x.ReceiptID
	}
	return ""
}

func (x *UpdateReceiptRequest) GetReceiptID() string {
	if x != nil {
		return x.ReceiptID
	}
	return ""
}

func (x *DeleteReceiptRequest) GetReceiptID() string {
	if x != nil {
		return x.ReceiptID
	}
	return ""
}

func (x *AddPersonRequest) GetReceiptID() string {
	if x != nil {
		return x.ReceiptID
	}
	return ""
}

func (x *UpdatePersonRequest) GetReceiptID() string {
	if x != nil {
		return x.ReceiptID
	}
	return ""
}

func (x *RemovePersonRequest) GetReceiptID() string {
	if x != nil {
		return x.ReceiptID
	}
	return ""
}

func (x *AddItemRequest) GetReceiptID() string {
	if x != nil {
		return x.ReceiptID
	}
	return ""
}

func (x *UpdateItemRequest) GetReceiptID() string {
	if x != nil {
		return x.ReceiptID
	}
	return ""
}

func (x *RemoveItemRequest) GetReceiptID() string {
	if x != nil {
		return x.ReceiptID
	}
	return ""
}

func (x *ToggleAssignmentRequest) GetReceiptID() string {
	if x != nil {
		return x.ReceiptID
	}
	return ""
}

func (x *ComputeTotalsRequest) GetReceiptID() string {
	if x != nil {
		return x.ReceiptID
	}
	return ""
}
