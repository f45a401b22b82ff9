package models

// Order represents a single line item on a receipt, owned by exactly one
// receipt. Deleting the receipt cascades to its orders.
type Order struct {
	// ID is the unique identifier for the order (UUID format).
	ID string `json:"id"`

	// ReceiptID is the owning receipt.
	ReceiptID string `json:"receipt_id"`

	// Name is the product line description.
	Name string `json:"name"`

	// TranslatedName is an optional translation of Name.
	TranslatedName string `json:"translated_name,omitempty"`

	// Quantity is the purchased unit count, at least 1.
	Quantity int `json:"quantity"`

	// Price is the unit price, not the line total.
	Price float64 `json:"price"`

	// Claimed is how many units the current consumer claims in a split
	// session, always within [0, Quantity]. It is session state: never
	// persisted, reset to zero whenever a split screen is (re)entered.
	Claimed int `json:"claimed,omitempty"`
}
