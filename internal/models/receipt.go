package models

// Receipt represents one parsed purchase record.
type Receipt struct {
	// ID is the unique identifier for the receipt (UUID format).
	// It is assigned by the store at persistence time.
	ID string `json:"id"`

	// FolderID optionally groups receipts that are aggregated together
	// (e.g. all receipts of one trip). Empty means unfiled.
	FolderID string `json:"folder_id,omitempty"`

	// Name is the merchant or receipt title as extracted by the scanner.
	Name string `json:"name"`

	// TranslatedName is an optional translation of Name, shown alongside
	// it in reports when present.
	TranslatedName string `json:"translated_name,omitempty"`

	// Date is display-only free text; the scanner normalizes it when it
	// can, but no arithmetic ever depends on it.
	Date string `json:"date,omitempty"`

	// Total is the grand total as printed on the receipt. It is
	// informational: reports always recompute from line items, so an AI
	// misread here cannot skew anyone's share.
	Total float64 `json:"total"`

	// Tax, Discount and Tip are percent values in [0,100].
	// Zero means the adjustment is absent and is skipped.
	Tax      float64 `json:"tax,omitempty"`
	Discount float64 `json:"discount,omitempty"`
	Tip      float64 `json:"tip,omitempty"`

	// Extras are ad-hoc named flat charges (delivery fee, deposit)
	// added after the percent adjustments.
	Extras []ExtraCharge `json:"extras,omitempty"`

	// CreatedAt is the Unix timestamp when the receipt was persisted.
	CreatedAt int64 `json:"created_at"`
}

// ExtraCharge is a named flat amount applied on top of a receipt's
// percent adjustments.
type ExtraCharge struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// HasAdjustments reports whether any percent adjustment or extra charge
// is present on the receipt.
func (r Receipt) HasAdjustments() bool {
	return r.Discount > 0 || r.Tip > 0 || r.Tax > 0 || len(r.Extras) > 0
}
