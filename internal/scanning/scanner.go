// Package scanning extracts structured receipt data from photos via a
// vision model. The rest of the system only sees the Scanner interface
// and the ParsedReceipt record; which model (or fake) sits behind it is a
// wiring decision.
package scanning

import "context"

// ParsedOrder is one extracted line item.
type ParsedOrder struct {
	Name           string  `json:"name"`
	TranslatedName string  `json:"translatedName,omitempty"`
	Quantity       int     `json:"quantity"`
	Price          float64 `json:"price"` // unit price
}

// ParsedReceipt is the structured record a scan produces. Monetary fields
// are floats; percent fields are percents in [0,100].
type ParsedReceipt struct {
	ReceiptName           string        `json:"receiptName"`
	TranslatedReceiptName string        `json:"translatedReceiptName,omitempty"`
	Date                  string        `json:"date"`
	Orders                []ParsedOrder `json:"orders"`
	Total                 float64       `json:"total"`
	Tax                   float64       `json:"tax,omitempty"`
	Discount              float64       `json:"discount,omitempty"`
	Tip                   float64       `json:"tip,omitempty"`
}

// Scanner defines the interface for receipt scanning operations.
type Scanner interface {
	// ScanReceipt analyzes a receipt image and extracts its structure.
	ScanReceipt(ctx context.Context, imageData []byte, contentType string) (*ParsedReceipt, error)
	// Close releases the scanner's resources.
	Close() error
}
