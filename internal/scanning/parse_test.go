package scanning

import "testing"

func TestParseReceiptJSON(t *testing.T) {
	text := `{
		"receiptName": "Cafe Luna",
		"date": "01/02/2025",
		"orders": [
			{"name": "Soup", "quantity": 2, "price": 5.00},
			{"name": "Bread", "quantity": 1, "price": 2.50}
		],
		"total": 12.50,
		"tax": 8.875,
		"discount": 0,
		"tip": 0
	}`

	data, err := parseReceiptJSON(text)
	if err != nil {
		t.Fatalf("parseReceiptJSON() error = %v", err)
	}
	if data.ReceiptName != "Cafe Luna" {
		t.Errorf("ReceiptName = %q", data.ReceiptName)
	}
	if data.Date != "2025-01-02" {
		t.Errorf("Date = %q, want normalized 2025-01-02", data.Date)
	}
	if len(data.Orders) != 2 {
		t.Fatalf("got %d orders, want 2", len(data.Orders))
	}
	if data.Orders[0].Quantity != 2 || data.Orders[0].Price != 5.00 {
		t.Errorf("order 0 = %+v", data.Orders[0])
	}
	if data.Tax != 8.875 {
		t.Errorf("Tax = %v", data.Tax)
	}
}

func TestParseReceiptJSONStripsMarkdownFences(t *testing.T) {
	text := "```json\n{\"receiptName\": \"Diner\", \"date\": \"\", \"orders\": [], \"total\": 4}\n```"
	data, err := parseReceiptJSON(text)
	if err != nil {
		t.Fatalf("parseReceiptJSON() error = %v", err)
	}
	if data.ReceiptName != "Diner" || data.Total != 4 {
		t.Errorf("data = %+v", data)
	}
}

func TestParseReceiptJSONIgnoresSurroundingProse(t *testing.T) {
	text := `Here is the extraction you asked for:
{"receiptName": "Kiosk", "orders": [], "total": 1.5}
Let me know if you need anything else.`
	data, err := parseReceiptJSON(text)
	if err != nil {
		t.Fatalf("parseReceiptJSON() error = %v", err)
	}
	if data.ReceiptName != "Kiosk" {
		t.Errorf("ReceiptName = %q", data.ReceiptName)
	}
}

func TestParseReceiptJSONNoObject(t *testing.T) {
	if _, err := parseReceiptJSON("sorry, the image is unreadable"); err == nil {
		t.Error("expected error for response without JSON")
	}
}

func TestNormalizeClampsInvalidValues(t *testing.T) {
	text := `{
		"receiptName": "  Spaced  ",
		"orders": [
			{"name": "Neg", "quantity": 0, "price": -3},
			{"name": "   ", "quantity": 1, "price": 1}
		],
		"total": -10,
		"tax": 150,
		"discount": -5,
		"tip": 20
	}`

	data, err := parseReceiptJSON(text)
	if err != nil {
		t.Fatalf("parseReceiptJSON() error = %v", err)
	}
	if data.ReceiptName != "Spaced" {
		t.Errorf("ReceiptName = %q, want trimmed", data.ReceiptName)
	}
	if data.Total != 0 {
		t.Errorf("Total = %v, want clamped 0", data.Total)
	}
	if data.Tax != 100 {
		t.Errorf("Tax = %v, want clamped 100", data.Tax)
	}
	if data.Discount != 0 {
		t.Errorf("Discount = %v, want clamped 0", data.Discount)
	}
	if data.Tip != 20 {
		t.Errorf("Tip = %v", data.Tip)
	}
	if len(data.Orders) != 1 {
		t.Fatalf("got %d orders, want 1 (blank name dropped)", len(data.Orders))
	}
	if data.Orders[0].Quantity != 1 || data.Orders[0].Price != 0 {
		t.Errorf("order = %+v, want quantity floored to 1 and price clamped", data.Orders[0])
	}
}

func TestNormalizeDatePassesUnknownLayoutsThrough(t *testing.T) {
	if got := normalizeDate("sometime in March"); got != "sometime in March" {
		t.Errorf("normalizeDate = %q", got)
	}
	if got := normalizeDate("2025/01/31"); got != "2025-01-31" {
		t.Errorf("normalizeDate = %q, want 2025-01-31", got)
	}
}
