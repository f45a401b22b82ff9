package scanning

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// parseReceiptJSON extracts and normalizes the model's JSON response. The
// model is asked for bare JSON but routinely wraps it in markdown fences
// or prose, so the parser hunts for the outermost object.
func parseReceiptJSON(text string) (*ParsedReceipt, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSpace(text)

	startIdx := strings.Index(text, "{")
	if startIdx == -1 {
		return nil, fmt.Errorf("no JSON object found in response")
	}
	endIdx := strings.LastIndex(text, "}")
	if endIdx == -1 || endIdx < startIdx {
		return nil, fmt.Errorf("invalid JSON object in response")
	}
	text = text[startIdx : endIdx+1]

	var data ParsedReceipt
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		return nil, fmt.Errorf("unmarshaling json: %w", err)
	}

	normalize(&data)
	return &data, nil
}

// normalize enforces the domain invariants on whatever the model
// produced: percents in [0,100], non-negative amounts, quantity floor 1.
func normalize(data *ParsedReceipt) {
	data.ReceiptName = strings.TrimSpace(data.ReceiptName)
	data.TranslatedReceiptName = strings.TrimSpace(data.TranslatedReceiptName)
	data.Date = normalizeDate(data.Date)

	data.Total = clampAmount(data.Total)
	data.Tax = clampPercent(data.Tax)
	data.Discount = clampPercent(data.Discount)
	data.Tip = clampPercent(data.Tip)

	orders := data.Orders[:0]
	for _, order := range data.Orders {
		order.Name = strings.TrimSpace(order.Name)
		if order.Name == "" {
			continue
		}
		order.TranslatedName = strings.TrimSpace(order.TranslatedName)
		if order.Quantity < 1 {
			order.Quantity = 1
		}
		order.Price = clampAmount(order.Price)
		orders = append(orders, order)
	}
	data.Orders = orders
}

// normalizeDate coerces the extracted date to YYYY-MM-DD when it matches a
// known layout, and passes anything else through untouched: the field is
// display-only.
func normalizeDate(date string) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return ""
	}
	formats := []string{
		"2006-01-02",
		"2006/01/02",
		"01/02/2006",
		"02-01-2006",
		"02.01.2006",
	}
	for _, format := range formats {
		if d, err := time.Parse(format, date); err == nil {
			return d.Format("2006-01-02")
		}
	}
	return date
}

func clampPercent(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func clampAmount(a float64) float64 {
	if a < 0 {
		return 0
	}
	return a
}
