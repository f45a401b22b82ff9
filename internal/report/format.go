// Package report builds the shareable text reports: the single-consumer
// quantity-split report, the per-consumer split of one receipt, and the
// three folder-level shapes aggregating a consumer's share across many
// receipts.
//
// All builders are pure and idempotent. Any internal fault is converted to
// an *Error; a partial report is never returned.
package report

import (
	"strconv"

	"github.com/tallyup/tallyup/internal/money"
)

// Fixed pieces of the report display contract. The rendered text is handed
// to share intents verbatim, so these are part of the external surface.
const (
	// Divider separates consumer blocks in multi-consumer reports.
	Divider = "================================"

	// ThinDivider separates the item section inside one report.
	ThinDivider = "--------------------------------"

	// Bullet marks a consumer line.
	Bullet = "· "
)

// Amount renders a monetary value with exactly two decimals.
func Amount(x float64) string {
	return strconv.FormatFloat(money.Round2(x), 'f', 2, 64)
}

// Percent renders a percent value without trailing zeros (10, 7.5).
func Percent(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64) + "%"
}

// label renders a name with its optional translation: "Soup (Суп)".
func label(name, translated string) string {
	if translated == "" {
		return name
	}
	return name + " (" + translated + ")"
}
