package report

import (
	"github.com/tallyup/tallyup/internal/models"
	"github.com/tallyup/tallyup/internal/money"
)

// adjustment is one applied step of the discount → tip → tax → extras
// chain, with the running total after the step.
type adjustment struct {
	label    string
	amount   float64 // absolute delta, rounded
	negative bool
	running  float64
}

// adjustments applies the receipt's percent adjustments to subtotal in the
// fixed order discount, tip, tax, each step compounding on the already
// adjusted running total, then the flat extra charges. The caller decides
// whether the chain applies at all (it is skipped for a zero subtotal).
func adjustments(r models.Receipt, subtotal float64) []adjustment {
	total := money.Round2(subtotal)
	var steps []adjustment

	if r.Discount > 0 {
		cut := money.Round2(total * r.Discount / 100)
		total = money.Round2(total - cut)
		steps = append(steps, adjustment{
			label:    "Discount " + Percent(r.Discount),
			amount:   cut,
			negative: true,
			running:  total,
		})
	}
	if r.Tip > 0 {
		add := money.Round2(total * r.Tip / 100)
		total = money.Round2(total + add)
		steps = append(steps, adjustment{label: "Tip " + Percent(r.Tip), amount: add, running: total})
	}
	if r.Tax > 0 {
		add := money.Round2(total * r.Tax / 100)
		total = money.Round2(total + add)
		steps = append(steps, adjustment{label: "Tax " + Percent(r.Tax), amount: add, running: total})
	}
	for _, extra := range r.Extras {
		add := money.Round2(extra.Amount)
		total = money.Round2(total + add)
		steps = append(steps, adjustment{label: extra.Label, amount: add, running: total})
	}
	return steps
}

// adjustedTotal is the math-only form of the chain: the consumer's (or
// receipt's) total after all adjustments.
func adjustedTotal(r models.Receipt, subtotal float64) float64 {
	subtotal = money.Round2(subtotal)
	if subtotal == 0 || !r.HasAdjustments() {
		return subtotal
	}
	steps := adjustments(r, subtotal)
	return steps[len(steps)-1].running
}

// share returns one sharer's contribution for a split order: the full
// price for a sole consumer, round2(price/n) when n share it. The division
// happens before rounding, never after.
func share(order models.SplitOrder) float64 {
	n := len(order.Consumers)
	if n <= 1 {
		return money.Round2(order.Price)
	}
	return money.Round2(order.Price / float64(n))
}

// consumerSubtotal sums the shares of every order assigned to name,
// rounding at each accumulation step.
func consumerSubtotal(orders []models.SplitOrder, name string) float64 {
	var subtotal float64
	for _, order := range orders {
		if !assignedTo(order, name) {
			continue
		}
		subtotal = money.Round2(subtotal + share(order))
	}
	return subtotal
}

func assignedTo(order models.SplitOrder, name string) bool {
	for _, consumer := range order.Consumers {
		if consumer == name {
			return true
		}
	}
	return false
}

// ConsumerSubtotal is the exported form of the per-consumer item sum,
// for consumers of the numbers rather than the text (spreadsheet export).
func ConsumerSubtotal(orders []models.SplitOrder, name string) float64 {
	return consumerSubtotal(orders, name)
}

// ConsumerTotal is one consumer's post-adjustment total for a receipt.
func ConsumerTotal(r models.Receipt, orders []models.SplitOrder, name string) float64 {
	return adjustedTotal(r, consumerSubtotal(orders, name))
}

// Consumers returns the folder's consumers, deduplicated, in
// first-appearance order.
func Consumers(folder []models.ReceiptWithSplitOrders) []string {
	return folderConsumers(folder)
}

// validateSplitOrders rejects input the builders cannot render sanely.
func validateSplitOrders(orders []models.SplitOrder) *Error {
	for _, order := range orders {
		for _, consumer := range order.Consumers {
			if consumer == "" {
				return badInput("empty consumer name on item %q", order.Name)
			}
		}
	}
	return nil
}
