package report

import (
	"strconv"

	"github.com/tallyup/tallyup/internal/models"
	"github.com/tallyup/tallyup/internal/money"
)

// ForAllConsumers builds the multi-consumer report for one receipt: one
// block per consumer (in first-appearance order) listing that consumer's
// item shares, with the receipt's adjustments applied to the consumer's
// own subtotal.
func ForAllConsumers(receipt models.Receipt, orders []models.SplitOrder) (out string, err error) {
	defer guard(&out, &err)

	if verr := validateSplitOrders(orders); verr != nil {
		return "", verr
	}

	var b builder
	appendHeader(&b, receipt)

	for _, consumer := range models.ConsumersOf(orders) {
		b.divider()
		b.text(Bullet + consumer)
		subtotal := appendConsumerItems(&b, orders, consumer)
		appendConsumerSummary(&b, receipt, subtotal)
	}

	return b.render(), nil
}

// appendConsumerItems writes the indexed item lines for every order
// assigned to the consumer and returns the consumer's subtotal. Shared
// items carry the "1/n x" annotation; items the consumer has to themselves
// render just the price.
func appendConsumerItems(b *builder, orders []models.SplitOrder, consumer string) float64 {
	var subtotal float64
	index := 0
	for _, order := range orders {
		if !assignedTo(order, consumer) {
			continue
		}
		index++
		portion := share(order)
		note := ""
		if n := len(order.Consumers); money.MoreThanOne(n) {
			note = "1/" + strconv.Itoa(n) + " x " + Amount(order.Price) + " = "
		}
		b.item(index, label(order.Name, order.TranslatedName), note, portion)
		subtotal = money.Round2(subtotal + portion)
	}
	return subtotal
}

// appendConsumerSummary writes the adjustment chain (when applicable) and
// the consumer's total for one receipt.
func appendConsumerSummary(b *builder, receipt models.Receipt, subtotal float64) float64 {
	total := subtotal
	if receipt.HasAdjustments() && money.NotZero(subtotal) {
		b.amount("Subtotal", subtotal)
		for _, step := range adjustments(receipt, subtotal) {
			if step.negative {
				b.negAmount(step.label, step.amount)
			} else {
				b.amount(step.label, step.amount)
			}
			total = step.running
		}
	}
	b.amount("Total", total)
	return total
}
