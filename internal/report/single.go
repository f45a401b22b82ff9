package report

import (
	"strconv"

	"github.com/tallyup/tallyup/internal/models"
	"github.com/tallyup/tallyup/internal/money"
)

// ForOne builds the single-consumer quantity-split report: the lines the
// consumer claimed, the receipt's adjustments applied sequentially, and
// the amount owed.
//
// Orders with a zero claimed quantity are skipped entirely. With nothing
// claimed and no adjustments the report still renders header and a zero
// total rather than failing.
func ForOne(receipt models.Receipt, orders []models.Order) (out string, err error) {
	defer guard(&out, &err)

	var b builder
	appendHeader(&b, receipt)

	subtotal, items := claimedLines(orders)
	if len(items.lines) > 0 {
		b.thin()
		b.lines = append(b.lines, items.lines...)
		b.thin()
	}

	appendConsumerSummary(&b, receipt, subtotal)

	return b.render(), nil
}

// claimedLines accumulates the item lines for every order with a positive
// claimed quantity and returns the running subtotal.
func claimedLines(orders []models.Order) (float64, builder) {
	var b builder
	var subtotal float64
	index := 0
	for _, order := range orders {
		if order.Claimed <= 0 || order.Claimed > order.Quantity {
			continue
		}
		index++
		lineTotal := money.Round2(float64(order.Claimed) * order.Price)
		note := ""
		if money.MoreThanOne(order.Claimed) {
			note = strconv.Itoa(order.Claimed) + " x " + Amount(order.Price) + " = "
		}
		b.item(index, label(order.Name, order.TranslatedName), note, lineTotal)
		subtotal = money.Round2(subtotal + lineTotal)
	}
	return subtotal, b
}

func appendHeader(b *builder, receipt models.Receipt) {
	if receipt.Name != "" {
		b.text(label(receipt.Name, receipt.TranslatedName))
	}
	if receipt.Date != "" {
		b.text(receipt.Date)
	}
}
