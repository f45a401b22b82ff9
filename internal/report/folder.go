package report

import (
	"github.com/tallyup/tallyup/internal/models"
	"github.com/tallyup/tallyup/internal/money"
)

// The folder builders aggregate one consumer's share across every receipt
// in a folder. Each receipt's adjustments apply to the consumer's
// per-receipt subtotal before cross-receipt aggregation, never to the
// grand total.

// ForFolder builds the basic folder report: per consumer, one sub-line per
// receipt the consumer appears on with that receipt's contribution, then
// the consumer's total.
func ForFolder(folder []models.ReceiptWithSplitOrders) (out string, err error) {
	defer guard(&out, &err)

	if verr := validateFolder(folder); verr != nil {
		return "", verr
	}

	var b builder
	for _, consumer := range folderConsumers(folder) {
		b.text(Bullet + consumer)
		var grand float64
		for _, entry := range folder {
			if !appearsOn(entry, consumer) {
				continue
			}
			total := adjustedTotal(entry.Receipt, consumerSubtotal(entry.Orders, consumer))
			b.amount(receiptLabel(entry.Receipt), total)
			grand = money.Round2(grand + total)
		}
		b.amount("Total", grand)
		b.divider()
	}
	return b.render(), nil
}

// ForFolderShort builds the short folder report: a numbered receipt legend
// followed by one grand-total line per consumer.
func ForFolderShort(folder []models.ReceiptWithSplitOrders) (out string, err error) {
	defer guard(&out, &err)

	if verr := validateFolder(folder); verr != nil {
		return "", verr
	}

	var b builder
	for i, entry := range folder {
		legend := receiptLabel(entry.Receipt)
		if entry.Receipt.Date != "" {
			legend += " (" + entry.Receipt.Date + ")"
		}
		b.item(i+1, legend, "", folderReceiptTotal(entry))
	}
	b.thin()
	for _, consumer := range folderConsumers(folder) {
		var grand float64
		for _, entry := range folder {
			if !appearsOn(entry, consumer) {
				continue
			}
			total := adjustedTotal(entry.Receipt, consumerSubtotal(entry.Orders, consumer))
			grand = money.Round2(grand + total)
		}
		b.amount(Bullet+consumer, grand)
	}
	return b.render(), nil
}

// ForFolderLong builds the itemized folder report: per consumer, a
// sub-header per receipt with the consumer's item lines, the receipt's
// adjustment chain when one applies, and the consumer's grand total.
func ForFolderLong(folder []models.ReceiptWithSplitOrders) (out string, err error) {
	defer guard(&out, &err)

	if verr := validateFolder(folder); verr != nil {
		return "", verr
	}

	var b builder
	for _, consumer := range folderConsumers(folder) {
		b.text(Bullet + consumer)
		var grand float64
		for _, entry := range folder {
			if !appearsOn(entry, consumer) {
				continue
			}
			b.text(receiptLabel(entry.Receipt))
			subtotal := appendConsumerItems(&b, entry.Orders, consumer)
			grand = money.Round2(grand + appendConsumerSummary(&b, entry.Receipt, subtotal))
		}
		b.amount("Grand total", grand)
		b.divider()
	}
	return b.render(), nil
}

// folderConsumers returns the consumers across the whole folder,
// deduplicated, in first-appearance order.
func folderConsumers(folder []models.ReceiptWithSplitOrders) []string {
	seen := make(map[string]bool)
	var names []string
	for _, entry := range folder {
		for _, name := range entry.Consumers() {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

// folderReceiptTotal is the receipt's full post-adjustment total across
// all consumers, used in the short report legend.
func folderReceiptTotal(entry models.ReceiptWithSplitOrders) float64 {
	var subtotal float64
	for _, order := range entry.Orders {
		subtotal = money.Round2(subtotal + money.Round2(order.Price))
	}
	return adjustedTotal(entry.Receipt, subtotal)
}

func appearsOn(entry models.ReceiptWithSplitOrders, consumer string) bool {
	for _, order := range entry.Orders {
		if assignedTo(order, consumer) {
			return true
		}
	}
	return false
}

func receiptLabel(receipt models.Receipt) string {
	if receipt.Name != "" {
		return label(receipt.Name, receipt.TranslatedName)
	}
	if receipt.Date != "" {
		return receipt.Date
	}
	return "Receipt"
}

func validateFolder(folder []models.ReceiptWithSplitOrders) *Error {
	for _, entry := range folder {
		if verr := validateSplitOrders(entry.Orders); verr != nil {
			return verr
		}
	}
	return nil
}
