// Package export renders folder splits into spreadsheet workbooks.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tallyup/tallyup/internal/models"
	"github.com/tallyup/tallyup/internal/money"
	"github.com/tallyup/tallyup/internal/report"
)

const sheetName = "Split"

// FolderWorkbook renders a folder split as an xlsx workbook: one row per
// consumer per receipt they appear on, a grand-total row per consumer,
// and a final folder total. Returns the serialized file.
func FolderWorkbook(folder []models.ReceiptWithSplitOrders) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	header := []any{"Consumer", "Receipt", "Date", "Subtotal", "Total"}
	if err := setRow(f, 1, header); err != nil {
		return nil, err
	}

	row := 2
	var folderTotal float64
	for _, name := range report.Consumers(folder) {
		var grand float64
		for _, entry := range folder {
			subtotal := report.ConsumerSubtotal(entry.Orders, name)
			if subtotal == 0 {
				continue
			}
			total := report.ConsumerTotal(entry.Receipt, entry.Orders, name)
			grand += total
			cells := []any{name, receiptTitle(entry.Receipt), entry.Receipt.Date, subtotal, total}
			if err := setRow(f, row, cells); err != nil {
				return nil, err
			}
			row++
		}
		grand = money.Round2(grand)
		folderTotal += grand
		if err := setRow(f, row, []any{name, "Total", "", "", grand}); err != nil {
			return nil, err
		}
		row++
	}

	if err := setRow(f, row, []any{"Everyone", "Folder total", "", "", money.Round2(folderTotal)}); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, row int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
		return fmt.Errorf("writing row %d: %w", row, err)
	}
	return nil
}

func receiptTitle(r models.Receipt) string {
	switch {
	case r.Name != "":
		return r.Name
	case r.Date != "":
		return r.Date
	default:
		return "Receipt"
	}
}
