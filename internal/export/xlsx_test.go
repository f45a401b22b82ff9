package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/tallyup/tallyup/internal/models"
)

func tripFolder() []models.ReceiptWithSplitOrders {
	return []models.ReceiptWithSplitOrders{
		{
			Receipt: models.Receipt{Name: "Cafe", Date: "01/01/2025", Discount: 10},
			Orders: []models.SplitOrder{
				{Name: "Soup", Price: 18, Consumers: []string{"Alice"}},
				{Name: "Bread", Price: 10, Consumers: []string{"Bob"}},
			},
		},
		{
			Receipt: models.Receipt{Name: "Diner", Date: "02/01/2025", Tax: 5},
			Orders: []models.SplitOrder{
				{Name: "Pasta", Price: 12.50, Consumers: []string{"Alice"}},
			},
		},
	}
}

func TestFolderWorkbook(t *testing.T) {
	data, err := FolderWorkbook(tripFolder())
	if err != nil {
		t.Fatalf("FolderWorkbook() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}

	want := [][]string{
		{"Consumer", "Receipt", "Date", "Subtotal", "Total"},
		{"Alice", "Cafe", "01/01/2025", "18", "16.2"},
		{"Alice", "Diner", "02/01/2025", "12.5", "13.13"},
		{"Alice", "Total", "", "", "29.33"},
		{"Bob", "Cafe", "01/01/2025", "10", "9"},
		{"Bob", "Total", "", "", "9"},
		{"Everyone", "Folder total", "", "", "38.33"},
	}
	if len(rows) != len(want) {
		t.Fatalf("rows = %d, want %d:\n%v", len(rows), len(want), rows)
	}
	for i, wantRow := range want {
		for j, cell := range wantRow {
			if j >= len(rows[i]) {
				if cell != "" {
					t.Errorf("row %d col %d missing, want %q", i, j, cell)
				}
				continue
			}
			if rows[i][j] != cell {
				t.Errorf("row %d col %d = %q, want %q", i, j, rows[i][j], cell)
			}
		}
	}
}

func TestFolderWorkbookEmpty(t *testing.T) {
	data, err := FolderWorkbook(nil)
	if err != nil {
		t.Fatalf("FolderWorkbook() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	// Header plus the zero folder total.
	if len(rows) != 2 {
		t.Errorf("rows = %d, want 2:\n%v", len(rows), rows)
	}
}
