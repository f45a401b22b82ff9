package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tallyup/tallyup/internal/models"
)

const folderJSON = `[
  {
    "receipt": {"name": "Cafe", "date": "01/01/2025", "discount": 10},
    "orders": [
      {"name": "Soup", "price": 18, "consumers": ["Alice"]},
      {"name": "Bread", "price": 10, "consumers": ["Bob"]}
    ]
  }
]`

func writeFolderFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "folder.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoadFolder(t *testing.T) {
	folder, err := loadFolder(writeFolderFile(t, folderJSON))
	if err != nil {
		t.Fatalf("loadFolder() error = %v", err)
	}
	if len(folder) != 1 {
		t.Fatalf("receipts = %d, want 1", len(folder))
	}
	if folder[0].Receipt.Discount != 10 || len(folder[0].Orders) != 2 {
		t.Errorf("parsed receipt = %+v", folder[0])
	}
}

func TestLoadFolderBadJSON(t *testing.T) {
	if _, err := loadFolder(writeFolderFile(t, "{not json")); err == nil {
		t.Error("loadFolder() error = nil, want parse error")
	}
}

func TestRenderReportFormats(t *testing.T) {
	folder, err := loadFolder(writeFolderFile(t, folderJSON))
	if err != nil {
		t.Fatalf("loadFolder() error = %v", err)
	}

	tests := []struct {
		format string
		want   string
	}{
		{"folder", "Alice"},
		{"short", "Cafe"},
		{"long", "Grand total = 16.20"},
		{"all", "1. Soup = 18.00"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := renderReport(folder, tt.format)
			if err != nil {
				t.Fatalf("renderReport(%q) error = %v", tt.format, err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("report missing %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestRenderReportUnknownFormat(t *testing.T) {
	if _, err := renderReport(nil, "csv"); err == nil {
		t.Error("renderReport() error = nil, want unknown format error")
	}
}

func TestRenderReportAllNeedsOneReceipt(t *testing.T) {
	folder := []models.ReceiptWithSplitOrders{{}, {}}
	if _, err := renderReport(folder, "all"); err == nil {
		t.Error("renderReport() error = nil, want receipt count error")
	}
}
