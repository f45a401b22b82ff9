package bolt

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/tallyup/tallyup/internal/models"
	"github.com/tallyup/tallyup/internal/storage"
)

func newTestStore(t *testing.T) *BoltStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestBoltRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	receipt := &models.Receipt{Name: "Cafe", Date: "2025-01-02", Discount: 10}
	orders := []models.Order{
		{Name: "Soup", Quantity: 2, Price: 5.00, Claimed: 2},
	}
	if err := store.CreateReceipt(ctx, receipt, orders); err != nil {
		t.Fatalf("CreateReceipt() error = %v", err)
	}

	got, err := store.GetReceipt(ctx, receipt.ID)
	if err != nil {
		t.Fatalf("GetReceipt() error = %v", err)
	}
	if got.Receipt.Name != "Cafe" || got.Receipt.Discount != 10 {
		t.Errorf("receipt = %+v", got.Receipt)
	}
	if len(got.Orders) != 1 || got.Orders[0].Name != "Soup" {
		t.Fatalf("orders = %+v", got.Orders)
	}
	// Claimed is session state; the store must not persist it.
	if got.Orders[0].Claimed != 0 {
		t.Errorf("Claimed persisted: %d", got.Orders[0].Claimed)
	}
}

func TestBoltDeleteCascades(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	receipt := &models.Receipt{Name: "Cafe"}
	orders := []models.Order{{Name: "Soup", Quantity: 1, Price: 5}}
	if err := store.CreateReceipt(ctx, receipt, orders); err != nil {
		t.Fatalf("CreateReceipt() error = %v", err)
	}

	if err := store.DeleteReceipt(ctx, receipt.ID); err != nil {
		t.Fatalf("DeleteReceipt() error = %v", err)
	}
	if _, err := store.GetReceipt(ctx, receipt.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("receipt survived delete: %v", err)
	}
	if err := store.DeleteOrder(ctx, orders[0].ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("order survived cascade: %v", err)
	}
}

func TestBoltOrderLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	receipt := &models.Receipt{Name: "Cafe"}
	if err := store.CreateReceipt(ctx, receipt, nil); err != nil {
		t.Fatalf("CreateReceipt() error = %v", err)
	}

	order := &models.Order{ReceiptID: receipt.ID, Name: "Wine", Quantity: 1, Price: 9}
	if err := store.AddOrder(ctx, order); err != nil {
		t.Fatalf("AddOrder() error = %v", err)
	}

	order.Price = 11
	if err := store.UpdateOrder(ctx, order); err != nil {
		t.Fatalf("UpdateOrder() error = %v", err)
	}

	got, err := store.GetReceipt(ctx, receipt.ID)
	if err != nil {
		t.Fatalf("GetReceipt() error = %v", err)
	}
	if len(got.Orders) != 1 || got.Orders[0].Price != 11 {
		t.Errorf("orders = %+v", got.Orders)
	}

	if err := store.DeleteOrder(ctx, order.ID); err != nil {
		t.Fatalf("DeleteOrder() error = %v", err)
	}
	if err := store.UpdateOrder(ctx, order); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("UpdateOrder after delete: %v", err)
	}
}

func TestBoltListByFolder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i, folder := range []string{"trip", "", "trip"} {
		receipt := &models.Receipt{Name: "R", FolderID: folder, CreatedAt: int64(i + 1)}
		if err := store.CreateReceipt(ctx, receipt, nil); err != nil {
			t.Fatalf("CreateReceipt() error = %v", err)
		}
	}

	trip, err := store.ListReceipts(ctx, "trip")
	if err != nil {
		t.Fatalf("ListReceipts() error = %v", err)
	}
	if len(trip) != 2 {
		t.Fatalf("got %d receipts, want 2", len(trip))
	}
	if trip[0].Receipt.CreatedAt > trip[1].Receipt.CreatedAt {
		t.Error("receipts not ordered oldest first")
	}
}
