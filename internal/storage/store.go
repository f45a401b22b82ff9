// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/tallyup/tallyup/internal/models"
)

// ErrNotFound is returned when the requested receipt or order does not
// exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for receipt storage operations.
// This abstraction allows swapping storage backends (SQLite, BoltDB)
// without changing the service layer.
//
// Claimed quantities and consumer assignments are split-session state and
// are deliberately absent from this interface.
type Store interface {
	// CreateReceipt persists a new receipt with its orders. Missing IDs
	// and CreatedAt are populated by the store.
	CreateReceipt(ctx context.Context, receipt *models.Receipt, orders []models.Order) error

	// GetReceipt retrieves a receipt and its orders by receipt ID.
	// Returns ErrNotFound if the receipt does not exist.
	GetReceipt(ctx context.Context, id string) (*models.ReceiptWithOrders, error)

	// ListReceipts returns receipts with their orders, oldest first.
	// A non-empty folderID restricts the result to that folder.
	ListReceipts(ctx context.Context, folderID string) ([]models.ReceiptWithOrders, error)

	// UpdateReceipt updates a receipt's header fields (name, date,
	// percents, extras, folder). Orders are managed separately.
	UpdateReceipt(ctx context.Context, receipt *models.Receipt) error

	// DeleteReceipt removes a receipt; its orders are cascade-deleted.
	DeleteReceipt(ctx context.Context, id string) error

	// AddOrder appends a line item to an existing receipt.
	AddOrder(ctx context.Context, order *models.Order) error

	// UpdateOrder updates a line item.
	UpdateOrder(ctx context.Context, order *models.Order) error

	// DeleteOrder removes a single line item.
	DeleteOrder(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	Close() error
}
