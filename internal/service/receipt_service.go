// Package service orchestrates the domain: scanning images into persisted
// receipts, building reports over stored data, and the debounced rebuild
// loop the UI subscribes to.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tallyup/tallyup/internal/cache"
	"github.com/tallyup/tallyup/internal/models"
	"github.com/tallyup/tallyup/internal/money"
	"github.com/tallyup/tallyup/internal/scanning"
	"github.com/tallyup/tallyup/internal/storage"
)

// scanCacheTTL bounds how long a parsed image stays memoized.
const scanCacheTTL = 24 * time.Hour

// ReceiptService manages receipt lifecycle: scan, persist, edit, delete.
type ReceiptService struct {
	store   storage.Store
	scanner scanning.Scanner
	cache   cache.Cache
}

// NewReceiptService creates a ReceiptService. scanner may be nil when the
// deployment has no vision model configured; cache may be nil to disable
// scan memoization.
func NewReceiptService(store storage.Store, scanner scanning.Scanner, c cache.Cache) *ReceiptService {
	return &ReceiptService{store: store, scanner: scanner, cache: c}
}

// ErrScanningUnavailable is returned by Scan when no scanner is wired.
var ErrScanningUnavailable = errors.New("receipt scanning is not configured")

// Scan parses a receipt image and persists the result into folderID
// (empty for unfiled). Identical images are served from the cache without
// a second model call.
func (s *ReceiptService) Scan(ctx context.Context, imageData []byte, contentType, folderID string) (*models.ReceiptWithOrders, error) {
	if s.scanner == nil {
		return nil, ErrScanningUnavailable
	}

	parsed, err := s.cachedScan(ctx, imageData, contentType)
	if err != nil {
		return nil, err
	}

	receipt, orders := fromParsed(parsed, folderID)
	if err := s.store.CreateReceipt(ctx, receipt, orders); err != nil {
		return nil, fmt.Errorf("persisting scanned receipt: %w", err)
	}
	slog.Info("Receipt scanned",
		"receipt_id", receipt.ID,
		"name", receipt.Name,
		"orders", len(orders),
	)
	return &models.ReceiptWithOrders{Receipt: *receipt, Orders: orders}, nil
}

func (s *ReceiptService) cachedScan(ctx context.Context, imageData []byte, contentType string) (*scanning.ParsedReceipt, error) {
	if s.cache == nil {
		return s.scanner.ScanReceipt(ctx, imageData, contentType)
	}

	key := cache.ImageKey(imageData)
	if data, err := s.cache.Get(ctx, key); err == nil {
		var parsed scanning.ParsedReceipt
		if err := json.Unmarshal(data, &parsed); err == nil {
			slog.Debug("Scan cache hit", "key", key)
			return &parsed, nil
		}
		// Corrupt entry: drop it and fall through to a fresh scan.
		_ = s.cache.Delete(ctx, key)
	}

	parsed, err := s.scanner.ScanReceipt(ctx, imageData, contentType)
	if err != nil {
		return nil, fmt.Errorf("scanning receipt: %w", err)
	}

	if data, err := json.Marshal(parsed); err == nil {
		if err := s.cache.Set(ctx, key, data, scanCacheTTL); err != nil {
			slog.Warn("Failed to cache scan result", "error", err)
		}
	}
	return parsed, nil
}

// Create persists a manually entered receipt.
func (s *ReceiptService) Create(ctx context.Context, receipt *models.Receipt, orders []models.Order) error {
	sanitize(receipt, orders)
	return s.store.CreateReceipt(ctx, receipt, orders)
}

// Get retrieves a receipt with its orders.
func (s *ReceiptService) Get(ctx context.Context, id string) (*models.ReceiptWithOrders, error) {
	return s.store.GetReceipt(ctx, id)
}

// List returns all receipts, or the receipts of one folder.
func (s *ReceiptService) List(ctx context.Context, folderID string) ([]models.ReceiptWithOrders, error) {
	return s.store.ListReceipts(ctx, folderID)
}

// Update rewrites a receipt's header fields.
func (s *ReceiptService) Update(ctx context.Context, receipt *models.Receipt) error {
	sanitize(receipt, nil)
	return s.store.UpdateReceipt(ctx, receipt)
}

// Delete removes a receipt and, by cascade, its orders.
func (s *ReceiptService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteReceipt(ctx, id)
}

// AddOrder, UpdateOrder and DeleteOrder manage line items directly.
func (s *ReceiptService) AddOrder(ctx context.Context, order *models.Order) error {
	sanitizeOrder(order)
	return s.store.AddOrder(ctx, order)
}

func (s *ReceiptService) UpdateOrder(ctx context.Context, order *models.Order) error {
	sanitizeOrder(order)
	return s.store.UpdateOrder(ctx, order)
}

func (s *ReceiptService) DeleteOrder(ctx context.Context, id string) error {
	return s.store.DeleteOrder(ctx, id)
}

// fromParsed converts a scan result to domain models, rounding every
// monetary field at the boundary.
func fromParsed(parsed *scanning.ParsedReceipt, folderID string) (*models.Receipt, []models.Order) {
	receipt := &models.Receipt{
		FolderID:       folderID,
		Name:           parsed.ReceiptName,
		TranslatedName: parsed.TranslatedReceiptName,
		Date:           parsed.Date,
		Total:          money.Round2(parsed.Total),
		Tax:            parsed.Tax,
		Discount:       parsed.Discount,
		Tip:            parsed.Tip,
	}
	orders := make([]models.Order, len(parsed.Orders))
	for i, o := range parsed.Orders {
		orders[i] = models.Order{
			Name:           o.Name,
			TranslatedName: o.TranslatedName,
			Quantity:       o.Quantity,
			Price:          money.Round2(o.Price),
		}
	}
	return receipt, orders
}

// sanitize enforces the domain invariants on user-edited values the same
// way the scan path does.
func sanitize(receipt *models.Receipt, orders []models.Order) {
	receipt.Total = money.Round2(clampAmount(receipt.Total))
	receipt.Tax = clampPercent(receipt.Tax)
	receipt.Discount = clampPercent(receipt.Discount)
	receipt.Tip = clampPercent(receipt.Tip)
	for i := range receipt.Extras {
		receipt.Extras[i].Amount = money.Round2(clampAmount(receipt.Extras[i].Amount))
	}
	for i := range orders {
		sanitizeOrder(&orders[i])
	}
}

func sanitizeOrder(order *models.Order) {
	if order.Quantity < 1 {
		order.Quantity = 1
	}
	order.Price = money.Round2(clampAmount(order.Price))
}

func clampPercent(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func clampAmount(a float64) float64 {
	if a < 0 {
		return 0
	}
	return a
}
