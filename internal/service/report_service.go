package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tallyup/tallyup/internal/auth"
	"github.com/tallyup/tallyup/internal/cache"
	"github.com/tallyup/tallyup/internal/export"
	"github.com/tallyup/tallyup/internal/models"
	"github.com/tallyup/tallyup/internal/money"
	"github.com/tallyup/tallyup/internal/report"
	"github.com/tallyup/tallyup/internal/splitter"
	"github.com/tallyup/tallyup/internal/storage"
)

// Report formats a share link or build request can name.
const (
	FormatOne         = "one"
	FormatAll         = "all"
	FormatFolder      = "folder"
	FormatFolderShort = "folder-short"
	FormatFolderLong  = "folder-long"
)

var (
	// ErrUnknownFormat is returned for a format string outside the set above.
	ErrUnknownFormat = errors.New("unknown report format")
	// ErrSharingUnavailable is returned when no share secret is configured.
	ErrSharingUnavailable = errors.New("report sharing is not configured")
	// ErrShareExpired is returned when a share link's report is gone.
	ErrShareExpired = errors.New("shared report no longer available")
)

// Claims maps order ID to the quantity a consumer claims of it.
// It is session state supplied by the UI, never persisted.
type Claims map[string]int

// Assignments maps order ID to the consumer names sharing that line.
// Likewise session state.
type Assignments map[string][]string

// ReportService builds, shares and exports reports over stored receipts.
type ReportService struct {
	store storage.Store
	share *auth.ShareTokenManager
	cache cache.Cache
}

// NewReportService creates a ReportService. share may be nil to disable
// share links; cache backs shared report text and may be nil only when
// share is nil too.
func NewReportService(store storage.Store, share *auth.ShareTokenManager, c cache.Cache) *ReportService {
	return &ReportService{store: store, share: share, cache: c}
}

// BuildForOne renders the single-consumer quantity-split report for a
// stored receipt, with the session's claimed quantities applied.
func (s *ReportService) BuildForOne(ctx context.Context, receiptID string, claims Claims) (string, error) {
	aggregate, err := s.store.GetReceipt(ctx, receiptID)
	if err != nil {
		return "", err
	}
	return report.ForOne(aggregate.Receipt, applyClaims(aggregate.Orders, claims))
}

// Claim actions for AdjustClaim.
const (
	ClaimIncrement = "increment"
	ClaimDecrement = "decrement"
	ClaimReset     = "reset"
)

// ErrUnknownAction is returned for a claim action outside the set above.
var ErrUnknownAction = errors.New("unknown claim action")

// AdjustClaim applies one tap of the quantity-split screen: the session's
// current claims plus a single increment, decrement or reset. It returns
// the updated orders for the session to carry forward and the rebuilt
// report.
func (s *ReportService) AdjustClaim(ctx context.Context, receiptID string, claims Claims, action, orderID string) ([]models.Order, string, error) {
	aggregate, err := s.store.GetReceipt(ctx, receiptID)
	if err != nil {
		return nil, "", err
	}

	orders := applyClaims(aggregate.Orders, claims)
	switch action {
	case ClaimIncrement:
		orders = splitter.Increment(orders, orderID)
	case ClaimDecrement:
		orders = splitter.Decrement(orders, orderID)
	case ClaimReset:
		orders = splitter.Reset(orders)
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	text, err := report.ForOne(aggregate.Receipt, orders)
	if err != nil {
		return nil, "", err
	}
	return orders, text, nil
}

// BuildForAll renders the multi-consumer report for a stored receipt,
// with the session's consumer assignments attached.
func (s *ReportService) BuildForAll(ctx context.Context, receiptID string, assignments Assignments) (string, error) {
	aggregate, err := s.store.GetReceipt(ctx, receiptID)
	if err != nil {
		return "", err
	}
	return report.ForAllConsumers(aggregate.Receipt, toSplitOrders(aggregate.Orders, assignments))
}

// BuildFolder renders one of the three folder report shapes over every
// receipt in the folder.
func (s *ReportService) BuildFolder(ctx context.Context, folderID, format string, assignments Assignments) (string, error) {
	folder, err := s.loadFolder(ctx, folderID, assignments)
	if err != nil {
		return "", err
	}
	switch format {
	case FormatFolder:
		return report.ForFolder(folder)
	case FormatFolderShort:
		return report.ForFolderShort(folder)
	case FormatFolderLong:
		return report.ForFolderLong(folder)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Export renders the folder split as an xlsx workbook.
func (s *ReportService) Export(ctx context.Context, folderID string, assignments Assignments) ([]byte, error) {
	folder, err := s.loadFolder(ctx, folderID, assignments)
	if err != nil {
		return nil, err
	}
	return export.FolderWorkbook(folder)
}

// Share mints a share link token for an already-rendered report and
// stashes the text so the link resolves to exactly what the sharer saw,
// independent of later edits or session state.
func (s *ReportService) Share(ctx context.Context, text, receiptID, folderID, format string, ttl time.Duration) (string, error) {
	if s.share == nil || s.cache == nil {
		return "", ErrSharingUnavailable
	}

	id := uuid.New().String()
	token, err := s.share.Generate(id, receiptID, folderID, format)
	if err != nil {
		return "", err
	}
	if err := s.cache.Set(ctx, shareKey(id), []byte(text), ttl); err != nil {
		return "", fmt.Errorf("storing shared report: %w", err)
	}
	slog.Info("Report shared", "share_id", id, "format", format)
	return token, nil
}

// ResolveShare validates a share token and returns the report text it
// was minted for.
func (s *ReportService) ResolveShare(ctx context.Context, token string) (string, error) {
	if s.share == nil || s.cache == nil {
		return "", ErrSharingUnavailable
	}

	claims, err := s.share.Validate(token)
	if err != nil {
		return "", err
	}
	text, err := s.cache.Get(ctx, shareKey(claims.ID))
	if errors.Is(err, cache.ErrNotFound) {
		return "", ErrShareExpired
	}
	if err != nil {
		return "", err
	}
	return string(text), nil
}

func shareKey(id string) string {
	return "share:" + id
}

func (s *ReportService) loadFolder(ctx context.Context, folderID string, assignments Assignments) ([]models.ReceiptWithSplitOrders, error) {
	entries, err := s.store.ListReceipts(ctx, folderID)
	if err != nil {
		return nil, err
	}
	folder := make([]models.ReceiptWithSplitOrders, 0, len(entries))
	for _, entry := range entries {
		folder = append(folder, models.ReceiptWithSplitOrders{
			Receipt: entry.Receipt,
			Orders:  toSplitOrders(entry.Orders, assignments),
		})
	}
	return folder, nil
}

// applyClaims attaches the session's claimed quantities to a fresh order
// snapshot, clamped to [0, quantity]; unknown order IDs are ignored.
func applyClaims(orders []models.Order, claims Claims) []models.Order {
	out := make([]models.Order, len(orders))
	for i, order := range orders {
		if claimed, ok := claims[order.ID]; ok {
			if claimed < 0 {
				claimed = 0
			}
			if claimed > order.Quantity {
				claimed = order.Quantity
			}
			order.Claimed = claimed
		}
		out[i] = order
	}
	return out
}

// toSplitOrders attaches consumer assignments, turning unit-priced orders
// into line-total split orders. Orders nobody is assigned to are left out:
// they belong to no consumer's share.
func toSplitOrders(orders []models.Order, assignments Assignments) []models.SplitOrder {
	var out []models.SplitOrder
	for _, order := range orders {
		consumers := assignments[order.ID]
		if len(consumers) == 0 {
			continue
		}
		out = append(out, models.SplitOrder{
			Name:           order.Name,
			TranslatedName: order.TranslatedName,
			Price:          money.Round2(float64(order.Quantity) * order.Price),
			Consumers:      consumers,
		})
	}
	return out
}
