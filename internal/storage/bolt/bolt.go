// Package bolt provides a BoltDB-backed implementation of the
// storage.Store interface: each receipt is stored as one JSON document
// with its orders embedded, so cascade delete is a single key removal.
package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/tallyup/tallyup/internal/models"
	"github.com/tallyup/tallyup/internal/storage"
)

const receiptsBucket = "receipts"

// Ensure BoltStore implements storage.Store
var _ storage.Store = (*BoltStore)(nil)

// BoltStore implements storage.Store using BoltDB.
type BoltStore struct {
	db *bbolt.DB
}

// record is the persisted document. Claimed quantities are session state
// and are stripped before writing.
type record struct {
	Receipt models.Receipt `json:"receipt"`
	Orders  []models.Order `json:"orders"`
}

// New opens (creating if needed) the BoltDB file at path.
func New(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(receiptsBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the database.
func (b *BoltStore) Close() error {
	return b.db.Close()
}

// CreateReceipt persists a new receipt with its orders.
func (b *BoltStore) CreateReceipt(_ context.Context, receipt *models.Receipt, orders []models.Order) error {
	if receipt.ID == "" {
		receipt.ID = uuid.New().String()
	}
	if receipt.CreatedAt == 0 {
		receipt.CreatedAt = time.Now().Unix()
	}
	for i := range orders {
		if orders[i].ID == "" {
			orders[i].ID = uuid.New().String()
		}
		orders[i].ReceiptID = receipt.ID
	}
	return b.put(record{Receipt: *receipt, Orders: orders})
}

// GetReceipt retrieves a receipt and its orders by ID.
func (b *BoltStore) GetReceipt(_ context.Context, id string) (*models.ReceiptWithOrders, error) {
	var rec *record
	err := b.db.View(func(tx *bbolt.Tx) error {
		var err error
		rec, err = get(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &models.ReceiptWithOrders{Receipt: rec.Receipt, Orders: rec.Orders}, nil
}

// ListReceipts returns receipts with their orders, oldest first.
func (b *BoltStore) ListReceipts(_ context.Context, folderID string) ([]models.ReceiptWithOrders, error) {
	var result []models.ReceiptWithOrders
	err := b.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(receiptsBucket)).ForEach(func(_, v []byte) error {
			var rec record
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("unmarshaling receipt: %w", err)
			}
			if folderID != "" && rec.Receipt.FolderID != folderID {
				return nil
			}
			result = append(result, models.ReceiptWithOrders{Receipt: rec.Receipt, Orders: rec.Orders})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i].Receipt, result[j].Receipt
		if a.CreatedAt != b.CreatedAt {
			return a.CreatedAt < b.CreatedAt
		}
		return a.ID < b.ID
	})
	return result, nil
}

// UpdateReceipt updates a receipt's header fields, keeping its orders.
func (b *BoltStore) UpdateReceipt(_ context.Context, receipt *models.Receipt) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		rec, err := get(tx, receipt.ID)
		if err != nil {
			return err
		}
		rec.Receipt = *receipt
		return putIn(tx, *rec)
	})
}

// DeleteReceipt removes a receipt and, with it, its embedded orders.
func (b *BoltStore) DeleteReceipt(_ context.Context, id string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(receiptsBucket))
		if bucket.Get([]byte(id)) == nil {
			return storage.ErrNotFound
		}
		return bucket.Delete([]byte(id))
	})
}

// AddOrder appends a line item to an existing receipt.
func (b *BoltStore) AddOrder(_ context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	return b.db.Update(func(tx *bbolt.Tx) error {
		rec, err := get(tx, order.ReceiptID)
		if err != nil {
			return err
		}
		rec.Orders = append(rec.Orders, *order)
		return putIn(tx, *rec)
	})
}

// UpdateOrder updates a line item in place.
func (b *BoltStore) UpdateOrder(ctx context.Context, order *models.Order) error {
	return b.mutateOrder(ctx, order.ID, func(o *models.Order) {
		o.Name = order.Name
		o.TranslatedName = order.TranslatedName
		o.Quantity = order.Quantity
		o.Price = order.Price
	})
}

// DeleteOrder removes a single line item.
func (b *BoltStore) DeleteOrder(ctx context.Context, id string) error {
	return b.mutateOrders(ctx, func(orders []models.Order) ([]models.Order, bool) {
		for i, o := range orders {
			if o.ID == id {
				return append(orders[:i], orders[i+1:]...), true
			}
		}
		return orders, false
	})
}

func (b *BoltStore) mutateOrder(ctx context.Context, id string, mutate func(*models.Order)) error {
	return b.mutateOrders(ctx, func(orders []models.Order) ([]models.Order, bool) {
		for i := range orders {
			if orders[i].ID == id {
				mutate(&orders[i])
				return orders, true
			}
		}
		return orders, false
	})
}

// mutateOrders finds the record whose order list the transform claims,
// then rewrites it. The lookup and the write happen in separate passes:
// bbolt forbids writing to a bucket while iterating it.
func (b *BoltStore) mutateOrders(_ context.Context, transform func([]models.Order) ([]models.Order, bool)) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(receiptsBucket))
		var target *record
		err := bucket.ForEach(func(_, v []byte) error {
			if target != nil {
				return nil
			}
			var rec record
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("unmarshaling receipt: %w", err)
			}
			if orders, ok := transform(rec.Orders); ok {
				rec.Orders = orders
				target = &rec
			}
			return nil
		})
		if err != nil {
			return err
		}
		if target == nil {
			return storage.ErrNotFound
		}
		return putIn(tx, *target)
	})
}

func (b *BoltStore) put(rec record) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		return putIn(tx, rec)
	})
}

func putIn(tx *bbolt.Tx, rec record) error {
	for i := range rec.Orders {
		rec.Orders[i].Claimed = 0
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling receipt: %w", err)
	}
	return tx.Bucket([]byte(receiptsBucket)).Put([]byte(rec.Receipt.ID), data)
}

func get(tx *bbolt.Tx, id string) (*record, error) {
	data := tx.Bucket([]byte(receiptsBucket)).Get([]byte(id))
	if data == nil {
		return nil, storage.ErrNotFound
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshaling receipt: %w", err)
	}
	return &rec, nil
}
