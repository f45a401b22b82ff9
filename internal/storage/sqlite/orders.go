package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/tallyup/tallyup/internal/models"
	"github.com/tallyup/tallyup/internal/storage"
)

// AddOrder appends a line item to an existing receipt.
func (s *SQLiteStore) AddOrder(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}

	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer rollback(tx)

	// The foreign key would catch this too, but checking first gives the
	// caller ErrNotFound instead of a driver error string.
	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM receipts WHERE id = ?", order.ReceiptID).Scan(&exists)
	if err == sql.ErrNoRows {
		return storage.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check receipt: %w", err)
	}

	if err := insertOrder(ctx, tx, order); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateOrder updates a line item.
func (s *SQLiteStore) UpdateOrder(ctx context.Context, order *models.Order) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE orders SET name = ?, translated_name = ?, quantity = ?, price = ? WHERE id = ?",
		order.Name, order.TranslatedName, order.Quantity, order.Price, order.ID)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteOrder removes a single line item.
func (s *SQLiteStore) DeleteOrder(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM orders WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) ordersFor(ctx context.Context, receiptID string) ([]models.Order, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, receipt_id, name, translated_name, quantity, price FROM orders WHERE receipt_id = ? ORDER BY rowid",
		receiptID)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.ReceiptID, &o.Name, &o.TranslatedName, &o.Quantity, &o.Price); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}
	return orders, nil
}

func insertOrder(ctx context.Context, tx *sql.Tx, order *models.Order) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO orders (id, receipt_id, name, translated_name, quantity, price) VALUES (?, ?, ?, ?, ?, ?)",
		order.ID, order.ReceiptID, order.Name, order.TranslatedName, order.Quantity, order.Price)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}
