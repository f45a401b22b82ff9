package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/tallyup/tallyup/internal/models"
	"github.com/tallyup/tallyup/internal/storage"
)

// CreateReceipt persists a new receipt with its orders in one transaction.
func (s *SQLiteStore) CreateReceipt(ctx context.Context, receipt *models.Receipt, orders []models.Order) error {
	fillIdentity(receipt)

	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer rollback(tx)

	_, err = tx.ExecContext(ctx,
		`INSERT INTO receipts (id, folder_id, name, translated_name, date, total, tax, discount, tip, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		receipt.ID, receipt.FolderID, receipt.Name, receipt.TranslatedName, receipt.Date,
		receipt.Total, receipt.Tax, receipt.Discount, receipt.Tip, receipt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert receipt: %w", err)
	}

	if err := insertExtras(ctx, tx, receipt); err != nil {
		return err
	}

	for i := range orders {
		order := &orders[i]
		if order.ID == "" {
			order.ID = uuid.New().String()
		}
		order.ReceiptID = receipt.ID
		if err := insertOrder(ctx, tx, order); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetReceipt retrieves a receipt and its orders by ID.
func (s *SQLiteStore) GetReceipt(ctx context.Context, id string) (*models.ReceiptWithOrders, error) {
	receipt, err := s.scanReceipt(ctx, id)
	if err != nil {
		return nil, err
	}

	orders, err := s.ordersFor(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.ReceiptWithOrders{Receipt: *receipt, Orders: orders}, nil
}

// ListReceipts returns receipts with their orders, oldest first. A
// non-empty folderID restricts the result to that folder.
func (s *SQLiteStore) ListReceipts(ctx context.Context, folderID string) ([]models.ReceiptWithOrders, error) {
	query := `SELECT id, folder_id, name, translated_name, date, total, tax, discount, tip, created_at
	          FROM receipts`
	args := []any{}
	if folderID != "" {
		query += " WHERE folder_id = ?"
		args = append(args, folderID)
	}
	query += " ORDER BY created_at, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	defer rows.Close()

	var result []models.ReceiptWithOrders
	for rows.Next() {
		var r models.Receipt
		if err := rows.Scan(&r.ID, &r.FolderID, &r.Name, &r.TranslatedName, &r.Date,
			&r.Total, &r.Tax, &r.Discount, &r.Tip, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan receipt: %w", err)
		}
		result = append(result, models.ReceiptWithOrders{Receipt: r})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate receipts: %w", err)
	}

	for i := range result {
		receipt := &result[i].Receipt
		extras, err := s.extrasFor(ctx, receipt.ID)
		if err != nil {
			return nil, err
		}
		receipt.Extras = extras

		orders, err := s.ordersFor(ctx, receipt.ID)
		if err != nil {
			return nil, err
		}
		result[i].Orders = orders
	}
	return result, nil
}

// UpdateReceipt updates a receipt's header fields and extras.
func (s *SQLiteStore) UpdateReceipt(ctx context.Context, receipt *models.Receipt) error {
	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer rollback(tx)

	res, err := tx.ExecContext(ctx,
		`UPDATE receipts SET folder_id = ?, name = ?, translated_name = ?, date = ?,
		 total = ?, tax = ?, discount = ?, tip = ? WHERE id = ?`,
		receipt.FolderID, receipt.Name, receipt.TranslatedName, receipt.Date,
		receipt.Total, receipt.Tax, receipt.Discount, receipt.Tip, receipt.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update receipt: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM extra_charges WHERE receipt_id = ?", receipt.ID); err != nil {
		return fmt.Errorf("failed to clear extra charges: %w", err)
	}
	if err := insertExtras(ctx, tx, receipt); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteReceipt removes a receipt; orders and extras cascade.
func (s *SQLiteStore) DeleteReceipt(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM receipts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete receipt: %w", err)
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

func (s *SQLiteStore) scanReceipt(ctx context.Context, id string) (*models.Receipt, error) {
	var r models.Receipt
	err := s.db.QueryRowContext(ctx,
		`SELECT id, folder_id, name, translated_name, date, total, tax, discount, tip, created_at
		 FROM receipts WHERE id = ?`, id,
	).Scan(&r.ID, &r.FolderID, &r.Name, &r.TranslatedName, &r.Date,
		&r.Total, &r.Tax, &r.Discount, &r.Tip, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}

	extras, err := s.extrasFor(ctx, id)
	if err != nil {
		return nil, err
	}
	r.Extras = extras
	return &r, nil
}

func (s *SQLiteStore) extrasFor(ctx context.Context, receiptID string) ([]models.ExtraCharge, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT label, amount FROM extra_charges WHERE receipt_id = ? ORDER BY position", receiptID)
	if err != nil {
		return nil, fmt.Errorf("failed to get extra charges: %w", err)
	}
	defer rows.Close()

	var extras []models.ExtraCharge
	for rows.Next() {
		var e models.ExtraCharge
		if err := rows.Scan(&e.Label, &e.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan extra charge: %w", err)
		}
		extras = append(extras, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate extra charges: %w", err)
	}
	return extras, nil
}

func insertExtras(ctx context.Context, tx *sql.Tx, receipt *models.Receipt) error {
	for i, extra := range receipt.Extras {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO extra_charges (receipt_id, position, label, amount) VALUES (?, ?, ?, ?)",
			receipt.ID, i, extra.Label, extra.Amount)
		if err != nil {
			return fmt.Errorf("failed to insert extra charge: %w", err)
		}
	}
	return nil
}
