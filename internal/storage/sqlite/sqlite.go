// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/receiptsplitter/internal/models"
	"github.com/mmynk/receiptsplitter/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection serialises writers and keeps the foreign_keys
	// pragma in effect for every statement.
	db.SetMaxOpenConns(1)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateReceipt persists a new receipt to the database.
func (s *SQLiteStore) CreateReceipt(ctx context.Context, receipt *models.Receipt) error {
	// Generate ID if not set
	if receipt.ID == "" {
		receipt.ID = uuid.New().String()
	}
	if receipt.CreatedAt == 0 {
		receipt.CreatedAt = time.Now().Unix()
	}
	if err := receipt.Validate(); err != nil {
		return err
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO receipts (id, title, tax, tip, split_mode, created_at, seq)
			 VALUES (?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM receipts))`,
			receipt.ID, receipt.Title, receipt.Tax, receipt.Tip, string(receipt.Mode()), receipt.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert receipt: %w", err)
		}
		return insertChildren(ctx, tx, receipt)
	})
}

// GetReceipt retrieves a receipt by ID, including people, items and assignments.
func (s *SQLiteStore) GetReceipt(ctx context.Context, receiptID string) (*models.Receipt, error) {
	return loadReceipt(ctx, s.db, receiptID)
}

// ListReceipts retrieves every receipt in creation order.
func (s *SQLiteStore) ListReceipts(ctx context.Context) ([]*models.Receipt, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id FROM receipts ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan receipt id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate receipts: %w", err)
	}

	receipts := make([]*models.Receipt, 0, len(ids))
	for _, id := range ids {
		r, err := loadReceipt(ctx, s.db, id)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, r)
	}
	return receipts, nil
}

// UpdateReceipt replaces an existing receipt. CreatedAt is preserved.
func (s *SQLiteStore) UpdateReceipt(ctx context.Context, receipt *models.Receipt) error {
	if err := receipt.Validate(); err != nil {
		return err
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return replaceReceipt(ctx, tx, receipt)
	})
}

// ModifyReceipt loads, mutates and rewrites a receipt inside one transaction.
func (s *SQLiteStore) ModifyReceipt(ctx context.Context, receiptID string, fn func(r *models.Receipt) error) (*models.Receipt, error) {
	var result *models.Receipt
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		r, err := loadReceipt(ctx, tx, receiptID)
		if err != nil {
			return err
		}
		createdAt := r.CreatedAt

		if err := fn(r); err != nil {
			return err
		}
		r.ID = receiptID
		r.CreatedAt = createdAt
		if err := r.Validate(); err != nil {
			return err
		}

		if err := replaceReceipt(ctx, tx, r); err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteReceipt removes a receipt by ID. People, items and assignments
// are removed by the foreign key cascade.
func (s *SQLiteStore) DeleteReceipt(ctx context.Context, receiptID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM receipts WHERE id = ?", receiptID)
	if err != nil {
		return fmt.Errorf("failed to delete receipt: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, receiptID)
	}
	return nil
}

func (s *SQLiteStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// replaceReceipt updates the receipt row and rewrites its children.
func replaceReceipt(ctx context.Context, q querier, receipt *models.Receipt) error {
	res, err := q.ExecContext(ctx,
		"UPDATE receipts SET title = ?, tax = ?, tip = ?, split_mode = ? WHERE id = ?",
		receipt.Title, receipt.Tax, receipt.Tip, string(receipt.Mode()), receipt.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update receipt: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, receipt.ID)
	}

	// Assignments go first with the items and people they reference
	for _, stmt := range []string{
		"DELETE FROM item_responsible WHERE receipt_id = ?",
		"DELETE FROM items WHERE receipt_id = ?",
		"DELETE FROM people WHERE receipt_id = ?",
	} {
		if _, err := q.ExecContext(ctx, stmt, receipt.ID); err != nil {
			return fmt.Errorf("failed to clear receipt children: %w", err)
		}
	}
	return insertChildren(ctx, q, receipt)
}

func insertChildren(ctx context.Context, q querier, receipt *models.Receipt) error {
	for i, p := range receipt.People {
		_, err := q.ExecContext(ctx,
			"INSERT INTO people (id, receipt_id, position, name, paid) VALUES (?, ?, ?, ?, ?)",
			p.ID, receipt.ID, i, p.Name, p.Paid,
		)
		if err != nil {
			return fmt.Errorf("failed to insert person: %w", err)
		}
	}

	for i, item := range receipt.Items {
		_, err := q.ExecContext(ctx,
			"INSERT INTO items (id, receipt_id, position, name, price) VALUES (?, ?, ?, ?, ?)",
			item.ID, receipt.ID, i, item.Name, item.Price,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}

		for j, personID := range item.Responsible {
			_, err := q.ExecContext(ctx,
				"INSERT INTO item_responsible (receipt_id, item_id, person_id, position) VALUES (?, ?, ?, ?)",
				receipt.ID, item.ID, personID, j,
			)
			if err != nil {
				return fmt.Errorf("failed to insert item assignment: %w", err)
			}
		}
	}
	return nil
}

func loadReceipt(ctx context.Context, q querier, receiptID string) (*models.Receipt, error) {
	r := &models.Receipt{}
	var mode string
	err := q.QueryRowContext(ctx,
		"SELECT id, title, tax, tip, split_mode, created_at FROM receipts WHERE id = ?",
		receiptID,
	).Scan(&r.ID, &r.Title, &r.Tax, &r.Tip, &mode, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, receiptID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}
	r.SplitMode = models.SplitMode(mode)

	// Get people
	rows, err := q.QueryContext(ctx,
		"SELECT id, name, paid FROM people WHERE receipt_id = ? ORDER BY position",
		receiptID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get people: %w", err)
	}
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Paid); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		r.People = append(r.People, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate people: %w", err)
	}

	// Get items
	itemRows, err := q.QueryContext(ctx,
		"SELECT id, name, price FROM items WHERE receipt_id = ? ORDER BY position",
		receiptID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	for itemRows.Next() {
		var item models.Item
		if err := itemRows.Scan(&item.ID, &item.Name, &item.Price); err != nil {
			itemRows.Close()
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		r.Items = append(r.Items, item)
	}
	itemRows.Close()
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	// Get assignments for all items in one pass
	assignRows, err := q.QueryContext(ctx,
		"SELECT item_id, person_id FROM item_responsible WHERE receipt_id = ? ORDER BY item_id, position",
		receiptID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get item assignments: %w", err)
	}
	responsible := make(map[string][]string)
	for assignRows.Next() {
		var itemID, personID string
		if err := assignRows.Scan(&itemID, &personID); err != nil {
			assignRows.Close()
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		responsible[itemID] = append(responsible[itemID], personID)
	}
	assignRows.Close()
	if err := assignRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assignments: %w", err)
	}
	for i := range r.Items {
		r.Items[i].Responsible = responsible[r.Items[i].ID]
	}

	return r, nil
}
