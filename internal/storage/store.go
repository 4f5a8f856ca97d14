// Package storage provides abstractions for receipt storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/receiptsplitter/internal/models"
)

// ErrNotFound is returned (wrapped) when a receipt ID is unknown.
var ErrNotFound = errors.New("receipt not found")

// Store defines the interface for receipt storage operations.
// This abstraction allows swapping storage backends (memory, SQLite)
// without changing the service layer.
//
// Implementations only ever hand out copies: a receipt returned by a Store
// is a snapshot the caller may read or mutate freely.
type Store interface {
	// CreateReceipt persists a new receipt. ID and CreatedAt are filled in
	// when unset. Invalid receipts are rejected with models.ErrInvalidReceipt.
	CreateReceipt(ctx context.Context, receipt *models.Receipt) error

	// GetReceipt retrieves a receipt by its ID.
	// Returns ErrNotFound if the receipt does not exist.
	GetReceipt(ctx context.Context, receiptID string) (*models.Receipt, error)

	// ListReceipts returns every receipt in creation order.
	ListReceipts(ctx context.Context) ([]*models.Receipt, error)

	// UpdateReceipt replaces an existing receipt.
	// Returns ErrNotFound if the receipt does not exist.
	UpdateReceipt(ctx context.Context, receipt *models.Receipt) error

	// ModifyReceipt applies fn to a private copy of the receipt and commits
	// the result atomically. If fn returns an error nothing is written and
	// the error is returned as is. The committed snapshot is returned.
	ModifyReceipt(ctx context.Context, receiptID string, fn func(r *models.Receipt) error) (*models.Receipt, error)

	// DeleteReceipt removes a receipt.
	// Returns ErrNotFound if the receipt does not exist.
	DeleteReceipt(ctx context.Context, receiptID string) error

	// Close releases any resources held by the store.
	Close() error
}
