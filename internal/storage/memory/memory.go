// Package memory provides an in-process implementation of storage.Store.
// It is the default backend: receipts live for the lifetime of the server.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/receiptsplitter/internal/models"
	"github.com/mmynk/receiptsplitter/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store keeps receipts in memory, in insertion order.
type Store struct {
	mu       sync.RWMutex
	order    []string
	receipts map[string]*models.Receipt
}

// New creates an empty Store.
func New() *Store {
	return &Store{receipts: make(map[string]*models.Receipt)}
}

// CreateReceipt stores a copy of receipt.
func (s *Store) CreateReceipt(_ context.Context, receipt *models.Receipt) error {
	if receipt.ID == "" {
		receipt.ID = uuid.New().String()
	}
	if receipt.CreatedAt == 0 {
		receipt.CreatedAt = time.Now().Unix()
	}
	if err := receipt.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.receipts[receipt.ID]; exists {
		return fmt.Errorf("receipt already exists: %s", receipt.ID)
	}
	s.receipts[receipt.ID] = receipt.Clone()
	s.order = append(s.order, receipt.ID)
	return nil
}

// GetReceipt returns a snapshot of the receipt.
func (s *Store) GetReceipt(_ context.Context, receiptID string) (*models.Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.receipts[receiptID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, receiptID)
	}
	return r.Clone(), nil
}

// ListReceipts returns snapshots of all receipts in insertion order.
func (s *Store) ListReceipts(_ context.Context) ([]*models.Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Receipt, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.receipts[id].Clone())
	}
	return out, nil
}

// UpdateReceipt replaces a stored receipt, keeping its CreatedAt.
func (s *Store) UpdateReceipt(_ context.Context, receipt *models.Receipt) error {
	if err := receipt.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.receipts[receipt.ID]
	if !ok {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, receipt.ID)
	}
	updated := receipt.Clone()
	updated.CreatedAt = existing.CreatedAt
	s.receipts[receipt.ID] = updated
	return nil
}

// ModifyReceipt runs fn on a copy while holding the write lock, so readers
// see either the old or the new receipt, never an intermediate state.
func (s *Store) ModifyReceipt(_ context.Context, receiptID string, fn func(r *models.Receipt) error) (*models.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.receipts[receiptID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, receiptID)
	}

	working := existing.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	working.ID = existing.ID
	working.CreatedAt = existing.CreatedAt
	if err := working.Validate(); err != nil {
		return nil, err
	}

	s.receipts[receiptID] = working
	return working.Clone(), nil
}

// DeleteReceipt removes a receipt.
func (s *Store) DeleteReceipt(_ context.Context, receiptID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.receipts[receiptID]; !ok {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, receiptID)
	}
	delete(s.receipts, receiptID)
	s.order = slices.DeleteFunc(s.order, func(id string) bool { return id == receiptID })
	return nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}
