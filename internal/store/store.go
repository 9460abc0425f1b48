// Package store persists transactions and streams snapshots of the full
// transaction list to listeners.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/spendwise-app/backend/internal/models"
)

var ErrTransactionNotFound = errors.New("there is no transaction with this ID")

// Snapshot is the full transaction list at one point in time, or a failure.
// Each snapshot replaces any prior one wholesale; there is no partial merge.
type Snapshot struct {
	Transactions []models.Transaction
	Err          error
}

// Store is the transaction collaborator the core talks to. Mutations are
// acknowledged through the returned error; the updated list arrives as a new
// snapshot on every listener.
type Store interface {
	// Listen delivers the current snapshot immediately and a new snapshot
	// after every mutation until the context is cancelled. A slow listener
	// only ever observes the most recent snapshot.
	Listen(ctx context.Context) <-chan Snapshot

	Add(ctx context.Context, transaction *models.Transaction) error
	// Update is an upsert keyed by the transaction ID.
	Update(ctx context.Context, transaction models.Transaction) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Duplicate stores a copy of the transaction under a new ID.
	Duplicate(ctx context.Context, id uuid.UUID) (models.Transaction, error)
	// ToggleRecurring flips the recurring flag of the transaction.
	ToggleRecurring(ctx context.Context, id uuid.UUID) error
}
