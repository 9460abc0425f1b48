package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spendwise-app/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLite is the local transaction store.
type SQLite struct {
	db *gorm.DB

	mu        sync.Mutex
	listeners map[chan Snapshot]struct{}
}

var _ Store = (*SQLite)(nil)

// NewSQLite returns a transaction store on the given database.
func NewSQLite(db *gorm.DB) *SQLite {
	return &SQLite{
		db:        db,
		listeners: make(map[chan Snapshot]struct{}),
	}
}

// Listen registers a listener. The current snapshot is delivered right away.
func (s *SQLite) Listen(ctx context.Context) <-chan Snapshot {
	ch := make(chan Snapshot, 1)
	snapshot := s.snapshot(ctx)

	s.mu.Lock()
	s.listeners[ch] = struct{}{}
	s.deliver(ch, snapshot)
	s.mu.Unlock()

	go func() {
		<-ctx.Done()

		s.mu.Lock()
		delete(s.listeners, ch)
		s.mu.Unlock()
		close(ch)
	}()

	return ch
}

// Add stores a new transaction. The ID is generated on create when unset.
func (s *SQLite) Add(ctx context.Context, transaction *models.Transaction) error {
	err := s.db.WithContext(ctx).Create(transaction).Error
	if err != nil {
		return fmt.Errorf("adding transaction failed: %w", err)
	}

	log.Debug().Str("id", transaction.ID.String()).Str("title", transaction.Title).Msg("transaction added")
	s.broadcast(ctx)
	return nil
}

// Update upserts the transaction, keyed by its ID.
func (s *SQLite) Update(ctx context.Context, transaction models.Transaction) error {
	if transaction.ID == uuid.Nil {
		return ErrTransactionNotFound
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&transaction).Error
	if err != nil {
		return fmt.Errorf("updating transaction failed: %w", err)
	}

	log.Debug().Str("id", transaction.ID.String()).Msg("transaction updated")
	s.broadcast(ctx)
	return nil
}

// Delete removes the transaction with the given ID.
func (s *SQLite) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.Transaction{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("deleting transaction failed: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}

	log.Debug().Str("id", id.String()).Msg("transaction deleted")
	s.broadcast(ctx)
	return nil
}

// Duplicate stores a copy of the transaction under a new ID.
func (s *SQLite) Duplicate(ctx context.Context, id uuid.UUID) (models.Transaction, error) {
	var transaction models.Transaction
	err := s.db.WithContext(ctx).First(&transaction, "id = ?", id).Error
	if err != nil {
		return models.Transaction{}, ErrTransactionNotFound
	}

	transaction.ID = uuid.Nil
	transaction.CreatedAt = time.Time{}
	transaction.UpdatedAt = time.Time{}

	err = s.Add(ctx, &transaction)
	if err != nil {
		return models.Transaction{}, err
	}

	return transaction, nil
}

// ToggleRecurring flips the recurring flag of the transaction.
func (s *SQLite) ToggleRecurring(ctx context.Context, id uuid.UUID) error {
	var transaction models.Transaction
	err := s.db.WithContext(ctx).First(&transaction, "id = ?", id).Error
	if err != nil {
		return ErrTransactionNotFound
	}

	transaction.IsRecurring = !transaction.IsRecurring
	return s.Update(ctx, transaction)
}

// Seed inserts the demo data set when the store is empty.
func (s *SQLite) Seed(ctx context.Context) error {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Transaction{}).Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	demo := models.DemoTransactions(time.Now().In(time.UTC))
	err = s.db.WithContext(ctx).Create(&demo).Error
	if err != nil {
		return fmt.Errorf("seeding demo transactions failed: %w", err)
	}

	log.Info().Int("count", len(demo)).Msg("seeded demo transactions")
	s.broadcast(ctx)
	return nil
}

// snapshot loads the full transaction list.
func (s *SQLite) snapshot(ctx context.Context) Snapshot {
	var transactions []models.Transaction
	err := s.db.WithContext(ctx).Find(&transactions).Error
	if err != nil {
		log.Error().Err(err).Msg("loading transaction snapshot failed")
		return Snapshot{Err: err}
	}

	return Snapshot{Transactions: transactions}
}

// broadcast delivers the current snapshot to every listener.
func (s *SQLite) broadcast(ctx context.Context) {
	snapshot := s.snapshot(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	for ch := range s.listeners {
		s.deliver(ch, snapshot)
	}
}

// deliver replaces a listener's pending snapshot so that a slow listener
// only observes the most recent one.
func (s *SQLite) deliver(ch chan Snapshot, snapshot Snapshot) {
	for {
		select {
		case ch <- snapshot:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}
