// Package ledger holds the current transaction snapshot on behalf of the
// caller. It consumes the store's snapshot stream and answers read queries
// from the last snapshot it received.
package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spendwise-app/backend/internal/aggregate"
	"github.com/spendwise-app/backend/internal/models"
	"github.com/spendwise-app/backend/internal/store"
	"github.com/spendwise-app/backend/internal/types"
	"golang.org/x/exp/slices"
)

// State describes the snapshot currently held.
type State string

const (
	// StateIdle means Run has not been started yet.
	StateIdle State = "idle"
	// StateLoading means Run is waiting for the first snapshot.
	StateLoading State = "loading"
	// StateSuccess means the held snapshot is the most recent one received.
	StateSuccess State = "success"
	// StateError means the last sync failed. The previously held snapshot
	// stays available.
	StateError State = "error"
)

// Ledger mirrors the store's transaction list. Mutations are delegated to
// the store; the held snapshot is only ever replaced wholesale by the next
// snapshot from the stream.
type Ledger struct {
	store store.Store

	mu           sync.RWMutex
	state        State
	transactions []models.Transaction
	lastErr      error
	lastSync     time.Time
}

// New returns an idle ledger on the given store.
func New(s store.Store) *Ledger {
	return &Ledger{
		store: s,
		state: StateIdle,
	}
}

// Run consumes the snapshot stream until the context is cancelled. It blocks
// and is meant to be started in its own goroutine.
func (l *Ledger) Run(ctx context.Context) {
	l.mu.Lock()
	l.state = StateLoading
	l.mu.Unlock()

	for snapshot := range l.store.Listen(ctx) {
		l.apply(snapshot)
	}
}

// apply replaces the held snapshot. A failed snapshot records the error and
// keeps the previous transaction list.
func (l *Ledger) apply(snapshot store.Snapshot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if snapshot.Err != nil {
		log.Error().Err(snapshot.Err).Msg("transaction sync failed")
		l.state = StateError
		l.lastErr = snapshot.Err
		return
	}

	l.state = StateSuccess
	l.lastErr = nil
	l.transactions = snapshot.Transactions
	l.lastSync = time.Now().In(time.UTC)
}

// State returns the sync state of the held snapshot.
func (l *Ledger) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// Err returns the error of the last failed sync, nil after a successful one.
func (l *Ledger) Err() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lastErr
}

// LastSync returns the time the held snapshot was received, zero before the
// first successful sync.
func (l *Ledger) LastSync() time.Time {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lastSync
}

// Transactions returns a copy of the held transaction list.
func (l *Ledger) Transactions() []models.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.transactions)
}

// Balance returns income minus expenses over the whole snapshot. The active
// filter never changes the balance.
func (l *Ledger) Balance() decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return aggregate.Balance(l.transactions)
}

// IncomeInCycle returns the income total inside the cycle.
func (l *Ledger) IncomeInCycle(cycle types.Range) decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return aggregate.SumInRange(l.transactions, models.TypeIncome, cycle)
}

// ExpenseInCycle returns the expense total inside the cycle.
func (l *Ledger) ExpenseInCycle(cycle types.Range) decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return aggregate.SumInRange(l.transactions, models.TypeExpense, cycle)
}

// View is a filtered, sorted rendering of the snapshot.
type View struct {
	// Transactions is the filtered list in sort order.
	Transactions []models.Transaction
	// Segments partitions the filtered list against the cycle.
	Segments aggregate.Segments

	// Income and Expense are totals over the filtered list only.
	Income  decimal.Decimal
	Expense decimal.Decimal
	Count   int
}

// View filters, sorts and segments the held snapshot.
func (l *Ledger) View(filter aggregate.Filter, mode models.SortMode, cycle types.Range, now time.Time) View {
	l.mu.RLock()
	transactions := l.transactions
	l.mu.RUnlock()

	filtered := aggregate.Apply(transactions, filter, cycle, now)
	sorted := aggregate.Sort(filtered, mode)

	return View{
		Transactions: sorted,
		Segments:     aggregate.Segment(sorted, cycle, now),
		Income:       aggregate.SumByType(filtered, models.TypeIncome),
		Expense:      aggregate.SumByType(filtered, models.TypeExpense),
		Count:        len(filtered),
	}
}

// RecentActivity returns the n most recent transactions by date.
func (l *Ledger) RecentActivity(n int) []models.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return aggregate.RecentActivity(l.transactions, n)
}

// Add delegates to the store. The new transaction arrives with the next
// snapshot.
func (l *Ledger) Add(ctx context.Context, transaction *models.Transaction) error {
	return l.store.Add(ctx, transaction)
}

// Update delegates to the store.
func (l *Ledger) Update(ctx context.Context, transaction models.Transaction) error {
	return l.store.Update(ctx, transaction)
}

// Delete delegates to the store.
func (l *Ledger) Delete(ctx context.Context, id uuid.UUID) error {
	return l.store.Delete(ctx, id)
}

// Duplicate delegates to the store.
func (l *Ledger) Duplicate(ctx context.Context, id uuid.UUID) (models.Transaction, error) {
	return l.store.Duplicate(ctx, id)
}

// ToggleRecurring delegates to the store.
func (l *Ledger) ToggleRecurring(ctx context.Context, id uuid.UUID) error {
	return l.store.ToggleRecurring(ctx, id)
}
