// Package aggregate implements the pure read path over a transaction
// snapshot: filtering, sorting, totals and list segmentation.
package aggregate

import (
	"strings"
	"time"

	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
	"github.com/spendwise-app/backend/internal/models"
	"github.com/spendwise-app/backend/internal/types"
	"golang.org/x/exp/slices"
)

// Filter is the full set of list restrictions. All parts are conjunctive.
type Filter struct {
	Mode     models.FilterMode
	Category models.CategoryFilter
	Query    string
	Scope    models.DateScope
}

// Apply filters a snapshot. The filter order is type, category, free-text
// search, date scope. The input slice is not modified.
func Apply(transactions []models.Transaction, filter Filter, cycle types.Range, now time.Time) []models.Transaction {
	matched := make([]models.Transaction, 0, len(transactions))

	for _, transaction := range transactions {
		if !matchesMode(transaction, filter.Mode) {
			continue
		}

		if !filter.Category.Matches(transaction.Category) {
			continue
		}

		if !matchesQuery(transaction, filter.Query) {
			continue
		}

		if !matchesScope(transaction, filter.Scope, cycle, now) {
			continue
		}

		matched = append(matched, transaction)
	}

	return matched
}

func matchesMode(transaction models.Transaction, mode models.FilterMode) bool {
	switch mode {
	case models.FilterIncome:
		return transaction.Type == models.TypeIncome
	case models.FilterExpense:
		return transaction.Type == models.TypeExpense
	case models.FilterRecurring:
		return transaction.IsRecurring
	default:
		return true
	}
}

// matchesQuery matches the query case-insensitively against title, note and
// category display name. An empty query matches everything. Queries
// containing a "*" are treated as glob patterns.
func matchesQuery(transaction models.Transaction, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}

	haystack := strings.ToLower(transaction.Title + " " + transaction.Note + " " + transaction.Category.Title())

	if strings.Contains(query, "*") {
		return glob.Glob(query, haystack)
	}

	return strings.Contains(haystack, query)
}

func matchesScope(transaction models.Transaction, scope models.DateScope, cycle types.Range, now time.Time) bool {
	today := types.StartOfDay(now)

	switch scope {
	case models.ScopeCurrentCycle:
		return cycle.Contains(transaction.Date)
	case models.ScopeLast7Days:
		return !transaction.Date.Before(today.AddDate(0, 0, -6)) && !transaction.Date.After(now)
	case models.ScopeLast30Days:
		return !transaction.Date.Before(today.AddDate(0, 0, -29)) && !transaction.Date.After(now)
	default:
		return true
	}
}

// Sort returns a sorted copy of the snapshot. The sort is stable: exact ties
// keep their prior relative order.
func Sort(transactions []models.Transaction, mode models.SortMode) []models.Transaction {
	sorted := slices.Clone(transactions)

	slices.SortStableFunc(sorted, func(a, b models.Transaction) int {
		switch mode {
		case models.SortDateAsc:
			return a.Date.Compare(b.Date)
		case models.SortAmountDesc:
			return b.Amount.Cmp(a.Amount)
		case models.SortAmountAsc:
			return a.Amount.Cmp(b.Amount)
		default:
			return b.Date.Compare(a.Date)
		}
	})

	return sorted
}

// Balance returns income minus expenses over the whole snapshot,
// regardless of any active filter.
func Balance(transactions []models.Transaction) decimal.Decimal {
	balance := decimal.Zero

	for _, transaction := range transactions {
		if transaction.Type == models.TypeIncome {
			balance = balance.Add(transaction.Amount)
		} else {
			balance = balance.Sub(transaction.Amount)
		}
	}

	return balance
}

// SumByType returns the sum of all amounts of the given type.
func SumByType(transactions []models.Transaction, transactionType models.TransactionType) decimal.Decimal {
	sum := decimal.Zero

	for _, transaction := range transactions {
		if transaction.Type == transactionType {
			sum = sum.Add(transaction.Amount)
		}
	}

	return sum
}

// SumInRange returns the sum of all amounts of the given type with a date
// inside the half-open range.
func SumInRange(transactions []models.Transaction, transactionType models.TransactionType, r types.Range) decimal.Decimal {
	sum := decimal.Zero

	for _, transaction := range transactions {
		if transaction.Type == transactionType && r.Contains(transaction.Date) {
			sum = sum.Add(transaction.Amount)
		}
	}

	return sum
}

// Segments partitions a filtered list for display. The four parts are
// mutually exclusive and cover the whole input.
type Segments struct {
	// Overdue contains transactions from the cycle start, inclusive, up to
	// the start of today.
	Overdue []models.Transaction
	// ThisCycle contains transactions from the start of today up to the
	// cycle end.
	ThisCycle []models.Transaction
	// Future contains transactions at or after the cycle end.
	Future []models.Transaction
	// Older contains transactions before the cycle start.
	Older []models.Transaction
}

// Segment partitions the transactions against the cycle and today.
func Segment(transactions []models.Transaction, cycle types.Range, now time.Time) Segments {
	today := types.StartOfDay(now)

	var segments Segments
	for _, transaction := range transactions {
		switch {
		case transaction.Date.Before(cycle.Start):
			segments.Older = append(segments.Older, transaction)
		case transaction.Date.Before(today):
			segments.Overdue = append(segments.Overdue, transaction)
		case transaction.Date.Before(cycle.End):
			segments.ThisCycle = append(segments.ThisCycle, transaction)
		default:
			segments.Future = append(segments.Future, transaction)
		}
	}

	return segments
}

// RecentActivity returns the n most recent transactions by date.
func RecentActivity(transactions []models.Transaction, n int) []models.Transaction {
	sorted := Sort(transactions, models.SortDateDesc)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
