// Package budget compares per-category spending against configured limits.
package budget

import (
	"github.com/shopspring/decimal"
	"github.com/spendwise-app/backend/internal/models"
	"github.com/spendwise-app/backend/internal/types"
	"golang.org/x/exp/slices"
)

// Status is the severity tier of a category relative to its limit.
type Status string

const (
	StatusOnTrack      Status = "onTrack"
	StatusCloseToLimit Status = "closeToLimit"
	StatusOverBudget   Status = "overBudget"
)

// closeToLimitThreshold is the spent fraction at which a category counts as
// close to its limit.
var closeToLimitThreshold = decimal.NewFromFloat(0.75)

// CategoryTotal is the expense sum of a single category within a period.
type CategoryTotal struct {
	Category models.Category
	Total    decimal.Decimal
}

// Totals sums the expense transactions per category within the period.
// Categories without expenses are dropped; the result is sorted by total,
// descending, with ties keeping the category display order.
func Totals(transactions []models.Transaction, period types.Range) []CategoryTotal {
	sums := make(map[models.Category]decimal.Decimal)

	for _, transaction := range transactions {
		if transaction.Type != models.TypeExpense || !period.Contains(transaction.Date) {
			continue
		}
		sums[transaction.Category] = sums[transaction.Category].Add(transaction.Amount)
	}

	totals := make([]CategoryTotal, 0, len(sums))
	for _, category := range models.Categories() {
		if total, ok := sums[category]; ok && total.IsPositive() {
			totals = append(totals, CategoryTotal{Category: category, Total: total})
		}
	}

	slices.SortStableFunc(totals, func(a, b CategoryTotal) int {
		return b.Total.Cmp(a.Total)
	})

	return totals
}

// MaxTotal returns the largest category total, zero for an empty breakdown.
func MaxTotal(totals []CategoryTotal) decimal.Decimal {
	max := decimal.Zero
	for _, total := range totals {
		if total.Total.GreaterThan(max) {
			max = total.Total
		}
	}
	return max
}

// Progress returns the fill fraction for a category bar, clamped to [0, 1].
// With a limit set, the fraction is spent over limit. Without one, the bar is
// relative to the largest observed category total. When both are zero there
// is nothing to show.
func Progress(total, limit, maxTotal decimal.Decimal) decimal.Decimal {
	switch {
	case limit.IsPositive():
		return clampRatio(total, limit)
	case maxTotal.IsPositive():
		return clampRatio(total, maxTotal)
	default:
		return decimal.Zero
	}
}

// StatusFor classifies a category against its limit. Categories without a
// limit are always on track.
func StatusFor(total, limit decimal.Decimal) Status {
	if !limit.IsPositive() {
		return StatusOnTrack
	}

	if total.GreaterThan(limit) {
		return StatusOverBudget
	}

	if total.Div(limit).GreaterThanOrEqual(closeToLimitThreshold) {
		return StatusCloseToLimit
	}

	return StatusOnTrack
}

// Row is one category of a budget breakdown.
type Row struct {
	Category models.Category
	Total    decimal.Decimal
	Limit    decimal.Decimal
	Progress decimal.Decimal
	Status   Status
}

// Breakdown produces the per-category budget rows for the period.
func Breakdown(transactions []models.Transaction, period types.Range, budgets models.CategoryBudgets) []Row {
	totals := Totals(transactions, period)
	maxTotal := MaxTotal(totals)

	rows := make([]Row, 0, len(totals))
	for _, total := range totals {
		limit := budgets.Limit(total.Category)
		rows = append(rows, Row{
			Category: total.Category,
			Total:    total.Total,
			Limit:    limit,
			Progress: Progress(total.Total, limit, maxTotal),
			Status:   StatusFor(total.Total, limit),
		})
	}

	return rows
}

// Usage returns the used fraction of the overall monthly budget, clamped to
// [0, 1]. A budget of zero means no budget is set and has no usage.
func Usage(spent, monthlyBudget decimal.Decimal) decimal.Decimal {
	if !monthlyBudget.IsPositive() {
		return decimal.Zero
	}
	return clampRatio(spent, monthlyBudget)
}

func clampRatio(part, whole decimal.Decimal) decimal.Decimal {
	ratio := part.Div(whole)

	if ratio.IsNegative() {
		return decimal.Zero
	}
	if ratio.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.NewFromInt(1)
	}
	return ratio
}
