package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrGoalTitleEmpty = errors.New("goal titles must not be empty")

// Goal is a savings goal with a target amount and a deadline.
//
// SavedAmount may exceed TargetAmount: an over-saved goal still counts as
// completed.
type Goal struct {
	DefaultModel
	Title        string          `json:"title"`
	TargetAmount decimal.Decimal `json:"targetAmount" gorm:"type:DECIMAL(20,8)"`
	SavedAmount  decimal.Decimal `json:"savedAmount" gorm:"type:DECIMAL(20,8)"`
	Deadline     time.Time       `json:"deadline"`
	Note         string          `json:"note"`
}

// Progress returns the saved fraction of the target, clamped to [0, 1].
// A goal without a positive target has no measurable progress.
func (g Goal) Progress() decimal.Decimal {
	if !g.TargetAmount.IsPositive() {
		return decimal.Zero
	}

	progress := g.SavedAmount.Div(g.TargetAmount)
	if progress.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.NewFromInt(1)
	}
	return progress
}

// RemainingAmount returns how much is still missing, never negative.
func (g Goal) RemainingAmount() decimal.Decimal {
	remaining := g.TargetAmount.Sub(g.SavedAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// IsCompleted reports whether the saved amount has reached the target.
func (g Goal) IsCompleted() bool {
	return g.SavedAmount.GreaterThanOrEqual(g.TargetAmount)
}

// CategoryBudgets maps each category to its spending limit. A zero limit
// means that no limit is set for the category.
type CategoryBudgets map[Category]decimal.Decimal

// Limit returns the configured limit for the category, zero when unset.
func (b CategoryBudgets) Limit(c Category) decimal.Decimal {
	limit, ok := b[c]
	if !ok {
		return decimal.Zero
	}
	return limit
}
