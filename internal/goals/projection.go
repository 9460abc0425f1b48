// Package goals manages savings goals and projects their completion.
package goals

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spendwise-app/backend/internal/models"
	"github.com/spendwise-app/backend/internal/types"
)

// projectedDateLayout formats projected completion dates for display.
const projectedDateLayout = "Jan 2, 2006"

// Projection is the result of extrapolating a goal's completion date from
// its average daily contribution so far.
type Projection struct {
	Message string
	AtRisk  bool
}

// DaysRemaining returns the whole days between today and the deadline,
// ignoring the time of day. The result is negative once the deadline has
// passed.
func DaysRemaining(goal models.Goal, today time.Time) int {
	return types.DaysBetween(today, goal.Deadline)
}

// Project classifies a goal as completed, on track or at risk.
//
// The projected completion date assumes the contribution rate observed since
// the goal was created continues unchanged.
func Project(goal models.Goal, today time.Time) Projection {
	if goal.IsCompleted() {
		return Projection{Message: "Completed", AtRisk: false}
	}

	if !goal.SavedAmount.IsPositive() {
		if DaysRemaining(goal, today) < 0 {
			return Projection{Message: "Deadline passed", AtRisk: true}
		}
		return Projection{Message: "No progress yet", AtRisk: true}
	}

	elapsedDays := types.DaysBetween(goal.CreatedAt, today)
	if elapsedDays < 1 {
		elapsedDays = 1
	}

	dailyRate := goal.SavedAmount.Div(decimal.NewFromInt(int64(elapsedDays)))
	if !dailyRate.IsPositive() {
		return Projection{Message: "Need regular contributions", AtRisk: true}
	}

	neededDays := goal.RemainingAmount().Div(dailyRate).Ceil().IntPart()
	projected := today.AddDate(0, 0, int(neededDays))
	dateText := projected.Format(projectedDateLayout)

	if !projected.After(goal.Deadline) {
		return Projection{Message: fmt.Sprintf("On track: ~%s", dateText), AtRisk: false}
	}
	return Projection{Message: fmt.Sprintf("At risk: ~%s", dateText), AtRisk: true}
}
