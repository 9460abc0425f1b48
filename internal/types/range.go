// Package types implements special types for the SpendWise core.
package types

import (
	"fmt"
	"time"
)

// Period selects the analytics period for which a range is computed.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// Range is a half-open time interval [Start, End).
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether the time instant is in the range.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// String returns the range with both instants formatted as RFC 3339.
func (r Range) String() string {
	return fmt.Sprintf("%s - %s", r.Start.Format(time.RFC3339), r.End.Format(time.RFC3339))
}

// ClampStartDay clamps a cycle start day to [1, 28]. Values outside the
// interval are clamped silently, never rejected.
func ClampStartDay(day int) int {
	if day < 1 {
		return 1
	}
	if day > 28 {
		return 28
	}
	return day
}

// StartOfDay returns the midnight preceding t in t's location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of whole days between the days containing
// from and to. The result is negative when to is on an earlier day than from.
func DaysBetween(from, to time.Time) int {
	return int(StartOfDay(to).Sub(StartOfDay(from)).Hours() / 24)
}

// CycleRange returns the accounting cycle that contains or most recently
// started before today. The cycle begins at 00:00 on startDay and is exactly
// one calendar month long. When today's day of month is before startDay, the
// boundary day has not occurred yet this month and the cycle began in the
// previous calendar month.
//
// startDay is clamped to [1, 28], so the start day exists in every month and
// month arithmetic never overflows into the next month.
func CycleRange(today time.Time, startDay int) Range {
	startDay = ClampStartDay(startDay)

	year, month, day := today.Date()
	start := time.Date(year, month, startDay, 0, 0, 0, 0, today.Location())
	if day < startDay {
		start = start.AddDate(0, -1, 0)
	}

	return Range{Start: start, End: start.AddDate(0, 1, 0)}
}

// WeekRange returns the calendar week enclosing today, starting Monday 00:00.
func WeekRange(today time.Time) Range {
	t := StartOfDay(today)

	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}

	start := t.AddDate(0, 0, -(weekday - 1))
	return Range{Start: start, End: start.AddDate(0, 0, 7)}
}

// YearRange returns the calendar year enclosing today.
func YearRange(today time.Time) Range {
	start := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location())
	return Range{Start: start, End: start.AddDate(1, 0, 0)}
}

// PeriodRange returns the analytics range for the period. The month period is
// the custom accounting cycle, not the calendar month. Unknown periods
// default to the accounting cycle.
func PeriodRange(period Period, today time.Time, startDay int) Range {
	switch period {
	case PeriodWeek:
		return WeekRange(today)
	case PeriodYear:
		return YearRange(today)
	default:
		return CycleRange(today, startDay)
	}
}
