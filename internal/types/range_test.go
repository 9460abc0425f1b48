package types_test

import (
	"testing"
	"time"

	"github.com/spendwise-app/backend/internal/types"
	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestCycleRange(t *testing.T) {
	tests := []struct {
		name     string
		today    time.Time
		startDay int
		start    time.Time
		end      time.Time
	}{
		{
			"today before start day carries back a month",
			date(2024, 3, 15),
			20,
			date(2024, 2, 20),
			date(2024, 3, 20),
		},
		{
			"today after start day stays in current month",
			date(2024, 3, 25),
			20,
			date(2024, 3, 20),
			date(2024, 4, 20),
		},
		{
			"today on the start day stays in current month",
			date(2024, 3, 20),
			20,
			date(2024, 3, 20),
			date(2024, 4, 20),
		},
		{
			"january carries back into the previous year",
			date(2024, 1, 5),
			15,
			date(2023, 12, 15),
			date(2024, 1, 15),
		},
		{
			"start day 28 is valid in february",
			date(2024, 3, 10),
			28,
			date(2024, 2, 28),
			date(2024, 3, 28),
		},
		{
			"start day above 28 is clamped",
			date(2024, 3, 30),
			31,
			date(2024, 3, 28),
			date(2024, 4, 28),
		},
		{
			"start day below 1 is clamped",
			date(2024, 3, 15),
			-3,
			date(2024, 3, 1),
			date(2024, 4, 1),
		},
		{
			"zero start day defaults to the first",
			date(2024, 3, 15),
			0,
			date(2024, 3, 1),
			date(2024, 4, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := types.CycleRange(tt.today, tt.startDay)
			assert.True(t, r.Start.Equal(tt.start), "start is %s", r.Start)
			assert.True(t, r.End.Equal(tt.end), "end is %s", r.End)
		})
	}
}

func TestCycleRangeInvariants(t *testing.T) {
	// The cycle is always exactly one calendar month long and always starts
	// on the clamped start day.
	for startDay := 1; startDay <= 28; startDay++ {
		for day := 1; day <= 28; day++ {
			today := date(2024, 2, day)
			r := types.CycleRange(today, startDay)

			assert.Equal(t, startDay, r.Start.Day())
			assert.True(t, r.End.Equal(r.Start.AddDate(0, 1, 0)))
		}
	}
}

func TestRangeContains(t *testing.T) {
	r := types.Range{Start: date(2024, 3, 20), End: date(2024, 4, 20)}

	assert.True(t, r.Contains(date(2024, 3, 20)), "start is inclusive")
	assert.True(t, r.Contains(date(2024, 4, 19)))
	assert.False(t, r.Contains(date(2024, 4, 20)), "end is exclusive")
	assert.False(t, r.Contains(date(2024, 3, 19)))
}

func TestWeekRange(t *testing.T) {
	// 2024-03-15 is a Friday.
	r := types.WeekRange(date(2024, 3, 15))
	assert.True(t, r.Start.Equal(date(2024, 3, 11)), "start is %s", r.Start)
	assert.True(t, r.End.Equal(date(2024, 3, 18)))

	// A Sunday belongs to the week that started the previous Monday.
	r = types.WeekRange(date(2024, 3, 17))
	assert.True(t, r.Start.Equal(date(2024, 3, 11)))

	// A Monday starts its own week.
	r = types.WeekRange(date(2024, 3, 11))
	assert.True(t, r.Start.Equal(date(2024, 3, 11)))
}

func TestYearRange(t *testing.T) {
	r := types.YearRange(time.Date(2024, 7, 14, 13, 37, 0, 0, time.UTC))
	assert.True(t, r.Start.Equal(date(2024, 1, 1)))
	assert.True(t, r.End.Equal(date(2025, 1, 1)))
}

func TestPeriodRange(t *testing.T) {
	today := date(2024, 3, 15)

	assert.Equal(t, types.WeekRange(today), types.PeriodRange(types.PeriodWeek, today, 1))
	assert.Equal(t, types.YearRange(today), types.PeriodRange(types.PeriodYear, today, 1))
	assert.Equal(t, types.CycleRange(today, 20), types.PeriodRange(types.PeriodMonth, today, 20))
	assert.Equal(t, types.CycleRange(today, 20), types.PeriodRange(types.Period("bogus"), today, 20))
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		to   time.Time
		days int
	}{
		{"same day", date(2024, 3, 15), date(2024, 3, 15), 0},
		{"ten days ahead", date(2024, 3, 15), date(2024, 3, 25), 10},
		{"negative when deadline passed", date(2024, 3, 15), date(2024, 3, 10), -5},
		{"time of day is ignored", time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC), time.Date(2024, 3, 16, 0, 1, 0, 0, time.UTC), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.days, types.DaysBetween(tt.from, tt.to))
		})
	}
}

func TestStartOfDay(t *testing.T) {
	got := types.StartOfDay(time.Date(2024, 3, 15, 17, 59, 23, 42, time.UTC))
	assert.True(t, got.Equal(date(2024, 3, 15)))
}
