package generic_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/vacation-planner/generic"
)

func TestExtractBlocks(t *testing.T) {
	// GIVEN: Thu..Wed, with Fri spent, Sat/Sun weekend, Mon a holiday,
	// and a separate weekend-only run that must be dropped
	start := date(2025, time.January, 2) // Thursday
	dates := generic.Period{Start: start, End: start.AddDays(13)}.Days()

	n := len(dates)
	off := make([]bool, n)
	spent := make([]bool, n)
	weekend := make([]bool, n)
	holiday := make([]bool, n)
	for i, d := range dates {
		weekend[i] = d.IsWeekend()
		off[i] = weekend[i]
	}
	off[1], spent[1] = true, true   // Fri Jan 3
	off[4], holiday[4] = true, true // Mon Jan 6

	// WHEN
	blocks := generic.ExtractBlocks(dates, off, spent, weekend, holiday)

	// THEN: one block Fri..Mon, the Jan 11-12 weekend is dropped
	require.Len(t, blocks, 1)
	b := blocks[0]
	assert.Equal(t, date(2025, time.January, 3), b.Start)
	assert.Equal(t, date(2025, time.January, 6), b.End)
	assert.Equal(t, 4, b.TotalDays)
	assert.Equal(t, 1, b.PTODays)
	assert.Equal(t, 1, b.Holidays)
	assert.Equal(t, 2, b.WeekendDays)
}

func TestExtractBlocks_WeekendHolidayCountsOnce(t *testing.T) {
	// GIVEN: Fri spent, Sat is also a holiday, Sun weekend
	start := date(2025, time.January, 3)
	dates := generic.Period{Start: start, End: start.AddDays(2)}.Days()
	all := []bool{true, true, true}

	blocks := generic.ExtractBlocks(dates, all, []bool{true, false, false}, []bool{false, true, true}, []bool{false, true, false})

	require.Len(t, blocks, 1)
	b := blocks[0]
	assert.Equal(t, 3, b.TotalDays)
	assert.LessOrEqual(t, b.PTODays+b.Holidays+b.WeekendDays, b.TotalDays)
	assert.Equal(t, 2, b.WeekendDays)
	assert.Zero(t, b.Holidays)
}

func TestExtractBlocks_RunAtYearEnd(t *testing.T) {
	start := date(2025, time.December, 29)
	dates := generic.Period{Start: start, End: start.AddDays(2)}.Days()
	all := []bool{true, true, true}

	blocks := generic.ExtractBlocks(dates, all, all, make([]bool, 3), make([]bool, 3))
	require.Len(t, blocks, 1)
	assert.Equal(t, date(2025, time.December, 31), blocks[0].End)
	assert.Equal(t, 3, blocks[0].PTODays)
}

func TestPlanSummary(t *testing.T) {
	plan := generic.Plan{
		Blocks:        []generic.VacationBlock{{TotalDays: 9}, {TotalDays: 4}},
		PTODates:      []generic.TimePoint{date(2025, time.May, 2), date(2025, time.January, 2)},
		FloatingDates: []generic.TimePoint{date(2025, time.March, 3)},
	}
	assert.Equal(t, 13, plan.TotalVacationDays())
	assert.Equal(t, 3, plan.BudgetUsed())
	assert.Equal(t, "4.33", plan.Efficiency().StringFixed(2))
	assert.Equal(t, []generic.TimePoint{
		date(2025, time.January, 2), date(2025, time.March, 3), date(2025, time.May, 2),
	}, plan.SpentDates())

	gp := generic.GroupPlan{
		Blocks: []generic.VacationBlock{{TotalDays: 4}},
		Allocations: []generic.GroupAllocation{
			{GroupName: "A", PTODates: []generic.TimePoint{date(2025, time.May, 2)}},
			{GroupName: "B", PTODates: []generic.TimePoint{date(2025, time.May, 2)}},
		},
	}
	assert.Equal(t, 2, gp.BudgetUsed())
	assert.Equal(t, "4.00", gp.Efficiency().StringFixed(2))
}
