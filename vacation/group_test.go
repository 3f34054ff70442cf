package vacation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/vacation-planner/generic"
	"github.com/warp/vacation-planner/vacation"
)

func newGroupPlanner(t *testing.T, groups ...generic.HolidayGroup) *vacation.GroupPlanner {
	t.Helper()
	g, err := generic.NewGroupEngine(2025, groups, generic.GroupOptions{})
	require.NoError(t, err)
	return vacation.NewGroupPlanner(g)
}

// aliceAndBob share US holidays; Bob also has the day after Thanksgiving.
func aliceAndBob(t *testing.T, budgetA, budgetB int) *vacation.GroupPlanner {
	t.Helper()
	us := us2025(t)
	bob := append(append([]generic.TimePoint(nil), us...), date(2025, time.November, 28))
	return newGroupPlanner(t,
		generic.HolidayGroup{Name: "Alice", Holidays: us, PTOBudget: budgetA},
		generic.HolidayGroup{Name: "Bob", Holidays: bob, PTOBudget: budgetB},
	)
}

// =============================================================================
// MULTI-PARTY STRATEGIES
// =============================================================================

func TestGroupPlanner_ZeroBudgetPartyNeverSpends(t *testing.T) {
	// GIVEN: a worker with budget and a daycare with none
	us := us2025(t)
	p := newGroupPlanner(t,
		generic.HolidayGroup{Name: "Worker", Holidays: us, PTOBudget: 10},
		generic.HolidayGroup{Name: "Daycare", Holidays: us},
	)

	// WHEN
	plans, errs := p.GenerateAll()
	require.Empty(t, errs)

	// THEN: the shared calendar leaves nothing to bridge, in every plan
	for _, plan := range plans {
		daycare, ok := plan.Allocation("Daycare")
		require.True(t, ok)
		assert.Empty(t, daycare.PTODates, plan.Name)
		assert.Empty(t, daycare.FloatingDates, plan.Name)
		worker, _ := plan.Allocation("Worker")
		assert.Zero(t, worker.TotalUsed(), plan.Name)
	}
}

func TestGroupPlanner_BridgesExceedBudget(t *testing.T) {
	p := aliceAndBob(t, 10, 10)
	plan, err := p.MaxBridges()
	require.NoError(t, err)

	assert.Greater(t, plan.TotalSharedDays(), 10)
	for _, a := range plan.Allocations {
		assert.LessOrEqual(t, a.TotalUsed(), 10, a.GroupName)
	}
}

func TestGroupPlanner_LongestProducesLongBlock(t *testing.T) {
	p := aliceAndBob(t, 10, 10)
	plan, err := p.LongestVacation()
	require.NoError(t, err)

	lb, ok := generic.LongestBlock(plan.Blocks)
	require.True(t, ok)
	assert.GreaterOrEqual(t, lb.TotalDays, 10)
}

func TestGroupPlanner_ExtendedWeekendsKeepsBlocksShort(t *testing.T) {
	p := aliceAndBob(t, 8, 8)
	plan, err := p.ExtendedWeekends()
	require.NoError(t, err)

	for _, b := range plan.Blocks {
		assert.LessOrEqual(t, b.TotalDays, 7, "block %s", b.Period())
	}
}

func TestGroupPlanner_QuarterlySpreadsBlocks(t *testing.T) {
	p := aliceAndBob(t, 8, 8)
	plan, err := p.Quarterly()
	require.NoError(t, err)

	quarters := map[int]bool{}
	for _, b := range plan.Blocks {
		quarters[b.Start.Quarter()] = true
	}
	assert.GreaterOrEqual(t, len(quarters), 2)
	for _, a := range plan.Allocations {
		assert.LessOrEqual(t, a.TotalUsed(), 8, a.GroupName)
	}
}

func TestGroupPlanner_QuarterlySpendsEachDayOnce(t *testing.T) {
	p := aliceAndBob(t, 9, 9)
	plan, err := p.Quarterly()
	require.NoError(t, err)

	for _, a := range plan.Allocations {
		seen := map[generic.TimePoint]bool{}
		for _, d := range append(a.PTODates, a.FloatingDates...) {
			assert.False(t, seen[d], "%s spends %s twice", a.GroupName, d)
			seen[d] = true
		}
	}
}

func TestGroupPlanner_GenerateAllReturnsFour(t *testing.T) {
	p := aliceAndBob(t, 8, 8)
	plans, errs := p.GenerateAll()

	assert.Empty(t, errs)
	require.Len(t, plans, 4)
	names := map[string]bool{}
	for _, plan := range plans {
		names[plan.Name] = true
		assert.Len(t, plan.Allocations, 2, plan.Name)
	}
	assert.Len(t, names, 4)
}
