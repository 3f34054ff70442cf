/*
Package generic provides the core vacation allocation engine.

PURPOSE:
  This package contains the calendar model, the single-party and
  multi-party dynamic-programming solvers, and block extraction. It is a
  pure computation library: no I/O, no logging, no global state. Callers
  hand it plain data (a year, holiday dates, budgets, constraints, a reward
  function) and get plain values back.

KEY CONCEPTS IN THIS FILE (types.go):
  - Pool: Which budget a spent day was drawn from (PTO or floating)
  - Budget: The two per-party counters
  - VacationBlock: A maximal run of off-days containing spent days
  - Plan / GroupPlan: The named result of one strategy run
  - HolidayGroup: One party in a multi-party solve

DESIGN PRINCIPLES:
  1. Immutability: Plans are value objects, never mutated after assembly
  2. Determinism: Same inputs always produce the same dates in the same order
  3. Precision: Ratios shown to users are decimal.Decimal, not float64

USAGE:
  cal, _ := generic.NewCalendar(2025, holidays)
  eng, _ := generic.NewEngine(cal, generic.Budget{PTO: 10}, generic.Constraints{})
  alloc, _ := eng.Solve(generic.StreakReward, eng.Available())
  plan := eng.Plan("Bridge Optimizer", "...", alloc)

SEE ALSO:
  - calendar.go: Day flags per year
  - engine.go: Single-party solver
  - group.go: Multi-party solver
  - blocks.go: Block extraction
*/
package generic

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// POOL - Which budget a day is drawn from
// =============================================================================

type Pool string

const (
	PoolPTO      Pool = "pto"
	PoolFloating Pool = "floating_holiday"
)

// =============================================================================
// BUDGET
// =============================================================================

type Budget struct {
	PTO      int
	Floating int
}

func (b Budget) Total() int  { return b.PTO + b.Floating }
func (b Budget) IsZero() bool { return b.PTO == 0 && b.Floating == 0 }

// Validate rejects negative counters. party is only used for the message.
func (b Budget) Validate(party string) error {
	if b.PTO < 0 {
		return &BudgetError{Party: party, Pool: PoolPTO, Value: b.PTO}
	}
	if b.Floating < 0 {
		return &BudgetError{Party: party, Pool: PoolFloating, Value: b.Floating}
	}
	return nil
}

// =============================================================================
// VACATION BLOCK
// =============================================================================

// VacationBlock is a maximal run of consecutive off-days that contains at
// least one spent day. PTODays counts spent days of either pool. A day can be
// both a holiday and a weekend, so PTODays+Holidays+WeekendDays <= TotalDays.
type VacationBlock struct {
	Start       TimePoint
	End         TimePoint
	TotalDays   int
	PTODays     int
	Holidays    int
	WeekendDays int
}

func (b VacationBlock) Period() Period { return Period{Start: b.Start, End: b.End} }

// =============================================================================
// PLAN - Result of one single-party strategy
// =============================================================================

type Plan struct {
	Name          string
	Description   string
	Blocks        []VacationBlock
	PTODates      []TimePoint
	FloatingDates []TimePoint
}

// TotalVacationDays sums block lengths.
func (p Plan) TotalVacationDays() int { return sumDays(p.Blocks) }

// BudgetUsed counts spent days of both pools.
func (p Plan) BudgetUsed() int { return len(p.PTODates) + len(p.FloatingDates) }

// SpentDates merges both pools in ascending order.
func (p Plan) SpentDates() []TimePoint {
	out := make([]TimePoint, 0, p.BudgetUsed())
	out = append(out, p.PTODates...)
	out = append(out, p.FloatingDates...)
	SortTimePoints(out)
	return out
}

// Efficiency is vacation days per spent day, zero when nothing was spent.
func (p Plan) Efficiency() decimal.Decimal {
	return ratio(p.TotalVacationDays(), p.BudgetUsed())
}

// =============================================================================
// GROUP PLAN - Result of one multi-party strategy
// =============================================================================

type HolidayGroup struct {
	Name             string
	Holidays         []TimePoint
	PTOBudget        int
	FloatingHolidays int
}

func (g HolidayGroup) Budget() Budget { return Budget{PTO: g.PTOBudget, Floating: g.FloatingHolidays} }

type GroupAllocation struct {
	GroupName     string
	PTODates      []TimePoint
	FloatingDates []TimePoint
}

func (a GroupAllocation) TotalUsed() int { return len(a.PTODates) + len(a.FloatingDates) }

type GroupPlan struct {
	Name        string
	Description string
	Blocks      []VacationBlock
	Allocations []GroupAllocation
}

// TotalSharedDays sums shared block lengths.
func (p GroupPlan) TotalSharedDays() int { return sumDays(p.Blocks) }

// BudgetUsed counts spent days across all parties.
func (p GroupPlan) BudgetUsed() int {
	n := 0
	for _, a := range p.Allocations {
		n += a.TotalUsed()
	}
	return n
}

// Efficiency counts each shared day once per party, so a two-party plan
// where both spend one day to gain a 3-day weekend reports 3.0.
func (p GroupPlan) Efficiency() decimal.Decimal {
	return ratio(p.TotalSharedDays()*len(p.Allocations), p.BudgetUsed())
}

// Allocation returns the allocation for name.
func (p GroupPlan) Allocation(name string) (GroupAllocation, bool) {
	for _, a := range p.Allocations {
		if a.GroupName == name {
			return a, true
		}
	}
	return GroupAllocation{}, false
}

func sumDays(blocks []VacationBlock) int {
	n := 0
	for _, b := range blocks {
		n += b.TotalDays
	}
	return n
}

func ratio(num, den int) decimal.Decimal {
	if den == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(num)).DivRound(decimal.NewFromInt(int64(den)), 2)
}
