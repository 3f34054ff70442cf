/*
group.go - Multi-party allocation engine

PURPOSE:
  Plans vacation that several parties take together. A day is shared
  vacation only if every party is off: naturally (weekend or its own
  holiday) or by spending from its own budget on that same day.

ALGORITHM:
  Memoized recursion over (day, streak, remaining budget per party). Each
  party's PTO and floating holidays form one pool during the solve.

    all parties naturally off:  streak+1, collect reward
    otherwise:                  max of
                                  work   streak = 0
                                  off    every party not naturally off
                                         pays 1 (needs >= 1 left),
                                         streak+1, collect

  Ties resolve to work. After solving, each party's first FloatingHolidays
  spent days (ascending) are reported as floating and the rest as PTO.

LIMITS:
  The state space grows with the product of (budget+1) over parties. It is
  meant for a handful of parties with budgets of a few dozen days.
  NewGroupEngine rejects more than MaxParties parties and budget vectors
  whose combination count exceeds GroupOptions.MaxBudgetCombinations.

SEE ALSO:
  - engine.go: Single-party engine and the shared decision pattern
  - blocks.go: Block extraction with shared-holiday counting
*/
package generic

import (
	"fmt"
	"sort"
)

const (
	// MaxParties bounds the budget vector carried in the DP state.
	MaxParties = 6

	// DefaultMaxBudgetCombinations caps prod(budget_i + 1).
	DefaultMaxBudgetCombinations = 250_000
)

// GroupOptions tunes the multi-party engine.
type GroupOptions struct {
	// MaxBudgetCombinations overrides DefaultMaxBudgetCombinations when > 0.
	MaxBudgetCombinations int
}

func (o GroupOptions) limit() int {
	if o.MaxBudgetCombinations > 0 {
		return o.MaxBudgetCombinations
	}
	return DefaultMaxBudgetCombinations
}

// =============================================================================
// GROUP ENGINE
// =============================================================================

type GroupEngine struct {
	year   int
	groups []HolidayGroup
	cals   []*Calendar
	opts   GroupOptions

	allOff        []bool
	sharedHoliday []bool
	budgets       []int
}

// NewGroupEngine validates the groups and precomputes per-day facts.
func NewGroupEngine(year int, groups []HolidayGroup, opts GroupOptions) (*GroupEngine, error) {
	if len(groups) == 0 {
		return nil, ErrNoParties
	}
	if len(groups) > MaxParties {
		return nil, fmt.Errorf("%w: %d groups, at most %d supported", ErrTooManyParties, len(groups), MaxParties)
	}

	g := &GroupEngine{
		year:    year,
		groups:  append([]HolidayGroup(nil), groups...),
		cals:    make([]*Calendar, len(groups)),
		opts:    opts,
		budgets: make([]int, len(groups)),
	}
	for p, grp := range groups {
		if err := grp.Budget().Validate(grp.Name); err != nil {
			return nil, err
		}
		cal, err := NewCalendar(year, grp.Holidays)
		if err != nil {
			return nil, err
		}
		g.cals[p] = cal
		g.budgets[p] = grp.Budget().Total()
	}

	n := g.cals[0].Len()
	g.allOff = make([]bool, n)
	g.sharedHoliday = make([]bool, n)
	for i := 0; i < n; i++ {
		off, hol := true, true
		for _, cal := range g.cals {
			off = off && cal.IsNaturalOff[i]
			hol = hol && cal.IsHoliday[i]
		}
		g.allOff[i] = off
		g.sharedHoliday[i] = hol && !g.cals[0].IsWeekend[i]
	}

	if err := g.checkStateSpace(g.budgets); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *GroupEngine) Year() int                  { return g.year }
func (g *GroupEngine) Len() int                   { return g.cals[0].Len() }
func (g *GroupEngine) Parties() int               { return len(g.groups) }
func (g *GroupEngine) Groups() []HolidayGroup     { return g.groups }
func (g *GroupEngine) Calendar(p int) *Calendar   { return g.cals[p] }
func (g *GroupEngine) Dates() []TimePoint         { return g.cals[0].Dates }
func (g *GroupEngine) IsSharedOff(i int) bool     { return g.allOff[i] }
func (g *GroupEngine) IsSharedHoliday(i int) bool { return g.sharedHoliday[i] }

// Budgets returns each party's combined PTO+floating pool.
func (g *GroupEngine) Budgets() []int { return append([]int(nil), g.budgets...) }

// checkStateSpace multiplies (b+1) over parties, with b clamped to the
// party's workday count, and fails once the product passes the limit.
func (g *GroupEngine) checkStateSpace(budgets []int) error {
	limit := g.opts.limit()
	combos := 1
	for p, b := range budgets {
		combos *= min(b, g.cals[p].Workdays()) + 1
		if combos > limit {
			return &StateSpaceError{Combinations: combos, Limit: limit}
		}
	}
	return nil
}

// =============================================================================
// SOLVE
// =============================================================================

type groupState struct {
	day, streak int16
	left        [MaxParties]uint16
}

type groupSolver struct {
	g      *GroupEngine
	reward Reward
	lo, hi int
	memo   map[groupState]float64
	err    error
}

// Solve runs the shared DP with the given per-party pools and returns,
// per party, the ascending day indices it must spend.
func (g *GroupEngine) Solve(reward Reward, budgets []int) ([][]int, error) {
	return g.SolveRange(reward, budgets, 0, g.Len()-1)
}

// SolveRange is Solve with spending restricted to days [lo, hi].
func (g *GroupEngine) SolveRange(reward Reward, budgets []int, lo, hi int) ([][]int, error) {
	if len(budgets) != len(g.groups) {
		return nil, fmt.Errorf("expected %d budgets, got %d", len(g.groups), len(budgets))
	}
	var start groupState
	for p, b := range budgets {
		if b < 0 {
			return nil, &BudgetError{Party: g.groups[p].Name, Pool: PoolPTO, Value: b}
		}
		start.left[p] = uint16(min(b, g.cals[p].Workdays()))
	}
	if err := g.checkStateSpace(budgets); err != nil {
		return nil, err
	}

	s := &groupSolver{g: g, reward: reward, lo: lo, hi: hi, memo: make(map[groupState]float64)}
	s.value(start)
	if s.err != nil {
		return nil, s.err
	}

	spent := make([][]int, len(g.groups))
	n := int16(g.Len())
	for st := start; st.day < n; {
		_, off := s.decide(st)
		if off && !g.allOff[st.day] {
			for p, cal := range g.cals {
				if !cal.IsNaturalOff[st.day] {
					spent[p] = append(spent[p], int(st.day))
				}
			}
		}
		st = s.next(st, off)
	}
	if s.err != nil {
		return nil, s.err
	}
	return spent, nil
}

func (s *groupSolver) value(st groupState) float64 {
	if s.err != nil || int(st.day) >= s.g.Len() {
		return 0
	}
	if v, ok := s.memo[st]; ok {
		return v
	}
	v, _ := s.decide(st)
	s.memo[st] = v
	return v
}

func (s *groupSolver) decide(st groupState) (float64, bool) {
	day := int(st.day)
	ns := int(st.streak) + 1

	if s.g.allOff[day] {
		return s.gain(day, ns) + s.value(s.next(st, true)), true
	}

	best := s.value(s.next(st, false))
	if !s.affordable(st) {
		return best, false
	}
	if v := s.gain(day, ns) + s.value(s.next(st, true)); v > best {
		return v, true
	}
	return best, false
}

func (s *groupSolver) affordable(st groupState) bool {
	if int(st.day) < s.lo || int(st.day) > s.hi {
		return false
	}
	for p, cal := range s.g.cals {
		if !cal.IsNaturalOff[st.day] && st.left[p] == 0 {
			return false
		}
	}
	return true
}

func (s *groupSolver) next(st groupState, off bool) groupState {
	nx := st
	nx.day++
	if !off {
		nx.streak = 0
		return nx
	}
	nx.streak++
	for p, cal := range s.g.cals {
		if !cal.IsNaturalOff[st.day] {
			nx.left[p]--
		}
	}
	return nx
}

func (s *groupSolver) gain(day, streak int) float64 {
	v := s.reward.Value(day, streak)
	if !isFinite(v) {
		if s.err == nil {
			s.err = &RewardError{Day: day, Streak: streak, Value: v}
		}
		return 0
	}
	return v
}

// =============================================================================
// PLAN ASSEMBLY
// =============================================================================

// Plan splits each party's days into floating and PTO and extracts the
// shared blocks.
func (g *GroupEngine) Plan(name, description string, spent [][]int) GroupPlan {
	n := g.Len()
	off := make([]bool, n)
	anySpent := make([]bool, n)
	copy(off, g.allOff)
	for _, days := range spent {
		for _, i := range days {
			off[i] = true
			anySpent[i] = true
		}
	}

	dates := g.Dates()
	allocs := make([]GroupAllocation, len(g.groups))
	for p, grp := range g.groups {
		var days []int
		if p < len(spent) {
			days = append(days, spent[p]...)
		}
		sort.Ints(days)
		nf := min(grp.FloatingHolidays, len(days))
		allocs[p] = GroupAllocation{
			GroupName:     grp.Name,
			FloatingDates: datesAt(g.cals[p], days[:nf]),
			PTODates:      datesAt(g.cals[p], days[nf:]),
		}
	}

	return GroupPlan{
		Name:        name,
		Description: description,
		Blocks:      ExtractBlocks(dates, off, anySpent, g.cals[0].IsWeekend, g.sharedHoliday),
		Allocations: allocs,
	}
}

// Optimize solves with the full per-party budgets and assembles the plan.
func (g *GroupEngine) Optimize(name, description string, reward Reward) (GroupPlan, error) {
	spent, err := g.Solve(reward, g.budgets)
	if err != nil {
		return GroupPlan{}, err
	}
	return g.Plan(name, description, spent), nil
}
