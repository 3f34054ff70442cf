/*
engine.go - Single-party allocation engine

PURPOSE:
  Decides, for every workday of a year, whether to work, spend a PTO day
  or spend a floating holiday, maximizing the sum of a Reward over all
  off-days.

ALGORITHM:
  Memoized recursion over (day, pto left, floating left, streak) plus two
  optional dimensions (cooldown, month-used) that exist only when the
  matching constraint is enabled.

    free day (weekend, holiday, pinned):  streak+1, collect reward
    workday:                              max of
                                            work      streak = 0
                                            spend PTO streak+1, collect
                                            spend FH  streak+1, collect

  Terminal value at day N is 0. The action sequence is recovered by a
  forward walk that re-runs the same decision function against the memo,
  switching away from "work" only on a strictly greater value, in the order
  work -> PTO -> floating. Equal-value options therefore always resolve to
  working, and PTO is preferred over floating.

PINNED DATES:
  Pins on workdays are paid for before the solve, floating first, and are
  treated like holidays during the solve. Pins on weekends or holidays cost
  nothing and are not reported as spent.

COMPLEXITY:
  N x (P+1) x (F+1) x N states, times (gap+1) and (cap+1) when those
  constraints are on. Budgets are clamped to the contested-day count.

SEE ALSO:
  - policy.go: Constraint definitions and reward shaping
  - group.go: The multi-party variant
  - blocks.go: Turning an allocation into VacationBlocks
*/
package generic

import (
	"fmt"
	"sort"
	"time"
)

// Allocation is the outcome of one solve: contested day indices, ascending.
type Allocation struct {
	PTO      []int
	Floating []int
}

func (a Allocation) Len() int { return len(a.PTO) + len(a.Floating) }

// Merge appends b's days and keeps both lists sorted.
func (a Allocation) Merge(b Allocation) Allocation {
	out := Allocation{
		PTO:      append(append([]int(nil), a.PTO...), b.PTO...),
		Floating: append(append([]int(nil), a.Floating...), b.Floating...),
	}
	sort.Ints(out.PTO)
	sort.Ints(out.Floating)
	return out
}

// =============================================================================
// ENGINE
// =============================================================================

// Engine holds the per-day facts for one party. It is immutable after
// NewEngine and safe to Solve from several goroutines, each solve owning
// its own memo table.
type Engine struct {
	cal         *Calendar
	budget      Budget
	constraints Constraints

	free    []bool // naturally off or pinned
	blocked []bool // blackout on a workday
	months  []int8

	pinnedPTO      []int
	pinnedFloating []int
	pinnedPerMonth [12]int

	available Budget
	contested int
}

// NewEngine validates the inputs and precomputes per-day lookups.
func NewEngine(cal *Calendar, budget Budget, c Constraints) (*Engine, error) {
	if err := budget.Validate(""); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	n := cal.Len()
	e := &Engine{
		cal:         cal,
		budget:      budget,
		constraints: c,
		free:        make([]bool, n),
		blocked:     make([]bool, n),
		months:      make([]int8, n),
	}
	copy(e.free, cal.IsNaturalOff)
	for i, d := range cal.Dates {
		e.months[i] = int8(d.Month() - 1)
	}

	for _, d := range c.BlackoutDates {
		if i, ok := cal.Index(d); ok && !cal.IsNaturalOff[i] {
			e.blocked[i] = true
		}
	}

	// Pins outside the year or on days already off cost nothing.
	var pins []int
	for _, d := range UniqueTimePoints(c.PinnedDates) {
		if i, ok := cal.Index(d); ok && !cal.IsNaturalOff[i] {
			pins = append(pins, i)
		}
	}
	nf := min(budget.Floating, len(pins))
	if len(pins)-nf > budget.PTO {
		return nil, fmt.Errorf("%w: %d pinned workdays, budget %d PTO + %d floating",
			ErrInsufficientBudget, len(pins), budget.PTO, budget.Floating)
	}
	e.pinnedFloating = pins[:nf]
	e.pinnedPTO = pins[nf:]
	for _, i := range pins {
		e.free[i] = true
		e.pinnedPerMonth[e.months[i]]++
	}
	if c.MonthlyCap > 0 {
		for m, n := range e.pinnedPerMonth {
			if n > c.MonthlyCap {
				return nil, newPolicyError("pinned_dates",
					fmt.Sprintf("%d pinned workdays in %s exceed monthly cap %d", n, time.Month(m+1), c.MonthlyCap),
					ErrConflictingPolicy)
			}
		}
	}
	e.available = Budget{PTO: budget.PTO - len(e.pinnedPTO), Floating: budget.Floating - nf}

	for i := range e.free {
		if !e.free[i] && !e.blocked[i] {
			e.contested++
		}
	}
	return e, nil
}

func (e *Engine) Calendar() *Calendar      { return e.cal }
func (e *Engine) Budget() Budget           { return e.budget }
func (e *Engine) Constraints() Constraints { return e.constraints }

// Available is the budget left for the solver after pinned dates are paid.
func (e *Engine) Available() Budget { return e.available }

// Pinned returns the pinned workdays as an allocation.
func (e *Engine) Pinned() Allocation {
	return Allocation{PTO: append([]int(nil), e.pinnedPTO...), Floating: append([]int(nil), e.pinnedFloating...)}
}

// IsFree reports whether day i is off without spending (natural or pinned).
func (e *Engine) IsFree(i int) bool { return e.free[i] }

// IsBlocked reports whether day i is a blacked-out workday.
func (e *Engine) IsBlocked(i int) bool { return e.blocked[i] }

// Shape applies MaxBlockDays and SeasonalWeights to base.
func (e *Engine) Shape(base Reward) Reward { return e.constraints.shape(base, e.months) }

// =============================================================================
// SOLVE
// =============================================================================

type action int8

const (
	actWork action = iota
	actPTO
	actFloating
	actFree
)

type state struct {
	day, pto, floating, streak, cool, used int16
}

type solver struct {
	e      *Engine
	reward Reward
	gap    int16
	cap    int16
	lo, hi int
	memo   map[state]float64
	err    error
}

// Solve runs the DP with reward over the contested days, spending at most
// budget. The reward is used as given; call Shape first to apply policy.
func (e *Engine) Solve(reward Reward, budget Budget) (Allocation, error) {
	return e.SolveRange(reward, budget, 0, e.cal.Len()-1)
}

// SolveRange is Solve with spending restricted to days [lo, hi]. Days
// outside still count toward streaks.
func (e *Engine) SolveRange(reward Reward, budget Budget, lo, hi int) (Allocation, error) {
	if err := budget.Validate(""); err != nil {
		return Allocation{}, err
	}
	s := &solver{
		e:      e,
		reward: reward,
		gap:    int16(e.constraints.MinGapDays),
		cap:    int16(e.constraints.MonthlyCap),
		lo:     lo,
		hi:     hi,
		memo:   make(map[state]float64),
	}

	start := state{
		pto:      int16(min(budget.PTO, e.contested)),
		floating: int16(min(budget.Floating, e.contested)),
	}
	if s.cap > 0 {
		start.used = int16(e.pinnedPerMonth[0])
	}

	s.value(start)
	if s.err != nil {
		return Allocation{}, s.err
	}

	var alloc Allocation
	n := int16(e.cal.Len())
	for st := start; st.day < n; {
		_, act := s.decide(st)
		switch act {
		case actPTO:
			alloc.PTO = append(alloc.PTO, int(st.day))
		case actFloating:
			alloc.Floating = append(alloc.Floating, int(st.day))
		}
		st = s.next(st, act)
	}
	if s.err != nil {
		return Allocation{}, s.err
	}
	return alloc, nil
}

func (s *solver) value(st state) float64 {
	if s.err != nil || int(st.day) >= s.e.cal.Len() {
		return 0
	}
	if v, ok := s.memo[st]; ok {
		return v
	}
	v, _ := s.decide(st)
	s.memo[st] = v
	return v
}

// decide is shared by the forward pass and the backtrack so both always
// agree on the chosen action.
func (s *solver) decide(st state) (float64, action) {
	day := int(st.day)
	ns := int(st.streak) + 1

	if s.e.free[day] {
		return s.gain(day, ns) + s.value(s.next(st, actFree)), actFree
	}

	best, act := s.value(s.next(st, actWork)), actWork
	if !s.canSpend(st) {
		return best, act
	}

	incr := s.gain(day, ns)
	if st.pto > 0 {
		if v := incr + s.value(s.next(st, actPTO)); v > best {
			best, act = v, actPTO
		}
	}
	if st.floating > 0 {
		if v := incr + s.value(s.next(st, actFloating)); v > best {
			best, act = v, actFloating
		}
	}
	return best, act
}

func (s *solver) gain(day, streak int) float64 {
	v := s.reward.Value(day, streak)
	if !isFinite(v) {
		if s.err == nil {
			s.err = &RewardError{Day: day, Streak: streak, Value: v}
		}
		return 0
	}
	return v
}

func (s *solver) canSpend(st state) bool {
	if s.e.blocked[st.day] || int(st.day) < s.lo || int(st.day) > s.hi {
		return false
	}
	if s.gap > 0 && st.cool != 0 && !(st.streak > 0 && st.cool == s.gap) {
		return false
	}
	if s.cap > 0 && st.used >= s.cap {
		return false
	}
	return true
}

func (s *solver) next(st state, act action) state {
	nx := st
	nx.day++
	switch act {
	case actFree:
		nx.streak++
	case actWork:
		nx.streak = 0
		if nx.cool > 0 {
			nx.cool--
		}
	case actPTO, actFloating:
		nx.streak++
		if act == actPTO {
			nx.pto--
		} else {
			nx.floating--
		}
		if s.gap > 0 {
			nx.cool = s.gap
		}
		if s.cap > 0 {
			nx.used++
		}
	}
	if s.cap > 0 && int(nx.day) < len(s.e.months) && s.e.months[nx.day] != s.e.months[st.day] {
		nx.used = int16(s.e.pinnedPerMonth[s.e.months[nx.day]])
	}
	return nx
}

// =============================================================================
// PLAN ASSEMBLY
// =============================================================================

// Plan combines alloc with the pinned days and extracts blocks.
func (e *Engine) Plan(name, description string, alloc Allocation) Plan {
	full := alloc.Merge(e.Pinned())

	n := e.cal.Len()
	off := make([]bool, n)
	spent := make([]bool, n)
	copy(off, e.cal.IsNaturalOff)
	for _, idx := range [][]int{full.PTO, full.Floating} {
		for _, i := range idx {
			off[i] = true
			spent[i] = true
		}
	}

	return Plan{
		Name:          name,
		Description:   description,
		Blocks:        ExtractBlocks(e.cal.Dates, off, spent, e.cal.IsWeekend, e.cal.IsHoliday),
		PTODates:      datesAt(e.cal, full.PTO),
		FloatingDates: datesAt(e.cal, full.Floating),
	}
}

// Optimize shapes reward with the engine's policy, solves with the
// available budget and assembles the plan.
func (e *Engine) Optimize(name, description string, reward Reward) (Plan, error) {
	alloc, err := e.Solve(e.Shape(reward), e.available)
	if err != nil {
		return Plan{}, err
	}
	return e.Plan(name, description, alloc), nil
}

func datesAt(cal *Calendar, idx []int) []TimePoint {
	out := make([]TimePoint, len(idx))
	for k, i := range idx {
		out[k] = cal.Dates[i]
	}
	return out
}
