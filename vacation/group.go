package vacation

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/warp/vacation-planner/generic"
)

// =============================================================================
// GROUP PLANNER - Same four strategies over the multi-party engine
// =============================================================================

type GroupPlanner struct {
	engine *generic.GroupEngine
	log    logrus.FieldLogger
}

func NewGroupPlanner(engine *generic.GroupEngine, opts ...Option) *GroupPlanner {
	o := buildOptions(opts)
	return &GroupPlanner{engine: engine, log: o.log}
}

func (p *GroupPlanner) Engine() *generic.GroupEngine { return p.engine }

func (p *GroupPlanner) Run(kind StrategyKind) (generic.GroupPlan, error) {
	switch kind {
	case StrategyBridges:
		return p.MaxBridges()
	case StrategyLongest:
		return p.LongestVacation()
	case StrategyWeekends:
		return p.ExtendedWeekends()
	case StrategyQuarterly:
		return p.Quarterly()
	default:
		return generic.GroupPlan{}, fmt.Errorf("unknown strategy %q", kind)
	}
}

func (p *GroupPlanner) MaxBridges() (generic.GroupPlan, error) {
	info := groupInfo[StrategyBridges]
	return p.engine.Optimize(info.Name, info.Description, generic.StreakReward)
}

func (p *GroupPlanner) ExtendedWeekends() (generic.GroupPlan, error) {
	info := groupInfo[StrategyWeekends]
	return p.engine.Optimize(info.Name, info.Description, ExtendedWeekendReward)
}

// LongestVacation looks for the longest window every party can afford with
// its own budget, then rewards it with a dominant bonus.
func (p *GroupPlanner) LongestVacation() (generic.GroupPlan, error) {
	info := groupInfo[StrategyLongest]
	g := p.engine

	w := longestWindow(g.Len(), g.Budgets(), func(party, i int) int {
		if g.Calendar(party).IsNaturalOff[i] {
			return 0
		}
		return 1
	})

	reward := generic.StreakReward
	if w.ok {
		bonus, err := generic.DominantBonus(g.Len(), 1)
		if err != nil {
			return generic.GroupPlan{}, fmt.Errorf("longest vacation bonus: %w", err)
		}
		reward = generic.WithBonus(reward, w.lo, w.hi, bonus)
		p.log.WithFields(logrus.Fields{
			"start": g.Dates()[w.lo],
			"end":   g.Dates()[w.hi],
			"days":  w.Len(),
		}).Debug("longest shared window")
	}
	return g.Optimize(info.Name, info.Description, reward)
}

// Quarterly splits every party's pool across quarters by that party's own
// holiday distribution, then solves each quarter on its own.
func (p *GroupPlanner) Quarterly() (generic.GroupPlan, error) {
	info := groupInfo[StrategyQuarterly]
	g := p.engine
	quarters := generic.QuarterPeriods(g.Year())

	perQuarter := make([][]int, 4)
	for q := range perQuarter {
		perQuarter[q] = make([]int, g.Parties())
	}
	for party, total := range g.Budgets() {
		cal := g.Calendar(party)
		var holidays [4]int
		for q, period := range quarters {
			holidays[q] = cal.HolidaysIn(period)
		}
		for q, share := range quarterShares(total, holidays) {
			perQuarter[q][party] = share
		}
	}

	spent := make([][]int, g.Parties())
	for q, period := range quarters {
		if sum(perQuarter[q]) == 0 {
			continue
		}
		lo, hi := g.Calendar(0).IndexRange(period)
		days, err := g.SolveRange(generic.WithinRange(generic.StreakReward, lo, hi), perQuarter[q], lo, hi)
		if err != nil {
			return generic.GroupPlan{}, fmt.Errorf("quarter %d: %w", q+1, err)
		}
		for party := range spent {
			spent[party] = append(spent[party], days[party]...)
		}
		p.log.WithFields(logrus.Fields{"quarter": q + 1, "budgets": perQuarter[q]}).Debug("quarter solved")
	}
	return g.Plan(info.Name, info.Description, spent), nil
}

// GenerateAll runs every strategy in order with per-strategy failure
// isolation.
func (p *GroupPlanner) GenerateAll() ([]generic.GroupPlan, []error) {
	steps := make([]step[generic.GroupPlan], len(Strategies))
	for i, kind := range Strategies {
		steps[i] = step[generic.GroupPlan]{kind: kind, run: func() (generic.GroupPlan, error) { return p.Run(kind) }}
	}
	return runAll(p.log, steps, func(pl generic.GroupPlan) logrus.Fields {
		return logrus.Fields{"spent": pl.BudgetUsed(), "blocks": len(pl.Blocks), "shared_days": pl.TotalSharedDays()}
	})
}

func sum(xs []int) int {
	n := 0
	for _, x := range xs {
		n += x
	}
	return n
}
