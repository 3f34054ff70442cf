/*
planner.go - Single-party strategies

PURPOSE:
  Wraps a generic.Engine with the four strategy presets and the batch
  "generate all" operation.

STRATEGIES:
  MaxBridges:       value = s
  LongestVacation:  value = s, plus a dominant bonus inside the longest
                    window the budget can cover
  ExtendedWeekends: value = s up to 4, steeply negative past it
  Quarterly:        budget split per quarter, one solve per quarter with
                    value = s inside the quarter and 0 outside

  Every strategy reward goes through Engine.Shape, so block caps and
  seasonal weights apply to all of them.

FAILURE ISOLATION:
  GenerateAll runs every strategy even if an earlier one fails or panics.
  Failures come back as *StrategyError values and are logged at warn level.

USAGE:
  p := vacation.NewPlanner(engine, vacation.WithLogger(log))
  plans, errs := p.GenerateAll()
*/
package vacation

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/warp/vacation-planner/generic"
)

// Option configures a Planner or GroupPlanner.
type Option func(*options)

type options struct {
	log logrus.FieldLogger
}

// WithLogger sets the logger used for strategy progress and failures.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) { o.log = l }
}

func buildOptions(opts []Option) options {
	o := options{log: discardLogger()}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

// =============================================================================
// PLANNER
// =============================================================================

type Planner struct {
	engine *generic.Engine
	log    logrus.FieldLogger
}

func NewPlanner(engine *generic.Engine, opts ...Option) *Planner {
	o := buildOptions(opts)
	return &Planner{engine: engine, log: o.log}
}

func (p *Planner) Engine() *generic.Engine { return p.engine }

// Run executes one strategy.
func (p *Planner) Run(kind StrategyKind) (generic.Plan, error) {
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
		return generic.Plan{}, fmt.Errorf("unknown strategy %q", kind)
	}
}

func (p *Planner) MaxBridges() (generic.Plan, error) {
	info := singleInfo[StrategyBridges]
	return p.engine.Optimize(info.Name, info.Description, generic.StreakReward)
}

func (p *Planner) ExtendedWeekends() (generic.Plan, error) {
	info := singleInfo[StrategyWeekends]
	return p.engine.Optimize(info.Name, info.Description, ExtendedWeekendReward)
}

func (p *Planner) LongestVacation() (generic.Plan, error) {
	info := singleInfo[StrategyLongest]
	e := p.engine
	cal := e.Calendar()

	budget := e.Available().Total()
	w := longestWindow(cal.Len(), []int{budget}, func(_, i int) int {
		switch {
		case e.IsBlocked(i):
			return -1
		case e.IsFree(i):
			return 0
		default:
			return 1
		}
	})

	reward := e.Shape(generic.StreakReward)
	if w.ok {
		bonus, err := generic.DominantBonus(cal.Len(), e.Constraints().MaxWeight())
		if err != nil {
			return generic.Plan{}, fmt.Errorf("longest vacation bonus: %w", err)
		}
		reward = generic.WithBonus(reward, w.lo, w.hi, bonus)
		p.log.WithFields(logrus.Fields{
			"start": cal.Date(w.lo),
			"end":   cal.Date(w.hi),
			"days":  w.Len(),
		}).Debug("longest window")
	}

	alloc, err := e.Solve(reward, e.Available())
	if err != nil {
		return generic.Plan{}, err
	}
	return e.Plan(info.Name, info.Description, alloc), nil
}

func (p *Planner) Quarterly() (generic.Plan, error) {
	info := singleInfo[StrategyQuarterly]
	e := p.engine
	cal := e.Calendar()
	avail := e.Available()
	quarters := cal.Quarters()

	var holidays [4]int
	for q, period := range quarters {
		holidays[q] = cal.HolidaysIn(period)
	}
	shares := quarterShares(avail.Total(), holidays)

	var all generic.Allocation
	floatLeft := avail.Floating
	for q, period := range quarters {
		if shares[q] == 0 {
			continue
		}
		fq := min(floatLeft, shares[q])
		floatLeft -= fq
		budget := generic.Budget{PTO: shares[q] - fq, Floating: fq}

		lo, hi := cal.IndexRange(period)
		alloc, err := e.SolveRange(e.Shape(generic.WithinRange(generic.StreakReward, lo, hi)), budget, lo, hi)
		if err != nil {
			return generic.Plan{}, fmt.Errorf("quarter %d: %w", q+1, err)
		}
		p.log.WithFields(logrus.Fields{
			"quarter": q + 1,
			"budget":  shares[q],
			"spent":   alloc.Len(),
		}).Debug("quarter solved")
		all = all.Merge(alloc)
	}
	return e.Plan(info.Name, info.Description, all), nil
}

// GenerateAll runs every strategy in order. A failing strategy is skipped
// and reported; the others still run.
func (p *Planner) GenerateAll() ([]generic.Plan, []error) {
	steps := make([]step[generic.Plan], len(Strategies))
	for i, kind := range Strategies {
		steps[i] = step[generic.Plan]{kind: kind, run: func() (generic.Plan, error) { return p.Run(kind) }}
	}
	return runAll(p.log, steps, func(pl generic.Plan) logrus.Fields {
		return logrus.Fields{"spent": pl.BudgetUsed(), "blocks": len(pl.Blocks), "days": pl.TotalVacationDays()}
	})
}

// =============================================================================
// BATCH RUNNER
// =============================================================================

type step[T any] struct {
	kind StrategyKind
	run  func() (T, error)
}

func runAll[T any](log logrus.FieldLogger, steps []step[T], fields func(T) logrus.Fields) ([]T, []error) {
	var (
		results []T
		errs    []error
	)
	for _, s := range steps {
		res, err := runStep(s)
		entry := log.WithField("strategy", s.kind)
		if err != nil {
			serr := &StrategyError{Strategy: s.kind, Err: err}
			entry.WithError(err).Warn("strategy failed, skipping")
			errs = append(errs, serr)
			continue
		}
		entry.WithFields(fields(res)).Debug("strategy complete")
		results = append(results, res)
	}
	return results, errs
}

func runStep[T any](s step[T]) (res T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return s.run()
}
