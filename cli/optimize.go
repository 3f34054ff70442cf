package cli

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/warp/vacation-planner/factory"
	"github.com/warp/vacation-planner/generic"
	"github.com/warp/vacation-planner/render"
	"github.com/warp/vacation-planner/vacation"
)

const strategyAll = "all"

type OptimizeCmd struct {
	Year     int      `short:"y" env:"PTO_YEAR" help:"Target year. Defaults to the current year."`
	Budget   *int     `short:"b" env:"PTO_BUDGET" help:"Number of PTO days available."`
	Floating int      `short:"f" env:"PTO_FLOATING" default:"0" help:"Number of floating holidays available."`
	Country  string   `short:"c" env:"PTO_COUNTRY" default:"us" help:"Holiday preset, or 'none'."`
	Holiday  []string `short:"H" sep:"none" help:"Extra holiday (YYYY-MM-DD). Repeatable."`
	Strategy string   `short:"s" default:"all" enum:"all,bridges,longest,weekends,quarterly" help:"Strategy to run (${enum})."`
	Calendar bool     `default:"true" negatable:"" help:"Show a calendar view for each plan."`
	JSON     bool     `name:"json" help:"Output results as JSON."`
	Config   string   `type:"path" help:"JSON or YAML config file; with a groups list it plans for several groups."`

	Pin        []string           `sep:"none" help:"Date that must be taken off (YYYY-MM-DD). Repeatable."`
	Blackout   []string           `sep:"none" help:"Date that must not be taken off (YYYY-MM-DD). Repeatable."`
	MaxBlock   int                `help:"Soft cap on vacation block length in days (0 = off)."`
	MinGap     int                `help:"Minimum workdays between PTO blocks (0 = off)."`
	MonthlyCap int                `help:"Maximum PTO days per calendar month (0 = off)."`
	Weight     map[string]float64 `help:"Seasonal reward weight, MONTH=WEIGHT. Repeatable."`
}

func (c *OptimizeCmd) Run(ctx *Context) error {
	f := factory.NewConfigFactory(ctx.currentYear())

	cj, err := c.configJSON(f)
	if err != nil {
		return err
	}
	cfg, err := f.FromJSON(cj)
	if err != nil {
		return err
	}

	log := ctx.Log.WithFields(logrus.Fields{"year": cfg.Year, "strategy": c.Strategy})
	if cfg.IsGroup() {
		log.WithField("groups", len(cfg.Groups)).Info("optimizing for groups")
		return c.runGroups(ctx, cfg)
	}
	log.WithField("budget", cfg.Budget.Total()).Info("optimizing")
	return c.runSingle(ctx, cfg)
}

// configJSON reads --config when given, else maps the flags onto the same
// document shape. --year overrides the document's year.
func (c *OptimizeCmd) configJSON(f *factory.ConfigFactory) (factory.ConfigJSON, error) {
	if c.Config != "" {
		cj, err := f.Load(c.Config)
		if err != nil {
			return factory.ConfigJSON{}, err
		}
		if c.Year != 0 {
			cj.Year = c.Year
		}
		return cj, nil
	}

	if c.Budget == nil {
		return factory.ConfigJSON{}, fmt.Errorf("%w: --budget is required (or use --config)", ErrUsage)
	}
	return factory.ConfigJSON{
		Year:             c.Year,
		Country:          c.Country,
		Holidays:         c.Holiday,
		PTOBudget:        *c.Budget,
		FloatingHolidays: c.Floating,
		PinnedDates:      c.Pin,
		BlackoutDates:    c.Blackout,
		MaxBlockDays:     c.MaxBlock,
		MinGapDays:       c.MinGap,
		MonthlyPTOCap:    c.MonthlyCap,
		SeasonalWeights:  c.Weight,
	}, nil
}

func (c *OptimizeCmd) runSingle(ctx *Context, cfg *factory.Config) error {
	holidayDates := generic.HolidayDates(cfg.Holidays)
	cal, err := generic.NewCalendar(cfg.Year, holidayDates)
	if err != nil {
		return err
	}
	eng, err := generic.NewEngine(cal, cfg.Budget, cfg.Constraints)
	if err != nil {
		return err
	}
	planner := vacation.NewPlanner(eng, vacation.WithLogger(ctx.Log))

	var plans []generic.Plan
	if c.Strategy == strategyAll {
		var errs []error
		plans, errs = planner.GenerateAll()
		if len(plans) == 0 {
			return errors.Join(errs...)
		}
	} else {
		kind, err := vacation.ParseStrategy(c.Strategy)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		plan, err := planner.Run(kind)
		if err != nil {
			return err
		}
		plans = []generic.Plan{plan}
	}

	if c.JSON {
		return render.WriteJSON(ctx.Out, render.NewPlansDocument(cfg.Year, cfg.Budget, plans))
	}

	r := ctx.Renderer
	fmt.Fprintln(ctx.Out, r.Header(cfg.Year, cfg.Budget, cfg.Holidays))
	for _, p := range plans {
		fmt.Fprintln(ctx.Out, r.Plan(p, cfg.Budget))
		if c.Calendar {
			if view := r.Calendar(cfg.Year, p, holidayDates); view != "" {
				fmt.Fprintln(ctx.Out, view)
			}
		}
	}
	fmt.Fprintln(ctx.Out, r.Footer(len(plans)))
	return nil
}

func (c *OptimizeCmd) runGroups(ctx *Context, cfg *factory.Config) error {
	eng, err := generic.NewGroupEngine(cfg.Year, cfg.Groups, generic.GroupOptions{})
	if err != nil {
		return err
	}
	planner := vacation.NewGroupPlanner(eng, vacation.WithLogger(ctx.Log))

	var plans []generic.GroupPlan
	if c.Strategy == strategyAll {
		var errs []error
		plans, errs = planner.GenerateAll()
		if len(plans) == 0 {
			return errors.Join(errs...)
		}
	} else {
		kind, err := vacation.ParseStrategy(c.Strategy)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		plan, err := planner.Run(kind)
		if err != nil {
			return err
		}
		plans = []generic.GroupPlan{plan}
	}

	if c.JSON {
		return render.WriteJSON(ctx.Out, render.NewGroupPlansDocument(cfg.Year, cfg.Groups, plans))
	}

	r := ctx.Renderer
	fmt.Fprintln(ctx.Out, r.GroupHeader(cfg.Year, cfg.Groups))
	for _, p := range plans {
		fmt.Fprintln(ctx.Out, r.GroupPlan(p, cfg.Groups))
		if c.Calendar {
			if view := r.GroupCalendar(cfg.Year, p, cfg.Groups); view != "" {
				fmt.Fprintln(ctx.Out, view)
			}
		}
	}
	fmt.Fprintln(ctx.Out, r.Footer(len(plans)))
	return nil
}
