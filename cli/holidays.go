package cli

import (
	"fmt"

	"github.com/warp/vacation-planner/holidays"
)

type HolidaysCmd struct {
	Country string `short:"c" env:"PTO_COUNTRY" default:"us" help:"Country preset."`
	Year    int    `short:"y" env:"PTO_YEAR" help:"Year to list holidays for. Defaults to the current year."`
}

func (c *HolidaysCmd) Run(ctx *Context) error {
	year := c.Year
	if year == 0 {
		year = ctx.currentYear()
	}

	hs, err := holidays.Get(c.Country, year)
	if err != nil {
		return err
	}
	label, err := holidays.Label(c.Country)
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.Out, "  %s - %d\n\n", label, year)
	for _, h := range hs {
		fmt.Fprintf(ctx.Out, "    %12s  %s\n", h.Date.Time.Format("Mon, Jan 02"), h.Name)
	}
	return nil
}
