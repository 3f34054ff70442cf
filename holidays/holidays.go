// Package holidays computes observed public holidays for built-in country
// presets.
//
// Observed rule: a holiday on Saturday is observed the preceding Friday, one
// on Sunday the following Monday.
package holidays

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/warp/vacation-planner/generic"
)

// ErrUnknownPreset is returned by Get for a country key it does not know.
var ErrUnknownPreset = errors.New("unknown country preset")

// NonePreset is accepted by callers to mean "no preset holidays".
const NonePreset = "none"

type preset struct {
	label string
	build func(year int) []generic.Holiday
}

var presets = map[string]preset{
	"us": {label: "United States federal holidays", build: usHolidays},
}

// Preset describes one supported country key.
type Preset struct {
	Key   string
	Label string
}

// Presets lists the supported presets, sorted by key.
func Presets() []Preset {
	out := make([]Preset, 0, len(presets))
	for k, p := range presets {
		out = append(out, Preset{Key: k, Label: p.label})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Label returns the human-readable name of a preset.
func Label(country string) (string, error) {
	p, ok := presets[strings.ToLower(country)]
	if !ok {
		return "", unknown(country)
	}
	return p.label, nil
}

// Get returns the observed holidays of country for year, in date order.
func Get(country string, year int) ([]generic.Holiday, error) {
	p, ok := presets[strings.ToLower(country)]
	if !ok {
		return nil, unknown(country)
	}
	hs := p.build(year)
	sort.SliceStable(hs, func(i, j int) bool { return hs[i].Date.Before(hs[j].Date) })
	return hs, nil
}

func unknown(country string) error {
	keys := make([]string, 0, len(presets))
	for _, p := range Presets() {
		keys = append(keys, p.Key)
	}
	return fmt.Errorf("%w %q, supported: %s", ErrUnknownPreset, country, strings.Join(keys, ", "))
}

// =============================================================================
// UNITED STATES
// =============================================================================

func usHolidays(year int) []generic.Holiday {
	return []generic.Holiday{
		{Date: observed(generic.NewTimePoint(year, time.January, 1)), Name: "New Year's Day"},
		{Date: nthWeekday(year, time.January, time.Monday, 3), Name: "Martin Luther King Jr. Day"},
		{Date: nthWeekday(year, time.February, time.Monday, 3), Name: "Presidents' Day"},
		{Date: lastWeekday(year, time.May, time.Monday), Name: "Memorial Day"},
		{Date: observed(generic.NewTimePoint(year, time.June, 19)), Name: "Juneteenth"},
		{Date: observed(generic.NewTimePoint(year, time.July, 4)), Name: "Independence Day"},
		{Date: nthWeekday(year, time.September, time.Monday, 1), Name: "Labor Day"},
		{Date: nthWeekday(year, time.November, time.Thursday, 4), Name: "Thanksgiving"},
		{Date: observed(generic.NewTimePoint(year, time.December, 25)), Name: "Christmas Day"},
	}
}

// =============================================================================
// DATE HELPERS
// =============================================================================

// nthWeekday returns the n-th (1-based) wd of month.
func nthWeekday(year int, month time.Month, wd time.Weekday, n int) generic.TimePoint {
	first := generic.StartOfMonth(year, month)
	delta := (int(wd) - int(first.Weekday()) + 7) % 7
	return first.AddDays(delta + 7*(n-1))
}

// lastWeekday returns the last wd of month.
func lastWeekday(year int, month time.Month, wd time.Weekday) generic.TimePoint {
	last := generic.EndOfMonth(year, month)
	delta := (int(last.Weekday()) - int(wd) + 7) % 7
	return last.AddDays(-delta)
}

func observed(d generic.TimePoint) generic.TimePoint {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDays(-1)
	case time.Sunday:
		return d.AddDays(1)
	}
	return d
}
