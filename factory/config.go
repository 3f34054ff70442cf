/*
Package factory converts planner config documents into engine inputs.

PURPOSE:
  Reads a JSON or YAML document describing one person (top-level budget
  and policy) or several groups, resolves country presets and custom
  holidays, and produces the typed values the generic engines take. The
  command line builds the same ConfigJSON from its flags, so files and
  flags go through one conversion path.

SCHEMA:
  year: 2025
  country: us
  holidays: ["2025-11-28"]
  pto_budget: 15
  floating_holidays: 1
  pinned_dates: ["2025-07-03"]
  blackout_dates: ["2025-12-22"]
  max_block_days: 10
  min_gap_days: 20
  monthly_pto_cap: 5
  seasonal_weights: {june: 1.5, "7": 1.5}
  groups:
    - name: Alice
      country: us
      pto_budget: 15
    - name: Daycare
      holidays: ["2025-12-24", "2025-12-26"]

  A document with a groups list runs in multi-group mode; the policy keys
  then do not apply. Groups without a name are called "Group N".

USAGE:
  f := factory.NewConfigFactory(time.Now().Year())
  cj, err := f.Load("plan.yaml")
  cfg, err := f.FromJSON(cj)
  cal, err := generic.NewCalendar(cfg.Year, generic.HolidayDates(cfg.Holidays))

SEE ALSO:
  - generic/policy.go: Constraint definitions
  - holidays/holidays.go: Country presets
  - cli/optimize.go: Flag to ConfigJSON mapping
*/
package factory

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/warp/vacation-planner/generic"
	"github.com/warp/vacation-planner/holidays"
)

// ErrInvalidConfig is wrapped by every error caused by document content.
var ErrInvalidConfig = errors.New("invalid config")

// CustomHolidayName labels holidays listed by date only.
const CustomHolidayName = "Custom holiday"

// =============================================================================
// SCHEMA TYPES
// =============================================================================

// ConfigJSON is the file representation of a planning run.
type ConfigJSON struct {
	Year             int                `json:"year,omitempty" yaml:"year,omitempty"`
	Country          string             `json:"country,omitempty" yaml:"country,omitempty"`
	Holidays         []string           `json:"holidays,omitempty" yaml:"holidays,omitempty"`
	PTOBudget        int                `json:"pto_budget,omitempty" yaml:"pto_budget,omitempty"`
	FloatingHolidays int                `json:"floating_holidays,omitempty" yaml:"floating_holidays,omitempty"`
	PinnedDates      []string           `json:"pinned_dates,omitempty" yaml:"pinned_dates,omitempty"`
	BlackoutDates    []string           `json:"blackout_dates,omitempty" yaml:"blackout_dates,omitempty"`
	MaxBlockDays     int                `json:"max_block_days,omitempty" yaml:"max_block_days,omitempty"`
	MinGapDays       int                `json:"min_gap_days,omitempty" yaml:"min_gap_days,omitempty"`
	MonthlyPTOCap    int                `json:"monthly_pto_cap,omitempty" yaml:"monthly_pto_cap,omitempty"`
	SeasonalWeights  map[string]float64 `json:"seasonal_weights,omitempty" yaml:"seasonal_weights,omitempty"`
	Groups           []GroupJSON        `json:"groups,omitempty" yaml:"groups,omitempty"`
}

// GroupJSON is one party of a multi-group run.
type GroupJSON struct {
	Name             string   `json:"name,omitempty" yaml:"name,omitempty"`
	Country          string   `json:"country,omitempty" yaml:"country,omitempty"`
	Holidays         []string `json:"holidays,omitempty" yaml:"holidays,omitempty"`
	PTOBudget        int      `json:"pto_budget,omitempty" yaml:"pto_budget,omitempty"`
	FloatingHolidays int      `json:"floating_holidays,omitempty" yaml:"floating_holidays,omitempty"`
}

// Format selects the document decoder.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: unsupported file extension %q (want .json, .yaml or .yml)", ErrInvalidConfig, filepath.Ext(path))
	}
}

// =============================================================================
// RESOLVED CONFIG
// =============================================================================

// Config is a fully resolved planning run.
type Config struct {
	Year int

	// Single-party inputs.
	Country     string
	Holidays    []generic.Holiday
	Budget      generic.Budget
	Constraints generic.Constraints

	// Multi-party inputs; non-empty switches to group mode.
	Groups []generic.HolidayGroup
}

// IsGroup reports whether the run plans for several parties.
func (c *Config) IsGroup() bool { return len(c.Groups) > 0 }

// =============================================================================
// CONFIG FACTORY
// =============================================================================

// ConfigFactory decodes and resolves config documents.
type ConfigFactory struct {
	defaultYear int
}

// NewConfigFactory creates a factory that uses defaultYear when a document
// leaves the year out.
func NewConfigFactory(defaultYear int) *ConfigFactory {
	return &ConfigFactory{defaultYear: defaultYear}
}

// Load reads and decodes a config file, choosing the format by extension.
func (f *ConfigFactory) Load(path string) (ConfigJSON, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return ConfigJSON{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ConfigJSON{}, fmt.Errorf("failed to read config: %w", err)
	}
	return f.Parse(data, format)
}

// Parse decodes a document. Unknown keys are rejected.
func (f *ConfigFactory) Parse(data []byte, format Format) (ConfigJSON, error) {
	var cj ConfigJSON
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cj); err != nil {
			return ConfigJSON{}, fmt.Errorf("%w: failed to parse JSON: %v", ErrInvalidConfig, err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cj); err != nil {
			return ConfigJSON{}, fmt.Errorf("%w: failed to parse YAML: %v", ErrInvalidConfig, err)
		}
	default:
		return ConfigJSON{}, fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, format)
	}
	return cj, nil
}

// FromJSON resolves presets, dates and weights into a Config.
func (f *ConfigFactory) FromJSON(cj ConfigJSON) (*Config, error) {
	year := cj.Year
	if year == 0 {
		year = f.defaultYear
	}
	if year < 1 || year > 9999 {
		return nil, fmt.Errorf("year: %w %d", generic.ErrInvalidYear, year)
	}

	// An explicit empty list is a mistake; an absent one means single-party.
	if cj.Groups != nil {
		if len(cj.Groups) == 0 {
			return nil, fmt.Errorf("%w: groups: must be a non-empty list", ErrInvalidConfig)
		}
		groups, err := parseGroups(cj.Groups, year)
		if err != nil {
			return nil, err
		}
		return &Config{Year: year, Groups: groups}, nil
	}

	cfg := &Config{
		Year:    year,
		Country: cj.Country,
		Budget:  generic.Budget{PTO: cj.PTOBudget, Floating: cj.FloatingHolidays},
	}
	if err := cfg.Budget.Validate(""); err != nil {
		return nil, err
	}

	hs, err := resolveHolidays(cj.Country, cj.Holidays, year, "")
	if err != nil {
		return nil, err
	}
	cfg.Holidays = hs

	c, err := parseConstraints(cj)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	cfg.Constraints = c
	return cfg, nil
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

func parseGroups(gjs []GroupJSON, year int) ([]generic.HolidayGroup, error) {
	groups := make([]generic.HolidayGroup, 0, len(gjs))
	for i, gj := range gjs {
		name := strings.TrimSpace(gj.Name)
		if name == "" {
			name = fmt.Sprintf("Group %d", i+1)
		}
		prefix := fmt.Sprintf("groups[%d] (%s): ", i, name)

		hs, err := resolveHolidays(gj.Country, gj.Holidays, year, prefix)
		if err != nil {
			return nil, err
		}
		g := generic.HolidayGroup{
			Name:             name,
			Holidays:         generic.HolidayDates(hs),
			PTOBudget:        gj.PTOBudget,
			FloatingHolidays: gj.FloatingHolidays,
		}
		if err := g.Budget().Validate(name); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// resolveHolidays merges a country preset with custom dates. Preset names
// win when a custom date repeats a preset one.
func resolveHolidays(country string, custom []string, year int, prefix string) ([]generic.Holiday, error) {
	var out []generic.Holiday
	seen := map[generic.TimePoint]bool{}

	if c := strings.TrimSpace(country); c != "" && !strings.EqualFold(c, holidays.NonePreset) {
		preset, err := holidays.Get(c, year)
		if err != nil {
			return nil, fmt.Errorf("%scountry: %w", prefix, err)
		}
		for _, h := range preset {
			seen[h.Date] = true
			out = append(out, h)
		}
	}

	dates, err := parseDates(prefix+"holidays", custom)
	if err != nil {
		return nil, err
	}
	for _, d := range dates {
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, generic.Holiday{Date: d, Name: CustomHolidayName})
	}

	sortHolidays(out)
	return out, nil
}

func parseConstraints(cj ConfigJSON) (generic.Constraints, error) {
	pinned, err := parseDates("pinned_dates", cj.PinnedDates)
	if err != nil {
		return generic.Constraints{}, err
	}
	blackout, err := parseDates("blackout_dates", cj.BlackoutDates)
	if err != nil {
		return generic.Constraints{}, err
	}
	weights, err := parseWeights(cj.SeasonalWeights)
	if err != nil {
		return generic.Constraints{}, err
	}
	return generic.Constraints{
		PinnedDates:     pinned,
		BlackoutDates:   blackout,
		MaxBlockDays:    cj.MaxBlockDays,
		MinGapDays:      cj.MinGapDays,
		MonthlyCap:      cj.MonthlyPTOCap,
		SeasonalWeights: weights,
	}, nil
}

func parseDates(field string, ss []string) ([]generic.TimePoint, error) {
	var out []generic.TimePoint
	for i, s := range ss {
		d, err := generic.ParseTimePoint(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %s[%d]: %v", ErrInvalidConfig, field, i, err)
		}
		out = append(out, d)
	}
	return out, nil
}

func parseWeights(m map[string]float64) (map[time.Month]decimal.Decimal, error) {
	if len(m) == 0 {
		return nil, nil
	}
	out := make(map[time.Month]decimal.Decimal, len(m))
	for k, v := range m {
		month, err := ParseMonth(k)
		if err != nil {
			return nil, fmt.Errorf("%w: seasonal_weights: %v", ErrInvalidConfig, err)
		}
		if _, dup := out[month]; dup {
			return nil, fmt.Errorf("%w: seasonal_weights: %s given twice", ErrInvalidConfig, month)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: seasonal_weights: %s weight must be finite", ErrInvalidConfig, month)
		}
		out[month] = decimal.NewFromFloat(v)
	}
	return out, nil
}

// ParseMonth accepts a month number (1-12), a full English name or its
// three-letter abbreviation, case-insensitively.
func ParseMonth(s string) (time.Month, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return 0, fmt.Errorf("month %d out of range", n)
		}
		return time.Month(n), nil
	}
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		if s == name || s == name[:3] {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown month %q", s)
}

func sortHolidays(hs []generic.Holiday) {
	sort.SliceStable(hs, func(i, j int) bool { return hs[i].Date.Before(hs[j].Date) })
}
