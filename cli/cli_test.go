package cli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/vacation-planner/cli"
	"github.com/warp/vacation-planner/generic"
	"github.com/warp/vacation-planner/render"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var root cli.Root
	parser, err := cli.NewParser(&root, kong.Writers(io.Discard, io.Discard), kong.Exit(func(int) {}))
	require.NoError(t, err)

	kctx, err := parser.Parse(args)
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	logger, _ := test.NewNullLogger()
	err = kctx.Run(&cli.Context{
		Out:      &out,
		Log:      logger,
		Renderer: render.NewRenderer(false),
		Now:      func() time.Time { return time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC) },
	})
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// =============================================================================
// OPTIMIZE
// =============================================================================

func TestOptimize_SingleStrategyText(t *testing.T) {
	out, err := run(t, "optimize", "-y", "2025", "-b", "10", "-s", "bridges", "--no-calendar")
	require.NoError(t, err)

	assert.Contains(t, out, "  PTO VACATION OPTIMIZER")
	assert.Contains(t, out, "  Company holidays:  9")
	assert.Contains(t, out, "OPTION: Bridge Optimizer")
	assert.Contains(t, out, "PTO days used: 10 / 10")
	assert.Contains(t, out, "Generated 1 vacation plan option.")
	assert.NotContains(t, out, "Calendar View")
}

func TestOptimize_DefaultCommandRunsAll(t *testing.T) {
	// GIVEN: no subcommand and the year from the clock
	out, err := run(t, "-b", "5")
	require.NoError(t, err)

	// THEN: four options with calendars
	assert.Contains(t, out, "Year:              2025")
	assert.Contains(t, out, "Generated 4 vacation plan options.")
	assert.Contains(t, out, "Calendar View 2025")
}

func TestOptimize_JSON(t *testing.T) {
	out, err := run(t, "optimize", "-y", "2025", "-b", "10", "-f", "2", "--json", "-s", "longest")
	require.NoError(t, err)

	var doc render.PlansDocument
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 2025, doc.Year)
	assert.Equal(t, 10, doc.PTOBudget)
	assert.Equal(t, 2, doc.FloatingHolidays)
	require.Len(t, doc.Plans, 1)
	assert.Equal(t, "Longest Single Vacation", doc.Plans[0].Name)
	assert.Equal(t, 12, doc.Plans[0].Summary.TotalPTOUsed)
}

func TestOptimize_PolicyFlags(t *testing.T) {
	out, err := run(t, "optimize", "-y", "2025", "-b", "8", "--json",
		"--pin", "2025-07-03", "--blackout", "2025-12-26",
		"--max-block", "9", "--min-gap", "10", "--monthly-cap", "5",
		"--weight", "july=1.5", "--weight", "8=1.25")
	require.NoError(t, err)

	var doc render.PlansDocument
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Plans, 4)
	pin := generic.NewTimePoint(2025, time.July, 3)
	blackout := generic.NewTimePoint(2025, time.December, 26)
	for _, p := range doc.Plans {
		assert.Contains(t, p.PTODates, pin, p.Name)
		assert.NotContains(t, p.PTODates, blackout, p.Name)
	}
}

func TestOptimize_EnvironmentDefaults(t *testing.T) {
	t.Setenv("PTO_YEAR", "2024")
	t.Setenv("PTO_BUDGET", "7")
	t.Setenv("PTO_COUNTRY", "none")

	out, err := run(t, "optimize", "--json", "-s", "bridges", "-H", "2024-12-24")
	require.NoError(t, err)

	var doc render.PlansDocument
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 2024, doc.Year)
	assert.Equal(t, 7, doc.PTOBudget)
}

func TestOptimize_GroupConfig(t *testing.T) {
	// GIVEN: a two-group YAML file
	path := writeFile(t, "family.yaml", `
year: 2025
groups:
  - name: Alice
    country: us
    pto_budget: 8
  - name: Bob
    country: us
    holidays: ["2025-11-28"]
    pto_budget: 8
`)

	// WHEN
	out, err := run(t, "optimize", "--config", path, "--json")
	require.NoError(t, err)

	// THEN
	var doc render.GroupPlansDocument
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 2025, doc.Year)
	require.Len(t, doc.Groups, 2)
	assert.Equal(t, 10, doc.Groups[1].HolidayCount)
	assert.Len(t, doc.Plans, 4)
}

func TestOptimize_GroupConfigText(t *testing.T) {
	path := writeFile(t, "family.json", `{"groups": [
		{"name": "Worker", "country": "us", "pto_budget": 5},
		{"name": "Daycare", "country": "us"}
	]}`)

	out, err := run(t, "optimize", "--config", path, "-y", "2025", "-s", "bridges")
	require.NoError(t, err)
	assert.Contains(t, out, "PTO VACATION OPTIMIZER (Multi-Group)")
	assert.Contains(t, out, "Days to request off - Daycare:\n    (no PTO needed)")
	assert.Contains(t, out, "across all groups")
}

func TestOptimize_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"missing budget", []string{"optimize", "-y", "2025"}, cli.ExitConfig},
		{"unknown country", []string{"optimize", "-b", "3", "-c", "mars"}, cli.ExitConfig},
		{"bad pin", []string{"optimize", "-b", "3", "--pin", "someday"}, cli.ExitConfig},
		{"pins exceed budget", []string{"optimize", "-y", "2025", "-b", "0", "--pin", "2025-07-03"}, cli.ExitConfig},
		{"infinite weight", []string{"optimize", "-b", "3", "--weight", "7=inf"}, cli.ExitConfig},
		{"pins over monthly cap", []string{"optimize", "-y", "2025", "-b", "5", "--monthly-cap", "1", "--pin", "2025-01-06", "--pin", "2025-01-07"}, cli.ExitConfig},
		{"empty groups", []string{"optimize", "--config", writeFile(t, "empty.json", `{"groups": []}`)}, cli.ExitConfig},
		{"missing config", []string{"optimize", "--config", filepath.Join(t.TempDir(), "nope.json")}, cli.ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.code, cli.ExitCode(err))
		})
	}
}

func TestOptimize_RejectsUnknownStrategy(t *testing.T) {
	_, err := run(t, "optimize", "-b", "3", "-s", "random")
	assert.Error(t, err)
}

// =============================================================================
// HOLIDAYS
// =============================================================================

func TestHolidays(t *testing.T) {
	out, err := run(t, "holidays", "-y", "2025")
	require.NoError(t, err)

	assert.Contains(t, out, "  United States federal holidays - 2025")
	assert.Contains(t, out, "     Thu, Nov 27  Thanksgiving")
	assert.Contains(t, out, "     Thu, Jun 19  Juneteenth")
}

func TestHolidays_UnknownCountry(t *testing.T) {
	_, err := run(t, "holidays", "-c", "mars")
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfig, cli.ExitCode(err))
}

// =============================================================================
// SUPPORT
// =============================================================================

func TestExitCode(t *testing.T) {
	assert.Equal(t, cli.ExitOK, cli.ExitCode(nil))
	assert.Equal(t, cli.ExitConfig, cli.ExitCode(fmt.Errorf("wrapped: %w", generic.ErrNegativeBudget)))
	assert.Equal(t, cli.ExitConfig, cli.ExitCode(&generic.StateSpaceError{Combinations: 10, Limit: 5}))
	assert.Equal(t, cli.ExitFailure, cli.ExitCode(errors.New("disk on fire")))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l, err := cli.NewLogger("info", &buf)
	require.NoError(t, err)

	l.WithField("strategy", "bridges").Debug("hidden")
	l.WithField("strategy", "bridges").Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "strategy=bridges")

	_, err = cli.NewLogger("loud", &buf)
	assert.Error(t, err)
}

func TestLoadEnv(t *testing.T) {
	const key = "PTO_TEST_LOADENV_VALUE"
	t.Cleanup(func() { os.Unsetenv(key) })

	path := writeFile(t, ".env", key+"=from-file\n")
	require.NoError(t, cli.LoadEnv(path))
	assert.Equal(t, "from-file", os.Getenv(key))

	assert.NoError(t, cli.LoadEnv(filepath.Join(t.TempDir(), ".env")))
}
