package holidays_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/vacation-planner/generic"
	"github.com/warp/vacation-planner/holidays"
)

func TestUS2025(t *testing.T) {
	// GIVEN: the US preset
	// WHEN: computing 2025
	hs, err := holidays.Get("us", 2025)
	require.NoError(t, err)

	// THEN: the nine observed federal holidays come back in order
	want := []generic.TimePoint{
		generic.NewTimePoint(2025, time.January, 1),
		generic.NewTimePoint(2025, time.January, 20),
		generic.NewTimePoint(2025, time.February, 17),
		generic.NewTimePoint(2025, time.May, 26),
		generic.NewTimePoint(2025, time.June, 19),
		generic.NewTimePoint(2025, time.July, 4),
		generic.NewTimePoint(2025, time.September, 1),
		generic.NewTimePoint(2025, time.November, 27),
		generic.NewTimePoint(2025, time.December, 25),
	}
	assert.Equal(t, want, generic.HolidayDates(hs))
	assert.Equal(t, "Thanksgiving", hs[7].Name)
}

func TestObservedShifts(t *testing.T) {
	// 2021: July 4 is a Sunday, Christmas a Saturday.
	hs, err := holidays.Get("US", 2021)
	require.NoError(t, err)

	byName := map[string]generic.TimePoint{}
	for _, h := range hs {
		byName[h.Name] = h.Date
	}
	assert.Equal(t, generic.NewTimePoint(2021, time.July, 5), byName["Independence Day"])
	assert.Equal(t, generic.NewTimePoint(2021, time.December, 24), byName["Christmas Day"])
	assert.Equal(t, generic.NewTimePoint(2021, time.May, 31), byName["Memorial Day"])

	for _, h := range hs {
		assert.True(t, h.Date.IsWorkday(), "%s observed on a weekend", h.Name)
	}
}

func TestUnknownPreset(t *testing.T) {
	_, err := holidays.Get("atlantis", 2025)
	require.ErrorIs(t, err, holidays.ErrUnknownPreset)
	assert.Contains(t, err.Error(), "us")
}

func TestPresets(t *testing.T) {
	ps := holidays.Presets()
	require.Len(t, ps, 1)
	assert.Equal(t, "us", ps[0].Key)

	label, err := holidays.Label("us")
	require.NoError(t, err)
	assert.Equal(t, "United States federal holidays", label)
}
