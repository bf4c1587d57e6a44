package datewindow

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/biosearch/internal/clock"
	"github.com/kailas-cloud/biosearch/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveDay(t *testing.T) {
	got := ResolveDay(date(2024, time.February, 29))
	assert.Equal(t, []Range{{Month: time.February, DayLow: 29, DayHigh: 29}}, got)
}

func TestResolveWeek_MidMonth(t *testing.T) {
	// Wednesday 2024-05-15; week is Sun 12 .. Sat 18.
	got := ResolveWeek(date(2024, time.May, 15))
	assert.Equal(t, []Range{{Month: time.May, DayLow: 12, DayHigh: 18}}, got)
}

func TestResolveWeek_Sunday(t *testing.T) {
	got := ResolveWeek(date(2024, time.May, 12))
	assert.Equal(t, []Range{{Month: time.May, DayLow: 12, DayHigh: 18}}, got)
}

func TestResolveWeek_LastSaturdayOfMonth(t *testing.T) {
	// Saturday 2024-08-31: Sun Aug 25 .. Sat Aug 31.
	got := ResolveWeek(date(2024, time.August, 31))
	assert.Equal(t, []Range{{Month: time.August, DayLow: 25, DayHigh: 31}}, got)
}

func TestResolveWeek_CrossesIntoNextMonth(t *testing.T) {
	// Thursday 2024-10-31: Sun Oct 27 .. Sat Nov 2.
	got := ResolveWeek(date(2024, time.October, 31))
	require.Len(t, got, 2)
	assert.Equal(t, Range{Month: time.October, DayLow: 27, DayHigh: 31}, got[0])
	assert.Equal(t, Range{Month: time.November, DayLow: 1, DayHigh: 2}, got[1])
}

func TestResolveWeek_SaturdayEndOfMonthWeekStartsInPreviousMonth(t *testing.T) {
	// Saturday 2025-03-01: Sun Feb 23 .. Sat Mar 1.
	got := ResolveWeek(date(2025, time.March, 1))
	require.Len(t, got, 2)
	assert.Equal(t, Range{Month: time.February, DayLow: 23, DayHigh: 28}, got[0])
	assert.Equal(t, Range{Month: time.March, DayLow: 1, DayHigh: 1}, got[1])
}

func TestResolveWeek_YearBoundary(t *testing.T) {
	// Wednesday 2025-12-31: Sun Dec 28 .. Sat Jan 3.
	got := ResolveWeek(date(2025, time.December, 31))
	require.Len(t, got, 2)
	assert.Equal(t, Range{Month: time.December, DayLow: 28, DayHigh: 31}, got[0])
	assert.Equal(t, Range{Month: time.January, DayLow: 1, DayHigh: 3}, got[1])
}

func TestResolveMonth_AlwaysEndsOn31(t *testing.T) {
	for _, m := range []time.Month{time.February, time.April, time.June, time.September, time.December} {
		got := ResolveMonth(date(2023, m, 10))
		require.Len(t, got, 1)
		assert.Equal(t, Range{Month: m, DayLow: 1, DayHigh: 31}, got[0], m.String())
	}
}

func TestResolver_AnchorDefaultsToClock(t *testing.T) {
	r := NewResolver(clock.Date(2026, time.October, 16))

	got, ok := r.Window(Day, "")
	assert.True(t, ok)
	assert.Equal(t, []Range{{Month: time.October, DayLow: 16, DayHigh: 16}}, got)
}

func TestResolver_ExplicitAnchorWins(t *testing.T) {
	r := NewResolver(clock.Date(2026, time.October, 16))

	got, ok := r.Window(Month, "1999-02-14")
	assert.True(t, ok)
	assert.Equal(t, []Range{{Month: time.February, DayLow: 1, DayHigh: 31}}, got)
}

func TestResolver_MalformedAnchorFallsBackToToday(t *testing.T) {
	r := NewResolver(clock.Date(2026, time.October, 16))

	for _, date := range []string{"16/10/2026", "05/15/2024", "2024-02-30", "yesterday"} {
		got, ok := r.Window(Week, date)
		assert.False(t, ok, date)
		// Friday 2026-10-16: Sun 11 .. Sat 17.
		assert.Equal(t, []Range{{Month: time.October, DayLow: 11, DayHigh: 17}}, got, date)
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate(" 2024-07-04 ")
	require.NoError(t, err)
	assert.Equal(t, time.July, got.Month())
	assert.Equal(t, 4, got.Day())

	_, err = ParseDate("07/04/2024")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestParseGranularity(t *testing.T) {
	g, err := ParseGranularity(" Week ")
	require.NoError(t, err)
	assert.Equal(t, Week, g)

	_, err = ParseGranularity("year")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
