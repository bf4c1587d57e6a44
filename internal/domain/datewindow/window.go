// Package datewindow resolves "born this day/week/month" calendar windows.
package datewindow

import (
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/biosearch/internal/clock"
	"github.com/kailas-cloud/biosearch/internal/domain"
)

// DateLayout is the accepted anchor date format.
const DateLayout = "2006-01-02"

// monthUpperBound is the day-high used for whole-month windows. It is not clamped
// to the real month length: no stored day exceeds it.
const monthUpperBound = 31

// Granularity is the size of a date window.
type Granularity string

// Window granularities.
const (
	Day   Granularity = "day"
	Week  Granularity = "week"
	Month Granularity = "month"
)

// ParseGranularity parses a granularity name, case-insensitively.
func ParseGranularity(s string) (Granularity, error) {
	g := Granularity(strings.ToLower(strings.TrimSpace(s)))
	if !g.IsValid() {
		return "", fmt.Errorf("%w: unknown date window %q", domain.ErrInvalidInput, s)
	}
	return g, nil
}

// IsValid checks if the granularity is supported.
func (g Granularity) IsValid() bool {
	return g == Day || g == Week || g == Month
}

// Range is an inclusive day span inside one calendar month.
type Range struct {
	Month   time.Month
	DayLow  int
	DayHigh int
}

// Resolve returns the ranges of the window of granularity g around anchor.
func (g Granularity) Resolve(anchor time.Time) []Range {
	switch g {
	case Week:
		return ResolveWeek(anchor)
	case Month:
		return ResolveMonth(anchor)
	default:
		return ResolveDay(anchor)
	}
}

// ResolveDay returns the single day of anchor.
func ResolveDay(anchor time.Time) []Range {
	return []Range{{Month: anchor.Month(), DayLow: anchor.Day(), DayHigh: anchor.Day()}}
}

// ResolveWeek returns the Sunday–Saturday week containing anchor.
// A week spanning two months yields one range per month.
func ResolveWeek(anchor time.Time) []Range {
	d := midday(anchor)
	start := d.AddDate(0, 0, -int(d.Weekday()))
	end := start.AddDate(0, 0, 6)

	if start.Month() == end.Month() {
		return []Range{{Month: start.Month(), DayLow: start.Day(), DayHigh: end.Day()}}
	}
	return []Range{
		{Month: start.Month(), DayLow: start.Day(), DayHigh: daysIn(start)},
		{Month: end.Month(), DayLow: 1, DayHigh: end.Day()},
	}
}

// ResolveMonth returns the calendar month containing anchor, always as days 1–31.
func ResolveMonth(anchor time.Time) []Range {
	return []Range{{Month: anchor.Month(), DayLow: 1, DayHigh: monthUpperBound}}
}

// Resolver anchors windows on an explicit date or on today's date.
type Resolver struct {
	clock clock.Clock
}

// NewResolver creates a Resolver. A nil clock reads the system clock.
func NewResolver(c clock.Clock) *Resolver {
	if c == nil {
		c = clock.System{}
	}
	return &Resolver{clock: c}
}

// ParseDate parses an explicit anchor date (YYYY-MM-DD).
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(date))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", domain.ErrInvalidInput, date)
	}
	return midday(t), nil
}

// Anchor returns the anchor day for date. A blank or malformed date falls back to
// today according to the clock; ok is false only for the malformed case.
func (r *Resolver) Anchor(date string) (anchor time.Time, ok bool) {
	if strings.TrimSpace(date) == "" {
		return midday(r.clock.Now()), true
	}
	t, err := ParseDate(date)
	if err != nil {
		return midday(r.clock.Now()), false
	}
	return t, true
}

// Window resolves the window of granularity g anchored on date.
// ok is false when a malformed date was replaced by today.
func (r *Resolver) Window(g Granularity, date string) (ranges []Range, ok bool) {
	anchor, ok := r.Anchor(date)
	return g.Resolve(anchor), ok
}

// midday drops the clock time so date arithmetic is immune to DST shifts.
func midday(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC)
}

func daysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 12, 0, 0, 0, time.UTC).Day()
}
