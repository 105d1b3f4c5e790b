package calendar

import (
	"fmt"
	"math"
	"time"
)

const DayLayout = "2006-01-02"

// Calendar answers "what day is it" in the server's configured locale.
type Calendar struct {
	loc *time.Location
	now func() time.Time
}

func New(loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.Local
	}
	return &Calendar{loc: loc, now: time.Now}
}

// WithClock returns a copy of the calendar reading time from now.
func (c *Calendar) WithClock(now func() time.Time) *Calendar {
	return &Calendar{loc: c.loc, now: now}
}

func (c *Calendar) Location() *time.Location {
	return c.loc
}

// Now returns the current instant in the calendar's location.
func (c *Calendar) Now() time.Time {
	return c.now().In(c.loc)
}

func (c *Calendar) Today() time.Time {
	return StartOfDay(c.Now(), c.loc)
}

// DayBounds returns [start, end] of the local day containing t.
func (c *Calendar) DayBounds(t time.Time) (time.Time, time.Time) {
	return StartOfDay(t, c.loc), EndOfDay(t, c.loc)
}

// ParseDay parses YYYY-MM-DD as a local calendar day. An empty string means today.
func (c *Calendar) ParseDay(s string) (time.Time, error) {
	if s == "" {
		return c.Today(), nil
	}
	t, err := time.ParseInLocation(DayLayout, s, c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q: %w", s, err)
	}
	return t, nil
}

// MonthBounds returns the first instant of the month and the first instant of the next one.
func (c *Calendar) MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, c.loc)
	return start, start.AddDate(0, 1, 0)
}

func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// EndOfDay returns the last representable instant of t's day.
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	return StartOfDay(t, loc).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// Overlaps reports whether the inclusive ranges [aStart, aEnd] and [bStart, bEnd] share an instant.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}

// Contains reports whether day falls on or between the calendar dates start and end.
func Contains(day, start, end time.Time) bool {
	d := dateOnly(day)
	return !d.Before(dateOnly(start)) && !d.After(dateOnly(end))
}

// InclusiveDays counts both endpoints: floor(end-start in days) + 1.
// 2025-03-01 to 2025-03-03 is 3 days. A reversed range yields 0 or less.
func InclusiveDays(start, end time.Time) int {
	days := end.Sub(start).Hours() / 24
	return int(math.Floor(days)) + 1
}

// Clip narrows [start, end] to [from, to]. ok is false when they do not overlap.
func Clip(start, end, from, to time.Time) (time.Time, time.Time, bool) {
	if !Overlaps(start, end, from, to) {
		return time.Time{}, time.Time{}, false
	}
	if start.Before(from) {
		start = from
	}
	if end.After(to) {
		end = to
	}
	return start, end, true
}

// dateOnly drops the time of day while keeping the calendar date as written in t's own location.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
