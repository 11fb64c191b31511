// Package dateutil provides calendar-day arithmetic for the timeline and
// date-range fields. All functions operate on calendar dates, not instants:
// time-of-day components and daylight-saving shifts never change a result.
package dateutil

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkordes/fleet-console/internal/domain"
)

// DayLayout is the date-only wire format used throughout the backend API.
const DayLayout = "2006-01-02"

// Midnight returns the calendar date of t as midnight UTC.
// Converting through UTC pins day arithmetic to exact 24h multiples.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the inclusive day count from a to b: the same calendar
// day yields 1, the next day 2, and a day before b yields a negative count
// (DaysBetween(AddDays(d, n), d) == -n+1). Time-of-day is ignored.
func DaysBetween(a, b time.Time) int {
	diff := int(Midnight(b).Sub(Midnight(a)) / (24 * time.Hour))
	return diff + 1
}

// AddDays returns the calendar date n days after t (n may be negative),
// normalized to midnight UTC.
func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// IsToday reports whether t falls on the caller's local calendar day.
func IsToday(t time.Time) bool {
	return SameDay(t, time.Now())
}

// ParseRangeStart parses a date-only string into the start-of-day boundary
// (midnight UTC). Empty or malformed input fails with domain.ErrDateParse.
func ParseRangeStart(s string) (time.Time, error) {
	return parseDay(s)
}

// ParseRangeEnd parses a date-only string into the end-of-day boundary, so an
// item ending "on" a day is still present through that entire day.
func ParseRangeEnd(s string) (time.Time, error) {
	t, err := parseDay(s)
	if err != nil {
		return time.Time{}, err
	}
	return EndOfDay(t), nil
}

// EndOfDay returns the last representable instant of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return Midnight(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func parseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty date string", domain.ErrDateParse)
	}
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a %s date", domain.ErrDateParse, s, DayLayout)
	}
	return t, nil
}

// Range is a normalized inclusive date range: Start is a start-of-day
// boundary, End an end-of-day boundary, and End's day is not before Start's.
type Range struct {
	Start time.Time
	End   time.Time
}

// NewRange normalizes start/end into a Range. Zero values fail with
// domain.ErrDateParse; an end day before the start day fails with
// domain.ErrInvalidRange. Callers treat both as "exclude this item".
func NewRange(start, end time.Time) (Range, error) {
	if start.IsZero() || end.IsZero() {
		return Range{}, fmt.Errorf("%w: missing range bound", domain.ErrDateParse)
	}
	s := Midnight(start)
	e := EndOfDay(end)
	if e.Before(s) {
		return Range{}, fmt.Errorf("%w: end %s precedes start %s",
			domain.ErrInvalidRange, end.Format(DayLayout), start.Format(DayLayout))
	}
	return Range{Start: s, End: e}, nil
}

// ParseRange parses two date-only strings into a normalized Range.
func ParseRange(start, end string) (Range, error) {
	s, err := ParseRangeStart(start)
	if err != nil {
		return Range{}, err
	}
	e, err := ParseRangeEnd(end)
	if err != nil {
		return Range{}, err
	}
	return NewRange(s, e)
}

// Days returns the inclusive day count covered by the range.
func (r Range) Days() int {
	return DaysBetween(r.Start, r.End)
}
