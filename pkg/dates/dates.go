// Package dates normalizes calendar days. Day-granular columns are stored as
// UTC midnight of the calendar day they represent.
package dates

import (
	"fmt"
	"strings"
	"time"
)

const Layout = "2006-01-02"

// ParseDay parses YYYY-MM-DD into UTC midnight.
func ParseDay(value string) (time.Time, error) {
	t, err := time.Parse(Layout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t.UTC(), nil
}

// DayOf returns the calendar day of t as observed in loc, as UTC midnight.
func DayOf(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// StartOfDay is 00:00:00.000 of day in loc.
func StartOfDay(day time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
}

// EndOfDay is 23:59:59.999 of day in loc.
func EndOfDay(day time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, int(999*time.Millisecond), loc)
}

// Format renders the calendar day of a stored date.
func Format(day time.Time) string {
	return day.UTC().Format(Layout)
}
