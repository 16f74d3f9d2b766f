// Package dates holds the date-only arithmetic the journal works in.
// All values are normalized to midnight UTC; the persisted form is
// YYYY-MM-DD.
package dates

import (
	"fmt"
	"time"
)

// Layout is the canonical date-only format.
const Layout = "2006-01-02"

// Normalize truncates t to a date at midnight UTC.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current local date, normalized.
func Today() time.Time {
	return Normalize(time.Now())
}

// Parse reads a YYYY-MM-DD date.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}

// Format renders t as YYYY-MM-DD.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// weekdayIndex maps Go's Sunday-based weekday onto a Monday=0..Sunday=6
// index, which is what the week-bucket boundary is defined against.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// EndOfWeek returns the last day (Sunday) of the week containing t.
func EndOfWeek(t time.Time) time.Time {
	return Normalize(t).AddDate(0, 0, 6-weekdayIndex(t))
}

// EndOfMonth returns the last day of the month containing t.
func EndOfMonth(t time.Time) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1)
}

// EndOfYear returns December 31 of the year containing t.
func EndOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
}

// ParseDue resolves a due-date argument: one of the keywords today,
// tomorrow, eow, eom, eoy, or an explicit YYYY-MM-DD date. Relative
// keywords are resolved against the given reference date.
func ParseDue(keyword string, ref time.Time) (time.Time, error) {
	ref = Normalize(ref)
	switch keyword {
	case "today":
		return ref, nil
	case "tomorrow":
		return ref.AddDate(0, 0, 1), nil
	case "eow":
		return EndOfWeek(ref), nil
	case "eom":
		return EndOfMonth(ref), nil
	case "eoy":
		return EndOfYear(ref), nil
	}
	t, err := Parse(keyword)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized due date %q (want today, tomorrow, eow, eom, eoy, or YYYY-MM-DD)", keyword)
	}
	return t, nil
}
