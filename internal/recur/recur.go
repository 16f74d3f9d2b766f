// Package recur implements the recurrence patterns that regenerate
// tasks on completion.
package recur

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"jrnl/internal/dates"
	"jrnl/internal/model"
)

// Unit is a recurrence interval unit.
type Unit byte

const (
	Days   Unit = 'd'
	Weeks  Unit = 'w'
	Months Unit = 'm'
	Years  Unit = 'y'
)

// Pattern is a validated recurrence spec: a count between 1 and 31
// and a unit of days, weeks, months, or years.
type Pattern struct {
	Count int
	Unit  Unit
}

var patternRe = regexp.MustCompile(`^(\d+)([dwmy])$`)

// Parse validates raw against <count><unit> with count in [1,31] and
// unit one of d, w, m, y. The unit is matched case-insensitively.
func Parse(raw string) (Pattern, error) {
	m := patternRe.FindStringSubmatch(strings.ToLower(strings.TrimSpace(raw)))
	if m == nil {
		return Pattern{}, fmt.Errorf("pattern %q: %w", raw, model.ErrInvalidPattern)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 || n > 31 {
		return Pattern{}, fmt.Errorf("pattern %q: count must be between 1 and 31: %w", raw, model.ErrInvalidPattern)
	}
	return Pattern{Count: n, Unit: Unit(m[2][0])}, nil
}

// IsClear reports whether raw is the case-insensitive keyword "none",
// which removes a recurrence.
func IsClear(raw string) bool {
	return strings.EqualFold(strings.TrimSpace(raw), "none")
}

// String renders the pattern in its canonical <count><unit> form.
func (p Pattern) String() string {
	return fmt.Sprintf("%d%c", p.Count, p.Unit)
}

// Advance returns the next occurrence after from. Days and weeks are
// added literally. Months and years keep the day-of-month, clamping
// to the last valid day of the target month (Jan 31 + 1m = Feb 28 or
// 29; Feb 29 + 1y on a non-leap year = Feb 28).
func (p Pattern) Advance(from time.Time) time.Time {
	from = dates.Normalize(from)
	switch p.Unit {
	case Days:
		return from.AddDate(0, 0, p.Count)
	case Weeks:
		return from.AddDate(0, 0, 7*p.Count)
	case Months:
		return addMonthsClamped(from, p.Count)
	case Years:
		return addMonthsClamped(from, 12*p.Count)
	}
	return from
}

// AdvanceString parses raw and advances from by it; callers that hold
// an unvalidated stored pattern use this form.
func AdvanceString(from time.Time, raw string) (time.Time, error) {
	p, err := Parse(raw)
	if err != nil {
		return time.Time{}, err
	}
	return p.Advance(from), nil
}

// addMonthsClamped adds n calendar months, pinning the day-of-month
// to the target month's last day instead of letting it roll over.
func addMonthsClamped(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	// First of the target month, then clamp the day.
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	last := first.AddDate(0, 1, -1).Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}
