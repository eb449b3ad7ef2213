package domain

import "time"

// DateOnly truncates t to calendar-date granularity (midnight UTC). All
// deadline comparisons in this service operate on calendar dates, never on
// time of day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole-day difference to minus from, after both are
// normalized to calendar dates. Positive when to is in the future relative
// to from.
func DaysBetween(from, to time.Time) int {
	f := DateOnly(from)
	t := DateOnly(to)
	return int(t.Sub(f).Hours() / 24)
}

// DateAfter reports whether a falls strictly after b at calendar-date
// granularity.
func DateAfter(a, b time.Time) bool {
	return DateOnly(a).After(DateOnly(b))
}
