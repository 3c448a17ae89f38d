package utils

import (
	"fmt"
	"time"
)

// TruncateToDay normalizes a timestamp to local midnight. All calendar-day
// comparisons in the pipeline go through this so that time-of-day and
// sub-second noise never influence matching or bucketing.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return TruncateToDay(a).Equal(TruncateToDay(b))
}

// DaysBetween returns the number of whole calendar days from `from` to `to`
// (negative when `to` is earlier). The distance is computed over the calendar
// components, not the wall-clock duration: a DST transition makes a local day
// 23 or 25 hours long, which must still count as exactly one day.
func DaysBetween(from, to time.Time) int {
	f := utcDay(from)
	t := utcDay(to)
	return int(t.Sub(f).Hours() / 24)
}

// utcDay maps a timestamp onto its calendar date at UTC midnight, where
// every day is exactly 24 hours.
func utcDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsHighTrafficDay reports whether the given date falls on a Friday,
// Saturday or Sunday. Those days get a larger per-day highlight capacity.
func IsHighTrafficDay(date time.Time) bool {
	switch date.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		return true
	default:
		return false
	}
}

// ValidateClock checks an HH:MM clock string. Empty strings are allowed
// (start/end times are optional on event dates).
func ValidateClock(clock string) error {
	if clock == "" {
		return nil
	}
	if _, err := time.Parse("15:04", clock); err != nil {
		return fmt.Errorf("invalid clock value %q: must be HH:MM", clock)
	}
	return nil
}
