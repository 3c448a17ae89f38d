package utils

import (
	"time"
)

// =============================================================================
// Bucket Selection
// =============================================================================
//
// Splits a filtered, future-only set of occurrences into three mutually
// exclusive display buckets:
//
//   - Daily:     occurrences dated exactly today
//   - Weekly:    occurrences within the next WeekWindowDays, capped per day
//   - Remaining: occurrences beyond the window, capped per day
//
// Occurrences that lose the per-day capacity race inside Weekly or Remaining
// are dropped from the result entirely rather than carried into a later
// bucket. That is a deliberate product rule, not an accident: a day's
// highlight slots are a scarce resource and losers do not get a second
// surface.

// DayCapConfig controls the bucket window and per-day capacities.
type DayCapConfig struct {
	// WeekWindowDays is the size of the weekly highlight window: an
	// occurrence qualifies when today < date <= today+WeekWindowDays.
	WeekWindowDays int

	// HighTrafficCap is the per-day keep count for Friday/Saturday/Sunday.
	HighTrafficCap int

	// RegularCap is the per-day keep count for all other weekdays.
	RegularCap int
}

// DefaultDayCaps mirrors the production display rules.
var DefaultDayCaps = DayCapConfig{
	WeekWindowDays: 7,
	HighTrafficCap: 3,
	RegularCap:     1,
}

// capFor returns the keep count for one calendar date. The weekday is taken
// from the occurrence's own date, never from "today".
func (c DayCapConfig) capFor(date time.Time) int {
	if IsHighTrafficDay(date) {
		return c.HighTrafficCap
	}
	return c.RegularCap
}

// Buckets holds the three disjoint display partitions.
type Buckets[T Rankable] struct {
	Daily     []T
	Weekly    []T
	Remaining []T
}

// SelectBuckets partitions occurrences relative to the given today.
// Occurrences dated before today are discarded; callers normally pre-filter
// those but the guard keeps the invariant local. All three result slices
// come back ordered by the ranking policy (date ascending, popularity
// descending).
func SelectBuckets[T Rankable](occurrences []T, today time.Time, cfg DayCapConfig) Buckets[T] {
	day := TruncateToDay(today)

	var daily, weekWindow, beyond []T
	for _, occ := range occurrences {
		diff := DaysBetween(day, occ.GetDate())
		switch {
		case diff < 0:
			// past, invisible on every browsing surface
		case diff == 0:
			daily = append(daily, occ)
		case diff <= cfg.WeekWindowDays:
			weekWindow = append(weekWindow, occ)
		default:
			beyond = append(beyond, occ)
		}
	}

	SortByRank(daily)

	return Buckets[T]{
		Daily:     daily,
		Weekly:    capPerDay(weekWindow, cfg),
		Remaining: capPerDay(beyond, cfg),
	}
}

// capPerDay groups occurrences by calendar date, keeps at most capFor(date)
// per group ranked by popularity (ties keep their pre-existing relative
// order), then flattens and re-sorts the survivors by the ranking policy.
func capPerDay[T Rankable](occurrences []T, cfg DayCapConfig) []T {
	if len(occurrences) == 0 {
		return nil
	}

	groups := make(map[time.Time][]T)
	var order []time.Time
	for _, occ := range occurrences {
		d := TruncateToDay(occ.GetDate())
		if _, seen := groups[d]; !seen {
			order = append(order, d)
		}
		groups[d] = append(groups[d], occ)
	}

	kept := make([]T, 0, len(occurrences))
	for _, d := range order {
		group := groups[d]
		SortByPopularity(group, Descending)
		limit := cfg.capFor(d)
		if len(group) > limit {
			group = group[:limit]
		}
		kept = append(kept, group...)
	}

	SortByRank(kept)
	return kept
}
