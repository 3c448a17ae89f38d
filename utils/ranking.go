package utils

import (
	"sort"
	"time"
)

// =============================================================================
// Ranking Policy
// =============================================================================

// Rankable is the interface every occurrence-like value must implement to
// participate in ranking and bucket selection.
type Rankable interface {
	GetKey() string
	GetDate() time.Time
	GetPopularity() int
}

// SortOrder defines the direction of sorting
type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

// CompareRank is the total order over occurrences: date ascending, then
// popularity descending. Returns -1, 0 or 1.
func CompareRank(a, b Rankable) int {
	da := TruncateToDay(a.GetDate())
	db := TruncateToDay(b.GetDate())
	switch {
	case da.Before(db):
		return -1
	case da.After(db):
		return 1
	}
	pa, pb := a.GetPopularity(), b.GetPopularity()
	switch {
	case pa > pb:
		return -1
	case pa < pb:
		return 1
	}
	return 0
}

// SortByRank orders occurrences by CompareRank. The sort is stable: entries
// equal on both keys keep their input order, which downstream bucketing
// relies on for deterministic output.
func SortByRank[T Rankable](occurrences []T) {
	sort.SliceStable(occurrences, func(i, j int) bool {
		return CompareRank(occurrences[i], occurrences[j]) < 0
	})
}

// SortByPopularity orders occurrences by popularity only, stable within
// equal scores. Used for the per-day capacity selection inside buckets.
func SortByPopularity[T Rankable](occurrences []T, order SortOrder) {
	sort.SliceStable(occurrences, func(i, j int) bool {
		if order == Descending {
			return occurrences[j].GetPopularity() < occurrences[i].GetPopularity()
		}
		return occurrences[i].GetPopularity() < occurrences[j].GetPopularity()
	})
}
