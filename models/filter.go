package models

import (
	"fmt"
	"time"

	"events-backend/utils"
)

// DateFilterKind tags the date-filter variant of a FilterSpec.
type DateFilterKind string

const (
	DateFilterNone   DateFilterKind = "none"
	DateFilterSingle DateFilterKind = "single"
	DateFilterRange  DateFilterKind = "range"
)

// DateFilter is a tagged variant: no date constraint, a single calendar
// day, or an inclusive day range. Only the fields belonging to the active
// kind are meaningful.
type DateFilter struct {
	Kind  DateFilterKind `json:"kind"`
	Date  time.Time      `json:"date,omitempty"`
	Start time.Time      `json:"start,omitempty"`
	End   time.Time      `json:"end,omitempty"`
}

// SingleDate builds a single-day filter.
func SingleDate(date time.Time) DateFilter {
	return DateFilter{Kind: DateFilterSingle, Date: date}
}

// DateRange builds an inclusive day-range filter.
func DateRange(start, end time.Time) DateFilter {
	return DateFilter{Kind: DateFilterRange, Start: start, End: end}
}

// FilterSpec is an immutable description of one browse/search request.
// It doubles as a cache key after canonical serialization.
type FilterSpec struct {
	Region      string     `json:"region"`
	Category    string     `json:"category,omitempty"`
	Subcategory string     `json:"subcategory,omitempty"`
	Date        DateFilter `json:"date_filter"`

	// IncludePast lifts the implicit future-only rule. Only moderation
	// and export surfaces set it.
	IncludePast bool `json:"include_past,omitempty"`
}

// CanonicalKey serializes the spec into a stable cache key. Two specs that
// describe the same logical request always produce the same key, regardless
// of how they were constructed.
func (s FilterSpec) CanonicalKey() string {
	var date string
	switch s.Date.Kind {
	case DateFilterSingle:
		date = "single:" + utils.TruncateToDay(s.Date.Date).Format("2006-01-02")
	case DateFilterRange:
		date = fmt.Sprintf("range:%s..%s",
			utils.TruncateToDay(s.Date.Start).Format("2006-01-02"),
			utils.TruncateToDay(s.Date.End).Format("2006-01-02"))
	default:
		date = "none"
	}
	return fmt.Sprintf("region=%s|category=%s|subcategory=%s|date=%s|past=%t",
		s.Region, s.Category, s.Subcategory, date, s.IncludePast)
}

// Matches is the browse predicate over a single occurrence. It encodes the
// anonymous-browsing rules; moderation views bypass it and query by
// explicit state instead.
//
// Region matching treats subregions as first-class alternative targets:
// an occurrence matches when either its region or its subregion equals the
// requested region.
func (s FilterSpec) Matches(occ Occurrence, today time.Time) bool {
	if occ.State != StateApproved {
		return false
	}
	if occ.Region != s.Region && occ.Subregion != s.Region {
		return false
	}
	if s.Category != "" && occ.Category != s.Category {
		return false
	}
	if s.Subcategory != "" && occ.Subcategory != s.Subcategory {
		return false
	}

	date := utils.TruncateToDay(occ.Date.Date)
	switch s.Date.Kind {
	case DateFilterSingle:
		return utils.SameDay(date, s.Date.Date)
	case DateFilterRange:
		start := utils.TruncateToDay(s.Date.Start)
		end := utils.TruncateToDay(s.Date.End)
		return !date.Before(start) && !date.After(end)
	default:
		if s.IncludePast {
			return true
		}
		// No explicit date filter: only today and the future are visible.
		return !date.Before(utils.TruncateToDay(today))
	}
}

// FilterOccurrences applies the predicate to a batch.
func (s FilterSpec) FilterOccurrences(occurrences []Occurrence, today time.Time) []Occurrence {
	matched := make([]Occurrence, 0, len(occurrences))
	for _, occ := range occurrences {
		if s.Matches(occ, today) {
			matched = append(matched, occ)
		}
	}
	return matched
}
