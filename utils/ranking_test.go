package utils

import (
	"testing"
	"time"
)

// mockOccurrence implements Rankable for testing
type mockOccurrence struct {
	key        string
	date       time.Time
	popularity int
}

func (m mockOccurrence) GetKey() string     { return m.key }
func (m mockOccurrence) GetDate() time.Time { return m.date }
func (m mockOccurrence) GetPopularity() int { return m.popularity }

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.Local)
}

func TestCompareRank(t *testing.T) {
	d1 := day(2025, time.June, 1)
	d2 := day(2025, time.June, 2)

	tests := []struct {
		name     string
		a, b     mockOccurrence
		expected int
	}{
		{
			name:     "Earlier date wins",
			a:        mockOccurrence{date: d1, popularity: 0},
			b:        mockOccurrence{date: d2, popularity: 100},
			expected: -1,
		},
		{
			name:     "Later date loses",
			a:        mockOccurrence{date: d2, popularity: 100},
			b:        mockOccurrence{date: d1, popularity: 0},
			expected: 1,
		},
		{
			name:     "Same date higher popularity wins",
			a:        mockOccurrence{date: d1, popularity: 20},
			b:        mockOccurrence{date: d1, popularity: 10},
			expected: -1,
		},
		{
			name:     "Same date same popularity is equal",
			a:        mockOccurrence{date: d1, popularity: 10},
			b:        mockOccurrence{date: d1, popularity: 10},
			expected: 0,
		},
		{
			name:     "Time of day is ignored",
			a:        mockOccurrence{date: d1.Add(23 * time.Hour), popularity: 10},
			b:        mockOccurrence{date: d1, popularity: 10},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompareRank(tt.a, tt.b); got != tt.expected {
				t.Errorf("CompareRank() = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestSortByRank(t *testing.T) {
	d1 := day(2025, time.June, 1)
	d2 := day(2025, time.June, 2)

	occurrences := []mockOccurrence{
		{key: "c", date: d2, popularity: 5},
		{key: "b", date: d1, popularity: 10},
		{key: "a", date: d1, popularity: 20},
	}

	SortByRank(occurrences)

	if occurrences[0].key != "a" || occurrences[1].key != "b" || occurrences[2].key != "c" {
		t.Errorf("SortByRank failed: got order %s, %s, %s",
			occurrences[0].key, occurrences[1].key, occurrences[2].key)
	}
}

func TestSortByRank_Stability(t *testing.T) {
	d := day(2025, time.June, 1)

	occurrences := []mockOccurrence{
		{key: "first", date: d, popularity: 10},
		{key: "second", date: d, popularity: 10},
		{key: "third", date: d, popularity: 10},
	}

	SortByRank(occurrences)

	if occurrences[0].key != "first" || occurrences[1].key != "second" || occurrences[2].key != "third" {
		t.Errorf("equal-key entries must keep input order, got %s, %s, %s",
			occurrences[0].key, occurrences[1].key, occurrences[2].key)
	}
}

func TestSortByPopularity(t *testing.T) {
	d := day(2025, time.June, 1)

	occurrences := []mockOccurrence{
		{key: "low", date: d, popularity: 3},
		{key: "high", date: d, popularity: 9},
		{key: "mid", date: d, popularity: 6},
	}

	SortByPopularity(occurrences, Descending)

	if occurrences[0].key != "high" || occurrences[1].key != "mid" || occurrences[2].key != "low" {
		t.Errorf("SortByPopularity descending failed: got %s, %s, %s",
			occurrences[0].key, occurrences[1].key, occurrences[2].key)
	}

	SortByPopularity(occurrences, Ascending)

	if occurrences[0].key != "low" || occurrences[2].key != "high" {
		t.Errorf("SortByPopularity ascending failed: got %s, %s, %s",
			occurrences[0].key, occurrences[1].key, occurrences[2].key)
	}
}
