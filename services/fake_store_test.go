package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"events-backend/models"
	"events-backend/utils"
)

var errStoreDown = errors.New("store unavailable")

// fakeStore implements EventStore over in-memory slices for service tests.
type fakeStore struct {
	events      []models.Event
	occurrences []models.Occurrence

	queryCalls   int
	listCalls    int
	similarCalls int

	failQuery   bool
	failList    bool
	failSimilar bool
}

func (f *fakeStore) ListApprovedEventsForRegion(ctx context.Context, region string) ([]models.Event, error) {
	f.listCalls++
	if f.failList {
		return nil, errStoreDown
	}
	var matched []models.Event
	for _, ev := range f.events {
		if ev.State == models.StateApproved && (ev.Region == region || ev.Subregion == region) {
			matched = append(matched, ev)
		}
	}
	return matched, nil
}

func (f *fakeStore) QueryOccurrencesPage(ctx context.Context, spec models.FilterSpec, today time.Time, limit, offset int) (models.OccurrencePage, error) {
	f.queryCalls++
	if f.failQuery {
		return models.OccurrencePage{}, errStoreDown
	}
	total := int64(len(f.occurrences))
	if offset >= len(f.occurrences) {
		return models.OccurrencePage{TotalCount: total}, nil
	}
	end := offset + limit
	if end > len(f.occurrences) {
		end = len(f.occurrences)
	}
	return models.OccurrencePage{Occurrences: f.occurrences[offset:end], TotalCount: total}, nil
}

func (f *fakeStore) FindSimilarEvents(ctx context.Context, name, region, city string) ([]models.Event, error) {
	f.similarCalls++
	if f.failSimilar {
		return nil, errStoreDown
	}
	return f.events, nil
}

// makeOccurrences builds n ranked occurrences on consecutive future days.
func makeOccurrences(n int) []models.Occurrence {
	occurrences := make([]models.Occurrence, n)
	for i := range occurrences {
		date := time.Date(2025, time.June, 1+i, 0, 0, 0, 0, time.Local)
		id := fmt.Sprintf("ev%d", i)
		occurrences[i] = models.Occurrence{
			Event: models.Event{ID: id, State: models.StateApproved, Region: "Vorarlberg"},
			Key:   models.OccurrenceKey(id, date),
			Date:  models.EventDate{Date: date},
		}
	}
	utils.SortByRank(occurrences)
	return occurrences
}
