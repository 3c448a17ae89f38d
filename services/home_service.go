package services

import (
	"context"
	"fmt"
	"time"

	"events-backend/config"
	"events-backend/models"
	"events-backend/utils"
)

// HomeService runs the home-page pipeline: bulk fetch, expansion, filter,
// ranking, bucket selection. Every stage is a pure function over its input
// plus the injected `today`; nothing in here reads the wall clock.
type HomeService struct {
	store EventStore
	cfg   *config.Config
}

// NewHomeService creates a new home page service instance
func NewHomeService(cfg *config.Config, store EventStore) *HomeService {
	return &HomeService{
		store: store,
		cfg:   cfg,
	}
}

func (s *HomeService) dayCaps() utils.DayCapConfig {
	return utils.DayCapConfig{
		WeekWindowDays: s.cfg.WeekWindowDays,
		HighTrafficCap: s.cfg.WeekendDayCap,
		RegularCap:     s.cfg.WeekdayDayCap,
	}
}

// GetHomePage produces the three disjoint display buckets for a region.
// The store may or may not pre-filter past dates; the pipeline re-derives
// "future" itself so the result stays correct either way.
func (s *HomeService) GetHomePage(ctx context.Context, region string, today time.Time) (*models.HomePageResponse, error) {
	events, err := s.store.ListApprovedEventsForRegion(ctx, region)
	if err != nil {
		return nil, fmt.Errorf("home page fetch failed: %w", err)
	}

	spec := models.FilterSpec{Region: region}
	occurrences := spec.FilterOccurrences(models.ExpandEvents(events), today)
	utils.SortByRank(occurrences)

	buckets := utils.SelectBuckets(occurrences, today, s.dayCaps())

	return &models.HomePageResponse{
		Daily:     emptyIfNil(buckets.Daily),
		Weekly:    emptyIfNil(buckets.Weekly),
		Remaining: emptyIfNil(buckets.Remaining),
	}, nil
}

// emptyIfNil keeps JSON responses as [] instead of null for empty buckets.
func emptyIfNil(occurrences []models.Occurrence) []models.Occurrence {
	if occurrences == nil {
		return []models.Occurrence{}
	}
	return occurrences
}
