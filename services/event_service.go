package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"events-backend/config"
	"events-backend/database"
	"events-backend/models"
	"events-backend/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("event not found")
	ErrNotEditable       = errors.New("event can no longer be edited")
	ErrInvalidTransition = errors.New("invalid moderation state transition")
)

// EventStore is the store collaborator the read pipelines consume. The
// gorm-backed EventService implements it; tests substitute fakes.
type EventStore interface {
	ListApprovedEventsForRegion(ctx context.Context, region string) ([]models.Event, error)
	QueryOccurrencesPage(ctx context.Context, spec models.FilterSpec, today time.Time, limit, offset int) (models.OccurrencePage, error)
	FindSimilarEvents(ctx context.Context, name, region, city string) ([]models.Event, error)
}

type EventService struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewEventService creates a new event service instance
func NewEventService(cfg *config.Config) *EventService {
	return &EventService{
		db:  database.GetDB(),
		cfg: cfg,
	}
}

func (s *EventService) popularityConfig() models.PopularityConfig {
	return models.PopularityConfig{
		ImageBonus:       s.cfg.ImagePopularityBonus,
		FeaturedBonus:    s.cfg.FeaturedPopularityBonus,
		MaxExternalScore: s.cfg.MaxExternalScore,
	}
}

func (s *EventService) maxDatesFor(submitterClass string) int {
	if submitterClass == models.SubmitterInternal {
		return s.cfg.MaxDatesInternal
	}
	return s.cfg.MaxDatesExternal
}

// =============================================================================
// EventStore implementation
// =============================================================================

// ListApprovedEventsForRegion bulk-fetches approved events whose region or
// subregion equals the requested region, dates included.
func (s *EventService) ListApprovedEventsForRegion(ctx context.Context, region string) ([]models.Event, error) {
	var events []models.Event
	err := s.db.WithContext(ctx).
		Preload("Dates").
		Where("state = ?", models.StateApproved).
		Where("region = ? OR subregion = ?", region, region).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list events for region %q: %w", region, err)
	}
	return events, nil
}

// QueryOccurrencesPage expands, filters, ranks and pages occurrences for
// one FilterSpec. SQL narrows the candidate set; the date-level predicate
// and ranking run over the expanded occurrences so the visibility rules
// live in exactly one place.
func (s *EventService) QueryOccurrencesPage(ctx context.Context, spec models.FilterSpec, today time.Time, limit, offset int) (models.OccurrencePage, error) {
	query := s.db.WithContext(ctx).
		Preload("Dates").
		Where("state = ?", models.StateApproved).
		Where("region = ? OR subregion = ?", spec.Region, spec.Region)
	if spec.Category != "" {
		query = query.Where("category = ?", spec.Category)
	}
	if spec.Subcategory != "" {
		query = query.Where("subcategory = ?", spec.Subcategory)
	}

	var events []models.Event
	if err := query.Find(&events).Error; err != nil {
		return models.OccurrencePage{}, fmt.Errorf("occurrence query failed: %w", err)
	}

	occurrences := spec.FilterOccurrences(models.ExpandEvents(events), today)
	utils.SortByRank(occurrences)

	total := int64(len(occurrences))
	if offset >= len(occurrences) {
		return models.OccurrencePage{Occurrences: []models.Occurrence{}, TotalCount: total}, nil
	}
	end := offset + limit
	if end > len(occurrences) {
		end = len(occurrences)
	}
	return models.OccurrencePage{Occurrences: occurrences[offset:end], TotalCount: total}, nil
}

// FindSimilarEvents returns the pending and approved events of a region
// that a draft submission could duplicate. Scoring happens in the
// duplicate service; this is just the candidate lookup.
func (s *EventService) FindSimilarEvents(ctx context.Context, name, region, city string) ([]models.Event, error) {
	var events []models.Event
	err := s.db.WithContext(ctx).
		Preload("Dates").
		Where("state IN ?", []string{models.StateApproved, models.StatePending}).
		Where("region = ? OR subregion = ?", region, region).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("similarity candidate query failed: %w", err)
	}
	return events, nil
}

// =============================================================================
// Submission Lifecycle
// =============================================================================

// SubmitEvent stores a new submission. Internal submitters are approved on
// the spot, everything else starts pending.
func (s *EventService) SubmitEvent(ctx context.Context, event models.Event) (*models.Event, error) {
	event.ID = uuid.NewString()

	if dropped := event.DedupDates(); dropped > 0 {
		logrus.WithFields(logrus.Fields{
			"event":   event.Name,
			"dropped": dropped,
		}).Info("ignored duplicate calendar days in submission")
	}

	event.State = models.StatePending
	if event.SubmitterClass == models.SubmitterInternal {
		event.State = models.StateApproved
	}
	event.ComputePopularity(s.popularityConfig())

	if err := event.Validate(s.maxDatesFor(event.SubmitterClass)); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(&event).Error; err != nil {
		return nil, fmt.Errorf("failed to store event: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"event_id": event.ID,
		"name":     event.Name,
		"state":    event.State,
	}).Info("event submitted")
	return &event, nil
}

// UpdateEvent applies a submitter edit. Allowed only while the event is
// pending or approved; editing an approved event sends it back to pending.
func (s *EventService) UpdateEvent(ctx context.Context, id string, updated models.Event) (*models.Event, error) {
	existing, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if !existing.Editable() {
		return nil, ErrNotEditable
	}

	updated.ID = existing.ID
	updated.State = existing.State
	if existing.State == models.StateApproved {
		updated.State = models.StatePending
	}
	updated.TrustScore = existing.TrustScore
	updated.SubmitterClass = existing.SubmitterClass
	updated.SubmitterEmail = existing.SubmitterEmail
	updated.CreatedAt = existing.CreatedAt

	if dropped := updated.DedupDates(); dropped > 0 {
		logrus.WithField("event_id", id).Info("ignored duplicate calendar days in edit")
	}
	updated.ComputePopularity(s.popularityConfig())

	if err := updated.Validate(s.maxDatesFor(updated.SubmitterClass)); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&models.EventDate{}).Error; err != nil {
			return err
		}
		return tx.Save(&updated).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"event_id": id,
		"state":    updated.State,
	}).Info("event updated")
	return &updated, nil
}

// SetModerationState performs a moderator transition.
func (s *EventService) SetModerationState(ctx context.Context, id, state string) (*models.Event, error) {
	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(event.State, state) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, event.State, state)
	}

	if err := s.db.WithContext(ctx).Model(event).Update("state", state).Error; err != nil {
		return nil, fmt.Errorf("failed to set moderation state: %w", err)
	}
	event.State = state

	logrus.WithFields(logrus.Fields{
		"event_id": id,
		"state":    state,
	}).Info("moderation state changed")
	return event, nil
}

// GetEvent retrieves a single event by ID, dates included.
func (s *EventService) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	err := s.db.WithContext(ctx).Preload("Dates").Where("id = ?", id).First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load event: %w", err)
	}
	return &event, nil
}

// ListEventsForModeration lists events by explicit state. This is the
// moderation surface: it bypasses the approved-only browse rule and sees
// past dates.
func (s *EventService) ListEventsForModeration(ctx context.Context, state string) ([]models.Event, error) {
	// Non-nil so an empty moderation queue serializes as [].
	events := make([]models.Event, 0)
	query := s.db.WithContext(ctx).Preload("Dates").Order("created_at DESC")
	if state != "" {
		query = query.Where("state = ?", state)
	}
	if err := query.Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list events for moderation: %w", err)
	}
	return events, nil
}

// GetEventStats returns statistics about the event database
func (s *EventService) GetEventStats(ctx context.Context) (map[string]interface{}, error) {
	db := s.db.WithContext(ctx)

	var totalCount int64
	db.Model(&models.Event{}).Count(&totalCount)

	countByState := map[string]int64{}
	for _, state := range []string{models.StatePending, models.StateApproved, models.StateRejected} {
		var n int64
		db.Model(&models.Event{}).Where("state = ?", state).Count(&n)
		countByState[state] = n
	}

	var regions []string
	db.Model(&models.Event{}).Distinct("region").Pluck("region", &regions)

	var dateCount int64
	db.Model(&models.EventDate{}).Count(&dateCount)

	stats := map[string]interface{}{
		"total_events":   totalCount,
		"by_state":       countByState,
		"unique_regions": len(regions),
		"total_dates":    dateCount,
	}
	return stats, nil
}
