package services

import (
	"context"
	"sort"
	"strings"

	"events-backend/config"
	"events-backend/models"
	"events-backend/utils"

	"github.com/sirupsen/logrus"
)

// cityMatchBoost is added to the name similarity when the candidate sits in
// the same city as the draft.
const cityMatchBoost = 0.1

// DuplicateService flags likely-duplicate submissions before they reach
// moderation. It is advisory only: it never blocks a submission, and a
// failing lookup counts as "no duplicates found".
type DuplicateService struct {
	store EventStore
	cfg   *config.Config
}

// NewDuplicateService creates a new duplicate detection service instance
func NewDuplicateService(cfg *config.Config, store EventStore) *DuplicateService {
	return &DuplicateService{
		store: store,
		cfg:   cfg,
	}
}

// CheckDuplicates scores the draft's name against existing pending and
// approved events in the same region and returns the candidates above the
// similarity threshold, best match first. Store failures fail open.
func (s *DuplicateService) CheckDuplicates(ctx context.Context, name, region, city string) []models.DuplicateCandidate {
	events, err := s.store.FindSimilarEvents(ctx, name, region, city)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"name":   name,
			"region": region,
		}).Warn("duplicate lookup failed, proceeding without duplicates")
		return nil
	}

	candidates := make([]models.DuplicateCandidate, 0)
	for _, event := range events {
		score := utils.TrigramSimilarity(name, event.Name)
		if score == 0 {
			continue
		}
		if city != "" && strings.EqualFold(city, event.City) {
			score += cityMatchBoost
			if score > 1 {
				score = 1
			}
		}
		if score < s.cfg.SimilarityThreshold {
			continue
		}
		candidates = append(candidates, models.DuplicateCandidate{
			Event:           event,
			SimilarityScore: score,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].SimilarityScore > candidates[j].SimilarityScore
	})

	if len(candidates) > 0 {
		logrus.WithFields(logrus.Fields{
			"name":       name,
			"region":     region,
			"candidates": len(candidates),
		}).Info("possible duplicate submission")
	}
	return candidates
}
