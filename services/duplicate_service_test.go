package services

import (
	"context"
	"testing"

	"events-backend/config"
	"events-backend/models"
)

func duplicateConfig() *config.Config {
	return &config.Config{SimilarityThreshold: 0.35}
}

func TestCheckDuplicates_FlagsNearDuplicate(t *testing.T) {
	store := &fakeStore{events: []models.Event{
		{ID: "a", Name: "Sommerfest in Dornbirn", Region: "Vorarlberg", City: "Dornbirn", State: models.StateApproved},
		{ID: "b", Name: "Weihnachtsmarkt", Region: "Vorarlberg", City: "Feldkirch", State: models.StatePending},
	}}
	svc := NewDuplicateService(duplicateConfig(), store)

	candidates := svc.CheckDuplicates(context.Background(), "Sommerfest Dornbirn", "Vorarlberg", "Dornbirn")

	if len(candidates) != 1 {
		t.Fatalf("got %d candidates, expected exactly the Sommerfest", len(candidates))
	}
	if candidates[0].Event.ID != "a" {
		t.Errorf("flagged %s, expected event a", candidates[0].Event.ID)
	}
	if candidates[0].SimilarityScore < 0.5 || candidates[0].SimilarityScore > 1 {
		t.Errorf("similarity score %v outside the expected high band", candidates[0].SimilarityScore)
	}
}

func TestCheckDuplicates_CityBoost(t *testing.T) {
	store := &fakeStore{events: []models.Event{
		{ID: "same-city", Name: "Herbstmarkt", Region: "Vorarlberg", City: "Bregenz", State: models.StateApproved},
		{ID: "other-city", Name: "Herbstmarkt", Region: "Vorarlberg", City: "Bludenz", State: models.StateApproved},
	}}
	svc := NewDuplicateService(duplicateConfig(), store)

	candidates := svc.CheckDuplicates(context.Background(), "Herbstmarkt", "Vorarlberg", "bregenz")

	if len(candidates) != 2 {
		t.Fatalf("got %d candidates, expected 2", len(candidates))
	}
	if candidates[0].Event.ID != "same-city" {
		t.Errorf("same-city candidate must rank first, got %s", candidates[0].Event.ID)
	}
	if candidates[0].SimilarityScore != 1 {
		t.Errorf("boosted identical name should cap at 1, got %v", candidates[0].SimilarityScore)
	}
}

func TestCheckDuplicates_ThresholdFiltersNoise(t *testing.T) {
	store := &fakeStore{events: []models.Event{
		{ID: "noise", Name: "Flohmarkt Hard", Region: "Vorarlberg", City: "Hard", State: models.StateApproved},
	}}
	svc := NewDuplicateService(duplicateConfig(), store)

	candidates := svc.CheckDuplicates(context.Background(), "Orgelkonzert im Dom", "Vorarlberg", "Feldkirch")

	if len(candidates) != 0 {
		t.Errorf("unrelated event surfaced as duplicate: %+v", candidates)
	}
}

func TestCheckDuplicates_FailsOpen(t *testing.T) {
	store := &fakeStore{failSimilar: true}
	svc := NewDuplicateService(duplicateConfig(), store)

	candidates := svc.CheckDuplicates(context.Background(), "Sommerfest", "Vorarlberg", "Dornbirn")

	if candidates != nil {
		t.Errorf("store failure must read as no duplicates, got %+v", candidates)
	}
}
