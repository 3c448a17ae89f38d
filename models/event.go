package models

import (
	"fmt"
	"time"

	"events-backend/utils"
)

// Event categories - every submission picks exactly one
const (
	CategoryMusic   = "music"
	CategoryCulture = "culture"
	CategorySport   = "sport"
	CategoryFamily  = "family"
)

// Price types
const (
	PriceFree = "free"
	PriceCost = "cost"
)

// Moderation states
const (
	StatePending  = "pending"
	StateApproved = "approved"
	StateRejected = "rejected"
)

// Submitter classes
const (
	SubmitterInternal = "internal"
	SubmitterExternal = "external"
)

// Event represents a submitted listing in the database
// This is the core domain model with GORM tags for database operations
type Event struct {
	ID              string      `gorm:"primaryKey" json:"id"`
	Name            string      `gorm:"index:idx_name" json:"name"`
	Category        string      `gorm:"index:idx_category" json:"category"`
	Subcategory     string      `json:"subcategory,omitempty"`
	Description     string      `json:"description"`
	Region          string      `gorm:"index:idx_region" json:"region"`
	Subregion       string      `gorm:"index:idx_subregion" json:"subregion,omitempty"`
	City            string      `gorm:"index:idx_city" json:"city,omitempty"`
	Host            string      `json:"host,omitempty"`
	Address         string      `json:"address,omitempty"`
	Dates           []EventDate `gorm:"constraint:OnDelete:CASCADE" json:"dates,omitempty"`
	ImageURL        string      `json:"image_url,omitempty"`
	PriceType       string      `json:"price_type"`
	PriceAmount     *float64    `json:"price_amount,omitempty"`
	ExternalLink    string      `json:"external_link,omitempty"`
	TicketLink      string      `json:"ticket_link,omitempty"`
	State           string      `gorm:"index:idx_state" json:"state"`
	PopularityScore int         `gorm:"index:idx_popularity" json:"popularity_score"`
	ExternalScore   int         `json:"external_score"`
	TrustScore      int         `json:"trust_score"`
	Featured        bool        `json:"featured"`
	SubmitterClass  string      `json:"submitter_class"`
	SubmitterEmail  string      `json:"submitter_email,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// EventDate is one calendar date of an event plus optional start/end clock
// times. An event cannot hold two entries for the same calendar day.
type EventDate struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	EventID   string    `gorm:"uniqueIndex:idx_event_day" json:"-"`
	Date      time.Time `gorm:"uniqueIndex:idx_event_day" json:"date"`
	StartTime string    `json:"start_time,omitempty"` // HH:MM, optional
	EndTime   string    `json:"end_time,omitempty"`   // HH:MM, optional
}

func validCategory(category string) bool {
	switch category {
	case CategoryMusic, CategoryCulture, CategorySport, CategoryFamily:
		return true
	}
	return false
}

// Validate checks the invariants data must satisfy before it enters the
// pipeline. The ranking and bucketing logic assumes already-validated events.
func (e *Event) Validate(maxDates int) error {
	if e.Name == "" {
		return fmt.Errorf("event name is required")
	}
	if e.Region == "" {
		return fmt.Errorf("event region is required")
	}
	if !validCategory(e.Category) {
		return fmt.Errorf("invalid category %q", e.Category)
	}
	if e.PriceType != PriceFree && e.PriceType != PriceCost {
		return fmt.Errorf("invalid price type %q", e.PriceType)
	}
	if e.PriceType == PriceCost && e.PriceAmount == nil {
		return fmt.Errorf("price amount is required for priced events")
	}
	if len(e.Dates) == 0 {
		return fmt.Errorf("at least one event date is required")
	}
	if maxDates > 0 && len(e.Dates) > maxDates {
		return fmt.Errorf("too many event dates: %d exceeds the limit of %d", len(e.Dates), maxDates)
	}
	if e.ExternalScore < 0 || e.PopularityScore < 0 || e.TrustScore < 0 {
		return fmt.Errorf("scores must not be negative")
	}
	for _, d := range e.Dates {
		if d.Date.IsZero() {
			return fmt.Errorf("event date must not be empty")
		}
		if err := utils.ValidateClock(d.StartTime); err != nil {
			return fmt.Errorf("start time: %w", err)
		}
		if err := utils.ValidateClock(d.EndTime); err != nil {
			return fmt.Errorf("end time: %w", err)
		}
	}
	return nil
}

// DedupDates drops entries that repeat a calendar day already present,
// keeping the first occurrence of each day. Returns the number dropped.
func (e *Event) DedupDates() int {
	seen := make(map[time.Time]bool, len(e.Dates))
	kept := e.Dates[:0]
	dropped := 0
	for _, d := range e.Dates {
		day := utils.TruncateToDay(d.Date)
		if seen[day] {
			dropped++
			continue
		}
		seen[day] = true
		kept = append(kept, d)
	}
	e.Dates = kept
	return dropped
}

// PopularityConfig holds the score contribution knobs.
type PopularityConfig struct {
	ImageBonus       int
	FeaturedBonus    int
	MaxExternalScore int
}

// ComputePopularity derives the stored popularity score from its
// contributions: a clamped external score, an image bonus and a featured
// bonus.
func (e *Event) ComputePopularity(cfg PopularityConfig) {
	score := e.ExternalScore
	if score < 0 {
		score = 0
	}
	if score > cfg.MaxExternalScore {
		score = cfg.MaxExternalScore
	}
	if e.ImageURL != "" {
		score += cfg.ImageBonus
	}
	if e.Featured {
		score += cfg.FeaturedBonus
	}
	e.PopularityScore = score
}

// CanTransition reports whether a moderation state change is allowed.
// Rejected is terminal; an approved event goes back to pending only through
// a submitter edit, which is also expressed as a transition here.
func CanTransition(from, to string) bool {
	switch from {
	case StatePending:
		return to == StateApproved || to == StateRejected
	case StateApproved:
		return to == StateRejected || to == StatePending
	default:
		return false
	}
}

// Editable reports whether the submitter may still change the event.
func (e *Event) Editable() bool {
	return e.State == StatePending || e.State == StateApproved
}
