package models

import (
	"fmt"
	"time"
)

// EventDateInput is one calendar date in a submission payload. The date is
// an ISO day string; malformed values are rejected at this boundary, before
// anything enters the pipeline.
type EventDateInput struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// SubmitEventRequest is the submission payload for new and edited events.
type SubmitEventRequest struct {
	Name           string           `json:"name" binding:"required"`
	Category       string           `json:"category" binding:"required"`
	Subcategory    string           `json:"subcategory"`
	Description    string           `json:"description"`
	Region         string           `json:"region" binding:"required"`
	Subregion      string           `json:"subregion"`
	City           string           `json:"city"`
	Host           string           `json:"host"`
	Address        string           `json:"address"`
	Dates          []EventDateInput `json:"dates" binding:"required,min=1"`
	ImageURL       string           `json:"image_url"`
	PriceType      string           `json:"price_type"`
	PriceAmount    *float64         `json:"price_amount"`
	ExternalLink   string           `json:"external_link"`
	TicketLink     string           `json:"ticket_link"`
	ExternalScore  int              `json:"external_score"`
	Featured       bool             `json:"featured"`
	SubmitterClass string           `json:"submitter_class"`
	SubmitterEmail string           `json:"submitter_email" binding:"omitempty,email"`

	// Confirmed acknowledges a previously returned duplicate warning.
	Confirmed bool `json:"confirmed"`
}

// ToEvent converts the payload into a domain Event. Date strings must be
// ISO days ("2006-01-02"); an unparseable value fails the whole submission.
func (r SubmitEventRequest) ToEvent() (Event, error) {
	dates := make([]EventDate, 0, len(r.Dates))
	for _, in := range r.Dates {
		day, err := time.ParseInLocation("2006-01-02", in.Date, time.Local)
		if err != nil {
			return Event{}, fmt.Errorf("invalid event date %q: expected YYYY-MM-DD", in.Date)
		}
		dates = append(dates, EventDate{
			Date:      day,
			StartTime: in.StartTime,
			EndTime:   in.EndTime,
		})
	}

	priceType := r.PriceType
	if priceType == "" {
		priceType = PriceFree
	}
	submitterClass := r.SubmitterClass
	if submitterClass == "" {
		submitterClass = SubmitterExternal
	}

	return Event{
		Name:           r.Name,
		Category:       r.Category,
		Subcategory:    r.Subcategory,
		Description:    r.Description,
		Region:         r.Region,
		Subregion:      r.Subregion,
		City:           r.City,
		Host:           r.Host,
		Address:        r.Address,
		Dates:          dates,
		ImageURL:       r.ImageURL,
		PriceType:      priceType,
		PriceAmount:    r.PriceAmount,
		ExternalLink:   r.ExternalLink,
		TicketLink:     r.TicketLink,
		ExternalScore:  r.ExternalScore,
		Featured:       r.Featured,
		SubmitterClass: submitterClass,
		SubmitterEmail: r.SubmitterEmail,
	}, nil
}

// DuplicateCandidate is one likely-duplicate event with its 0..1 score.
type DuplicateCandidate struct {
	Event           Event   `json:"event"`
	SimilarityScore float64 `json:"similarity_score"`
}

// SubmitEventResponse is returned for submissions. When Warning is set the
// event was NOT stored yet: the caller should surface the candidates and
// resubmit with Confirmed once the user approves.
type SubmitEventResponse struct {
	Event      *Event               `json:"event,omitempty"`
	Warning    bool                 `json:"warning"`
	Duplicates []DuplicateCandidate `json:"duplicates,omitempty"`
}

// CheckDuplicatesRequest asks for likely duplicates of a draft submission.
type CheckDuplicatesRequest struct {
	Name   string `json:"name" binding:"required"`
	Region string `json:"region" binding:"required"`
	City   string `json:"city"`
}

// ModerationRequest carries a moderation state transition.
type ModerationRequest struct {
	State string `json:"state" binding:"required"`
}

// HomePageResponse holds the three disjoint display buckets.
type HomePageResponse struct {
	Daily     []Occurrence `json:"daily"`
	Weekly    []Occurrence `json:"weekly"`
	Remaining []Occurrence `json:"remaining"`
}

// SearchStateResponse is the pager's observable state.
type SearchStateResponse struct {
	Occurrences []Occurrence `json:"occurrences"`
	TotalCount  int64        `json:"total_count"`
	Loading     bool         `json:"loading"`
	HasMore     bool         `json:"has_more"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
