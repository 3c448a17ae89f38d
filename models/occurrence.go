package models

import (
	"time"

	"github.com/sirupsen/logrus"

	"events-backend/utils"
)

// Occurrence is a derived, read-only projection: one Event bound to exactly
// one of its EventDates. Occurrences are never persisted; they exist only
// inside a pipeline invocation and are recomputed on every read.
type Occurrence struct {
	Event
	Key  string    `json:"key"`
	Date EventDate `json:"date"`
}

// OccurrenceKey builds the identity of an occurrence: "<eventID>#<isoDate>".
func OccurrenceKey(eventID string, date time.Time) string {
	return eventID + "#" + utils.TruncateToDay(date).Format("2006-01-02")
}

// OccurrencePage is one page of store-side expanded occurrences together
// with the total count of matching rows.
type OccurrencePage struct {
	Occurrences []Occurrence `json:"occurrences"`
	TotalCount  int64        `json:"total_count"`
}

// utils.Rankable implementation

func (o Occurrence) GetKey() string     { return o.Key }
func (o Occurrence) GetDate() time.Time { return o.Date.Date }
func (o Occurrence) GetPopularity() int { return o.PopularityScore }

// ExpandEvent unfolds one event into one occurrence per date. Each
// occurrence carries a detached copy of the event with the date list
// stripped, so pipeline stages can never mutate the source through it.
// An EventDate without a usable calendar date is skipped with a warning;
// an event reduced to zero occurrences is simply invisible downstream.
func ExpandEvent(event Event) []Occurrence {
	occurrences := make([]Occurrence, 0, len(event.Dates))
	for _, d := range event.Dates {
		if d.Date.IsZero() {
			logrus.WithFields(logrus.Fields{
				"event_id": event.ID,
				"name":     event.Name,
			}).Warn("skipping event date with empty calendar date")
			continue
		}

		detached := event
		detached.Dates = nil

		occurrences = append(occurrences, Occurrence{
			Event: detached,
			Key:   OccurrenceKey(event.ID, d.Date),
			Date:  d,
		})
	}
	return occurrences
}

// ExpandEvents unfolds a batch of events.
func ExpandEvents(events []Event) []Occurrence {
	var occurrences []Occurrence
	for _, event := range events {
		occurrences = append(occurrences, ExpandEvent(event)...)
	}
	return occurrences
}
