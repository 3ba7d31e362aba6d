package outcome

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventType is a message lifecycle event. Flags are monotonic: each can
// transition false -> true at most once, so duplicate delivery is a no-op.
type EventType string

const (
	EventSent    EventType = "sent"
	EventOpened  EventType = "opened"
	EventClicked EventType = "clicked"
	EventReplied EventType = "replied"
)

// Valid reports whether t is one of the four lifecycle events.
func (t EventType) Valid() bool {
	switch t {
	case EventSent, EventOpened, EventClicked, EventReplied:
		return true
	}
	return false
}

// Event is the single ingestion payload for lifecycle events, whether it
// arrived via webhook, NATS, or the poller.
type Event struct {
	MessageID uuid.UUID `json:"message_id"`
	Type      EventType `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
	Quality   *float64  `json:"quality_score,omitempty"`
}

// EventPayload is the webhook-shaped wire form of an Event, shared by the
// HTTP ingestion endpoint, the NATS subject, and the pull-mode source.
type EventPayload struct {
	MessageID    string    `json:"messageId"`
	EventType    string    `json:"eventType"`
	Timestamp    time.Time `json:"timestamp"`
	QualityScore *float64  `json:"qualityScore,omitempty"`
}

// Event validates and converts the wire payload.
func (p EventPayload) Event() (Event, error) {
	id, err := uuid.Parse(p.MessageID)
	if err != nil {
		return Event{}, fmt.Errorf("%w: bad messageId %q", ErrInvalidEvent, p.MessageID)
	}
	return Event{
		MessageID: id,
		Type:      EventType(p.EventType),
		Timestamp: p.Timestamp,
		Quality:   p.QualityScore,
	}, nil
}

// Record is the denormalized segment view of one outcome record, captured at
// send time and returned by the store when a flag transitions.
type Record struct {
	MessageID     uuid.UUID
	Segment       string
	Industry      string
	Style         string
	BusinessStage string
	TriggerTypes  []string
	ABTestID      *uuid.UUID
	ABGroup       string
}

// StyleStat is one row of per-segment per-style learning state.
type StyleStat struct {
	Style       string
	SuccessRate float64
	Samples     int
}

// StyleInsight is a ranked recommendation for one style.
type StyleInsight struct {
	Style       string  `json:"style"`
	SuccessRate float64 `json:"success_rate"`
	Samples     int     `json:"sample_size"`
	Confidence  float64 `json:"confidence"`
}

// InsightReport is the always-actionable insight query result: ranked style
// insights when the segment has data, fixed generic recommendations when not.
type InsightReport struct {
	Segment         string         `json:"segment"`
	Insights        []StyleInsight `json:"insights,omitempty"`
	Recommendations []string       `json:"recommendations,omitempty"`
}
