package pipeline

import (
	"context"

	"github.com/google/uuid"

	"github.com/signalcraft/outreach/internal/profile"
	"github.com/signalcraft/outreach/internal/subject"
	"github.com/signalcraft/outreach/internal/triggers"
)

// Target is one entity moving through the pipeline.
type Target struct {
	ID      uuid.UUID `json:"id"`
	Company string    `json:"company"`
	URL     string    `json:"url,omitempty"`

	// Page content supplied inline by the submitting system. The fetching
	// mechanism itself lives upstream.
	Text   string `json:"text,omitempty"`
	Markup string `json:"markup,omitempty"`

	// Contextual analysis supplied inline; nil falls back to defaults.
	Context *profile.Context `json:"context,omitempty"`

	// Optional A/B assignment for the resulting message.
	ABTestID *uuid.UUID `json:"ab_test_id,omitempty"`
	ABGroup  string     `json:"ab_group,omitempty"`
}

// Content is what the page content provider returns for a target.
type Content struct {
	Text   string
	Markup string
}

// ContentProvider supplies raw page text and markup. It may time out, be
// blocked, or return nothing; the pipeline degrades to the conservative
// default signal set rather than failing the unit.
type ContentProvider interface {
	Content(ctx context.Context, t Target) (Content, error)
}

// ContextAnalyzer supplies the upstream contextual analysis. Best effort:
// errors and absent fields fall back to the documented defaults.
type ContextAnalyzer interface {
	Analyze(ctx context.Context, t Target) (profile.Context, error)
}

// PayloadProvider reads page content carried inline on the target.
type PayloadProvider struct{}

func (PayloadProvider) Content(_ context.Context, t Target) (Content, error) {
	return Content{Text: t.Text, Markup: t.Markup}, nil
}

// PayloadAnalyzer reads the contextual analysis carried inline on the target.
type PayloadAnalyzer struct{}

func (PayloadAnalyzer) Analyze(_ context.Context, t Target) (profile.Context, error) {
	if t.Context == nil {
		return profile.Context{}, nil
	}
	return *t.Context, nil
}

// UnitStatus is exactly one of queued, succeeded, or failed; no partial or
// ambiguous states are exposed.
type UnitStatus string

const (
	StatusQueued    UnitStatus = "queued"
	StatusSucceeded UnitStatus = "succeeded"
	StatusFailed    UnitStatus = "failed"
)

// UnitResult is the per-unit outcome surfaced to callers.
type UnitResult struct {
	TargetID   uuid.UUID          `json:"target_id"`
	Company    string             `json:"company"`
	Status     UnitStatus         `json:"status"`
	Diagnostic string             `json:"diagnostic,omitempty"`
	MessageID  uuid.UUID          `json:"message_id,omitempty"`
	Segment    string             `json:"segment,omitempty"`
	Profile    profile.Profile    `json:"profile,omitempty"`
	Triggers   []triggers.Trigger `json:"triggers,omitempty"`
	Subject    subject.Variant    `json:"subject,omitempty"`
}
