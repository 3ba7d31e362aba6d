package profile

import "github.com/signalcraft/outreach/internal/signals"

// TriggerType is one of the seven persuasion types. CanonicalOrder is the
// fixed enumeration order used for tie-breaking everywhere.
type TriggerType string

const (
	SocialProof TriggerType = "social-proof"
	Authority   TriggerType = "authority"
	Scarcity    TriggerType = "scarcity"
	Reciprocity TriggerType = "reciprocity"
	Commitment  TriggerType = "commitment"
	Liking      TriggerType = "liking"
	Consensus   TriggerType = "consensus"
)

var CanonicalOrder = []TriggerType{
	SocialProof, Authority, Scarcity, Reciprocity, Commitment, Liking, Consensus,
}

// Rank returns the position of t in the canonical order, or len(CanonicalOrder)
// for unknown types so they sort last.
func Rank(t TriggerType) int {
	for i, c := range CanonicalOrder {
		if c == t {
			return i
		}
	}
	return len(CanonicalOrder)
}

// Intensity is the ordinal tone ceiling for persuasive content.
type Intensity string

const (
	Subtle   Intensity = "subtle"
	Moderate Intensity = "moderate"
	Strong   Intensity = "strong"
)

// Ordinal maps an intensity to its position (subtle=0, moderate=1, strong=2).
func (i Intensity) Ordinal() int {
	switch i {
	case Subtle:
		return 0
	case Moderate:
		return 1
	case Strong:
		return 2
	default:
		return 1
	}
}

// Context is the upstream contextual analysis for one target. Absent fields
// fall back to the documented defaults.
type Context struct {
	Industry       string
	BusinessStage  string
	MarketPosition string
	PainPoints     []string
}

const (
	DefaultIndustry       = "creative services"
	DefaultBusinessStage  = "scaling"
	DefaultMarketPosition = "follower"
)

// WithDefaults fills absent fields with the documented fallbacks.
func (c Context) WithDefaults() Context {
	if c.Industry == "" {
		c.Industry = DefaultIndustry
	}
	if c.BusinessStage == "" {
		c.BusinessStage = DefaultBusinessStage
	}
	if c.MarketPosition == "" {
		c.MarketPosition = DefaultMarketPosition
	}
	return c
}

// LearnedPreference is a feedback signal from the outcome tracker: a subject
// style that has performed well for this segment, with its confidence.
type LearnedPreference struct {
	Style      string
	Confidence float64
}

// Profile guides trigger and tone selection for one target entity.
// Preferred and Avoided are disjoint; Preferred holds at most MaxPreferred
// types; MaxIntensity never exceeds Strong.
type Profile struct {
	Industry       string
	Tier           signals.Tier
	BusinessStage  string
	MarketPosition string
	Preferred      []TriggerType
	Avoided        []TriggerType
	MaxIntensity   Intensity
	PainPoints     []string
}

// MaxPreferred caps the preferred set size.
const MaxPreferred = 7

// Prefers reports whether t is in the preferred set.
func (p Profile) Prefers(t TriggerType) bool {
	for _, x := range p.Preferred {
		if x == t {
			return true
		}
	}
	return false
}

// Avoids reports whether t is in the avoided set.
func (p Profile) Avoids(t TriggerType) bool {
	for _, x := range p.Avoided {
		if x == t {
			return true
		}
	}
	return false
}

// TopPainPoint returns the first pain point or a safe generic fallback.
func (p Profile) TopPainPoint() string {
	if len(p.PainPoints) > 0 {
		return p.PainPoints[0]
	}
	return "finding new clients"
}
