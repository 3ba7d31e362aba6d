package triggers

import "github.com/signalcraft/outreach/internal/profile"

// Trigger is a rendered persuasive fragment. Invariants, guaranteed by the
// selector: Type is never in the profile's avoided set, and Intensity never
// exceeds the profile ceiling except for the documented social-proof floor.
type Trigger struct {
	Type            profile.TriggerType `json:"type"`
	Intensity       profile.Intensity   `json:"intensity"`
	Content         string              `json:"content"`
	Context         string              `json:"context"`
	EstimatedImpact int                 `json:"estimated_impact"`
}
