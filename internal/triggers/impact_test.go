package triggers

import (
	"testing"

	"github.com/signalcraft/outreach/internal/profile"
	"github.com/signalcraft/outreach/internal/signals"
)

func TestEstimatedImpact(t *testing.T) {
	tests := []struct {
		name      string
		typ       profile.TriggerType
		intensity profile.Intensity
		tier      signals.Tier
		want      int
	}{
		{"social-proof moderate professional", profile.SocialProof, profile.Moderate, signals.TierProfessional, 7},
		{"scarcity strong premium clamps at 10", profile.Scarcity, profile.Strong, signals.TierPremium, 10},
		{"scarcity strong hobbyist", profile.Scarcity, profile.Strong, signals.TierHobbyist, 9},
		{"liking subtle hobbyist", profile.Liking, profile.Subtle, signals.TierHobbyist, 2},
		{"liking subtle premium", profile.Liking, profile.Subtle, signals.TierPremium, 4},
		{"authority strong premium", profile.Authority, profile.Strong, signals.TierPremium, 9},
		{"reciprocity subtle hobbyist", profile.Reciprocity, profile.Subtle, signals.TierHobbyist, 3},
		{"consensus moderate premium", profile.Consensus, profile.Moderate, signals.TierPremium, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := estimatedImpact(tt.typ, tt.intensity, tt.tier)
			if got != tt.want {
				t.Errorf("estimatedImpact(%q, %q, %q) = %d, want %d", tt.typ, tt.intensity, tt.tier, got, tt.want)
			}
		})
	}
}

func TestEstimatedImpact_Range(t *testing.T) {
	tiers := []signals.Tier{signals.TierHobbyist, signals.TierProfessional, signals.TierPremium}
	intensities := []profile.Intensity{profile.Subtle, profile.Moderate, profile.Strong}
	for _, typ := range profile.CanonicalOrder {
		for _, intensity := range intensities {
			for _, tier := range tiers {
				got := estimatedImpact(typ, intensity, tier)
				if got < 1 || got > 10 {
					t.Errorf("estimatedImpact(%q, %q, %q) = %d, outside [1,10]", typ, intensity, tier, got)
				}
			}
		}
	}
}
