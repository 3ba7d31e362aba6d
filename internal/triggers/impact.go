package triggers

import (
	"math"

	"github.com/signalcraft/outreach/internal/profile"
	"github.com/signalcraft/outreach/internal/signals"
)

// baseImpact is the per-type starting impact on the 1-10 scale.
var baseImpact = map[profile.TriggerType]float64{
	profile.SocialProof: 7,
	profile.Authority:   6,
	profile.Scarcity:    8,
	profile.Reciprocity: 5,
	profile.Commitment:  5,
	profile.Liking:      4,
	profile.Consensus:   6,
}

// intensityMultiplier scales impact by tone.
var intensityMultiplier = map[profile.Intensity]float64{
	profile.Subtle:   0.8,
	profile.Moderate: 1.0,
	profile.Strong:   1.3,
}

// tierImpactAdjust shifts impact by professional tier.
var tierImpactAdjust = map[signals.Tier]float64{
	signals.TierPremium:      1,
	signals.TierProfessional: 0,
	signals.TierHobbyist:     -1,
}

// estimatedImpact computes round(clamp(base * multiplier + tierAdj, 1, 10)).
func estimatedImpact(t profile.TriggerType, intensity profile.Intensity, tier signals.Tier) int {
	v := baseImpact[t]*intensityMultiplier[intensity] + tierImpactAdjust[tier]
	if v < 1 {
		v = 1
	}
	if v > 10 {
		v = 10
	}
	return int(math.Round(v))
}
