package profile

import (
	"strings"

	"github.com/signalcraft/outreach/internal/signals"
)

// baseTypes are always included before rule-based additions.
var baseTypes = []TriggerType{SocialProof, Authority, Consensus}

// industryAdditions adds 1-2 types per matching industry keyword.
var industryAdditions = []struct {
	keywords []string
	types    []TriggerType
}{
	{[]string{"photo", "creative", "design", "art"}, []TriggerType{Liking, Scarcity}},
	{[]string{"consult", "coach", "agency", "advisory"}, []TriggerType{Authority, Commitment}},
	{[]string{"fitness", "health", "wellness"}, []TriggerType{Commitment, SocialProof}},
	{[]string{"food", "restaurant", "catering"}, []TriggerType{Scarcity, Consensus}},
	{[]string{"real estate", "property"}, []TriggerType{Authority, Scarcity}},
}

// stageAdditions adds types per business-stage match.
var stageAdditions = map[string][]TriggerType{
	"startup":     {Scarcity, Reciprocity},
	"early":       {Scarcity, Reciprocity},
	"scaling":     {SocialProof, Commitment},
	"growth":      {SocialProof, Commitment},
	"mature":      {Authority},
	"established": {Authority},
}

// tierAdditions adds one type per professional-tier match.
var tierAdditions = map[signals.Tier][]TriggerType{
	signals.TierPremium:      {Liking},
	signals.TierProfessional: {Commitment},
	signals.TierHobbyist:     {Reciprocity},
}

// styleToType maps a subject style from the learning model back to the
// trigger type it exercises. Only styles with a natural counterpart map.
var styleToType = map[string]TriggerType{
	"social-proof": SocialProof,
	"personalized": Liking,
}

// minLearnedConfidence gates learned feedback into the preferred set.
const minLearnedConfidence = 0.5

// Build combines extracted signals with upstream contextual analysis and
// learned segment preferences into a Profile. Rules are additive: the base
// set is always present, each matching condition contributes its types, the
// result is de-duplicated, capped at MaxPreferred, and kept disjoint from
// the avoided set. MaxIntensity never exceeds Strong.
func Build(sig signals.SignalSet, ctx Context, learned []LearnedPreference) Profile {
	ctx = ctx.WithDefaults()
	industry := strings.ToLower(ctx.Industry)
	stage := strings.ToLower(ctx.BusinessStage)

	avoided := buildAvoided(sig, ctx)

	var candidates []TriggerType
	candidates = append(candidates, baseTypes...)
	for _, rule := range industryAdditions {
		if containsAny(industry, rule.keywords) {
			candidates = append(candidates, rule.types...)
		}
	}
	if add, ok := stageAdditions[stage]; ok {
		candidates = append(candidates, add...)
	}
	if add, ok := tierAdditions[sig.Tier]; ok {
		candidates = append(candidates, add...)
	}
	for _, lp := range learned {
		if lp.Confidence < minLearnedConfidence {
			continue
		}
		if t, ok := styleToType[lp.Style]; ok {
			candidates = append(candidates, t)
		}
	}

	preferred := dedupe(candidates, avoided)
	if len(preferred) > MaxPreferred {
		preferred = preferred[:MaxPreferred]
	}

	painPoints := append([]string{}, ctx.PainPoints...)
	for _, pp := range sig.PainPoints {
		if !containsString(painPoints, pp) {
			painPoints = append(painPoints, pp)
		}
	}

	return Profile{
		Industry:       ctx.Industry,
		Tier:           sig.Tier,
		BusinessStage:  ctx.BusinessStage,
		MarketPosition: ctx.MarketPosition,
		Preferred:      preferred,
		Avoided:        avoided,
		MaxIntensity:   resolveIntensity(sig, ctx),
		PainPoints:     painPoints,
	}
}

// buildAvoided returns types that must never be selected for this profile.
// Hard-sell scarcity is avoided for premium positioning and mature businesses.
func buildAvoided(sig signals.SignalSet, ctx Context) []TriggerType {
	var avoided []TriggerType
	if sig.Tier == signals.TierPremium ||
		sig.Maturity == signals.MaturityMature ||
		strings.EqualFold(ctx.MarketPosition, "leader") {
		avoided = append(avoided, Scarcity)
	}
	return avoided
}

// resolveIntensity starts at moderate, tightens to subtle for premium or
// market-leader profiles, and loosens to strong for startup or hobbyist
// profiles. Tightening wins, and strong is a hard ceiling.
func resolveIntensity(sig signals.SignalSet, ctx Context) Intensity {
	if sig.Tier == signals.TierPremium || strings.EqualFold(ctx.MarketPosition, "leader") {
		return Subtle
	}
	if strings.EqualFold(ctx.BusinessStage, "startup") || sig.Tier == signals.TierHobbyist {
		return Strong
	}
	return Moderate
}

func dedupe(candidates []TriggerType, avoided []TriggerType) []TriggerType {
	seen := map[TriggerType]bool{}
	for _, a := range avoided {
		seen[a] = true
	}
	var out []TriggerType
	for _, t := range candidates {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
