package triggers

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"

	"github.com/signalcraft/outreach/internal/profile"
	"github.com/signalcraft/outreach/internal/signals"
)

// DefaultTopK is the default number of distinct trigger types selected.
const DefaultTopK = 3

// preference bonuses per the selection formula
const (
	preferredBonus = 3
	avoidedPenalty = -5
)

// industryBonusKeywords maps keyword categories to the types they boost.
// Each matching category adds its bonus (0-2 total per type in practice).
var industryBonusKeywords = []struct {
	keywords []string
	typ      profile.TriggerType
	bonus    int
}{
	{[]string{"photo", "creative", "design"}, profile.Liking, 2},
	{[]string{"photo", "wedding"}, profile.Scarcity, 1},
	{[]string{"consult", "advisory", "agency"}, profile.Authority, 2},
	{[]string{"fitness", "wellness", "health"}, profile.Commitment, 2},
	{[]string{"food", "restaurant"}, profile.Consensus, 1},
	{[]string{"real estate", "property"}, profile.Authority, 1},
}

// Selector scores candidate trigger types against a profile and renders the
// winners from the template bank. The RNG is injected so template choice is
// seedable in tests; scoring itself is fully deterministic. math/rand.Rand
// is not safe for concurrent use, and one Selector serves every batch
// worker, so the mutex serializes template picks.
type Selector struct {
	bank *Bank
	mu   sync.Mutex
	rng  *rand.Rand
}

func NewSelector(bank *Bank, rng *rand.Rand) *Selector {
	return &Selector{bank: bank, rng: rng}
}

// Select picks the top-k distinct trigger types for the profile and renders
// each into a Trigger. A type with no template for its bucket is skipped, so
// the result may hold fewer than k triggers. Avoided types are never emitted.
func (s *Selector) Select(p profile.Profile, k int) []Trigger {
	if k <= 0 {
		k = DefaultTopK
	}

	type scored struct {
		typ   profile.TriggerType
		score int
	}
	var candidates []scored
	for _, t := range profile.CanonicalOrder {
		if p.Avoids(t) {
			continue
		}
		candidates = append(candidates, scored{typ: t, score: s.score(t, p)})
	}

	// Descending by score, ties broken by canonical enumeration order.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return profile.Rank(candidates[i].typ) < profile.Rank(candidates[j].typ)
	})

	painPoint := p.TopPainPoint()
	var out []Trigger
	for _, c := range candidates {
		if len(out) == k {
			break
		}
		intensity := resolveIntensity(c.typ, p)
		tpl, ok := s.pick(c.typ, intensity, p.Industry)
		if !ok {
			continue // no template for this bucket; skip the slot
		}
		out = append(out, Trigger{
			Type:            c.typ,
			Intensity:       intensity,
			Content:         render(tpl, p.Industry, painPoint),
			Context:         fmt.Sprintf("%s / %s", strings.ToLower(p.Industry), painPoint),
			EstimatedImpact: estimatedImpact(c.typ, intensity, p.Tier),
		})
	}
	return out
}

func (s *Selector) pick(t profile.TriggerType, intensity profile.Intensity, industry string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bank.Pick(s.rng, t, intensity, industry)
}

// score = basePreferenceBonus + industrySpecificBonus + tierAdjustment.
func (s *Selector) score(t profile.TriggerType, p profile.Profile) int {
	score := 0
	if p.Prefers(t) {
		score += preferredBonus
	} else if p.Avoids(t) {
		score += avoidedPenalty
	}
	score += industryBonus(t, p.Industry)
	score += tierAdjustment(t, p.Tier)
	return score
}

func industryBonus(t profile.TriggerType, industry string) int {
	industry = strings.ToLower(industry)
	bonus := 0
	for _, rule := range industryBonusKeywords {
		if rule.typ != t {
			continue
		}
		for _, kw := range rule.keywords {
			if strings.Contains(industry, kw) {
				bonus += rule.bonus
				break
			}
		}
	}
	if bonus > 2 {
		bonus = 2
	}
	return bonus
}

// tierAdjustment nudges type scores by professional tier (+/-1).
func tierAdjustment(t profile.TriggerType, tier signals.Tier) int {
	switch tier {
	case signals.TierPremium:
		switch t {
		case profile.Authority, profile.Liking:
			return 1
		case profile.Scarcity:
			return -1
		}
	case signals.TierHobbyist:
		switch t {
		case profile.Reciprocity:
			return 1
		case profile.Authority:
			return -1
		}
	}
	return 0
}

// resolveIntensity returns the profile ceiling with the two documented
// overrides: authority and liking are forced to subtle for premium tier, and
// social-proof is floored at moderate even under a subtle ceiling.
func resolveIntensity(t profile.TriggerType, p profile.Profile) profile.Intensity {
	intensity := p.MaxIntensity
	if p.Tier == signals.TierPremium && (t == profile.Authority || t == profile.Liking) {
		intensity = profile.Subtle
	}
	if t == profile.SocialProof && intensity.Ordinal() < profile.Moderate.Ordinal() {
		intensity = profile.Moderate
	}
	return intensity
}
