package signals

import (
	"sort"
	"strings"
)

// Extract turns raw page text plus structural hints into a SignalSet.
// It is a pure function: same input always yields the same set, with no
// randomness and no external calls. Empty input returns Defaults().
func Extract(text string, hints Hints) SignalSet {
	if strings.TrimSpace(text) == "" {
		return Defaults()
	}
	text = strings.ToLower(text)

	set := SignalSet{
		TeamSize:           classifyTeamSize(text, hints),
		Maturity:           classifyMaturity(text),
		Tier:               classifyTier(text),
		TechSophistication: classifyTech(text),
		HasPricing:         countAny(text, pricingKeywords) > 0,
		HasBooking:         countAny(text, bookingKeywords) > 0,
		Seasonal:           countAny(text, seasonalKeywords) > 0,
		GrowthSignals:      matchedKeywords(text, growthKeywords),
		CredibilityMarkers: matchedKeywords(text, credibilityKeywords),
		IndustryFocus:      classifyIndustries(text),
		RevenueIndicators:  matchedKeywords(text, revenueKeywords),
		PainPoints:         detectPainPoints(text),
	}
	return set
}

// classifyTeamSize applies the ordered chain:
// large if any large-team keyword OR >10 member elements; medium if team
// keywords outnumber solo keywords OR >3 member elements; solo if solo
// keywords outnumber team keywords AND at most one member element;
// small otherwise.
func classifyTeamSize(text string, hints Hints) TeamSize {
	largeCount := countAny(text, largeTeamKeywords)
	teamCount := countAny(text, teamKeywords)
	soloCount := countAny(text, soloKeywords)

	if largeCount > 0 || hints.TeamMembers > 10 {
		return TeamLarge
	}
	if teamCount > soloCount || hints.TeamMembers > 3 {
		return TeamMedium
	}
	if soloCount > teamCount && hints.TeamMembers <= 1 {
		return TeamSolo
	}
	return TeamSmall
}

func classifyMaturity(text string) Maturity {
	if countAny(text, matureKeywords) > 0 {
		return MaturityMature
	}
	if countAny(text, establishedKeywords) > 0 {
		return MaturityEstablished
	}
	return MaturityStartup
}

func classifyTier(text string) Tier {
	if countAny(text, premiumKeywords) > 0 {
		return TierPremium
	}
	if countAny(text, professionalKeywords) > 0 {
		return TierProfessional
	}
	return TierHobbyist
}

func classifyTech(text string) TechLevel {
	if countDistinct(text, advancedTechKeywords) >= 2 {
		return TechAdvanced
	}
	if countDistinct(text, advancedTechKeywords) == 1 || countDistinct(text, moderateTechKeywords) >= 2 {
		return TechModerate
	}
	return TechBasic
}

// classifyIndustries returns industries with at least two distinct keyword
// matches, in the fixed industryOrder.
func classifyIndustries(text string) []string {
	var focus []string
	for _, industry := range industryOrder {
		if countDistinct(text, industryVocabulary[industry]) >= 2 {
			focus = append(focus, industry)
		}
	}
	return focus
}

func detectPainPoints(text string) []string {
	seen := map[string]bool{}
	var points []string
	// Iterate phrases in a stable order.
	for _, phrase := range sortedKeys(painPointKeywords) {
		if strings.Contains(text, phrase) {
			label := painPointKeywords[phrase]
			if !seen[label] {
				seen[label] = true
				points = append(points, label)
			}
		}
	}
	return points
}

// countAny sums occurrences across all keywords in the list.
func countAny(text string, keywords []string) int {
	total := 0
	for _, kw := range keywords {
		total += strings.Count(text, kw)
	}
	return total
}

// countDistinct counts how many keywords from the list appear at least once.
func countDistinct(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			n++
		}
	}
	return n
}

// matchedKeywords returns keywords that appear in the text, in list order.
func matchedKeywords(text string, keywords []string) []string {
	var matched []string
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			matched = append(matched, kw)
		}
	}
	return matched
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
