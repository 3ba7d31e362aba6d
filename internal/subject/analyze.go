package subject

import (
	"strings"
	"unicode"
)

// mobileFitLimit is the character count under which a subject line renders
// fully on most mobile clients.
const mobileFitLimit = 40

const spamKeywordWeight = 0.2

var spamKeywords = []string{
	"free", "guaranteed", "act now", "limited time", "urgent", "winner",
	"cash", "100%", "click here", "no obligation", "risk-free", "buy now",
	"$$$", "cheap",
}

var benefitVerbs = []string{
	"boost", "grow", "save", "increase", "improve", "double", "win",
	"unlock", "gain",
}

var comparisonWords = []string{
	"other", "others", "most", "top", "everyone", "like you", "leading",
}

// Analyze runs the structural checks on one candidate subject line.
func Analyze(text string) Analysis {
	words := strings.Fields(text)
	lower := strings.ToLower(text)

	var hits []string
	for _, kw := range spamKeywords {
		if strings.Contains(lower, kw) {
			hits = append(hits, kw)
		}
	}

	a := Analysis{
		CharCount:          len(text),
		WordCount:          len(words),
		SpamScore:          float64(len(hits)) * spamKeywordWeight,
		SpamHits:           hits,
		MobileOptimized:    len(text) <= mobileFitLimit,
		HasPersonalization: hasPersonalization(words),
		Triggers:           detectTriggers(text, lower),
	}
	a.Performance = performanceBucket(a)
	return a
}

// hasPersonalization reports whether a capitalized token sits immediately
// next to "your" in either direction.
func hasPersonalization(words []string) bool {
	for i, w := range words {
		if !strings.EqualFold(strings.Trim(w, ",.!?:;"), "your") {
			continue
		}
		if i > 0 && startsUpper(words[i-1]) {
			return true
		}
		if i < len(words)-1 && startsUpper(words[i+1]) {
			return true
		}
	}
	return false
}

func startsUpper(w string) bool {
	for _, r := range w {
		return unicode.IsUpper(r)
	}
	return false
}

// detectTriggers finds psychological trigger patterns: a question mark marks
// curiosity, benefit verbs mark benefit, comparison words mark social proof.
func detectTriggers(text, lower string) []string {
	var found []string
	if strings.Contains(text, "?") {
		found = append(found, "curiosity")
	}
	for _, v := range benefitVerbs {
		if strings.Contains(lower, v) {
			found = append(found, "benefit")
			break
		}
	}
	for _, w := range comparisonWords {
		if strings.Contains(lower, w) {
			found = append(found, "social-proof")
			break
		}
	}
	return found
}

// performanceBucket derives low/medium/high from a point total over the
// structural criteria: >=4 points high, >=2 medium, else low.
func performanceBucket(a Analysis) string {
	points := 0
	if a.MobileOptimized {
		points++
	}
	if a.SpamScore < 0.3 {
		points++
	}
	if a.HasPersonalization {
		points++
	}
	if len(a.Triggers) > 0 {
		points++
	}
	if a.WordCount >= 4 && a.WordCount <= 8 {
		points++
	}
	switch {
	case points >= 4:
		return "high"
	case points >= 2:
		return "medium"
	default:
		return "low"
	}
}
