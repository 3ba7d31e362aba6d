package outcome

import (
	"regexp"
	"strings"
)

var nonWord = regexp.MustCompile(`[^a-z0-9]+`)

// SegmentKey derives the coarse learning-segment id for a target, e.g.
// industry "Photography" with focus ["wedding"] becomes
// "wedding_photography". Without a focus, the industry alone is the key;
// empty input falls back to "general".
func SegmentKey(industry string, focus []string) string {
	ind := snake(industry)
	if ind == "" {
		ind = "general"
	}
	if len(focus) == 0 {
		return ind
	}
	f := snake(focus[0])
	if f == "" || f == ind {
		return ind
	}
	return f + "_" + ind
}

func snake(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonWord.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}
