package outcome

import (
	"context"
	"fmt"
	"sort"
)

// Insight query parameters.
const (
	insightMaxStyles  = 3
	insightMinSamples = 3
)

// genericRecommendations is the fixed fallback returned when a segment has
// too little data: downstream consumers always get something actionable.
var genericRecommendations = []string{
	"Keep subject lines under 40 characters so they render fully on mobile.",
	"Lead with a concrete benefit or a question; avoid spam-trigger words.",
	"Personalize with the company name where it reads naturally.",
}

// Insights returns up to three styles with at least three samples for the
// segment, ranked by success rate, each with confidence min(samples/10, 1).
// Segments with no qualifying styles get the generic recommendations instead.
func (t *Tracker) Insights(ctx context.Context, segment string) (InsightReport, error) {
	stats, err := t.store.StyleStats(ctx, segment)
	if err != nil {
		return InsightReport{}, fmt.Errorf("style stats for %s: %w", segment, err)
	}

	var qualified []StyleStat
	for _, s := range stats {
		if s.Samples >= insightMinSamples {
			qualified = append(qualified, s)
		}
	}
	sort.SliceStable(qualified, func(i, j int) bool {
		return qualified[i].SuccessRate > qualified[j].SuccessRate
	})
	if len(qualified) > insightMaxStyles {
		qualified = qualified[:insightMaxStyles]
	}

	report := InsightReport{Segment: segment}
	if len(qualified) == 0 {
		report.Recommendations = genericRecommendations
		return report, nil
	}
	for _, s := range qualified {
		report.Insights = append(report.Insights, StyleInsight{
			Style:       s.Style,
			SuccessRate: s.SuccessRate,
			Samples:     s.Samples,
			Confidence:  InsightConfidence(s.Samples),
		})
	}
	return report, nil
}
