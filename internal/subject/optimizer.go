package subject

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/signalcraft/outreach/internal/textgen"
)

// ErrNoCandidates is returned when every generation call failed.
var ErrNoCandidates = errors.New("no subject candidates generated")

// StyleHistory is the historical performance of one style.
type StyleHistory struct {
	OpenRate     float64
	ResponseRate float64
	UsageCount   int
}

// History provides per-style historical performance and records usage of the
// chosen style. Implemented by the persistent store.
type History interface {
	StyleHistory(ctx context.Context, style string) (StyleHistory, error)
	RecordStyleUsage(ctx context.Context, style string) error
}

// scoring weights, per the composite formula
const (
	responseRateWeight   = 100
	openRateWeight       = 50
	highBucketBonus      = 30
	mediumBucketBonus    = 20
	lowBucketBonus       = 10
	mobileBonus          = 10
	lowSpamBonus         = 15
	personalizationBonus = 10
	perTriggerBonus      = 5
	freshnessBonus       = 5
	freshnessUsageCap    = 5
)

// Optimizer produces one candidate per style, scores each on structural and
// historical criteria, and returns the best.
type Optimizer struct {
	gen     textgen.Generator
	history History
	logger  *slog.Logger
}

func NewOptimizer(gen textgen.Generator, history History, logger *slog.Logger) *Optimizer {
	return &Optimizer{gen: gen, history: history, logger: logger}
}

// Optimize generates exactly one candidate per style, picks the highest
// scoring variant (ties broken by style enumeration order), and records its
// usage before returning. A style whose generation call fails is skipped;
// the optimizer errors only when all five styles fail.
func (o *Optimizer) Optimize(ctx context.Context, req Request) (Variant, []Variant, error) {
	var candidates []Variant
	for _, style := range StyleOrder {
		text, err := o.gen.Generate(ctx, textgen.Request{
			System:    systemPrompt,
			Prompt:    instructionFor(style, req),
			MaxTokens: 64,
		})
		if err != nil {
			o.logger.Warn("subject generation failed for style",
				"style", string(style),
				"company", req.Company,
				"error", err,
			)
			continue
		}
		text = sanitize(text)
		if text == "" {
			continue
		}
		v := Variant{
			ID:       uuid.New().String(),
			Text:     text,
			Style:    style,
			Analysis: Analyze(text),
		}
		v.PredictedScore = o.score(ctx, v)
		candidates = append(candidates, v)
	}

	if len(candidates) == 0 {
		return Variant{}, nil, ErrNoCandidates
	}

	// Strictly-greater comparison keeps the earlier style on ties.
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.PredictedScore > best.PredictedScore {
			best = c
		}
	}

	if err := o.history.RecordStyleUsage(ctx, string(best.Style)); err != nil {
		return Variant{}, nil, fmt.Errorf("record style usage: %w", err)
	}
	return best, candidates, nil
}

func (o *Optimizer) score(ctx context.Context, v Variant) float64 {
	score := 0.0

	hist, err := o.history.StyleHistory(ctx, string(v.Style))
	if err != nil {
		// No history contributes zero, per the scoring rule.
		o.logger.Debug("no style history", "style", string(v.Style), "error", err)
		hist = StyleHistory{}
	}
	score += hist.ResponseRate * responseRateWeight
	score += hist.OpenRate * openRateWeight

	switch v.Analysis.Performance {
	case "high":
		score += highBucketBonus
	case "medium":
		score += mediumBucketBonus
	default:
		score += lowBucketBonus
	}
	if v.Analysis.MobileOptimized {
		score += mobileBonus
	}
	if v.Analysis.SpamScore < 0.3 {
		score += lowSpamBonus
	}
	if v.Analysis.HasPersonalization {
		score += personalizationBonus
	}
	score += float64(len(v.Analysis.Triggers)) * perTriggerBonus
	if hist.UsageCount < freshnessUsageCap {
		score += freshnessBonus
	}
	return score
}

// sanitize reduces a generation response to a single clean subject line.
func sanitize(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	return strings.Trim(text, `"' `)
}
