package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/signalcraft/outreach/internal/outcome"
	"github.com/signalcraft/outreach/internal/profile"
	"github.com/signalcraft/outreach/internal/signals"
	"github.com/signalcraft/outreach/internal/store"
	"github.com/signalcraft/outreach/internal/subject"
	"github.com/signalcraft/outreach/internal/triggers"
)

// RecordStore persists the outcome record created at the end of a unit.
type RecordStore interface {
	CreateOutcomeRecord(ctx context.Context, rec store.NewOutcomeRecord) error
}

// InsightSource feeds learned segment preferences back into profile
// construction. Implemented by outcome.Tracker.
type InsightSource interface {
	Insights(ctx context.Context, segment string) (outcome.InsightReport, error)
}

// Runner executes the four pipeline stages for one target: signal
// extraction, profile construction, trigger selection, subject optimization.
// Within a unit the stages run strictly sequentially; the only suspension
// points are the generation calls inside the subject optimizer.
type Runner struct {
	provider  ContentProvider
	analyzer  ContextAnalyzer
	selector  *triggers.Selector
	optimizer *subject.Optimizer
	records   RecordStore
	insights  InsightSource
	logger    *slog.Logger
}

func NewRunner(
	provider ContentProvider,
	analyzer ContextAnalyzer,
	selector *triggers.Selector,
	optimizer *subject.Optimizer,
	records RecordStore,
	insights InsightSource,
	logger *slog.Logger,
) *Runner {
	return &Runner{
		provider:  provider,
		analyzer:  analyzer,
		selector:  selector,
		optimizer: optimizer,
		records:   records,
		insights:  insights,
		logger:    logger,
	}
}

// RunUnit processes one target through all four stages. Missing content and
// missing context are permanent input conditions handled with documented
// defaults; only generation exhaustion or persistence failure fails the unit.
func (r *Runner) RunUnit(ctx context.Context, t Target) UnitResult {
	result := UnitResult{TargetID: t.ID, Company: t.Company, Status: StatusQueued}

	// Stage 1: signal extraction.
	var content Content
	if r.provider != nil {
		c, err := r.provider.Content(ctx, t)
		if err != nil {
			r.logger.Warn("content fetch failed, using conservative defaults",
				"target", t.Company, "error", err)
		} else {
			content = c
		}
	}
	sig := signals.Extract(content.Text, signals.HintsFromHTML(content.Markup))

	// Stage 2: profile construction.
	var pctx profile.Context
	if r.analyzer != nil {
		c, err := r.analyzer.Analyze(ctx, t)
		if err != nil {
			r.logger.Warn("context analysis failed, using defaults",
				"target", t.Company, "error", err)
		} else {
			pctx = c
		}
	}
	pctx = pctx.WithDefaults()

	segment := outcome.SegmentKey(pctx.Industry, sig.IndustryFocus)
	learned := r.learnedPreferences(ctx, segment)
	prof := profile.Build(sig, pctx, learned)

	// Stage 3: trigger selection.
	trigs := r.selector.Select(prof, triggers.DefaultTopK)

	// Stage 4: subject optimization (the only network-bound stage).
	best, _, err := r.optimizer.Optimize(ctx, subject.Request{
		Company:      t.Company,
		Industry:     prof.Industry,
		TopPainPoint: prof.TopPainPoint(),
	})
	if err != nil {
		result.Status = StatusFailed
		result.Diagnostic = fmt.Sprintf("subject optimization: %v", err)
		return result
	}

	messageID := uuid.New()
	rec := store.NewOutcomeRecord{
		MessageID:        messageID,
		Segment:          segment,
		Industry:         prof.Industry,
		Style:            string(best.Style),
		BusinessStage:    prof.BusinessStage,
		TriggerTypes:     triggerTypeNames(trigs),
		SubjectVariantID: best.ID,
		ABTestID:         t.ABTestID,
		ABGroup:          t.ABGroup,
	}
	if err := r.records.CreateOutcomeRecord(ctx, rec); err != nil {
		result.Status = StatusFailed
		result.Diagnostic = fmt.Sprintf("persist outcome record: %v", err)
		return result
	}

	result.Status = StatusSucceeded
	result.MessageID = messageID
	result.Segment = segment
	result.Profile = prof
	result.Triggers = trigs
	result.Subject = best

	r.logger.Info("unit succeeded",
		"target", t.Company,
		"segment", segment,
		"triggers", len(trigs),
		"subject_style", string(best.Style),
		"message_id", messageID,
	)
	return result
}

// learnedPreferences converts segment insights into profile feedback.
// Insight failures are best effort: the profile builds without them.
func (r *Runner) learnedPreferences(ctx context.Context, segment string) []profile.LearnedPreference {
	if r.insights == nil {
		return nil
	}
	report, err := r.insights.Insights(ctx, segment)
	if err != nil {
		r.logger.Warn("insight lookup failed", "segment", segment, "error", err)
		return nil
	}
	var prefs []profile.LearnedPreference
	for _, in := range report.Insights {
		prefs = append(prefs, profile.LearnedPreference{
			Style:      in.Style,
			Confidence: in.Confidence,
		})
	}
	return prefs
}

func triggerTypeNames(trigs []triggers.Trigger) []string {
	names := make([]string, len(trigs))
	for i, tr := range trigs {
		names[i] = string(tr.Type)
	}
	return names
}
