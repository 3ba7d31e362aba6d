package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/signalcraft/outreach/internal/outcome"
	"github.com/signalcraft/outreach/internal/profile"
	"github.com/signalcraft/outreach/internal/store"
	"github.com/signalcraft/outreach/internal/subject"
	"github.com/signalcraft/outreach/internal/textgen"
	"github.com/signalcraft/outreach/internal/triggers"
)

type fakeGen struct {
	err error
}

func (f fakeGen) Generate(_ context.Context, _ textgen.Request) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "Your next busy season", nil
}

type fakeHistory struct{}

func (fakeHistory) StyleHistory(_ context.Context, _ string) (subject.StyleHistory, error) {
	return subject.StyleHistory{}, nil
}
func (fakeHistory) RecordStyleUsage(_ context.Context, _ string) error { return nil }

type fakeRecords struct {
	mu   sync.Mutex
	recs []store.NewOutcomeRecord
	err  error
}

func (f *fakeRecords) CreateOutcomeRecord(_ context.Context, rec store.NewOutcomeRecord) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recs = append(f.recs, rec)
	return nil
}

type fakeInsights struct {
	report outcome.InsightReport
	err    error
}

func (f fakeInsights) Insights(_ context.Context, segment string) (outcome.InsightReport, error) {
	if f.err != nil {
		return outcome.InsightReport{}, f.err
	}
	f.report.Segment = segment
	return f.report, nil
}

type failingProvider struct{}

func (failingProvider) Content(_ context.Context, _ Target) (Content, error) {
	return Content{}, errors.New("fetch blocked")
}

func testRunner(t *testing.T, gen fakeGen, records *fakeRecords, ins InsightSource) *Runner {
	t.Helper()
	bank, err := triggers.DefaultBank()
	if err != nil {
		t.Fatalf("DefaultBank: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRunner(
		PayloadProvider{},
		PayloadAnalyzer{},
		triggers.NewSelector(bank, rand.New(rand.NewSource(7))),
		subject.NewOptimizer(gen, fakeHistory{}, logger),
		records,
		ins,
		logger,
	)
}

func photoTarget() Target {
	return Target{
		ID:      uuid.New(),
		Company: "Acme Photo",
		Text:    "I'm a freelance photographer. Wedding and portrait sessions. Book now.",
		Context: &profile.Context{Industry: "photography", BusinessStage: "startup"},
	}
}

func TestRunUnit_Succeeds(t *testing.T) {
	records := &fakeRecords{}
	r := testRunner(t, fakeGen{}, records, fakeInsights{})

	result := r.RunUnit(context.Background(), photoTarget())
	if result.Status != StatusSucceeded {
		t.Fatalf("status = %q (%s), want succeeded", result.Status, result.Diagnostic)
	}
	if result.MessageID == uuid.Nil {
		t.Error("message id not assigned")
	}
	if result.Segment != "photography" {
		t.Errorf("segment = %q, want photography", result.Segment)
	}
	if len(result.Triggers) == 0 {
		t.Error("no triggers selected")
	}
	if result.Subject.Text == "" {
		t.Error("no subject chosen")
	}

	if len(records.recs) != 1 {
		t.Fatalf("persisted %d records, want 1", len(records.recs))
	}
	rec := records.recs[0]
	if rec.MessageID != result.MessageID || rec.Segment != result.Segment {
		t.Errorf("record = %+v, does not match result", rec)
	}
	if len(rec.TriggerTypes) != len(result.Triggers) {
		t.Errorf("record trigger types = %v", rec.TriggerTypes)
	}
}

func TestRunUnit_ProviderFailureUsesDefaults(t *testing.T) {
	records := &fakeRecords{}
	r := testRunner(t, fakeGen{}, records, fakeInsights{})
	r.provider = failingProvider{}

	target := photoTarget()
	target.Context = nil

	result := r.RunUnit(context.Background(), target)
	if result.Status != StatusSucceeded {
		t.Fatalf("status = %q (%s), want succeeded on degraded input", result.Status, result.Diagnostic)
	}
	// Conservative defaults: default industry drives the segment.
	if result.Segment != "creative_services" {
		t.Errorf("segment = %q, want creative_services", result.Segment)
	}
	if result.Profile.Tier != "hobbyist" {
		t.Errorf("tier = %q, want hobbyist default", result.Profile.Tier)
	}
}

func TestRunUnit_OptimizerFailureFailsUnit(t *testing.T) {
	records := &fakeRecords{}
	r := testRunner(t, fakeGen{err: errors.New("api down")}, records, fakeInsights{})

	result := r.RunUnit(context.Background(), photoTarget())
	if result.Status != StatusFailed {
		t.Fatalf("status = %q, want failed", result.Status)
	}
	if !strings.Contains(result.Diagnostic, "subject optimization") {
		t.Errorf("diagnostic = %q", result.Diagnostic)
	}
	if len(records.recs) != 0 {
		t.Errorf("record persisted for failed unit: %+v", records.recs)
	}
}

func TestRunUnit_PersistFailureFailsUnit(t *testing.T) {
	records := &fakeRecords{err: errors.New("db gone")}
	r := testRunner(t, fakeGen{}, records, fakeInsights{})

	result := r.RunUnit(context.Background(), photoTarget())
	if result.Status != StatusFailed {
		t.Fatalf("status = %q, want failed", result.Status)
	}
	if !strings.Contains(result.Diagnostic, "persist outcome record") {
		t.Errorf("diagnostic = %q", result.Diagnostic)
	}
}

func TestRunUnit_InsightFailureIsBestEffort(t *testing.T) {
	records := &fakeRecords{}
	r := testRunner(t, fakeGen{}, records, fakeInsights{err: errors.New("stats offline")})

	result := r.RunUnit(context.Background(), photoTarget())
	if result.Status != StatusSucceeded {
		t.Fatalf("status = %q, want succeeded without insights", result.Status)
	}
}

func TestRunUnit_LearnedInsightsReachProfile(t *testing.T) {
	records := &fakeRecords{}
	ins := fakeInsights{report: outcome.InsightReport{
		Insights: []outcome.StyleInsight{
			{Style: "personalized", SuccessRate: 0.8, Samples: 10, Confidence: 1.0},
		},
	}}
	r := testRunner(t, fakeGen{}, records, ins)

	target := photoTarget()
	target.Context = &profile.Context{Industry: "real estate", BusinessStage: "mature"}
	target.Text = "Professional listings and open house tours by our realtor team."

	result := r.RunUnit(context.Background(), target)
	if result.Status != StatusSucceeded {
		t.Fatalf("status = %q (%s)", result.Status, result.Diagnostic)
	}
	if !result.Profile.Prefers(profile.Liking) {
		t.Errorf("preferred = %v, want liking from learned personalized style", result.Profile.Preferred)
	}
}
