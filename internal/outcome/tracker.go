package outcome

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// ErrUnknownMessage is returned when an event references a message id with
// no outcome record.
var ErrUnknownMessage = errors.New("unknown message id")

// ErrInvalidEvent is returned for malformed ingestion payloads. It is a
// permanent input error: callers must not retry.
var ErrInvalidEvent = errors.New("invalid outcome event")

// Store is the persistence surface the tracker needs. Aggregate merges must
// be atomic per segment row; the pgx implementation uses single-statement
// conditional updates and ON CONFLICT arithmetic.
type Store interface {
	// MarkEvent applies the monotonic flag transition for the event. It
	// returns applied=false when the flag was already set (duplicate
	// delivery) and the denormalized record when the transition applied.
	MarkEvent(ctx context.Context, messageID uuid.UUID, event EventType, ts time.Time) (applied bool, rec Record, err error)

	MergeSegmentQuality(ctx context.Context, segment string, quality float64) error
	MergeStyleOutcome(ctx context.Context, segment, style string, success bool) error
	MergeStyleEvent(ctx context.Context, style string, event EventType) error
	InsertQualitySample(ctx context.Context, segment, style string, quality float64) error

	AccumulateABEvent(ctx context.Context, testID uuid.UUID, group string, event EventType) error
	ABGroups(ctx context.Context, testID uuid.UUID) (a, b Group, err error)
	UpdateABEvaluation(ctx context.Context, testID uuid.UUID, eval Evaluation) error

	StyleStats(ctx context.Context, segment string) ([]StyleStat, error)
	QualitySamples(ctx context.Context, segment string) ([]float64, error)
}

// Tracker ingests message lifecycle events and maintains the learning
// aggregates. It holds no state of its own: everything lives in the store,
// so concurrent workers and process restarts are safe.
type Tracker struct {
	store  Store
	logger *slog.Logger
}

func NewTracker(store Store, logger *slog.Logger) *Tracker {
	return &Tracker{store: store, logger: logger}
}

// Ingest is the single entry point for lifecycle events from every source
// (webhook, NATS, poller). Duplicate and out-of-order deliveries are safe:
// a second event for an already-set flag is a no-op and never touches the
// learning aggregates again.
func (t *Tracker) Ingest(ctx context.Context, ev Event) error {
	if ev.MessageID == uuid.Nil || !ev.Type.Valid() {
		return fmt.Errorf("%w: message=%s type=%q", ErrInvalidEvent, ev.MessageID, ev.Type)
	}
	if ev.Quality != nil && (*ev.Quality < 0 || *ev.Quality > 1) {
		return fmt.Errorf("%w: quality %f out of [0,1]", ErrInvalidEvent, *ev.Quality)
	}
	ts := ev.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	applied, rec, err := t.store.MarkEvent(ctx, ev.MessageID, ev.Type, ts)
	if err != nil {
		return fmt.Errorf("mark %s event: %w", ev.Type, err)
	}
	if !applied {
		t.logger.Debug("duplicate event ignored",
			"message_id", ev.MessageID,
			"event", string(ev.Type),
		)
		return nil
	}

	// Per-style lifecycle counters feed the subject optimizer's historical
	// open/response rates.
	if rec.Style != "" {
		if err := t.store.MergeStyleEvent(ctx, rec.Style, ev.Type); err != nil {
			return fmt.Errorf("merge style event: %w", err)
		}
	}

	// Quality-bearing first transitions update the segment learning model.
	if ev.Quality != nil && rec.Segment != "" {
		q := *ev.Quality
		if err := t.store.MergeSegmentQuality(ctx, rec.Segment, q); err != nil {
			return fmt.Errorf("merge segment quality: %w", err)
		}
		if rec.Style != "" {
			if err := t.store.MergeStyleOutcome(ctx, rec.Segment, rec.Style, q > SuccessThreshold); err != nil {
				return fmt.Errorf("merge style outcome: %w", err)
			}
			if err := t.store.InsertQualitySample(ctx, rec.Segment, rec.Style, q); err != nil {
				return fmt.Errorf("insert quality sample: %w", err)
			}
		}
	}

	// A/B counters accumulate on sent and replied transitions.
	if rec.ABTestID != nil && rec.ABGroup != "" {
		if ev.Type == EventSent || ev.Type == EventReplied {
			if err := t.store.AccumulateABEvent(ctx, *rec.ABTestID, rec.ABGroup, ev.Type); err != nil {
				return fmt.Errorf("accumulate ab event: %w", err)
			}
			if err := t.reevaluateAB(ctx, *rec.ABTestID); err != nil {
				return fmt.Errorf("reevaluate ab test: %w", err)
			}
		}
	}

	t.logger.Info("outcome event applied",
		"message_id", ev.MessageID,
		"event", string(ev.Type),
		"segment", rec.Segment,
		"style", rec.Style,
		"quality", ev.Quality,
	)
	return nil
}

// reevaluateAB recomputes significance from the current counters. The
// counters themselves are updated atomically; re-running the evaluation is
// idempotent, so a lost race here self-corrects on the next event.
func (t *Tracker) reevaluateAB(ctx context.Context, testID uuid.UUID) error {
	a, b, err := t.store.ABGroups(ctx, testID)
	if err != nil {
		return err
	}
	return t.store.UpdateABEvaluation(ctx, testID, EvaluateAB(a, b))
}
