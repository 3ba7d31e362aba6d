package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/signalcraft/outreach/internal/outcome"
)

// NewOutcomeRecord is the row created when a unit finishes and its message is
// handed to delivery. Segment attributes are denormalized at this point so
// later aggregation never needs a join back to mutable state.
type NewOutcomeRecord struct {
	MessageID        uuid.UUID
	Segment          string
	Industry         string
	Style            string
	BusinessStage    string
	TriggerTypes     []string
	SubjectVariantID string
	ABTestID         *uuid.UUID
	ABGroup          string
}

// CreateOutcomeRecord inserts the append-style lifecycle record at queue time.
func (s *Store) CreateOutcomeRecord(ctx context.Context, rec NewOutcomeRecord) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO outcome_records
			(message_id, segment, industry, style, business_stage, trigger_types,
			 subject_variant_id, ab_test_id, ab_group, queued_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())`,
		rec.MessageID, rec.Segment, rec.Industry, rec.Style, rec.BusinessStage,
		rec.TriggerTypes, rec.SubjectVariantID, rec.ABTestID, rec.ABGroup,
	)
	if err != nil {
		return fmt.Errorf("insert outcome record: %w", err)
	}
	return nil
}

var eventColumns = map[outcome.EventType]string{
	outcome.EventSent:    "sent_at",
	outcome.EventOpened:  "opened_at",
	outcome.EventClicked: "clicked_at",
	outcome.EventReplied: "replied_at",
}

// MarkEvent applies the monotonic flag transition in a single conditional
// update. The WHERE clause only matches when the flag is still unset, so a
// duplicate delivery affects zero rows and is reported as applied=false.
func (s *Store) MarkEvent(ctx context.Context, messageID uuid.UUID, event outcome.EventType, ts time.Time) (bool, outcome.Record, error) {
	col, ok := eventColumns[event]
	if !ok {
		return false, outcome.Record{}, fmt.Errorf("unknown event type %q", event)
	}

	var rec outcome.Record
	rec.MessageID = messageID
	query := fmt.Sprintf(`
		UPDATE outcome_records
		SET %s = $2
		WHERE message_id = $1 AND %s IS NULL
		RETURNING segment, industry, style, business_stage, trigger_types, ab_test_id, ab_group`,
		col, col,
	)
	err := s.pool.QueryRow(ctx, query, messageID, ts).Scan(
		&rec.Segment, &rec.Industry, &rec.Style, &rec.BusinessStage,
		&rec.TriggerTypes, &rec.ABTestID, &rec.ABGroup,
	)
	if err == nil {
		return true, rec, nil
	}
	if !notFound(err) {
		return false, outcome.Record{}, fmt.Errorf("mark event: %w", err)
	}

	// Zero rows: either a duplicate delivery or an unknown message.
	var exists bool
	if err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM outcome_records WHERE message_id = $1)`,
		messageID,
	).Scan(&exists); err != nil {
		return false, outcome.Record{}, fmt.Errorf("check outcome record: %w", err)
	}
	if !exists {
		return false, outcome.Record{}, fmt.Errorf("message %s: %w", messageID, outcome.ErrUnknownMessage)
	}
	return false, outcome.Record{}, nil
}
