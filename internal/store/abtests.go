package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/signalcraft/outreach/internal/outcome"
)

// ABTest is the persisted A/B test aggregate. It is created explicitly,
// mutated by the outcome tracker as events accumulate, and never deleted.
type ABTest struct {
	ID         uuid.UUID          `json:"id"`
	Name       string             `json:"name"`
	GroupA     outcome.Group      `json:"group_a"`
	GroupB     outcome.Group      `json:"group_b"`
	Evaluation outcome.Evaluation `json:"evaluation"`
}

// CreateABTest registers a new test with two named variant groups.
func (s *Store) CreateABTest(ctx context.Context, name, variantA, variantB string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO ab_tests (id, name, variant_a, variant_b, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())`,
		id, name, variantA, variantB,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert ab test: %w", err)
	}
	return id, nil
}

// GetABTest fetches a test with its current counters and evaluation.
func (s *Store) GetABTest(ctx context.Context, id uuid.UUID) (ABTest, error) {
	t := ABTest{ID: id, Evaluation: outcome.Evaluation{Method: outcome.ABMethod}}
	err := s.pool.QueryRow(ctx, `
		SELECT name, variant_a, variant_b, a_samples, a_responses, b_samples, b_responses,
		       significant, confidence, winner
		FROM ab_tests WHERE id = $1`,
		id,
	).Scan(
		&t.Name, &t.GroupA.Name, &t.GroupB.Name,
		&t.GroupA.Samples, &t.GroupA.Responses,
		&t.GroupB.Samples, &t.GroupB.Responses,
		&t.Evaluation.Significant, &t.Evaluation.Confidence, &t.Evaluation.Winner,
	)
	if err != nil {
		if notFound(err) {
			return ABTest{}, fmt.Errorf("ab test %s: %w", id, ErrNotFound)
		}
		return ABTest{}, fmt.Errorf("query ab test: %w", err)
	}
	return t, nil
}

// AccumulateABEvent bumps the group's counters in one statement: sent events
// add a sample, replied events add a response.
func (s *Store) AccumulateABEvent(ctx context.Context, testID uuid.UUID, group string, event outcome.EventType) error {
	var query string
	switch event {
	case outcome.EventSent:
		query = `
			UPDATE ab_tests SET
				a_samples = a_samples + CASE WHEN variant_a = $2 THEN 1 ELSE 0 END,
				b_samples = b_samples + CASE WHEN variant_b = $2 THEN 1 ELSE 0 END,
				updated_at = now()
			WHERE id = $1`
	case outcome.EventReplied:
		query = `
			UPDATE ab_tests SET
				a_responses = a_responses + CASE WHEN variant_a = $2 THEN 1 ELSE 0 END,
				b_responses = b_responses + CASE WHEN variant_b = $2 THEN 1 ELSE 0 END,
				updated_at = now()
			WHERE id = $1`
	default:
		return nil
	}
	if _, err := s.pool.Exec(ctx, query, testID, group); err != nil {
		return fmt.Errorf("accumulate ab event: %w", err)
	}
	return nil
}

// ABGroups returns the two variant groups with current counters.
func (s *Store) ABGroups(ctx context.Context, testID uuid.UUID) (outcome.Group, outcome.Group, error) {
	t, err := s.GetABTest(ctx, testID)
	if err != nil {
		return outcome.Group{}, outcome.Group{}, err
	}
	return t.GroupA, t.GroupB, nil
}

// UpdateABEvaluation persists a recomputed significance verdict.
func (s *Store) UpdateABEvaluation(ctx context.Context, testID uuid.UUID, eval outcome.Evaluation) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE ab_tests SET significant = $2, confidence = $3, winner = $4, updated_at = now()
		WHERE id = $1`,
		testID, eval.Significant, eval.Confidence, eval.Winner,
	)
	if err != nil {
		return fmt.Errorf("update ab evaluation: %w", err)
	}
	return nil
}
