package store

import (
	"context"
	"fmt"

	"github.com/signalcraft/outreach/internal/outcome"
	"github.com/signalcraft/outreach/internal/subject"
)

// MergeSegmentQuality folds one quality observation into the segment's
// running mean. The whole read-modify-write happens inside one statement, so
// concurrent workers reporting for the same segment cannot lose updates.
func (s *Store) MergeSegmentQuality(ctx context.Context, segment string, quality float64) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO segment_models (segment, total_responses, average_quality, updated_at)
		VALUES ($1, 1, $2, now())
		ON CONFLICT (segment) DO UPDATE SET
			average_quality = (segment_models.average_quality * segment_models.total_responses + EXCLUDED.average_quality)
				/ (segment_models.total_responses + 1),
			total_responses = segment_models.total_responses + 1,
			updated_at = now()`,
		segment, quality,
	)
	if err != nil {
		return fmt.Errorf("merge segment quality: %w", err)
	}
	return nil
}

// MergeStyleOutcome folds one success/failure observation into the
// per-segment per-style running success rate, atomically.
func (s *Store) MergeStyleOutcome(ctx context.Context, segment, style string, success bool) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO style_performance (segment, style, samples, successes, success_rate, updated_at)
		VALUES ($1, $2, 1, CASE WHEN $3 THEN 1 ELSE 0 END, CASE WHEN $3 THEN 1.0 ELSE 0.0 END, now())
		ON CONFLICT (segment, style) DO UPDATE SET
			success_rate = (style_performance.success_rate * style_performance.samples
				+ CASE WHEN $3 THEN 1.0 ELSE 0.0 END) / (style_performance.samples + 1),
			samples = style_performance.samples + 1,
			successes = style_performance.successes + CASE WHEN $3 THEN 1 ELSE 0 END,
			updated_at = now()`,
		segment, style, success,
	)
	if err != nil {
		return fmt.Errorf("merge style outcome: %w", err)
	}
	return nil
}

// MergeStyleEvent bumps the global per-style lifecycle counters that back
// the subject optimizer's historical open/response rates.
func (s *Store) MergeStyleEvent(ctx context.Context, style string, event outcome.EventType) error {
	var col string
	switch event {
	case outcome.EventSent:
		col = "sends"
	case outcome.EventOpened:
		col = "opens"
	case outcome.EventReplied:
		col = "responses"
	default:
		return nil // clicks are tracked on the record only
	}
	query := fmt.Sprintf(`
		INSERT INTO style_history (style, %s) VALUES ($1, 1)
		ON CONFLICT (style) DO UPDATE SET %s = style_history.%s + 1`,
		col, col, col,
	)
	if _, err := s.pool.Exec(ctx, query, style); err != nil {
		return fmt.Errorf("merge style event: %w", err)
	}
	return nil
}

// InsertQualitySample appends the raw quality observation for descriptive
// reporting.
func (s *Store) InsertQualitySample(ctx context.Context, segment, style string, quality float64) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO quality_samples (segment, style, quality, recorded_at)
		VALUES ($1, $2, $3, now())`,
		segment, style, quality,
	)
	if err != nil {
		return fmt.Errorf("insert quality sample: %w", err)
	}
	return nil
}

// StyleStats returns the per-style learning rows for a segment.
func (s *Store) StyleStats(ctx context.Context, segment string) ([]outcome.StyleStat, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT style, success_rate, samples
		FROM style_performance
		WHERE segment = $1`,
		segment,
	)
	if err != nil {
		return nil, fmt.Errorf("query style stats: %w", err)
	}
	defer rows.Close()

	var stats []outcome.StyleStat
	for rows.Next() {
		var st outcome.StyleStat
		if err := rows.Scan(&st.Style, &st.SuccessRate, &st.Samples); err != nil {
			return nil, fmt.Errorf("scan style stat: %w", err)
		}
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate style stats: %w", err)
	}
	return stats, nil
}

// QualitySamples returns the raw quality observations for a segment.
func (s *Store) QualitySamples(ctx context.Context, segment string) ([]float64, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT quality FROM quality_samples WHERE segment = $1 ORDER BY id`,
		segment,
	)
	if err != nil {
		return nil, fmt.Errorf("query quality samples: %w", err)
	}
	defer rows.Close()

	var samples []float64
	for rows.Next() {
		var q float64
		if err := rows.Scan(&q); err != nil {
			return nil, fmt.Errorf("scan quality sample: %w", err)
		}
		samples = append(samples, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quality samples: %w", err)
	}
	return samples, nil
}

// StyleHistory returns the global historical rates for one subject style.
// Unknown styles return zeroes: no history contributes nothing to scoring.
func (s *Store) StyleHistory(ctx context.Context, style string) (subject.StyleHistory, error) {
	var sends, opens, responses, usage int
	err := s.pool.QueryRow(ctx, `
		SELECT sends, opens, responses, usage_count FROM style_history WHERE style = $1`,
		style,
	).Scan(&sends, &opens, &responses, &usage)
	if err != nil {
		if notFound(err) {
			return subject.StyleHistory{}, nil
		}
		return subject.StyleHistory{}, fmt.Errorf("query style history: %w", err)
	}

	h := subject.StyleHistory{UsageCount: usage}
	if sends > 0 {
		h.OpenRate = float64(opens) / float64(sends)
		h.ResponseRate = float64(responses) / float64(sends)
	}
	return h, nil
}

// RecordStyleUsage bumps the usage counter for the chosen style.
func (s *Store) RecordStyleUsage(ctx context.Context, style string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO style_history (style, usage_count, last_used_at)
		VALUES ($1, 1, now())
		ON CONFLICT (style) DO UPDATE SET
			usage_count = style_history.usage_count + 1,
			last_used_at = now()`,
		style,
	)
	if err != nil {
		return fmt.Errorf("record style usage: %w", err)
	}
	return nil
}

// SegmentModel is the persisted per-segment learning aggregate.
type SegmentModel struct {
	Segment        string
	TotalResponses int
	AverageQuality float64
}

// GetSegmentModel fetches the learning aggregate for a segment.
func (s *Store) GetSegmentModel(ctx context.Context, segment string) (SegmentModel, error) {
	m := SegmentModel{Segment: segment}
	err := s.pool.QueryRow(ctx, `
		SELECT total_responses, average_quality FROM segment_models WHERE segment = $1`,
		segment,
	).Scan(&m.TotalResponses, &m.AverageQuality)
	if err != nil {
		if notFound(err) {
			return SegmentModel{}, fmt.Errorf("segment %s: %w", segment, ErrNotFound)
		}
		return SegmentModel{}, fmt.Errorf("query segment model: %w", err)
	}
	return m, nil
}
