package store

import (
	"context"
	"fmt"
)

// schema is applied on startup. Statements are idempotent; the learning
// aggregates must survive process restarts, so nothing here is ephemeral.
const schema = `
CREATE TABLE IF NOT EXISTS outcome_records (
	message_id         uuid PRIMARY KEY,
	segment            text NOT NULL,
	industry           text NOT NULL DEFAULT '',
	style              text NOT NULL DEFAULT '',
	business_stage     text NOT NULL DEFAULT '',
	trigger_types      text[] NOT NULL DEFAULT '{}',
	subject_variant_id text NOT NULL DEFAULT '',
	ab_test_id         uuid,
	ab_group           text NOT NULL DEFAULT '',
	queued_at          timestamptz NOT NULL DEFAULT now(),
	sent_at            timestamptz,
	opened_at          timestamptz,
	clicked_at         timestamptz,
	replied_at         timestamptz
);

CREATE TABLE IF NOT EXISTS segment_models (
	segment          text PRIMARY KEY,
	total_responses  integer NOT NULL DEFAULT 0,
	average_quality  double precision NOT NULL DEFAULT 0,
	updated_at       timestamptz NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS style_performance (
	segment      text NOT NULL,
	style        text NOT NULL,
	samples      integer NOT NULL DEFAULT 0,
	successes    integer NOT NULL DEFAULT 0,
	success_rate double precision NOT NULL DEFAULT 0,
	updated_at   timestamptz NOT NULL DEFAULT now(),
	PRIMARY KEY (segment, style)
);

CREATE TABLE IF NOT EXISTS style_history (
	style        text PRIMARY KEY,
	sends        integer NOT NULL DEFAULT 0,
	opens        integer NOT NULL DEFAULT 0,
	responses    integer NOT NULL DEFAULT 0,
	usage_count  integer NOT NULL DEFAULT 0,
	last_used_at timestamptz
);

CREATE TABLE IF NOT EXISTS quality_samples (
	id          bigserial PRIMARY KEY,
	segment     text NOT NULL,
	style       text NOT NULL DEFAULT '',
	quality     double precision NOT NULL,
	recorded_at timestamptz NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS quality_samples_segment_idx ON quality_samples (segment);

CREATE TABLE IF NOT EXISTS ab_tests (
	id          uuid PRIMARY KEY,
	name        text NOT NULL,
	variant_a   text NOT NULL,
	variant_b   text NOT NULL,
	a_samples   integer NOT NULL DEFAULT 0,
	a_responses integer NOT NULL DEFAULT 0,
	b_samples   integer NOT NULL DEFAULT 0,
	b_responses integer NOT NULL DEFAULT 0,
	significant boolean NOT NULL DEFAULT false,
	confidence  double precision NOT NULL DEFAULT 0,
	winner      text NOT NULL DEFAULT '',
	created_at  timestamptz NOT NULL DEFAULT now(),
	updated_at  timestamptz NOT NULL DEFAULT now()
);
`

func (s *Store) ensureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
