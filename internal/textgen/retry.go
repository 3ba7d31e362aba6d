package textgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Retrying wraps a Generator with a per-attempt timeout and bounded
// exponential backoff. Transient failures (timeouts, rate limits, 5xx) are
// retried with the base delay doubling each attempt; permanent failures
// return immediately. Exhausting attempts fails only the calling unit.
type Retrying struct {
	next     Generator
	attempts int
	base     time.Duration
	timeout  time.Duration
	logger   *slog.Logger
}

func NewRetrying(next Generator, attempts int, base, timeout time.Duration, logger *slog.Logger) *Retrying {
	if attempts < 1 {
		attempts = 3
	}
	if base <= 0 {
		base = 500 * time.Millisecond
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Retrying{next: next, attempts: attempts, base: base, timeout: timeout, logger: logger}
}

func (r *Retrying) Generate(ctx context.Context, req Request) (string, error) {
	delay := r.base
	var lastErr error
	for attempt := 1; attempt <= r.attempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, r.timeout)
		text, err := r.next.Generate(attemptCtx, req)
		cancel()
		if err == nil {
			return text, nil
		}
		lastErr = err

		if !retryable(err) {
			return "", fmt.Errorf("generation failed: %w", err)
		}
		if attempt == r.attempts {
			break
		}
		r.logger.Warn("generation attempt failed, retrying",
			"attempt", attempt,
			"delay", delay.String(),
			"error", err,
		)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
		delay *= 2
	}
	return "", fmt.Errorf("generation failed after %d attempts: %w", r.attempts, lastErr)
}

// retryable classifies an error as transient. API errors carry their status;
// context deadline overruns on a single attempt are transient, cancellation
// of the parent context is not.
func retryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Transient()
	}
	// Attempt-level timeouts and network failures are transient; cancellation
	// of the parent context is not.
	return !errors.Is(err, context.Canceled)
}
