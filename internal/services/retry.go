package services

import (
	"context"
	"fmt"
	"time"
)

// RetryPolicy retries an operation with exponential backoff. The zero value
// makes a single attempt.
type RetryPolicy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration

	// Retryable reports whether a failed attempt may be repeated. Nil retries
	// every error.
	Retryable func(error) bool

	// Sleep waits between attempts. Nil uses a timer that honours ctx.
	Sleep func(ctx context.Context, d time.Duration) error
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:    3,
		InitialBackoff: time.Second,
		MaxBackoff:     8 * time.Second,
	}
}

// Backoff returns the wait after the given failed attempt (1-based).
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	d := p.InitialBackoff
	for i := 1; i < attempt; i++ {
		d *= 2
		if p.MaxBackoff > 0 && d >= p.MaxBackoff {
			return p.MaxBackoff
		}
	}
	if p.MaxBackoff > 0 && d > p.MaxBackoff {
		return p.MaxBackoff
	}
	return d
}

// Do runs op until it succeeds, returns a non-retryable error, or the attempts
// run out. The last error is wrapped in the returned error.
func (p RetryPolicy) Do(ctx context.Context, op func(ctx context.Context, attempt int) error) error {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := op(ctx, attempt)
		if err == nil {
			return nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return fmt.Errorf("context cancelled after attempt %d: %w", attempt, err)
		}
		if p.Retryable != nil && !p.Retryable(err) {
			return err
		}
		if attempt == maxAttempts {
			break
		}

		wait := p.Backoff(attempt)
		log.WithError(err).
			WithField("attempt", attempt).
			WithField("backoff", wait.String()).
			Warn("⚠️ Attempt failed, retrying")

		if err := p.sleep(ctx, wait); err != nil {
			return fmt.Errorf("context cancelled while waiting to retry: %w", lastErr)
		}
	}

	return fmt.Errorf("failed after %d attempts: %w", maxAttempts, lastErr)
}

func (p RetryPolicy) sleep(ctx context.Context, d time.Duration) error {
	if p.Sleep != nil {
		return p.Sleep(ctx, d)
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
