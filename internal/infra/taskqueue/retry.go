package taskqueue

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"
)

func backoffFor(attempt int) time.Duration {
	return time.Duration(math.Pow(2, float64(attempt-1))) * 100 * time.Millisecond
}

// withRetry runs fn up to maxRetries times with exponential backoff.
// ErrTaskAlreadyExists is final and returned without retrying.
func withRetry(ctx context.Context, maxRetries int, op string, attrs []any, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			backoff := backoffFor(attempt)
			slog.DebugContext(ctx, "retrying "+op,
				append(attrs,
					slog.Int("attempt", attempt+1),
					slog.Duration("backoff", backoff),
				)...,
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		err := fn()
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrTaskAlreadyExists) {
			return err
		}
		lastErr = err
	}

	slog.ErrorContext(ctx, "all retries exhausted for "+op,
		append(attrs,
			slog.Int("max_retries", maxRetries),
			slog.String("error", lastErr.Error()),
		)...,
	)
	return lastErr
}
