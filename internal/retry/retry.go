// Package retry runs an operation with exponential backoff and jitter.
// The reconciliation path never retries on its own; only the opt-in
// guarded-write mode loops here, re-attempting an append that lost a race
// with another writer.
package retry

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	Attempts      int           // total tries, including the first
	BaseDelay     time.Duration // delay before the second try
	MaxDelay      time.Duration // backoff ceiling
	PerTryTimeout time.Duration // deadline applied to each try; 0 means none
}

// Do runs op until it succeeds, the attempt budget is spent, or ctx is
// done. The last error is wrapped with the attempt count.
func Do[T any](ctx context.Context, cfg Config, op func(context.Context) (T, error)) (T, error) {
	var zero T
	if cfg.Attempts < 1 {
		cfg.Attempts = 1
	}

	var lastErr error
	for try := 1; try <= cfg.Attempts; try++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		tryCtx := ctx
		cancel := func() {}
		if cfg.PerTryTimeout > 0 {
			tryCtx, cancel = context.WithTimeout(ctx, cfg.PerTryTimeout)
		}
		result, err := op(tryCtx)
		cancel()

		if err == nil {
			return result, nil
		}
		lastErr = err
		log.Debug().Err(err).Int("try", try).Msg("Attempt failed")

		if try == cfg.Attempts {
			break
		}
		delay := backoff(try-1, cfg.BaseDelay, cfg.MaxDelay)
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
	}
	return zero, fmt.Errorf("gave up after %d attempts: %w", cfg.Attempts, lastErr)
}

// backoff doubles the base delay per spent try, capped at maxDelay, with
// 0.5x-1.5x jitter. The shift is capped to keep the multiplier in int
// range.
func backoff(spent int, base, maxDelay time.Duration) time.Duration {
	shift := min(spent, 30)
	delay := time.Duration(1<<shift) * base
	if delay > maxDelay {
		delay = maxDelay
	}
	delay = time.Duration(float64(delay) * (0.5 + rand.Float64()))
	if delay > maxDelay {
		delay = maxDelay
	}
	return delay
}
