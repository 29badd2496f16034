package workers

import (
	"context"
	"time"

	"github.com/horrygame/ficarchive/internal/logger"
	"github.com/horrygame/ficarchive/internal/store"
)

// NewSweepJob returns a job that periodically evicts expired one-time
// codes and password-reset tokens from the in-memory registries. Without
// it, abandoned login and reset attempts would accumulate until restart.
func NewSweepJob(codes *store.CodeRegistry, resets *store.ResetRegistry, interval time.Duration, log *logger.Logger) Job {
	if interval <= 0 {
		interval = time.Minute
	}

	return newTickerJob(interval, func(ctx context.Context) {
		now := time.Now()
		removedCodes := codes.Sweep(now)
		removedTokens := resets.Sweep(now)

		if removedCodes > 0 || removedTokens > 0 {
			log.Debug().
				Int("codes", removedCodes).
				Int("reset_tokens", removedTokens).
				Msg("expired entries swept")
		}
	})
}
