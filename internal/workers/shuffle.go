package workers

import (
	"context"
	"time"

	"github.com/horrygame/ficarchive/internal/logger"
	"github.com/horrygame/ficarchive/internal/service"
)

// NewShuffleJob returns a job that periodically recomputes the random
// order of the published catalogue, so the front page rotates without
// reshuffling on every request.
func NewShuffleJob(fics service.FicService, interval time.Duration, log *logger.Logger) Job {
	if interval <= 0 {
		interval = 30 * time.Minute
	}

	return newTickerJob(interval, func(ctx context.Context) {
		if err := fics.Reshuffle(ctx); err != nil {
			log.Error().Err(err).Msg("recommendation reshuffle failed")
		}
	})
}
