// SPDX-License-Identifier: Apache-2.0

package workers

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/horrygame/ficarchive/internal/logger"
)

// NewKeepAliveJob returns a job that periodically issues a GET request to
// url. Free hosting tiers put idle instances to sleep; the self ping
// keeps the process warm. An empty url yields a nil job, meaning the
// feature is off.
func NewKeepAliveJob(url string, interval time.Duration, log *logger.Logger) Job {
	if url == "" {
		return nil
	}
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	client := resty.New().SetTimeout(30 * time.Second)

	return newTickerJob(interval, func(ctx context.Context) {
		resp, err := client.R().SetContext(ctx).Get(url)
		if err != nil {
			log.Warn().Err(err).Str("url", url).Msg("keep-alive ping failed")
			return
		}

		log.Debug().Int("status", resp.StatusCode()).Msg("keep-alive ping")
	})
}
