// Package workers contains background maintenance loops that run alongside
// the HTTP server.
package workers

import (
	"context"
	"time"

	"github.com/apratama/letter-seal/internal/logger"
	"github.com/apratama/letter-seal/internal/ratelimit"
)

// DefaultJanitorInterval is applied when the configured interval is zero.
const DefaultJanitorInterval = 5 * time.Minute

// Janitor periodically purges lapsed rate-limit entries so abandoned blocks
// do not accumulate in the entry store.
type Janitor struct {
	limiter  *ratelimit.Limiter
	interval time.Duration
	logger   *logger.Logger
}

// NewJanitor constructs a Janitor purging limiter every interval.
func NewJanitor(limiter *ratelimit.Limiter, interval time.Duration, logger *logger.Logger) *Janitor {
	if interval <= 0 {
		interval = DefaultJanitorInterval
	}
	return &Janitor{
		limiter:  limiter,
		interval: interval,
		logger:   logger,
	}
}

// Run blocks, purging on every tick until ctx is cancelled. Intended to be
// launched as a goroutine next to the server.
func (j *Janitor) Run(ctx context.Context) {
	j.logger.Info().Dur("interval", j.interval).Msg("rate limit janitor started")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.logger.Info().Msg("rate limit janitor stopped")
			return
		case <-ticker.C:
			purged, err := j.limiter.PurgeExpired(ctx)
			if err != nil {
				j.logger.Err(err).Msg("purging expired rate limit entries failed")
				continue
			}
			if purged > 0 {
				j.logger.Debug().Int("purged", purged).Msg("expired rate limit entries purged")
			}
		}
	}
}
