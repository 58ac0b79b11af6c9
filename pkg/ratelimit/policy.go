// Package ratelimit schedules the pause between listing requests.
// The pause lives here rather than in the fetcher so the policy can be
// replaced without touching request code.
package ratelimit

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// DefaultDelay is the pause after each page.
const DefaultDelay = 1 * time.Second

// Prometheus metrics for throttling.
var (
	throttleWaitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hackathon_export_throttle_waits_total",
		Help: "Total number of throttle pauses taken after a page",
	})

	throttleWaitSeconds = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hackathon_export_throttle_wait_seconds_total",
		Help: "Total time spent in throttle pauses",
	})
)

// Policy decides how long to pause after a page has been processed.
type Policy interface {
	// Wait blocks after page has been exported. It returns early with
	// the context error if ctx is cancelled.
	Wait(ctx context.Context, page int) error
}

// FixedDelay pauses for the same duration after every page.
type FixedDelay struct {
	delay  time.Duration
	logger zerolog.Logger
}

// NewFixedDelay creates a fixed-delay policy. A non-positive delay
// disables pausing.
func NewFixedDelay(delay time.Duration, logger zerolog.Logger) *FixedDelay {
	return &FixedDelay{
		delay:  delay,
		logger: logger,
	}
}

// Delay returns the configured pause.
func (f *FixedDelay) Delay() time.Duration {
	return f.delay
}

// Wait implements Policy.
func (f *FixedDelay) Wait(ctx context.Context, page int) error {
	throttleWaitsTotal.Inc()

	if f.delay <= 0 {
		return ctx.Err()
	}

	f.logger.Debug().
		Int("page", page).
		Dur("delay", f.delay).
		Msg("Throttling before next page")

	start := time.Now()
	timer := time.NewTimer(f.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		throttleWaitSeconds.Add(time.Since(start).Seconds())
		f.logger.Warn().
			Int("page", page).
			Msg("Context cancelled during throttle pause")
		return ctx.Err()
	case <-timer.C:
		throttleWaitSeconds.Add(time.Since(start).Seconds())
		return nil
	}
}
