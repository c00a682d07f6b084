package geocode

import (
	"context"
	"time"
)

// Limiter paces successive lookup calls.
type Limiter interface {
	// Wait blocks for the pacing delay or until ctx is done.
	Wait(ctx context.Context) error
}

// IntervalLimiter pauses a fixed interval every time it is waited on.
// The client waits after each round trip, so the first call of a run
// is never delayed.
type IntervalLimiter struct {
	Interval time.Duration
}

// Wait sleeps for the configured interval, cut short when ctx ends.
func (l IntervalLimiter) Wait(ctx context.Context) error {
	if l.Interval <= 0 {
		return nil
	}

	t := time.NewTimer(l.Interval)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// NopLimiter never pauses.
type NopLimiter struct{}

// Wait returns immediately.
func (NopLimiter) Wait(context.Context) error { return nil }
