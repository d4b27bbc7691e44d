package ratelimit

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/time/rate"
)

// DefaultInterval is the minimum spacing between outbound Slack API calls
const DefaultInterval = time.Second

// Limiter serializes outbound calls so that no two guarded calls start
// less than a fixed interval apart. Built on a token bucket with burst 1,
// so the spacing holds even under concurrent callers.
type Limiter struct {
	limiter *rate.Limiter
}

// New creates a Limiter with the given minimum interval between calls.
// A non-positive interval falls back to DefaultInterval.
func New(interval time.Duration) *Limiter {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Do waits for the limiter slot and then runs fn. The slot is consumed
// before fn runs and is not returned when fn fails, so a failing call
// still pushes back the next one. Waiting aborts when ctx is cancelled.
func (l *Limiter) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := l.limiter.Wait(ctx); err != nil {
		return goerr.Wrap(err, "rate limiter wait cancelled")
	}
	return fn(ctx)
}
