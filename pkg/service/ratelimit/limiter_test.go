package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/kudos/pkg/service/ratelimit"
)

func TestLimiterSpacing(t *testing.T) {
	interval := 50 * time.Millisecond
	limiter := ratelimit.New(interval)
	ctx := context.Background()

	var starts []time.Time
	for i := 0; i < 3; i++ {
		err := limiter.Do(ctx, func(ctx context.Context) error {
			starts = append(starts, time.Now())
			return nil
		})
		gt.NoError(t, err)
	}

	gt.A(t, starts).Length(3)
	for i := 1; i < len(starts); i++ {
		elapsed := starts[i].Sub(starts[i-1])
		// Allow a small epsilon for timer granularity
		if elapsed < interval-5*time.Millisecond {
			t.Errorf("call %d started %v after previous, want at least %v", i, elapsed, interval)
		}
	}
}

func TestLimiterFailedCallStillConsumesSlot(t *testing.T) {
	interval := 50 * time.Millisecond
	limiter := ratelimit.New(interval)
	ctx := context.Background()

	first := time.Now()
	err := limiter.Do(ctx, func(ctx context.Context) error {
		return goerr.New("upstream failed")
	})
	gt.Error(t, err)

	var second time.Time
	gt.NoError(t, limiter.Do(ctx, func(ctx context.Context) error {
		second = time.Now()
		return nil
	}))

	if elapsed := second.Sub(first); elapsed < interval-5*time.Millisecond {
		t.Errorf("second call started %v after failed first, want at least %v", elapsed, interval)
	}
}

func TestLimiterCancelledContext(t *testing.T) {
	limiter := ratelimit.New(time.Hour)
	ctx := context.Background()

	// Consume the initial slot
	gt.NoError(t, limiter.Do(ctx, func(ctx context.Context) error { return nil }))

	cancelCtx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()

	called := false
	err := limiter.Do(cancelCtx, func(ctx context.Context) error {
		called = true
		return nil
	})
	gt.Error(t, err)
	gt.False(t, called)
}

func TestLimiterDefaultInterval(t *testing.T) {
	limiter := ratelimit.New(0)
	gt.NotNil(t, limiter)

	gt.NoError(t, limiter.Do(context.Background(), func(ctx context.Context) error {
		return nil
	}))
}
