package llm

import (
	"context"
	"sync"
	"time"
)

// pollInterval is how long a throttled caller sleeps before rechecking
// the bucket. Answer and art requests for one navigation arrive as a
// pair, so contention is brief.
const pollInterval = 100 * time.Millisecond

// RateLimitedProvider throttles an inner Provider to a fixed number of
// requests per minute using a token bucket. Throttled calls block until
// a token frees up or their context is cancelled.
type RateLimitedProvider struct {
	inner Provider
	rpm   int

	mu       sync.Mutex
	tokens   int
	refilled time.Time
}

// NewRateLimitedProvider wraps inner so that at most rpm requests per
// minute reach it. The bucket starts full.
func NewRateLimitedProvider(inner Provider, rpm int) Provider {
	return &RateLimitedProvider{
		inner:    inner,
		rpm:      rpm,
		tokens:   rpm,
		refilled: time.Now(),
	}
}

func (r *RateLimitedProvider) Name() string {
	return r.inner.Name()
}

func (r *RateLimitedProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if err := r.acquire(ctx); err != nil {
		return nil, err
	}
	return r.inner.Complete(ctx, req)
}

// acquire blocks until a token is available.
func (r *RateLimitedProvider) acquire(ctx context.Context) error {
	for {
		r.mu.Lock()
		r.refillLocked(time.Now())
		if r.tokens > 0 {
			r.tokens--
			r.mu.Unlock()
			return nil
		}
		r.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

// refillLocked credits tokens earned since the last refill, capped at
// the bucket size. Caller holds r.mu.
func (r *RateLimitedProvider) refillLocked(now time.Time) {
	earned := int(now.Sub(r.refilled).Seconds() * float64(r.rpm) / 60.0)
	if earned <= 0 {
		return
	}
	r.tokens += earned
	if r.tokens > r.rpm {
		r.tokens = r.rpm
	}
	r.refilled = now
}
