package provider

import (
	"context"
	"sync"
	"time"
)

// RateLimiter smooths outbound upstream calls: a provider may burst up to
// burst requests, then sustain one request per interval. Idle time accrues
// allowance back, capped at the burst so a quiet hour never turns into a
// request flood. Free-tier APIs throttle hard, so every provider owns one.
type RateLimiter struct {
	mu        sync.Mutex
	allowance float64
	burst     float64
	interval  time.Duration
	last      time.Time
	now       func() time.Time
}

// NewRateLimiter permits burst immediate calls, refilling one slot per
// interval afterwards.
func NewRateLimiter(burst int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		allowance: float64(burst),
		burst:     float64(burst),
		interval:  interval,
		last:      time.Now(),
		now:       time.Now,
	}
}

// Wait blocks until the limiter grants a slot or ctx is cancelled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	for {
		wait := r.take()
		if wait <= 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// take spends one slot if available, otherwise reports how long until the
// next slot accrues.
func (r *RateLimiter) take() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.allowance += float64(now.Sub(r.last)) / float64(r.interval)
	if r.allowance > r.burst {
		r.allowance = r.burst
	}
	r.last = now

	if r.allowance >= 1 {
		r.allowance--
		return 0
	}
	return time.Duration((1 - r.allowance) * float64(r.interval))
}
