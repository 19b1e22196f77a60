package ratelimiter

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter is a global token bucket shared by every worker of an adapter.
//
// Tokens refill at requestsPerSecond up to burst. Each request takes one
// token; Allow rejects when the bucket is empty, Wait blocks until a token
// is available.
//
// A nil *Limiter allows everything, so callers can keep a single code path
// whether or not limiting is configured.
type Limiter struct {
	limiter *rate.Limiter
}

// New creates a limiter. A zero requestsPerSecond means unlimited and
// returns nil. A zero burst defaults to requestsPerSecond so at least one
// request per second can pass.
func New(requestsPerSecond, burst uint) *Limiter {
	if requestsPerSecond == 0 {
		return nil
	}
	if burst == 0 {
		burst = requestsPerSecond
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), int(burst)),
	}
}

// Allow reports whether a request may proceed now, consuming a token if so.
func (l *Limiter) Allow() bool {
	if l == nil {
		return true
	}
	return l.limiter.Allow()
}

// Wait blocks until a token is available or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return ctx.Err()
	}
	return l.limiter.Wait(ctx)
}

// Limit returns the sustained rate in requests per second, or 0 when
// unlimited.
func (l *Limiter) Limit() float64 {
	if l == nil {
		return 0
	}
	return float64(l.limiter.Limit())
}

// Burst returns the bucket capacity, or 0 when unlimited.
func (l *Limiter) Burst() int {
	if l == nil {
		return 0
	}
	return l.limiter.Burst()
}
