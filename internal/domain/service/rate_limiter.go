package service

import (
	"context"
	"time"
)

// RateDecision is the outcome of one limiter check.
type RateDecision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// RateLimiter counts hits per key inside a fixed window.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (RateDecision, error)
}
