// Package ratelimit provides fixed-window request limiting.
package ratelimit

import (
	"context"
	"log/slog"
	"time"

	"github.com/guesssays/med-platform/config"
	"github.com/guesssays/med-platform/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// fixedWindowScript increments the window counter and starts its expiry on the first hit.
// It returns the new count and the remaining window in milliseconds.
var fixedWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
if ttl < 0 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
  ttl = tonumber(ARGV[1])
end
return {count, ttl}
`)

// Params holds dependencies for the limiter, injected by Fx.
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
	Client *redis.Client `optional:"true"`
}

// New returns the Redis limiter, or a no-op limiter when limiting is disabled
// or Redis is not configured.
func New(params Params) service.RateLimiter {
	cfg := params.Config.RateLimit
	if cfg == nil || !cfg.Enabled {
		params.Logger.Info("Rate limiting disabled")

		return NoopLimiter{}
	}
	if params.Client == nil {
		params.Logger.Warn("Rate limiting enabled but redis is not configured; limiter disabled")

		return NoopLimiter{}
	}

	return NewRedisLimiter(params.Client, cfg.Limit, cfg.Window, cfg.KeyPrefix)
}

// RedisLimiter counts hits per key in Redis.
type RedisLimiter struct {
	client redis.UniversalClient
	limit  int
	window time.Duration
	prefix string
}

// NewRedisLimiter allows limit hits per key in every window.
func NewRedisLimiter(client redis.UniversalClient, limit int, window time.Duration, prefix string) *RedisLimiter {
	return &RedisLimiter{client: client, limit: limit, window: window, prefix: prefix}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (service.RateDecision, error) {
	res, err := fixedWindowScript.Run(ctx, l.client, []string{l.prefix + key}, l.window.Milliseconds()).Int64Slice()
	if err != nil {
		return service.RateDecision{}, errors.Wrap(err, "rate limit script failed")
	}
	if len(res) != 2 {
		return service.RateDecision{}, errors.Errorf("rate limit script returned %d values", len(res))
	}

	count, ttl := int(res[0]), time.Duration(res[1])*time.Millisecond
	decision := service.RateDecision{
		Allowed:   count <= l.limit,
		Remaining: max(l.limit-count, 0),
	}
	if !decision.Allowed {
		decision.RetryAfter = ttl
	}

	return decision, nil
}

// NoopLimiter admits everything.
type NoopLimiter struct{}

func (NoopLimiter) Allow(context.Context, string) (service.RateDecision, error) {
	return service.RateDecision{Allowed: true}, nil
}
