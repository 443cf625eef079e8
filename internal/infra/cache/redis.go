// Package cache wires the shared Redis client.
package cache

import (
	"context"
	"log/slog"

	"github.com/guesssays/med-platform/config"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// Params holds dependencies for the Redis client, injected by Fx.
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// New returns a Redis client, or nil when no address is configured.
// Consumers treat a nil client as "feature disabled".
func New(params Params) *redis.Client {
	cfg := params.Config.Redis
	if cfg == nil || cfg.Addr == "" {
		params.Logger.Info("Redis not configured")

		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	params.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				return errors.Wrap(err, "failed to connect to redis")
			}
			params.Logger.Info("Redis connection established", slog.String("addr", cfg.Addr))

			return nil
		},
		OnStop: func(context.Context) error {
			params.Logger.Info("Closing Redis connection")

			return errors.WithStack(client.Close())
		},
	})

	return client
}
