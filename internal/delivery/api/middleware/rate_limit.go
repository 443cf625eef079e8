package middleware

import (
	"log/slog"
	"math"
	"strconv"

	deliverycontext "github.com/guesssays/med-platform/internal/delivery/context"
	domainerrors "github.com/guesssays/med-platform/internal/domain/errors"
	"github.com/guesssays/med-platform/internal/domain/service"
	"github.com/guesssays/med-platform/internal/infra/metrics"

	"github.com/labstack/echo/v4"
)

const headerRetryAfter = "Retry-After"

// RateLimitMiddleware throttles public routes per route and client IP.
type RateLimitMiddleware struct {
	limiter  service.RateLimiter
	registry *metrics.Registry
	logger   *slog.Logger
}

// NewRateLimitMiddleware creates a new rate limit middleware. registry may be nil.
func NewRateLimitMiddleware(limiter service.RateLimiter, registry *metrics.Registry, logger *slog.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter:  limiter,
		registry: registry,
		logger:   logger,
	}
}

// Limit counts hits under scope. A failing limiter lets the request through.
func (m *RateLimitMiddleware) Limit(scope string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := scope + ":" + c.RealIP()

			decision, err := m.limiter.Allow(ctx, key)
			if err != nil {
				deliverycontext.GetLoggerOrDefault(ctx, m.logger).Warn("Rate limiter unavailable, allowing request",
					slog.String("scope", scope),
					slog.Any("error", err),
				)

				return next(c)
			}

			if !decision.Allowed {
				seconds := int(math.Ceil(decision.RetryAfter.Seconds()))
				if seconds < 1 {
					seconds = 1
				}
				c.Response().Header().Set(headerRetryAfter, strconv.Itoa(seconds))
				if m.registry != nil {
					m.registry.RateLimited.WithLabelValues(c.Path()).Inc()
				}

				return domainerrors.ErrTooManyRequests
			}

			return next(c)
		}
	}
}
