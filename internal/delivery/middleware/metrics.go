package middleware

import (
	"strconv"
	"time"

	"github.com/guesssays/med-platform/config"
	"github.com/guesssays/med-platform/internal/infra/metrics"

	"github.com/labstack/echo/v4"
)

// unmatchedRoute labels requests that did not hit a registered route.
const unmatchedRoute = "unmatched"

// MetricsMiddleware records request counts and latency per route
type MetricsMiddleware struct {
	registry *metrics.Registry
	skipPath string
}

// NewMetricsMiddleware creates a new metrics middleware
func NewMetricsMiddleware(registry *metrics.Registry, cfg *config.Config) *MetricsMiddleware {
	return &MetricsMiddleware{
		registry: registry,
		skipPath: cfg.HTTP.BasePath + cfg.Metrics.Path,
	}
}

// Handle records the outcome of next
func (m *MetricsMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().URL.Path == m.skipPath {
			return next(c)
		}

		start := time.Now()
		err := next(c)

		// The error handler runs after the middleware chain, so derive the final status here.
		status := c.Response().Status
		if err != nil {
			status = statusOf(err)
		}

		route := c.Path()
		if route == "" {
			route = unmatchedRoute
		}
		method := c.Request().Method

		m.registry.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		m.registry.RequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())

		return err
	}
}
