package middleware

import (
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/guesssays/med-platform/config"
	deliverycontext "github.com/guesssays/med-platform/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

const redacted = "[REDACTED]"

// LoggerMiddleware writes one access log line per request. Failed requests
// are always logged, successful ones only in debug mode.
type LoggerMiddleware struct {
	logger *slog.Logger
	debug  bool
}

func NewLoggerMiddleware(logger *slog.Logger, config *config.Config) *LoggerMiddleware {
	return &LoggerMiddleware{
		logger: logger,
		debug:  config.Env.Debug,
	}
}

func (m *LoggerMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		status := c.Response().Status
		if err != nil {
			status = statusOf(err)
		}
		if m.debug || status >= 400 {
			m.logRequest(c, start, status, err)
		}

		return err
	}
}

func (m *LoggerMiddleware) logRequest(c echo.Context, start time.Time, status int, err error) {
	req := c.Request()

	fields := []slog.Attr{
		slog.String("method", req.Method),
		slog.String("uri", req.URL.Path),
		slog.String("route", c.Path()),
		slog.Int("status", status),
		slog.Duration("latency", time.Since(start)),
		slog.String("user_agent", req.UserAgent()),
	}
	if req.URL.RawQuery != "" {
		fields = append(fields, slog.String("query", redactQuery(req.URL.Query())))
	}
	if user, ok := deliverycontext.GetUser(c); ok {
		fields = append(fields, slog.Uint64("user_id", uint64(user.ID)))
	}
	if err != nil {
		fields = append(fields, slog.Any("error", err))
	}

	level := slog.LevelInfo
	switch {
	case status >= 500:
		level = slog.LevelError
	case status >= 400:
		level = slog.LevelWarn
	}

	ctx := req.Context()
	deliverycontext.GetLoggerOrDefault(ctx, m.logger).LogAttrs(ctx, level, "HTTP Request", fields...)
}

// redactQuery hides values of parameters that may carry credentials.
func redactQuery(values url.Values) string {
	for key := range values {
		lower := strings.ToLower(key)
		if strings.Contains(lower, "token") || strings.Contains(lower, "password") {
			values.Set(key, redacted)
		}
	}

	return values.Encode()
}
