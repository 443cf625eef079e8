package middleware

import (
	"log/slog"

	deliverycontext "github.com/guesssays/med-platform/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// RequestIDMiddleware tags every request with an id and a logger bound to it.
type RequestIDMiddleware struct {
	logger *slog.Logger
}

func NewRequestIDMiddleware(logger *slog.Logger) *RequestIDMiddleware {
	return &RequestIDMiddleware{
		logger: logger,
	}
}

// Process reuses a well-formed client X-Request-Id and mints one otherwise.
// The id reaches handlers through echo.Context and usecases through context.Context.
func (m *RequestIDMiddleware) Process(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		requestID := deliverycontext.ResolveRequestID(req.Header.Get(deliverycontext.HeaderXRequestID))

		deliverycontext.SetRequestID(c, requestID)
		c.Response().Header().Set(deliverycontext.HeaderXRequestID, requestID)

		scoped := m.logger.With(
			slog.String("request_id", requestID),
			slog.String("client_ip", c.RealIP()),
		)

		ctx := deliverycontext.WithRequestID(req.Context(), requestID)
		ctx = deliverycontext.WithLogger(ctx, scoped)
		c.SetRequest(req.WithContext(ctx))

		return next(c)
	}
}
