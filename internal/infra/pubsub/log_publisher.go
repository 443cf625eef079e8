package pubsub

import (
	"context"
	"log/slog"

	"github.com/guesssays/med-platform/internal/domain/service"
)

// logPublisher writes events to the application log instead of a broker.
// Payloads are only logged in development, where they stand in for email delivery.
type logPublisher struct {
	logger         *slog.Logger
	includePayload bool
}

// NewLogPublisher creates a publisher that only logs.
func NewLogPublisher(logger *slog.Logger, includePayload bool) service.EventPublisher {
	return &logPublisher{logger: logger, includePayload: includePayload}
}

func (p *logPublisher) Publish(ctx context.Context, event *service.Event) error {
	if _, err := prepare(event); err != nil {
		return err
	}

	attrs := []slog.Attr{
		slog.String("event_id", event.ID),
		slog.String("event_type", event.Type),
	}
	if event.RequestID != "" {
		attrs = append(attrs, slog.String("request_id", event.RequestID))
	}
	if p.includePayload {
		attrs = append(attrs, slog.Any("payload", event.Payload))
	}

	p.logger.LogAttrs(ctx, slog.LevelInfo, "[LogPubSub] Event published", attrs...)

	return nil
}

func (p *logPublisher) Close() error {
	return nil
}
