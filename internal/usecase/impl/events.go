package impl

import (
	"context"
	"log/slog"
	"net/http"

	deliverycontext "github.com/guesssays/med-platform/internal/delivery/context"
	domainerrors "github.com/guesssays/med-platform/internal/domain/errors"
	"github.com/guesssays/med-platform/internal/domain/service"
	"github.com/guesssays/med-platform/internal/errors"
)

// publishEvent is shared by the services that emit domain events. The event is
// tagged with the request id so consumers can correlate it with the access log.
func publishEvent(ctx context.Context, publisher service.EventPublisher, logger *slog.Logger, eventType string, payload map[string]any) {
	if publisher == nil {
		return
	}

	event := &service.Event{
		Type:      eventType,
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		Payload:   payload,
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish event", slog.String("eventType", eventType), slog.Any("error", err))
	}
}

// isClientError reports whether err already carries a 4xx error kind.
func isClientError(err error) bool {
	appErr, ok := errors.AsType[domainerrors.AppError](err)

	return ok && appErr.HTTPCode() < http.StatusInternalServerError
}
