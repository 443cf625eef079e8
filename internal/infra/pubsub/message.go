package pubsub

import (
	"encoding/json"
	"time"

	"github.com/guesssays/med-platform/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// prepare fills the envelope fields a caller may leave empty and encodes the event.
func prepare(event *service.Event) ([]byte, error) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return data, nil
}

// attributesOf builds transport attributes used for filtering and tracing.
func attributesOf(event *service.Event) map[string]string {
	attributes := make(map[string]string, len(event.Attributes)+3)
	for k, v := range event.Attributes {
		attributes[k] = v
	}
	attributes["event_id"] = event.ID
	attributes["event_type"] = event.Type
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	return attributes
}
