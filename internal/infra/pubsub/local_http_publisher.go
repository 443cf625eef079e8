package pubsub

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/guesssays/med-platform/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	localSubscription   = "projects/local/subscriptions/med-platform-events"
	localPublishTimeout = 10 * time.Second
)

// PubSubPushMessage is the body Cloud Pub/Sub POSTs to push subscribers.
type PubSubPushMessage struct {
	Message      PushedMessage `json:"message"`
	Subscription string        `json:"subscription"`
}

type PushedMessage struct {
	Data        string            `json:"data"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	MessageID   string            `json:"messageId"`
	PublishTime string            `json:"publishTime"`
}

// localHTTPPublisher delivers events as push messages to a development endpoint.
type localHTTPPublisher struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewLocalHTTPPublisher(endpoint string, logger *slog.Logger) service.EventPublisher {
	return &localHTTPPublisher{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: localPublishTimeout},
		logger:     logger,
	}
}

func pushMessageOf(event *service.Event, data []byte) PubSubPushMessage {
	return PubSubPushMessage{
		Subscription: localSubscription,
		Message: PushedMessage{
			Data:        base64.StdEncoding.EncodeToString(data),
			Attributes:  attributesOf(event),
			MessageID:   event.ID,
			PublishTime: event.OccurredAt.UTC().Format(time.RFC3339),
		},
	}
}

func (p *localHTTPPublisher) Publish(ctx context.Context, event *service.Event) error {
	data, err := prepare(event)
	if err != nil {
		return err
	}

	body, err := json.Marshal(pushMessageOf(event, data))
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if event.RequestID != "" {
		req.Header.Set(echo.HeaderXRequestID, event.RequestID)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "failed to push %s to %s", event.Type, p.endpoint)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errors.Errorf("push endpoint returned non-success status: %d", resp.StatusCode)
	}

	p.logger.Debug("Event pushed to local endpoint",
		slog.String("endpoint", p.endpoint),
		slog.String("event_id", event.ID),
		slog.String("event_type", event.Type),
	)

	return nil
}

func (p *localHTTPPublisher) Close() error {
	p.httpClient.CloseIdleConnections()

	return nil
}
