package pubsub

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/guesssays/med-platform/config"
	"github.com/guesssays/med-platform/internal/domain/constants"
	"github.com/guesssays/med-platform/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newEvent() *service.Event {
	return &service.Event{
		Type:      service.EventPasswordResetRequested,
		RequestID: "req-1",
		Payload:   map[string]any{"email": "a@x.com", "reset_token": "secret-token"},
	}
}

func TestNewPublisher_ProviderSelection(t *testing.T) {
	ctx := context.Background()
	logger := discardLogger()

	tests := []struct {
		name    string
		pubsub  *config.PubSubConfig
		wantErr bool
		want    any
	}{
		{name: "unset falls back to log", pubsub: nil, want: &logPublisher{}},
		{name: "log", pubsub: &config.PubSubConfig{Provider: constants.PubSubProviderLog}, want: &logPublisher{}},
		{name: "local", pubsub: &config.PubSubConfig{Provider: constants.PubSubProviderLocal, LocalEndpoint: "http://localhost:9"}, want: &localHTTPPublisher{}},
		{name: "local without endpoint", pubsub: &config.PubSubConfig{Provider: constants.PubSubProviderLocal}, wantErr: true},
		{name: "google without project", pubsub: &config.PubSubConfig{Provider: constants.PubSubProviderGoogle, TopicID: "t"}, wantErr: true},
		{name: "google without topic", pubsub: &config.PubSubConfig{Provider: constants.PubSubProviderGoogle, ProjectID: "p"}, wantErr: true},
		{name: "kafka", pubsub: &config.PubSubConfig{Provider: constants.PubSubProviderKafka, Brokers: []string{"localhost:9092"}, TopicID: "events"}, want: &kafkaPublisher{}},
		{name: "kafka without brokers", pubsub: &config.PubSubConfig{Provider: constants.PubSubProviderKafka, TopicID: "events"}, wantErr: true},
		{name: "unknown", pubsub: &config.PubSubConfig{Provider: "carrier-pigeon"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			publisher, err := newPublisher(ctx, &config.Config{PubSub: tt.pubsub}, logger)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, publisher)
			assert.NoError(t, publisher.Close())
		})
	}
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	require.NoError(t, NewLogPublisher(logger, false).Publish(context.Background(), newEvent()))
	assert.Contains(t, buf.String(), service.EventPasswordResetRequested)
	assert.NotContains(t, buf.String(), "secret-token")

	buf.Reset()
	event := newEvent()
	require.NoError(t, NewLogPublisher(logger, true).Publish(context.Background(), event))
	assert.Contains(t, buf.String(), "secret-token")
	assert.NotEmpty(t, event.ID)
	assert.False(t, event.OccurredAt.IsZero())
}

func TestLocalHTTPPublisher(t *testing.T) {
	var received PubSubPushMessage
	var requestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		_ = json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	event := newEvent()
	require.NoError(t, NewLocalHTTPPublisher(server.URL, discardLogger()).Publish(context.Background(), event))

	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, event.ID, received.Message.MessageID)
	assert.Equal(t, service.EventPasswordResetRequested, received.Message.Attributes["event_type"])

	data, err := base64.StdEncoding.DecodeString(received.Message.Data)
	require.NoError(t, err)
	var decoded service.Event
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, event.Type, decoded.Type)
	assert.Equal(t, "a@x.com", decoded.Payload["email"])
}

func TestLocalHTTPPublisher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	err := NewLocalHTTPPublisher(server.URL, discardLogger()).Publish(context.Background(), newEvent())
	assert.Error(t, err)
}

type recordingWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)

	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true

	return nil
}

func TestKafkaPublisher(t *testing.T) {
	writer := &recordingWriter{}
	publisher := newKafkaPublisher(writer, discardLogger())

	event := newEvent()
	require.NoError(t, publisher.Publish(context.Background(), event))
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, []byte(service.EventPasswordResetRequested), msg.Key)

	headers := map[string]string{}
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, event.ID, headers["event_id"])
	assert.Equal(t, "req-1", headers["request_id"])

	require.NoError(t, publisher.Close())
	assert.True(t, writer.closed)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	writer := &recordingWriter{err: errors.New("broker down")}

	err := newKafkaPublisher(writer, discardLogger()).Publish(context.Background(), newEvent())
	assert.ErrorContains(t, err, "broker down")
}
