package pubsub

import (
	"context"
	"log/slog"

	"github.com/guesssays/med-platform/internal/domain/service"

	"cloud.google.com/go/pubsub/v2"
	pubsubpb "cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
	"github.com/pkg/errors"
)

// googlePublisher sends events to a Cloud Pub/Sub topic. Like the Kafka
// publisher it orders events of the same type.
type googlePublisher struct {
	client    *pubsub.Client
	publisher *pubsub.Publisher
	topic     string
	logger    *slog.Logger
}

// NewGooglePubSubPublisher connects to projectID and checks that topicID exists
// before the application starts serving.
func NewGooglePubSubPublisher(ctx context.Context, projectID, topicID string, logger *slog.Logger) (service.EventPublisher, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create pubsub client")
	}

	topicName := "projects/" + projectID + "/topics/" + topicID
	if _, err := client.TopicAdminClient.GetTopic(ctx, &pubsubpb.GetTopicRequest{Topic: topicName}); err != nil {
		_ = client.Close()

		return nil, errors.Wrapf(err, "topic %s is not reachable", topicName)
	}

	publisher := client.Publisher(topicID)
	publisher.EnableMessageOrdering = true

	return &googlePublisher{
		client:    client,
		publisher: publisher,
		topic:     topicName,
		logger:    logger,
	}, nil
}

// Publish blocks until the server acknowledges the message.
func (p *googlePublisher) Publish(ctx context.Context, event *service.Event) error {
	data, err := prepare(event)
	if err != nil {
		return err
	}

	result := p.publisher.Publish(ctx, &pubsub.Message{
		Data:        data,
		Attributes:  attributesOf(event),
		OrderingKey: event.Type,
	})

	serverID, err := result.Get(ctx)
	if err != nil {
		// A failed ordered publish pauses the key until resumed.
		p.publisher.ResumePublish(event.Type)

		return errors.Wrapf(err, "failed to publish %s to %s", event.Type, p.topic)
	}

	p.logger.Debug("Event published to Pub/Sub",
		slog.String("event_id", event.ID),
		slog.String("event_type", event.Type),
		slog.String("server_id", serverID),
	)

	return nil
}

func (p *googlePublisher) Close() error {
	p.publisher.Stop()

	return errors.WithStack(p.client.Close())
}
