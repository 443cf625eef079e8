package pubsub

import (
	"context"
	"log/slog"
	"time"

	"github.com/guesssays/med-platform/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafka.Writer used by the publisher.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// kafkaPublisher implements EventPublisher on a Kafka topic. Events are keyed by
// type so that one kind of event keeps its order within a partition.
type kafkaPublisher struct {
	writer messageWriter
	logger *slog.Logger
}

// NewKafkaPublisher creates a publisher writing to topic on the given brokers.
func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) service.EventPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		WriteTimeout:           5 * time.Second,
	}

	return newKafkaPublisher(writer, logger)
}

func newKafkaPublisher(writer messageWriter, logger *slog.Logger) *kafkaPublisher {
	return &kafkaPublisher{writer: writer, logger: logger}
}

func (p *kafkaPublisher) Publish(ctx context.Context, event *service.Event) error {
	data, err := prepare(event)
	if err != nil {
		return err
	}

	attributes := attributesOf(event)
	headers := make([]kafka.Header, 0, len(attributes))
	for k, v := range attributes {
		headers = append(headers, kafka.Header{Key: k, Value: []byte(v)})
	}

	msg := kafka.Message{
		Key:     []byte(event.Type),
		Value:   data,
		Headers: headers,
		Time:    event.OccurredAt,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return errors.Wrap(err, "kafka: write failed")
	}

	p.logger.Info("[KafkaPubSub] Event published successfully",
		slog.String("event_id", event.ID),
		slog.String("event_type", event.Type),
	)

	return nil
}

func (p *kafkaPublisher) Close() error {
	return errors.WithStack(p.writer.Close())
}
