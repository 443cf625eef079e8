// Package pubsub delivers domain events to the configured message transport.
package pubsub

import (
	"context"
	"log/slog"

	"github.com/guesssays/med-platform/config"
	"github.com/guesssays/med-platform/internal/domain/constants"
	"github.com/guesssays/med-platform/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// PublisherParams holds dependencies for EventPublisher, injected by Fx
type PublisherParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewEventPublisher creates an EventPublisher based on configuration
func NewEventPublisher(params PublisherParams) (service.EventPublisher, error) {
	publisher, err := newPublisher(params.Ctx, params.Config, params.Logger)
	if err != nil {
		return nil, err
	}

	// Register lifecycle hook to close publisher on shutdown
	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			params.Logger.Info("Closing EventPublisher")

			return publisher.Close()
		},
	})

	return publisher, nil
}

func newPublisher(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.EventPublisher, error) {
	pubsubCfg := cfg.PubSub

	// If PubSub is not configured, events only reach the log
	if pubsubCfg == nil || pubsubCfg.Provider == "" || pubsubCfg.Provider == constants.PubSubProviderLog {
		logger.Info("Using log publisher for events")

		return NewLogPublisher(logger, cfg.Env.Env == constants.EnvDevelop), nil
	}

	switch pubsubCfg.Provider {
	case constants.PubSubProviderLocal:
		if pubsubCfg.LocalEndpoint == "" {
			return nil, errors.New("local endpoint is required for local provider")
		}
		logger.Info("Using local HTTP publisher for Pub/Sub",
			slog.String("endpoint", pubsubCfg.LocalEndpoint),
		)

		return NewLocalHTTPPublisher(pubsubCfg.LocalEndpoint, logger), nil

	case constants.PubSubProviderGoogle:
		if pubsubCfg.ProjectID == "" {
			return nil, errors.New("project ID is required for google provider")
		}
		if pubsubCfg.TopicID == "" {
			return nil, errors.New("topic ID is required for google provider")
		}
		logger.Info("Using Google Pub/Sub publisher",
			slog.String("project_id", pubsubCfg.ProjectID),
			slog.String("topic_id", pubsubCfg.TopicID),
		)

		return NewGooglePubSubPublisher(ctx, pubsubCfg.ProjectID, pubsubCfg.TopicID, logger)

	case constants.PubSubProviderKafka:
		if len(pubsubCfg.Brokers) == 0 {
			return nil, errors.New("brokers are required for kafka provider")
		}
		if pubsubCfg.TopicID == "" {
			return nil, errors.New("topic ID is required for kafka provider")
		}
		logger.Info("Using Kafka publisher",
			slog.Any("brokers", pubsubCfg.Brokers),
			slog.String("topic", pubsubCfg.TopicID),
		)

		return NewKafkaPublisher(pubsubCfg.Brokers, pubsubCfg.TopicID, logger), nil

	default:
		return nil, errors.Errorf("unknown pubsub provider: %s", pubsubCfg.Provider)
	}
}
