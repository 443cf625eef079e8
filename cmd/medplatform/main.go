package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/guesssays/med-platform/config"
	"github.com/guesssays/med-platform/internal/delivery"
	"github.com/guesssays/med-platform/internal/delivery/api"
	apimiddleware "github.com/guesssays/med-platform/internal/delivery/api/middleware"
	"github.com/guesssays/med-platform/internal/delivery/api/router/handler"
	"github.com/guesssays/med-platform/internal/infra/auth"
	"github.com/guesssays/med-platform/internal/infra/cache"
	logs "github.com/guesssays/med-platform/internal/infra/log"
	"github.com/guesssays/med-platform/internal/infra/metrics"
	"github.com/guesssays/med-platform/internal/infra/persistence/postgres"
	"github.com/guesssays/med-platform/internal/infra/pubsub"
	"github.com/guesssays/med-platform/internal/infra/qrcode"
	"github.com/guesssays/med-platform/internal/infra/ratelimit"
	"github.com/guesssays/med-platform/internal/infra/storage"
	"github.com/guesssays/med-platform/internal/usecase/impl"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			registerDBMetrics,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
		cache.New,
		metrics.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewTokenStore,
			postgres.NewTransactionManager,
			postgres.NewClinicRepository,
			postgres.NewDoctorRepository,
			postgres.NewPatientRepository,
			postgres.NewAppointmentRepository,
			postgres.NewContentRepository,
			postgres.NewSubscriptionRepository,
			postgres.NewPaymentRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTCodec,
			ratelimit.New,
			storage.New,
			pubsub.NewEventPublisher,
			qrcode.NewQRCodeService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewGuardService,
			impl.NewSessionService,
			impl.NewAdminService,
			impl.NewClinicService,
			impl.NewProfileService,
			impl.NewAppointmentService,
			impl.NewContentService,
			impl.NewSubscriptionService,
			impl.NewPaymentService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			apimiddleware.NewAuthMiddleware,
			apimiddleware.NewRateLimitMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewUserHandler,
			handler.NewClinicHandler,
			handler.NewProfileHandler,
			handler.NewAppointmentHandler,
			handler.NewContentHandler,
			handler.NewSubscriptionHandler,
			handler.NewPaymentHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// registerDBMetrics exports connection pool stats when metrics are on.
func registerDBMetrics(cfg *config.Config, registry *metrics.Registry, db *gorm.DB) error {
	if !cfg.Metrics.Enabled {
		return nil
	}

	return registry.RegisterDB(db, "postgres")
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
