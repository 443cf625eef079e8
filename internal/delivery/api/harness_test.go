package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/guesssays/med-platform/config"
	apimiddleware "github.com/guesssays/med-platform/internal/delivery/api/middleware"
	"github.com/guesssays/med-platform/internal/delivery/api/router"
	"github.com/guesssays/med-platform/internal/delivery/api/router/handler"
	"github.com/guesssays/med-platform/internal/domain/entity"
	"github.com/guesssays/med-platform/internal/domain/service"
	"github.com/guesssays/med-platform/internal/infra/auth"
	"github.com/guesssays/med-platform/internal/infra/metrics"
	"github.com/guesssays/med-platform/internal/infra/persistence/model"
	"github.com/guesssays/med-platform/internal/infra/persistence/postgres"
	"github.com/guesssays/med-platform/internal/infra/persistence/sqlitetest"
	"github.com/guesssays/med-platform/internal/infra/pubsub"
	"github.com/guesssays/med-platform/internal/infra/qrcode"
	"github.com/guesssays/med-platform/internal/infra/ratelimit"
	"github.com/guesssays/med-platform/internal/infra/storage"
	"github.com/guesssays/med-platform/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	testBasePath   = "/api/v1"
	testPassword   = "pw123456"
	testAdminEmail = "root@clinic.test"
)

type testServer struct {
	t        *testing.T
	e        *echo.Echo
	db       *gorm.DB
	registry *metrics.Registry
}

type serverOption func(*config.Config, *serverDeps)

type serverDeps struct {
	limiter service.RateLimiter
}

func withLimiter(limiter service.RateLimiter) serverOption {
	return func(_ *config.Config, deps *serverDeps) {
		deps.limiter = limiter
	}
}

func withTrustedProxies(cidrs ...string) serverOption {
	return func(cfg *config.Config, _ *serverDeps) {
		cfg.HTTP.TrustedProxies = cidrs
	}
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			JWT: config.JWTConfig{
				Secret:     "api-test-secret-0123456789",
				Algorithm:  "HS256",
				AccessTTL:  15 * time.Minute,
				RefreshTTL: 24 * time.Hour,
				ResetTTL:   30 * time.Minute,
			},
			BcryptCost:          bcrypt.MinCost,
			BootstrapAdminEmail: testAdminEmail,
		},
		PasswordStrength: &config.PasswordStrengthConfig{MinLength: 8, MaxLength: 72},
		QRCode:           &config.QRCodeConfig{Size: 128, ErrorCorrectionLevel: "M"},
		Storage:          &config.StorageConfig{BucketURL: "mem://", MaxMediaSize: 1 << 10},
		Metrics:          &config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	cfg.HTTP.BasePath = testBasePath
	cfg.HTTP.MaxRequestBodySize = "64KB"

	return cfg
}

// newTestServer wires every real service over an in-memory database.
func newTestServer(t *testing.T, opts ...serverOption) *testServer {
	t.Helper()

	cfg := newTestConfig()
	deps := &serverDeps{limiter: ratelimit.NoopLimiter{}}
	for _, opt := range opts {
		opt(cfg, deps)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db := sqlitetest.Open(t)

	codec, err := auth.NewJWTCodec(cfg)
	require.NoError(t, err)

	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	publisher := pubsub.NewLogPublisher(logger, false)
	txManager := postgres.NewTransactionManager(db)
	userRepo := postgres.NewUserRepository(db)
	tokenStore := postgres.NewTokenStore(db)
	clinicRepo := postgres.NewClinicRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	patientRepo := postgres.NewPatientRepository(db)

	guardUC := impl.NewGuardService(impl.GuardServiceParams{UserRepo: userRepo, Codec: codec, Config: cfg, Logger: logger})
	registry := metrics.New()

	routerParams := router.RouterParams{
		AuthHandler: handler.NewAuthHandler(handler.AuthHandlerParams{
			AuthUC: impl.NewAuthService(impl.AuthServiceParams{
				TxManager:  txManager,
				UserRepo:   userRepo,
				TokenStore: tokenStore,
				Hasher:     auth.NewBcryptHasher(cfg),
				Codec:      codec,
				Publisher:  publisher,
				Config:     cfg,
				Logger:     logger,
			}),
			Logger: logger,
		}),
		UserHandler: handler.NewUserHandler(handler.UserHandlerParams{
			SessionUC: impl.NewSessionService(impl.SessionServiceParams{TokenStore: tokenStore, Logger: logger}),
			AdminUC:   impl.NewAdminService(impl.AdminServiceParams{UserRepo: userRepo, Logger: logger}),
			Logger:    logger,
		}),
		ClinicHandler: handler.NewClinicHandler(handler.ClinicHandlerParams{
			ClinicUC: impl.NewClinicService(impl.ClinicServiceParams{ClinicRepo: clinicRepo, Logger: logger}),
			Logger:   logger,
		}),
		ProfileHandler: handler.NewProfileHandler(handler.ProfileHandlerParams{
			ProfileUC: impl.NewProfileService(impl.ProfileServiceParams{
				ClinicRepo:  clinicRepo,
				DoctorRepo:  doctorRepo,
				PatientRepo: patientRepo,
				Logger:      logger,
			}),
			Logger: logger,
		}),
		AppointmentHandler: handler.NewAppointmentHandler(handler.AppointmentHandlerParams{
			AppointmentUC: impl.NewAppointmentService(impl.AppointmentServiceParams{
				TxManager:       txManager,
				AppointmentRepo: postgres.NewAppointmentRepository(db),
				DoctorRepo:      doctorRepo,
				PatientRepo:     patientRepo,
				Publisher:       publisher,
				Logger:          logger,
			}),
			Logger: logger,
		}),
		ContentHandler: handler.NewContentHandler(handler.ContentHandlerParams{
			ContentUC: impl.NewContentService(impl.ContentServiceParams{
				ContentRepo: postgres.NewContentRepository(db),
				DoctorRepo:  doctorRepo,
				Storage:     storage.NewBlobStorage(bucket),
				Config:      cfg,
				Logger:      logger,
			}),
			Logger: logger,
		}),
		SubscriptionHandler: handler.NewSubscriptionHandler(handler.SubscriptionHandlerParams{
			SubscriptionUC: impl.NewSubscriptionService(impl.SubscriptionServiceParams{
				SubscriptionRepo: postgres.NewSubscriptionRepository(db),
				DoctorRepo:       doctorRepo,
				PatientRepo:      patientRepo,
				QRCodeService:    qrcode.NewQRCodeService(cfg),
				Logger:           logger,
			}),
			Logger: logger,
		}),
		PaymentHandler: handler.NewPaymentHandler(handler.PaymentHandlerParams{
			PaymentUC: impl.NewPaymentService(impl.PaymentServiceParams{
				PaymentRepo: postgres.NewPaymentRepository(db),
				Publisher:   publisher,
				Logger:      logger,
			}),
			Logger: logger,
		}),
		AuthMiddleware:      apimiddleware.NewAuthMiddleware(guardUC),
		RateLimitMiddleware: apimiddleware.NewRateLimitMiddleware(deps.limiter, registry, logger),
		Config:              cfg,
	}

	return &testServer{
		t:        t,
		e:        newEcho(cfg, logger, registry, routerParams),
		db:       db,
		registry: registry,
	}
}

// do sends a JSON request under the base path. body may be nil.
func (s *testServer) do(method, path string, body any, accessToken string) *httptest.ResponseRecorder {
	s.t.Helper()

	return s.doWithHeaders(method, path, body, accessToken, nil)
}

// doWithHeaders is do with extra request headers, e.g. forwarding headers.
func (s *testServer) doWithHeaders(method, path string, body any, accessToken string, headers map[string]string) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, testBasePath+path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if accessToken != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+accessToken)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	return rec
}

// doRaw sends body unchanged with the given content type.
func (s *testServer) doRaw(method, path, contentType string, body []byte, accessToken string) *httptest.ResponseRecorder {
	s.t.Helper()

	req := httptest.NewRequest(method, testBasePath+path, bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, contentType)
	if accessToken != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+accessToken)
	}

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	return rec
}

// register signs up email and returns its token pair.
func (s *testServer) register(email string) handler.TokenPairResponse {
	s.t.Helper()

	rec := s.do(http.MethodPost, "/auth/register", map[string]string{"email": email, "password": testPassword}, "")
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())

	return decode[handler.TokenPairResponse](s.t, rec)
}

// registerAs signs up email and sets its role directly in the database.
func (s *testServer) registerAs(email string, role entity.Role) handler.TokenPairResponse {
	s.t.Helper()

	pair := s.register(email)
	err := s.db.Model(&model.UserModel{}).Where("email = ?", email).Update("role", role).Error
	require.NoError(s.t, err)

	return pair
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())

	return out
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details any    `json:"details"`
	} `json:"error"`
	Meta struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}
