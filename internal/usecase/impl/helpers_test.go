package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/guesssays/med-platform/config"
	"github.com/guesssays/med-platform/internal/domain/entity"
	"github.com/guesssays/med-platform/internal/domain/repository"
	"github.com/guesssays/med-platform/internal/domain/service"
	"github.com/guesssays/med-platform/internal/infra/auth"
	"github.com/guesssays/med-platform/internal/infra/persistence/model"
	"github.com/guesssays/med-platform/internal/infra/persistence/postgres"
	"github.com/guesssays/med-platform/internal/infra/persistence/sqlitetest"
	mockSvc "github.com/guesssays/med-platform/internal/mocks/service"
	"github.com/guesssays/med-platform/internal/usecase"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	testPassword   = "pw123456"
	testAdminEmail = "root@clinic.test"
)

// testEnv wires the services to an in-memory database, a real bcrypt hasher and a real JWT codec.
type testEnv struct {
	db        *gorm.DB
	cfg       *config.Config
	logger    *slog.Logger
	txManager repository.TransactionManager
	users     repository.UserRepository
	store     repository.TokenStore
	hasher    service.PasswordHasher
	codec     service.TokenCodec
	publisher *mockSvc.MockEventPublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		Auth: &config.AuthConfig{
			JWT: config.JWTConfig{
				Secret:     "unit-test-secret-0123456789",
				Algorithm:  "HS256",
				AccessTTL:  15 * time.Minute,
				RefreshTTL: 24 * time.Hour,
				ResetTTL:   30 * time.Minute,
			},
			BcryptCost:          bcrypt.MinCost,
			BootstrapAdminEmail: testAdminEmail,
		},
		PasswordStrength: &config.PasswordStrengthConfig{MinLength: 8, MaxLength: 72},
		Storage:          &config.StorageConfig{MaxMediaSize: 16},
	}

	codec, err := auth.NewJWTCodec(cfg)
	require.NoError(t, err)

	db := sqlitetest.Open(t)
	publisher := mockSvc.NewMockEventPublisher(t)
	publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Maybe()

	return &testEnv{
		db:        db,
		cfg:       cfg,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		txManager: postgres.NewTransactionManager(db),
		users:     postgres.NewUserRepository(db),
		store:     postgres.NewTokenStore(db),
		hasher:    auth.NewBcryptHasher(cfg),
		codec:     codec,
		publisher: publisher,
	}
}

func (env *testEnv) authService() usecase.AuthUsecase {
	return env.authServiceWith(env.publisher)
}

func (env *testEnv) authServiceWith(publisher service.EventPublisher) usecase.AuthUsecase {
	return NewAuthService(AuthServiceParams{
		TxManager:  env.txManager,
		UserRepo:   env.users,
		TokenStore: env.store,
		Hasher:     env.hasher,
		Codec:      env.codec,
		Publisher:  publisher,
		Config:     env.cfg,
		Logger:     env.logger,
	})
}

func (env *testEnv) guardService() usecase.GuardUsecase {
	return NewGuardService(GuardServiceParams{
		UserRepo: env.users,
		Codec:    env.codec,
		Config:   env.cfg,
		Logger:   env.logger,
	})
}

// register creates an account through the auth service and returns it with its first token pair.
func (env *testEnv) register(t *testing.T, email string) (*entity.User, *entity.TokenPair) {
	t.Helper()

	pair, err := env.authService().Register(context.Background(), &usecase.CredentialsInput{Email: email, Password: testPassword})
	require.NoError(t, err)

	user, err := env.users.FindByEmail(context.Background(), email)
	require.NoError(t, err)

	return user, pair
}

// registerAs registers email and assigns role directly in the store.
func (env *testEnv) registerAs(t *testing.T, email string, role entity.Role) *entity.User {
	t.Helper()

	user, _ := env.register(t, email)
	require.NoError(t, env.users.UpdateRole(context.Background(), user.ID, role))
	user.Role = role

	return user
}

func (env *testEnv) deactivate(t *testing.T, userID uint) {
	t.Helper()

	err := env.db.Model(&model.UserModel{}).Where("id = ?", userID).Update("is_active", false).Error
	require.NoError(t, err)
}

func (env *testEnv) countRows(t *testing.T, value any) int64 {
	t.Helper()

	var count int64
	require.NoError(t, env.db.Model(value).Count(&count).Error)

	return count
}
