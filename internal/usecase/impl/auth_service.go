// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/guesssays/med-platform/config"
	deliverycontext "github.com/guesssays/med-platform/internal/delivery/context"
	"github.com/guesssays/med-platform/internal/domain/entity"
	domainerrors "github.com/guesssays/med-platform/internal/domain/errors"
	"github.com/guesssays/med-platform/internal/domain/repository"
	"github.com/guesssays/med-platform/internal/domain/service"
	"github.com/guesssays/med-platform/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const tokenTypeBearer = "bearer"

// authService implements the AuthUsecase interface.
type authService struct {
	txManager           repository.TransactionManager
	userRepo            repository.UserRepository
	tokenStore          repository.TokenStore
	hasher              service.PasswordHasher
	codec               service.TokenCodec
	publisher           service.EventPublisher
	bootstrapAdminEmail string
	logger              *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	UserRepo   repository.UserRepository
	TokenStore repository.TokenStore
	Hasher     service.PasswordHasher
	Codec      service.TokenCodec
	Publisher  service.EventPublisher
	Config     *config.Config
	Logger     *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	bootstrapAdminEmail := ""
	if params.Config != nil && params.Config.Auth != nil {
		bootstrapAdminEmail = strings.TrimSpace(params.Config.Auth.BootstrapAdminEmail)
	}

	return &authService{
		txManager:           params.TxManager,
		userRepo:            params.UserRepo,
		tokenStore:          params.TokenStore,
		hasher:              params.Hasher,
		codec:               params.Codec,
		publisher:           params.Publisher,
		bootstrapAdminEmail: bootstrapAdminEmail,
		logger:              params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a PATIENT account (ADMIN for the bootstrap email) and signs it in.
func (srv *authService) Register(ctx context.Context, input *usecase.CredentialsInput) (*entity.TokenPair, error) {
	email := strings.TrimSpace(input.Email)

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		return nil, err
	}

	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	role := entity.DefaultRole
	if srv.bootstrapAdminEmail != "" && email == srv.bootstrapAdminEmail {
		role = entity.RoleAdmin
	}

	user := entity.NewUser(email, passwordHash, role)

	var pair *entity.TokenPair
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		// Step 1: Persist the account; the unique index decides duplicates.
		if err := repoFactory.NewUserRepository().Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrUserAlreadyExists) {
				return domainerrors.ErrUserAlreadyExists
			}

			return errors.Wrap(err, "failed to create user")
		}

		// Step 2: Issue the first session inside the same unit of work.
		issued, err := srv.issuePair(ctx, repoFactory.NewTokenStore(), user, input.Client)
		if err != nil {
			return err
		}
		pair = issued

		return nil
	})
	if err != nil {
		if isClientError(err) {
			return nil, err
		}
		srv.log(ctx).Error("Failed to execute registration transaction", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	srv.publish(ctx, service.EventUserRegistered, map[string]any{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role.Name(),
	})
	srv.log(ctx).Info("User registered", slog.Any("userID", user.ID), slog.String("role", user.Role.Name()))

	return pair, nil
}

// Login verifies credentials and always mints a fresh refresh token.
func (srv *authService) Login(ctx context.Context, input *usecase.CredentialsInput) (*entity.TokenPair, error) {
	email := strings.TrimSpace(input.Email)

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Debug("Login for unknown email")

			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Debug("Login with wrong password", slog.Any("userID", user.ID))

		return nil, domainerrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domainerrors.ErrInactiveUser
	}

	pair, err := srv.issuePair(ctx, srv.tokenStore, user, input.Client)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token pair", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("User logged in", slog.Any("userID", user.ID))

	return pair, nil
}

// Refresh exchanges a refresh token for a new pair, revoking the presented one.
func (srv *authService) Refresh(ctx context.Context, input *usecase.RefreshInput) (*entity.TokenPair, error) {
	claims, err := srv.codec.Decode(input.RefreshToken)
	if err != nil {
		return nil, domainerrors.ErrRefreshTokenInvalid
	}
	if claims.Type != entity.TokenTypeRefresh {
		return nil, domainerrors.ErrInvalidTokenType
	}
	if claims.Subject == "" || claims.JTI == "" {
		return nil, domainerrors.ErrInvalidTokenPayload
	}

	user, err := srv.userRepo.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrRefreshTokenInvalid
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}
	if !user.IsActive {
		return nil, domainerrors.ErrInactiveUser
	}

	next, err := srv.codec.IssueRefresh(user.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue refresh token")
	}

	// Revoke-old and insert-new happen in one conditional transaction; a replayed
	// or concurrently used token finds no active row and loses.
	rotated, err := srv.tokenStore.RotateRefresh(ctx, user.ID, claims.JTI, newRefreshRow(user.ID, next, input.Client))
	if err != nil {
		srv.log(ctx).Error("Failed to rotate refresh token", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to rotate refresh token")
	}
	if !rotated {
		srv.log(ctx).Warn("Refresh token reuse or expiry", slog.Any("userID", user.ID), slog.String("jti", claims.JTI))

		return nil, domainerrors.ErrRefreshTokenInvalid
	}

	access, err := srv.codec.IssueAccess(user.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	return &entity.TokenPair{AccessToken: access, RefreshToken: next.Token, TokenType: tokenTypeBearer}, nil
}

// Logout revokes one session, every session, or nothing for a token-less client logout.
func (srv *authService) Logout(ctx context.Context, input *usecase.LogoutInput) (*usecase.LogoutOutput, error) {
	if input.RefreshToken == "" {
		if input.AllSessions {
			return nil, domainerrors.ErrRefreshTokenRequired
		}

		return &usecase.LogoutOutput{Revoked: usecase.LogoutScopeNone}, nil
	}

	claims, err := srv.codec.Decode(input.RefreshToken)
	if err != nil {
		return nil, domainerrors.ErrInvalidToken
	}
	if claims.Type != entity.TokenTypeRefresh {
		return nil, domainerrors.ErrInvalidTokenType
	}
	if claims.Subject == "" {
		return nil, domainerrors.ErrInvalidTokenPayload
	}

	user, err := srv.userRepo.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUnauthorized
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if input.AllSessions {
		if err := srv.tokenStore.RevokeAllRefresh(ctx, user.ID); err != nil {
			return nil, errors.Wrap(err, "failed to revoke all sessions")
		}
		srv.log(ctx).Info("All sessions revoked", slog.Any("userID", user.ID))

		return &usecase.LogoutOutput{Revoked: usecase.LogoutScopeAll}, nil
	}

	if claims.JTI == "" {
		return nil, domainerrors.ErrInvalidTokenPayload
	}
	if err := srv.tokenStore.RevokeRefresh(ctx, user.ID, claims.JTI); err != nil {
		return nil, errors.Wrap(err, "failed to revoke session")
	}

	return &usecase.LogoutOutput{Revoked: usecase.LogoutScopeSingle}, nil
}

// ForgotPassword records a reset token for known emails and succeeds either way.
func (srv *authService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Debug("Password reset requested for unknown email")

			return nil
		}

		return errors.Wrap(err, "failed to find user by email")
	}

	issued, err := srv.codec.IssueReset(user.Email)
	if err != nil {
		return errors.Wrap(err, "failed to issue reset token")
	}

	err = srv.tokenStore.RecordReset(ctx, &entity.PasswordResetToken{
		UserID:    user.ID,
		JTI:       issued.JTI,
		ExpiresAt: issued.ExpiresAt,
	})
	if err != nil {
		srv.log(ctx).Error("Failed to record reset token", slog.Any("userID", user.ID), slog.Any("error", err))

		return errors.Wrap(err, "failed to record reset token")
	}

	// Delivery of the token (mail, SMS) belongs to whoever consumes this event.
	srv.publish(ctx, service.EventPasswordResetRequested, map[string]any{
		"user_id":     user.ID,
		"email":       user.Email,
		"reset_token": issued.Token,
		"expires_at":  issued.ExpiresAt.Format(time.RFC3339),
	})

	return nil
}

// ResetPassword consumes a reset token once, replaces the hash and ends every session.
func (srv *authService) ResetPassword(ctx context.Context, input *usecase.ResetPasswordInput) error {
	claims, err := srv.codec.Decode(input.ResetToken)
	if err != nil {
		return domainerrors.ErrInvalidToken
	}
	if claims.Type != entity.TokenTypeReset {
		return domainerrors.ErrInvalidTokenType
	}
	if claims.Subject == "" || claims.JTI == "" {
		return domainerrors.ErrInvalidTokenPayload
	}

	if err := srv.hasher.ValidatePasswordStrength(input.NewPassword); err != nil {
		return err
	}

	user, err := srv.userRepo.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrResetTokenInvalid
		}

		return errors.Wrap(err, "failed to find user by email")
	}

	passwordHash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		store := repoFactory.NewTokenStore()

		// Step 1: Check-and-set the reset row; a second attempt finds it used.
		consumed, err := store.ConsumeReset(ctx, user.ID, claims.JTI)
		if err != nil {
			return errors.Wrap(err, "failed to consume reset token")
		}
		if !consumed {
			return domainerrors.ErrResetTokenInvalid
		}

		// Step 2: Replace the password hash.
		if err := repoFactory.NewUserRepository().UpdatePasswordHash(ctx, user.ID, passwordHash); err != nil {
			return errors.Wrap(err, "failed to update password hash")
		}

		// Step 3: A reset ends every existing session.
		return store.RevokeAllRefresh(ctx, user.ID)
	})
	if err != nil {
		if isClientError(err) {
			return err
		}
		srv.log(ctx).Error("Failed to execute password reset transaction", slog.Any("userID", user.ID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute password reset transaction")
	}

	srv.publish(ctx, service.EventPasswordChanged, map[string]any{"user_id": user.ID, "reason": "reset"})
	srv.log(ctx).Info("Password reset completed", slog.Any("userID", user.ID))

	return nil
}

// ChangePassword verifies the current password, replaces the hash and ends every session.
func (srv *authService) ChangePassword(ctx context.Context, input *usecase.ChangePasswordInput) error {
	user := input.User
	if !srv.hasher.Check(input.CurrentPassword, user.PasswordHash) {
		return domainerrors.ErrCurrentPasswordInvalid
	}

	if err := srv.hasher.ValidatePasswordStrength(input.NewPassword); err != nil {
		return err
	}

	passwordHash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewUserRepository().UpdatePasswordHash(ctx, user.ID, passwordHash); err != nil {
			return errors.Wrap(err, "failed to update password hash")
		}

		return repoFactory.NewTokenStore().RevokeAllRefresh(ctx, user.ID)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute password change transaction", slog.Any("userID", user.ID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute password change transaction")
	}

	srv.publish(ctx, service.EventPasswordChanged, map[string]any{"user_id": user.ID, "reason": "change"})

	return nil
}

// issuePair mints an access token and a recorded refresh token for user.
func (srv *authService) issuePair(ctx context.Context, store repository.TokenStore, user *entity.User, client entity.ClientMetadata) (*entity.TokenPair, error) {
	access, err := srv.codec.IssueAccess(user.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	refresh, err := srv.codec.IssueRefresh(user.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue refresh token")
	}

	if err := store.RecordRefresh(ctx, newRefreshRow(user.ID, refresh, client)); err != nil {
		return nil, errors.Wrap(err, "failed to record refresh token")
	}

	return &entity.TokenPair{AccessToken: access, RefreshToken: refresh.Token, TokenType: tokenTypeBearer}, nil
}

// publish hands an event to the transport. Failures are logged, never returned.
func (srv *authService) publish(ctx context.Context, eventType string, payload map[string]any) {
	publishEvent(ctx, srv.publisher, srv.log(ctx), eventType, payload)
}

func newRefreshRow(userID uint, issued *service.IssuedToken, client entity.ClientMetadata) *entity.RefreshToken {
	return &entity.RefreshToken{
		UserID:    userID,
		JTI:       issued.JTI,
		ExpiresAt: issued.ExpiresAt,
		UserAgent: client.UserAgent,
		IP:        client.IP,
	}
}
