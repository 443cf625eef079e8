package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "github.com/guesssays/med-platform/internal/delivery/context"
	"github.com/guesssays/med-platform/internal/domain/entity"
	domainerrors "github.com/guesssays/med-platform/internal/domain/errors"
	"github.com/guesssays/med-platform/internal/domain/repository"
	"github.com/guesssays/med-platform/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	tokenStore repository.TokenStore
	logger     *slog.Logger
	now        func() time.Time
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	TokenStore repository.TokenStore
	Logger     *slog.Logger
}

// NewSessionService creates a new session service instance.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		tokenStore: params.TokenStore,
		logger:     params.Logger,
		now:        time.Now,
	}
}

func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListSessions returns the user's active refresh tokens, newest first.
func (srv *sessionService) ListSessions(ctx context.Context, userID uint) ([]*entity.RefreshToken, error) {
	sessions, err := srv.tokenStore.ListActiveRefresh(ctx, userID, srv.now())
	if err != nil {
		srv.log(ctx).Error("Failed to list sessions", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list sessions")
	}

	return sessions, nil
}

// RevokeSession revokes one of the caller's sessions. Foreign ids look like missing ones.
func (srv *sessionService) RevokeSession(ctx context.Context, userID, sessionID uint) error {
	if err := srv.tokenStore.RevokeRefreshByID(ctx, userID, sessionID); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return domainerrors.ErrSessionNotFound
		}

		return errors.Wrap(err, "failed to revoke session")
	}

	srv.log(ctx).Info("Session revoked", slog.Any("userID", userID), slog.Any("sessionID", sessionID))

	return nil
}
