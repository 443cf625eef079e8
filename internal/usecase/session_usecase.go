package usecase

import (
	"context"

	"github.com/guesssays/med-platform/internal/domain/entity"
)

// SessionUsecase exposes the caller's refresh-token ledger as sessions.
type SessionUsecase interface {
	ListSessions(ctx context.Context, userID uint) ([]*entity.RefreshToken, error)
	RevokeSession(ctx context.Context, userID, sessionID uint) error
}
