package repository

import (
	"context"
	"time"

	"github.com/guesssays/med-platform/internal/domain/entity"
	"github.com/guesssays/med-platform/internal/errors"
)

// ErrSessionNotFound is returned when a refresh ledger row does not exist for the caller.
var ErrSessionNotFound = errors.New("session not found")

// TokenStore is the append-only ledger for refresh and reset tokens.
// Rows are flipped to revoked/used, never deleted.
type TokenStore interface {
	// RecordRefresh inserts a new active refresh row.
	RecordRefresh(ctx context.Context, token *entity.RefreshToken) error

	// IsRefreshValid is true iff a row exists for (userID, jti), is not revoked and is unexpired.
	// Refresh itself relies on RotateRefresh's atomic check; this is the read-only
	// form of the same predicate for callers that must not mutate the ledger.
	IsRefreshValid(ctx context.Context, userID uint, jti string) (bool, error)

	// RevokeRefresh marks one row revoked. Unknown or already revoked rows are a no-op.
	RevokeRefresh(ctx context.Context, userID uint, jti string) error

	// RevokeAllRefresh marks every non-revoked row of the user revoked.
	RevokeAllRefresh(ctx context.Context, userID uint) error

	// RotateRefresh revokes the active row (userID, oldJTI) and inserts next in one
	// transaction. It returns false, inserting nothing, when the old row was not active.
	RotateRefresh(ctx context.Context, userID uint, oldJTI string, next *entity.RefreshToken) (bool, error)

	// ListActiveRefresh returns the user's unrevoked, unexpired rows, newest first.
	ListActiveRefresh(ctx context.Context, userID uint, now time.Time) ([]*entity.RefreshToken, error)

	// RevokeRefreshByID revokes one of the user's rows by primary key.
	// Returns ErrSessionNotFound when the row does not belong to the user.
	RevokeRefreshByID(ctx context.Context, userID, id uint) error

	// RecordReset inserts a new unused reset row.
	RecordReset(ctx context.Context, token *entity.PasswordResetToken) error

	// ConsumeReset atomically marks the row used iff it exists for the user and is
	// unused and unexpired. It returns false without mutating anything otherwise.
	ConsumeReset(ctx context.Context, userID uint, jti string) (bool, error)
}
