package usecase

import (
	"context"

	"github.com/guesssays/med-platform/internal/domain/entity"
)

// RoleCheck is a reusable authorization check bound to a set of allowed roles.
type RoleCheck func(user *entity.User) error

// GuardUsecase resolves the caller behind a bearer credential and enforces roles.
type GuardUsecase interface {
	// ResolveIdentity turns an Authorization header value into an active user.
	ResolveIdentity(ctx context.Context, authorization string) (*entity.User, error)

	// Authorize fails with Forbidden unless the user holds one of the allowed roles.
	Authorize(user *entity.User, allowed ...entity.Role) error

	// RequireRole binds Authorize to a fixed set of roles.
	RequireRole(allowed ...entity.Role) RoleCheck
}
