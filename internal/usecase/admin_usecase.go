package usecase

import (
	"context"

	"github.com/guesssays/med-platform/internal/domain/entity"
)

// AdminUsecase holds user-management operations reserved for administrators.
type AdminUsecase interface {
	// UpdateUserRole parses rawRole through the role normalization and assigns it.
	UpdateUserRole(ctx context.Context, userID uint, rawRole string) (*entity.User, error)
}
