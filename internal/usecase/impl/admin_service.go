package impl

import (
	"context"
	"log/slog"

	deliverycontext "github.com/guesssays/med-platform/internal/delivery/context"
	"github.com/guesssays/med-platform/internal/domain/entity"
	domainerrors "github.com/guesssays/med-platform/internal/domain/errors"
	"github.com/guesssays/med-platform/internal/domain/repository"
	"github.com/guesssays/med-platform/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type adminService struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// AdminServiceParams holds dependencies for AdminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Logger   *slog.Logger
}

// NewAdminService creates a new admin service instance.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	return &adminService{
		userRepo: params.UserRepo,
		logger:   params.Logger,
	}
}

func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// UpdateUserRole assigns a role given in any accepted spelling ("doctor", "DOCTOR", "Role.DOCTOR").
func (srv *adminService) UpdateUserRole(ctx context.Context, userID uint, rawRole string) (*entity.User, error) {
	role, ok := entity.ParseRole(rawRole)
	if !ok {
		return nil, domainerrors.ErrUnknownRole.WithDetails("role must be one of ADMIN, DOCTOR, PATIENT")
	}

	if err := srv.userRepo.UpdateRole(ctx, userID, role); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to update role")
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload user")
	}

	srv.log(ctx).Info("User role updated", slog.Any("userID", userID), slog.String("role", role.Name()))

	return user, nil
}
