package impl

import (
	"context"
	"log/slog"
	"strings"

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

const bearerScheme = "bearer"

// guardService implements the GuardUsecase interface.
type guardService struct {
	userRepo           repository.UserRepository
	codec              service.TokenCodec
	superAdminOverride bool
	logger             *slog.Logger
}

// GuardServiceParams holds dependencies for GuardService, injected by Fx.
type GuardServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Codec    service.TokenCodec
	Config   *config.Config
	Logger   *slog.Logger
}

// NewGuardService creates a new guard service instance.
func NewGuardService(params GuardServiceParams) usecase.GuardUsecase {
	override := false
	if params.Config != nil && params.Config.Auth != nil {
		override = params.Config.Auth.SuperAdminOverride
	}

	return &guardService{
		userRepo:           params.UserRepo,
		codec:              params.Codec,
		superAdminOverride: override,
		logger:             params.Logger,
	}
}

func (srv *guardService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ResolveIdentity collapses every failure into Unauthorized so callers learn nothing
// about why a credential was rejected.
func (srv *guardService) ResolveIdentity(ctx context.Context, authorization string) (*entity.User, error) {
	token, ok := parseBearer(authorization)
	if !ok {
		return nil, domainerrors.ErrUnauthorized
	}

	claims, err := srv.codec.Decode(token)
	if err != nil {
		return nil, domainerrors.ErrUnauthorized
	}
	// Refresh and reset tokens are not access credentials.
	if claims.Type != entity.TokenTypeAccess || claims.Subject == "" {
		return nil, domainerrors.ErrUnauthorized
	}

	user, err := srv.userRepo.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUnauthorized
		}
		srv.log(ctx).Error("Failed to load identity", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !user.IsActive {
		return nil, domainerrors.ErrUnauthorized
	}

	return user, nil
}

// Authorize compares normalized roles; the super-admin flag only counts when the override is enabled.
func (srv *guardService) Authorize(user *entity.User, allowed ...entity.Role) error {
	if user == nil {
		return domainerrors.ErrUnauthorized
	}
	if srv.superAdminOverride && user.IsSuperAdmin {
		return nil
	}
	if entity.Roles(allowed).Contains(user.Role) {
		return nil
	}

	return domainerrors.ErrForbidden
}

// RequireRole returns a check that can be attached to any number of routes.
func (srv *guardService) RequireRole(allowed ...entity.Role) usecase.RoleCheck {
	roles := append([]entity.Role(nil), allowed...)

	return func(user *entity.User) error {
		return srv.Authorize(user, roles...)
	}
}

// parseBearer extracts the token from "Bearer <token>", matching the scheme case-insensitively.
func parseBearer(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}

	return token, true
}
