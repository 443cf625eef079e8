package middleware

import (
	deliverycontext "github.com/guesssays/med-platform/internal/delivery/context"
	"github.com/guesssays/med-platform/internal/domain/entity"
	domainerrors "github.com/guesssays/med-platform/internal/domain/errors"
	"github.com/guesssays/med-platform/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware resolves bearer identities and enforces role checks.
type AuthMiddleware struct {
	guard usecase.GuardUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(guard usecase.GuardUsecase) *AuthMiddleware {
	return &AuthMiddleware{guard: guard}
}

// Authenticate loads the caller from the Authorization header and stores it on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)

		user, err := m.guard.ResolveIdentity(c.Request().Context(), header)
		if err != nil {
			return err
		}

		deliverycontext.SetUser(c, user)

		return next(c)
	}
}

// RequireRole admits callers holding one of the allowed roles.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(allowed ...entity.Role) echo.MiddlewareFunc {
	check := m.guard.RequireRole(allowed...)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := deliverycontext.GetUser(c)
			if !ok {
				return domainerrors.ErrUnauthorized
			}
			if err := check(user); err != nil {
				return err
			}

			return next(c)
		}
	}
}
