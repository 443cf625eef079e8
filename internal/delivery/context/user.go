package context

import (
	"github.com/guesssays/med-platform/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// KeyUser is the echo.Context key holding the authenticated *entity.User.
const KeyUser ContextKey = "user"

// SetUser stores the resolved identity for downstream handlers.
func SetUser(c echo.Context, user *entity.User) {
	c.Set(string(KeyUser), user)
}

// GetUser returns the identity stored by the authentication middleware.
func GetUser(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(string(KeyUser)).(*entity.User)

	return user, ok && user != nil
}

// ClientMetadata extracts audit metadata for refresh-token issuance.
func ClientMetadata(c echo.Context) entity.ClientMetadata {
	return entity.ClientMetadata{
		UserAgent: c.Request().UserAgent(),
		IP:        c.RealIP(),
	}
}
