package handler

import (
	"strconv"

	deliverycontext "github.com/guesssays/med-platform/internal/delivery/context"
	"github.com/guesssays/med-platform/internal/domain/entity"
	domainerrors "github.com/guesssays/med-platform/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// currentUser returns the identity stored by the auth middleware.
func currentUser(c echo.Context) (*entity.User, error) {
	user, ok := deliverycontext.GetUser(c)
	if !ok {
		return nil, domainerrors.ErrUnauthorized
	}

	return user, nil
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, domainerrors.ErrValidationFailed.WithDetails(name + ": must be a positive integer")
	}

	return uint(id), nil
}

// optionalQueryID parses an optional numeric query parameter.
func optionalQueryID(c echo.Context, name string) (*uint, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails(name + ": must be a positive integer")
	}
	value := uint(id)

	return &value, nil
}

// bindAndValidate decodes the request body into req and runs its validate tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrInvalidInput
	}

	return c.Validate(req)
}
