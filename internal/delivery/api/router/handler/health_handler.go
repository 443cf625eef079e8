package handler

import (
	"github.com/guesssays/med-platform/internal/delivery/api/response"

	"github.com/labstack/echo/v4"
)

// HealthCheck reports liveness. It does not touch the database.
func HealthCheck(c echo.Context) error {
	return response.OK(c, response.StatusOK)
}
