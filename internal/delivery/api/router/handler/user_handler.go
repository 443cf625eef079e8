package handler

import (
	"log/slog"

	"github.com/guesssays/med-platform/internal/delivery/api/response"
	"github.com/guesssays/med-platform/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	SessionUC usecase.SessionUsecase
	AdminUC   usecase.AdminUsecase
	Logger    *slog.Logger
}

// UserHandler serves identity, session and admin endpoints.
type UserHandler struct {
	sessionUC usecase.SessionUsecase
	adminUC   usecase.AdminUsecase
	logger    *slog.Logger
}

// NewUserHandler is the constructor for UserHandler
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		sessionUC: params.SessionUC,
		adminUC:   params.AdminUC,
		logger:    params.Logger,
	}
}

// GreetingResponse is returned by the admin-only probe.
type GreetingResponse struct {
	Message string `json:"message"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// Me returns the caller's identity summary.
func (h *UserHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		IsActive: user.IsActive,
	})
}

// WhoAmI reports the caller's role name.
func (h *UserHandler) WhoAmI(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, WhoAmIResponse{
		Email:    user.Email,
		Role:     user.Role.Name(),
		IsActive: user.IsActive,
	})
}

// AdminOnly greets callers that passed the ADMIN role check.
func (h *UserHandler) AdminOnly(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, GreetingResponse{Message: "Hello Admin " + user.Email})
}

// ListSessions returns the caller's active refresh sessions.
func (h *UserHandler) ListSessions(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	sessions, err := h.sessionUC.ListSessions(c.Request().Context(), user.ID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, mapAll(sessions, toSessionResponse))
}

// RevokeSession revokes one of the caller's sessions.
func (h *UserHandler) RevokeSession(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	sessionID, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.sessionUC.RevokeSession(c.Request().Context(), user.ID, sessionID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, response.StatusOK)
}

// UpdateRole changes another user's role.
func (h *UserHandler) UpdateRole(c echo.Context) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req UpdateRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.adminUC.UpdateUserRole(c.Request().Context(), userID, req.Role)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, toManagedUserResponse(user))
}
