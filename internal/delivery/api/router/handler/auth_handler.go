package handler

import (
	"log/slog"

	"github.com/guesssays/med-platform/internal/delivery/api/response"
	deliverycontext "github.com/guesssays/med-platform/internal/delivery/context"
	"github.com/guesssays/med-platform/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Logger *slog.Logger
}

// AuthHandler serves the credential lifecycle endpoints under /auth.
type AuthHandler struct {
	authUC usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC: params.AuthUC,
		logger: params.Logger,
	}
}

// CredentialsRequest is the body of register and login.
type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest revokes the session behind RefreshToken, or all of its user's
// sessions when AllSessions is set. An empty body is a client-side logout.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
	AllSessions  bool   `json:"all_sessions"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	ResetToken  string `json:"reset_token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

// LogoutResponse acknowledges a logout. Revoked is "single", "all" or omitted.
type LogoutResponse struct {
	Status  string `json:"status"`
	Revoked string `json:"revoked,omitempty"`
}

// Register creates a patient account and signs it in.
func (h *AuthHandler) Register(c echo.Context) error {
	var req CredentialsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	pair, err := h.authUC.Register(c.Request().Context(), &usecase.CredentialsInput{
		Email:    req.Email,
		Password: req.Password,
		Client:   deliverycontext.ClientMetadata(c),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, toTokenPairResponse(pair))
}

// Login exchanges credentials for a token pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req CredentialsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	pair, err := h.authUC.Login(c.Request().Context(), &usecase.CredentialsInput{
		Email:    req.Email,
		Password: req.Password,
		Client:   deliverycontext.ClientMetadata(c),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, toTokenPairResponse(pair))
}

// Refresh rotates a refresh token.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	pair, err := h.authUC.Refresh(c.Request().Context(), &usecase.RefreshInput{
		RefreshToken: req.RefreshToken,
		Client:       deliverycontext.ClientMetadata(c),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, toTokenPairResponse(pair))
}

func (h *AuthHandler) Logout(c echo.Context) error {
	var req LogoutRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	out, err := h.authUC.Logout(c.Request().Context(), &usecase.LogoutInput{
		RefreshToken: req.RefreshToken,
		AllSessions:  req.AllSessions,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, LogoutResponse{Status: "ok", Revoked: out.Revoked})
}

// ForgotPassword always acknowledges, whether or not the email is registered.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.authUC.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, response.StatusOK)
}

func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	err := h.authUC.ResetPassword(c.Request().Context(), &usecase.ResetPasswordInput{
		ResetToken:  req.ResetToken,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, response.StatusOK)
}

// ChangePassword requires the caller's current password and revokes every session.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req ChangePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	err = h.authUC.ChangePassword(c.Request().Context(), &usecase.ChangePasswordInput{
		User:            user,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, response.StatusOK)
}
