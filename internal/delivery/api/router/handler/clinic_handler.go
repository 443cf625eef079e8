package handler

import (
	"log/slog"

	"github.com/guesssays/med-platform/internal/delivery/api/response"
	"github.com/guesssays/med-platform/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ClinicHandlerParams holds dependencies for ClinicHandler, injected by Fx.
type ClinicHandlerParams struct {
	fx.In

	ClinicUC usecase.ClinicUsecase
	Logger   *slog.Logger
}

// ClinicHandler holds dependencies for clinic-related handlers
type ClinicHandler struct {
	clinicUC usecase.ClinicUsecase
	logger   *slog.Logger
}

// NewClinicHandler is the constructor for ClinicHandler
func NewClinicHandler(params ClinicHandlerParams) *ClinicHandler {
	return &ClinicHandler{
		clinicUC: params.ClinicUC,
		logger:   params.Logger,
	}
}

// CreateClinicRequest represents the request body for creating a clinic
type CreateClinicRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Address     string `json:"address" validate:"max=512"`
	Phone       string `json:"phone" validate:"max=64"`
	Description string `json:"description"`
}

// CreateClinic handles clinic creation by an admin
func (h *ClinicHandler) CreateClinic(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req CreateClinicRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	clinic, err := h.clinicUC.CreateClinic(c.Request().Context(), &usecase.CreateClinicInput{
		Owner:       user,
		Name:        req.Name,
		Address:     req.Address,
		Phone:       req.Phone,
		Description: req.Description,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, toClinicResponse(clinic))
}

// ListClinics handles listing every clinic by name
func (h *ClinicHandler) ListClinics(c echo.Context) error {
	clinics, err := h.clinicUC.ListClinics(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, mapAll(clinics, toClinicResponse))
}

// GetClinic handles looking up one clinic by slug
func (h *ClinicHandler) GetClinic(c echo.Context) error {
	clinic, err := h.clinicUC.GetClinic(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, toClinicResponse(clinic))
}
