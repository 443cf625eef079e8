package handler

import (
	"log/slog"

	"github.com/guesssays/med-platform/internal/delivery/api/response"
	"github.com/guesssays/med-platform/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ProfileHandlerParams holds dependencies for ProfileHandler, injected by Fx.
type ProfileHandlerParams struct {
	fx.In

	ProfileUC usecase.ProfileUsecase
	Logger    *slog.Logger
}

// ProfileHandler serves doctor and patient profiles.
type ProfileHandler struct {
	profileUC usecase.ProfileUsecase
	logger    *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler
func NewProfileHandler(params ProfileHandlerParams) *ProfileHandler {
	return &ProfileHandler{
		profileUC: params.ProfileUC,
		logger:    params.Logger,
	}
}

// UpsertDoctorProfileRequest represents the request body for PUT /doctors/me
type UpsertDoctorProfileRequest struct {
	ClinicID  *uint  `json:"clinic_id" validate:"omitempty,gt=0"`
	Specialty string `json:"specialty" validate:"max=255"`
	Title     string `json:"title" validate:"max=255"`
}

// UpsertDoctorProfile creates or updates the caller's doctor profile
func (h *ProfileHandler) UpsertDoctorProfile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req UpsertDoctorProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	profile, err := h.profileUC.UpsertDoctorProfile(c.Request().Context(), &usecase.UpsertDoctorProfileInput{
		User:      user,
		ClinicID:  req.ClinicID,
		Specialty: req.Specialty,
		Title:     req.Title,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, toDoctorResponse(profile))
}

// ListDoctors lists doctors, optionally filtered by ?clinic_id=
func (h *ProfileHandler) ListDoctors(c echo.Context) error {
	clinicID, err := optionalQueryID(c, "clinic_id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	doctors, err := h.profileUC.ListDoctors(c.Request().Context(), clinicID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, mapAll(doctors, toDoctorResponse))
}

func (h *ProfileHandler) GetDoctor(c echo.Context) error {
	doctorID, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	doctor, err := h.profileUC.GetDoctor(c.Request().Context(), doctorID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, toDoctorResponse(doctor))
}

// GetPatientProfile returns the caller's patient profile, creating it on first access
func (h *ProfileHandler) GetPatientProfile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	profile, err := h.profileUC.GetPatientProfile(c.Request().Context(), user)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, toPatientResponse(profile))
}
