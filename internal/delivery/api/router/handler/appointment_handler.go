package handler

import (
	"log/slog"
	"time"

	"github.com/guesssays/med-platform/internal/delivery/api/response"
	"github.com/guesssays/med-platform/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AppointmentHandlerParams holds dependencies for AppointmentHandler, injected by Fx.
type AppointmentHandlerParams struct {
	fx.In

	AppointmentUC usecase.AppointmentUsecase
	Logger        *slog.Logger
}

// AppointmentHandler holds dependencies for appointment-related handlers
type AppointmentHandler struct {
	appointmentUC usecase.AppointmentUsecase
	logger        *slog.Logger
}

// NewAppointmentHandler is the constructor for AppointmentHandler
func NewAppointmentHandler(params AppointmentHandlerParams) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUC: params.AppointmentUC,
		logger:        params.Logger,
	}
}

// BookAppointmentRequest represents the request body for booking. Times are RFC 3339.
type BookAppointmentRequest struct {
	DoctorID uint      `json:"doctor_id" validate:"required"`
	StartsAt time.Time `json:"starts_at" validate:"required"`
	EndsAt   time.Time `json:"ends_at" validate:"required,gtfield=StartsAt"`
}

// Book reserves a slot for the calling patient
func (h *AppointmentHandler) Book(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req BookAppointmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	appointment, err := h.appointmentUC.Book(c.Request().Context(), &usecase.BookAppointmentInput{
		User:     user,
		DoctorID: req.DoctorID,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, toAppointmentResponse(appointment))
}

// List returns the appointments visible to the caller's role
func (h *AppointmentHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	appointments, err := h.appointmentUC.List(c.Request().Context(), user)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, mapAll(appointments, toAppointmentResponse))
}

// Cancel marks an appointment cancelled
func (h *AppointmentHandler) Cancel(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	appointmentID, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	appointment, err := h.appointmentUC.Cancel(c.Request().Context(), user, appointmentID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, toAppointmentResponse(appointment))
}
