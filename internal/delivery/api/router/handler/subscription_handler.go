package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/guesssays/med-platform/internal/delivery/api/response"
	"github.com/guesssays/med-platform/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// SubscriptionHandlerParams holds dependencies for SubscriptionHandler, injected by Fx.
type SubscriptionHandlerParams struct {
	fx.In

	SubscriptionUC usecase.SubscriptionUsecase
	Logger         *slog.Logger
}

// SubscriptionHandler holds dependencies for subscription-related handlers
type SubscriptionHandler struct {
	subscriptionUC usecase.SubscriptionUsecase
	logger         *slog.Logger
}

// NewSubscriptionHandler is the constructor for SubscriptionHandler
func NewSubscriptionHandler(params SubscriptionHandlerParams) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionUC: params.SubscriptionUC,
		logger:         params.Logger,
	}
}

// SubscribeRequest represents the request body for subscribing to a doctor
type SubscribeRequest struct {
	DoctorID  uint       `json:"doctor_id" validate:"required"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// ProcessQRRequest represents the request body for processing QR subscription
type ProcessQRRequest struct {
	QRData string `json:"qr_data" validate:"required"`
}

// Subscribe handles subscribing to a doctor
func (h *SubscriptionHandler) Subscribe(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req SubscribeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	subscription, err := h.subscriptionUC.Subscribe(c.Request().Context(), &usecase.SubscribeInput{
		User:      user,
		DoctorID:  req.DoctorID,
		ExpiresAt: req.ExpiresAt,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, subscription)
}

// ProcessQRSubscription handles processing QR code subscription
func (h *SubscriptionHandler) ProcessQRSubscription(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req ProcessQRRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	subscription, err := h.subscriptionUC.SubscribeByQR(c.Request().Context(), user, req.QRData)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, subscription)
}

// ListSubscriptions handles retrieving the caller's subscriptions
func (h *SubscriptionHandler) ListSubscriptions(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	subscriptions, err := h.subscriptionUC.ListSubscriptions(c.Request().Context(), user)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, subscriptions)
}

// Unsubscribe handles deactivating a subscription
func (h *SubscriptionHandler) Unsubscribe(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	subscriptionID, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	subscription, err := h.subscriptionUC.Unsubscribe(c.Request().Context(), user, subscriptionID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, subscription)
}

// GenerateSubscriptionQR handles generating the subscription QR code of a doctor
func (h *SubscriptionHandler) GenerateSubscriptionQR(c echo.Context) error {
	doctorID, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	qrCode, err := h.subscriptionUC.DoctorQRCode(c.Request().Context(), doctorID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	c.Response().Header().Set("Content-Disposition", "inline; filename=subscription-qr.png")

	return c.Blob(http.StatusOK, "image/png", qrCode)
}
