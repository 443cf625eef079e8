package handler

import (
	"log/slog"

	"github.com/guesssays/med-platform/internal/delivery/api/response"
	"github.com/guesssays/med-platform/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// PaymentHandlerParams holds dependencies for PaymentHandler, injected by Fx.
type PaymentHandlerParams struct {
	fx.In

	PaymentUC usecase.PaymentUsecase
	Logger    *slog.Logger
}

// PaymentHandler holds dependencies for payment-related handlers
type PaymentHandler struct {
	paymentUC usecase.PaymentUsecase
	logger    *slog.Logger
}

// NewPaymentHandler is the constructor for PaymentHandler
func NewPaymentHandler(params PaymentHandlerParams) *PaymentHandler {
	return &PaymentHandler{
		paymentUC: params.PaymentUC,
		logger:    params.Logger,
	}
}

// CreatePaymentRequest carries the amount as a decimal string, e.g. "150000.00".
type CreatePaymentRequest struct {
	Provider string `json:"provider" validate:"required,max=64"`
	Amount   string `json:"amount" validate:"required"`
	Currency string `json:"currency" validate:"omitempty,len=3"`
}

type UpdatePaymentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid failed refunded"`
}

// CreatePayment records a pending payment for the caller
func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req CreatePaymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	payment, err := h.paymentUC.CreatePayment(c.Request().Context(), &usecase.CreatePaymentInput{
		User:     user,
		Provider: req.Provider,
		Amount:   req.Amount,
		Currency: req.Currency,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, toPaymentResponse(payment))
}

func (h *PaymentHandler) ListPayments(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	payments, err := h.paymentUC.ListPayments(c.Request().Context(), user)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, mapAll(payments, toPaymentResponse))
}

// UpdatePaymentStatus lets an admin settle or refund a payment
func (h *PaymentHandler) UpdatePaymentStatus(c echo.Context) error {
	paymentID, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req UpdatePaymentStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	payment, err := h.paymentUC.UpdatePaymentStatus(c.Request().Context(), paymentID, req.Status)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, toPaymentResponse(payment))
}
