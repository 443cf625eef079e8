package impl

import (
	"context"
	"log/slog"
	"math"
	"strings"

	deliverycontext "github.com/guesssays/med-platform/internal/delivery/context"
	"github.com/guesssays/med-platform/internal/domain/entity"
	domainerrors "github.com/guesssays/med-platform/internal/domain/errors"
	"github.com/guesssays/med-platform/internal/domain/repository"
	"github.com/guesssays/med-platform/internal/domain/service"
	"github.com/guesssays/med-platform/internal/usecase"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

const minorUnitDigits = 2

var maxAmountMinor = decimal.NewFromInt(math.MaxInt64)

type paymentService struct {
	paymentRepo repository.PaymentRepository
	publisher   service.EventPublisher
	logger      *slog.Logger
}

// PaymentServiceParams holds dependencies for PaymentService, injected by Fx.
type PaymentServiceParams struct {
	fx.In

	PaymentRepo repository.PaymentRepository
	Publisher   service.EventPublisher
	Logger      *slog.Logger
}

// NewPaymentService creates a new payment service instance.
func NewPaymentService(params PaymentServiceParams) usecase.PaymentUsecase {
	return &paymentService{
		paymentRepo: params.PaymentRepo,
		publisher:   params.Publisher,
		logger:      params.Logger,
	}
}

func (srv *paymentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreatePayment records a pending payment for the caller.
func (srv *paymentService) CreatePayment(ctx context.Context, input *usecase.CreatePaymentInput) (*entity.Payment, error) {
	amountMinor, err := parseAmountMinor(input.Amount)
	if err != nil {
		return nil, err
	}

	currency, err := normalizeCurrency(input.Currency)
	if err != nil {
		return nil, err
	}

	payment := &entity.Payment{
		UserID:      input.User.ID,
		Provider:    strings.TrimSpace(input.Provider),
		AmountMinor: amountMinor,
		Currency:    currency,
		Status:      entity.PaymentPending,
	}
	if err := srv.paymentRepo.Create(ctx, payment); err != nil {
		srv.log(ctx).Error("Failed to create payment", slog.Any("userID", input.User.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create payment")
	}

	return payment, nil
}

// ListPayments returns the caller's payments.
func (srv *paymentService) ListPayments(ctx context.Context, user *entity.User) ([]*entity.Payment, error) {
	payments, err := srv.paymentRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list payments")
	}

	return payments, nil
}

// UpdatePaymentStatus moves a payment to a new settlement state and emits an event.
func (srv *paymentService) UpdatePaymentStatus(ctx context.Context, paymentID uint, rawStatus string) (*entity.Payment, error) {
	status := entity.PaymentStatus(strings.ToLower(strings.TrimSpace(rawStatus)))
	if !status.IsValid() {
		return nil, domainerrors.ErrInvalidPaymentStatus
	}

	payment, err := srv.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return nil, domainerrors.ErrPaymentNotFound
		}

		return nil, errors.Wrap(err, "failed to find payment")
	}

	if payment.Status == status {
		return payment, nil
	}

	if err := srv.paymentRepo.UpdateStatus(ctx, payment.ID, status); err != nil {
		return nil, errors.Wrap(err, "failed to update payment status")
	}
	previous := payment.Status
	payment.Status = status

	publishEvent(ctx, srv.publisher, srv.log(ctx), service.EventPaymentStatusChanged, map[string]any{
		"payment_id":   payment.ID,
		"user_id":      payment.UserID,
		"from":         string(previous),
		"to":           string(status),
		"amount_minor": payment.AmountMinor,
		"currency":     payment.Currency,
	})

	return payment, nil
}

// parseAmountMinor converts "150000.50" into 15000050 minor units.
func parseAmountMinor(raw string) (int64, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return 0, domainerrors.ErrInvalidAmount.WithDetails("amount must be a decimal number")
	}
	if !amount.IsPositive() {
		return 0, domainerrors.ErrInvalidAmount.WithDetails("amount must be greater than zero")
	}
	if !amount.Equal(amount.Truncate(minorUnitDigits)) {
		return 0, domainerrors.ErrInvalidAmount.WithDetails("amount must have at most two decimal places")
	}

	minor := amount.Shift(minorUnitDigits)
	if minor.GreaterThan(maxAmountMinor) {
		return 0, domainerrors.ErrInvalidAmount.WithDetails("amount is too large")
	}

	return minor.IntPart(), nil
}

func normalizeCurrency(raw string) (string, error) {
	currency := strings.ToUpper(strings.TrimSpace(raw))
	if currency == "" {
		return entity.DefaultCurrency, nil
	}
	if len(currency) != 3 {
		return "", domainerrors.ErrValidationFailed.WithDetails("currency must be a 3-letter ISO code")
	}
	for _, r := range currency {
		if r < 'A' || r > 'Z' {
			return "", domainerrors.ErrValidationFailed.WithDetails("currency must be a 3-letter ISO code")
		}
	}

	return currency, nil
}
