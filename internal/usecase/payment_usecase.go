package usecase

import (
	"context"

	"github.com/guesssays/med-platform/internal/domain/entity"
)

// CreatePaymentInput records a payment. Amount is a decimal string with at most two places.
type CreatePaymentInput struct {
	User     *entity.User
	Provider string
	Amount   string
	Currency string
}

// PaymentUsecase manages payment records.
type PaymentUsecase interface {
	CreatePayment(ctx context.Context, input *CreatePaymentInput) (*entity.Payment, error)
	ListPayments(ctx context.Context, user *entity.User) ([]*entity.Payment, error)
	UpdatePaymentStatus(ctx context.Context, paymentID uint, rawStatus string) (*entity.Payment, error)
}
