package repository

import (
	"context"

	"github.com/guesssays/med-platform/internal/domain/entity"
	"github.com/guesssays/med-platform/internal/errors"
)

// ErrPaymentNotFound is returned when a payment is not found.
var ErrPaymentNotFound = errors.New("payment not found")

// PaymentRepository defines payment persistence.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByID(ctx context.Context, id uint) (*entity.Payment, error)
	ListByUser(ctx context.Context, userID uint) ([]*entity.Payment, error)
	UpdateStatus(ctx context.Context, id uint, status entity.PaymentStatus) error
}
