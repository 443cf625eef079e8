package postgres

import (
	"context"

	"github.com/guesssays/med-platform/internal/domain/entity"
	domainerrors "github.com/guesssays/med-platform/internal/domain/errors"
	"github.com/guesssays/med-platform/internal/domain/repository"
	"github.com/guesssays/med-platform/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository is the constructor for paymentRepository.
func NewPaymentRepository(db *gorm.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func (repo *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	paymentM := fromPaymentDomain(payment)

	if err := repo.db.WithContext(ctx).Create(paymentM).Error; err != nil {
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrInvalidAmount
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create payment")
	}

	payment.ID = paymentM.ID
	payment.CreatedAt = paymentM.CreatedAt

	return nil
}

func (repo *paymentRepository) FindByID(ctx context.Context, id uint) (*entity.Payment, error) {
	var paymentM model.PaymentModel
	if err := repo.db.WithContext(ctx).First(&paymentM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPaymentNotFound
		}

		return nil, errors.Wrap(err, "failed to find payment")
	}

	return toPaymentDomain(&paymentM), nil
}

func (repo *paymentRepository) ListByUser(ctx context.Context, userID uint) ([]*entity.Payment, error) {
	var paymentModels []*model.PaymentModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&paymentModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list payments")
	}

	payments := make([]*entity.Payment, 0, len(paymentModels))
	for _, paymentM := range paymentModels {
		payments = append(payments, toPaymentDomain(paymentM))
	}

	return payments, nil
}

func (repo *paymentRepository) UpdateStatus(ctx context.Context, id uint, status entity.PaymentStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.PaymentModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update payment status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPaymentNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toPaymentDomain(data *model.PaymentModel) *entity.Payment {
	if data == nil {
		return nil
	}

	return &entity.Payment{
		ID:          data.ID,
		UserID:      data.UserID,
		Provider:    data.Provider,
		AmountMinor: data.AmountMinor,
		Currency:    data.Currency,
		Status:      entity.PaymentStatus(data.Status),
		CreatedAt:   data.CreatedAt,
	}
}

func fromPaymentDomain(data *entity.Payment) *model.PaymentModel {
	if data == nil {
		return nil
	}

	return &model.PaymentModel{
		ID:          data.ID,
		UserID:      data.UserID,
		Provider:    data.Provider,
		AmountMinor: data.AmountMinor,
		Currency:    data.Currency,
		Status:      string(data.Status),
		CreatedAt:   data.CreatedAt,
	}
}
