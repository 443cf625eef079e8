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

// subscriptionRepository implements the domain.SubscriptionRepository interface.
type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository.
func NewSubscriptionRepository(db *gorm.DB) repository.SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// CreateSubscription persists a new subscription relationship.
func (repo *subscriptionRepository) CreateSubscription(ctx context.Context, subscription *entity.Subscription) error {
	subscriptionM := fromSubscriptionDomain(subscription)

	if err := repo.db.WithContext(ctx).Create(subscriptionM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrDoctorNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create subscription")
	}

	subscription.ID = subscriptionM.ID

	return nil
}

// FindSubscriptionByID retrieves a subscription by its unique ID.
func (repo *subscriptionRepository) FindSubscriptionByID(ctx context.Context, id uint) (*entity.Subscription, error) {
	var subscriptionM model.SubscriptionModel
	if err := repo.db.WithContext(ctx).First(&subscriptionM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSubscriptionNotFound
		}

		return nil, errors.Wrap(err, "failed to find subscription")
	}

	return toSubscriptionDomain(&subscriptionM), nil
}

// FindActiveSubscription retrieves the active subscription of a patient to a doctor.
func (repo *subscriptionRepository) FindActiveSubscription(ctx context.Context, patientID, doctorID uint) (*entity.Subscription, error) {
	var subscriptionM model.SubscriptionModel
	err := repo.db.WithContext(ctx).
		Where("patient_id = ? AND doctor_id = ? AND is_active = ?", patientID, doctorID, true).
		Order("id DESC").
		First(&subscriptionM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSubscriptionNotFound
		}

		return nil, errors.Wrap(err, "failed to find active subscription")
	}

	return toSubscriptionDomain(&subscriptionM), nil
}

// FindSubscriptionsByPatient retrieves all subscriptions for a specific patient.
func (repo *subscriptionRepository) FindSubscriptionsByPatient(ctx context.Context, patientID uint) ([]*entity.Subscription, error) {
	var subscriptionModels []*model.SubscriptionModel
	err := repo.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("started_at DESC").
		Find(&subscriptionModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list subscriptions")
	}

	subscriptions := make([]*entity.Subscription, 0, len(subscriptionModels))
	for _, subscriptionM := range subscriptionModels {
		subscriptions = append(subscriptions, toSubscriptionDomain(subscriptionM))
	}

	return subscriptions, nil
}

// UpdateSubscriptionStatus updates the active status of a subscription.
func (repo *subscriptionRepository) UpdateSubscriptionStatus(ctx context.Context, id uint, isActive bool) error {
	result := repo.db.WithContext(ctx).
		Model(&model.SubscriptionModel{}).
		Where("id = ?", id).
		Update("is_active", isActive)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update subscription status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrSubscriptionNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toSubscriptionDomain(data *model.SubscriptionModel) *entity.Subscription {
	if data == nil {
		return nil
	}

	return &entity.Subscription{
		ID:        data.ID,
		PatientID: data.PatientID,
		DoctorID:  data.DoctorID,
		IsActive:  data.IsActive,
		StartedAt: data.StartedAt,
		ExpiresAt: data.ExpiresAt,
	}
}

func fromSubscriptionDomain(data *entity.Subscription) *model.SubscriptionModel {
	if data == nil {
		return nil
	}

	subscriptionM := &model.SubscriptionModel{
		ID:        data.ID,
		PatientID: data.PatientID,
		DoctorID:  data.DoctorID,
		IsActive:  data.IsActive,
		StartedAt: data.StartedAt.UTC(),
	}
	if data.ExpiresAt != nil {
		expiresAt := data.ExpiresAt.UTC()
		subscriptionM.ExpiresAt = &expiresAt
	}

	return subscriptionM
}
