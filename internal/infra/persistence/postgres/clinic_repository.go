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

type clinicRepository struct {
	db *gorm.DB
}

// NewClinicRepository is the constructor for clinicRepository.
func NewClinicRepository(db *gorm.DB) repository.ClinicRepository {
	return &clinicRepository{db: db}
}

func (repo *clinicRepository) Create(ctx context.Context, clinic *entity.Clinic) error {
	clinicM := fromClinicDomain(clinic)

	if err := repo.db.WithContext(ctx).Create(clinicM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrClinicSlugTaken
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create clinic")
	}

	clinic.ID = clinicM.ID
	clinic.CreatedAt = clinicM.CreatedAt

	return nil
}

func (repo *clinicRepository) FindByID(ctx context.Context, id uint) (*entity.Clinic, error) {
	var clinicM model.ClinicModel
	if err := repo.db.WithContext(ctx).First(&clinicM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrClinicNotFound
		}

		return nil, errors.Wrap(err, "failed to find clinic by id")
	}

	return toClinicDomain(&clinicM), nil
}

func (repo *clinicRepository) FindBySlug(ctx context.Context, slug string) (*entity.Clinic, error) {
	var clinicM model.ClinicModel
	if err := repo.db.WithContext(ctx).Where("slug = ?", slug).First(&clinicM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrClinicNotFound
		}

		return nil, errors.Wrap(err, "failed to find clinic by slug")
	}

	return toClinicDomain(&clinicM), nil
}

func (repo *clinicRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.ClinicModel{}).
		Where("name = ?", name).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to count clinics by name")
	}

	return count > 0, nil
}

func (repo *clinicRepository) List(ctx context.Context) ([]*entity.Clinic, error) {
	var clinicModels []*model.ClinicModel
	if err := repo.db.WithContext(ctx).Order("name ASC").Find(&clinicModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list clinics")
	}

	clinics := make([]*entity.Clinic, 0, len(clinicModels))
	for _, clinicM := range clinicModels {
		clinics = append(clinics, toClinicDomain(clinicM))
	}

	return clinics, nil
}

// --- Mapper Functions ---

func toClinicDomain(data *model.ClinicModel) *entity.Clinic {
	if data == nil {
		return nil
	}

	return &entity.Clinic{
		ID:          data.ID,
		Name:        data.Name,
		Slug:        data.Slug,
		Address:     data.Address,
		Phone:       data.Phone,
		Description: data.Description,
		OwnerID:     data.OwnerID,
		CreatedAt:   data.CreatedAt,
	}
}

func fromClinicDomain(data *entity.Clinic) *model.ClinicModel {
	if data == nil {
		return nil
	}

	return &model.ClinicModel{
		ID:          data.ID,
		Name:        data.Name,
		Slug:        data.Slug,
		Address:     data.Address,
		Phone:       data.Phone,
		Description: data.Description,
		OwnerID:     data.OwnerID,
		CreatedAt:   data.CreatedAt,
	}
}
