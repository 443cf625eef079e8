package postgres

import (
	"context"

	"github.com/guesssays/med-platform/internal/domain/entity"
	domainerrors "github.com/guesssays/med-platform/internal/domain/errors"
	"github.com/guesssays/med-platform/internal/domain/repository"
	"github.com/guesssays/med-platform/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type doctorRepository struct {
	db *gorm.DB
}

// NewDoctorRepository is the constructor for doctorRepository.
func NewDoctorRepository(db *gorm.DB) repository.DoctorRepository {
	return &doctorRepository{db: db}
}

// Upsert creates the caller's profile or updates clinic, specialty and title in place.
func (repo *doctorRepository) Upsert(ctx context.Context, profile *entity.DoctorProfile) error {
	profileM := fromDoctorDomain(profile)

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"clinic_id", "specialty", "title", "updated_at"}),
		}).
		Create(profileM).Error
	if err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrClinicNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert doctor profile")
	}

	stored, err := repo.FindByUserID(ctx, profile.UserID)
	if err != nil {
		return err
	}
	*profile = *stored

	return nil
}

func (repo *doctorRepository) FindByID(ctx context.Context, id uint) (*entity.DoctorProfile, error) {
	var profileM model.DoctorProfileModel
	err := repo.db.WithContext(ctx).
		Preload("User").
		First(&profileM, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDoctorNotFound
		}

		return nil, errors.Wrap(err, "failed to find doctor profile by id")
	}

	return toDoctorDomain(&profileM), nil
}

func (repo *doctorRepository) FindByUserID(ctx context.Context, userID uint) (*entity.DoctorProfile, error) {
	var profileM model.DoctorProfileModel
	err := repo.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&profileM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDoctorNotFound
		}

		return nil, errors.Wrap(err, "failed to find doctor profile by user id")
	}

	return toDoctorDomain(&profileM), nil
}

func (repo *doctorRepository) List(ctx context.Context, filter repository.DoctorFilter) ([]*entity.DoctorProfile, error) {
	query := repo.db.WithContext(ctx).Preload("User").Order("id ASC")
	if filter.ClinicID != nil {
		query = query.Where("clinic_id = ?", *filter.ClinicID)
	}

	var profileModels []*model.DoctorProfileModel
	if err := query.Find(&profileModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list doctor profiles")
	}

	profiles := make([]*entity.DoctorProfile, 0, len(profileModels))
	for _, profileM := range profileModels {
		profiles = append(profiles, toDoctorDomain(profileM))
	}

	return profiles, nil
}

type patientRepository struct {
	db *gorm.DB
}

// NewPatientRepository is the constructor for patientRepository.
func NewPatientRepository(db *gorm.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

// FindOrCreateByUserID is safe under concurrent first use: the insert ignores
// the unique conflict and the row is read back afterwards.
func (repo *patientRepository) FindOrCreateByUserID(ctx context.Context, userID uint) (*entity.PatientProfile, error) {
	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&model.PatientProfileModel{UserID: userID}).Error
	if err != nil {
		if isForeignKeyConstraintViolation(err) {
			return nil, repository.ErrUserNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to create patient profile")
	}

	var profileM model.PatientProfileModel
	err = repo.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&profileM).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to load patient profile")
	}

	return toPatientDomain(&profileM), nil
}

func (repo *patientRepository) FindByID(ctx context.Context, id uint) (*entity.PatientProfile, error) {
	var profileM model.PatientProfileModel
	if err := repo.db.WithContext(ctx).Preload("User").First(&profileM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPatientNotFound
		}

		return nil, errors.Wrap(err, "failed to find patient profile by id")
	}

	return toPatientDomain(&profileM), nil
}

// --- Mapper Functions ---

func toDoctorDomain(data *model.DoctorProfileModel) *entity.DoctorProfile {
	if data == nil {
		return nil
	}

	profile := &entity.DoctorProfile{
		ID:        data.ID,
		UserID:    data.UserID,
		ClinicID:  data.ClinicID,
		Specialty: data.Specialty,
		Title:     data.Title,
	}
	if data.User != nil {
		profile.Email = data.User.Email
	}

	return profile
}

func fromDoctorDomain(data *entity.DoctorProfile) *model.DoctorProfileModel {
	if data == nil {
		return nil
	}

	return &model.DoctorProfileModel{
		ID:        data.ID,
		UserID:    data.UserID,
		ClinicID:  data.ClinicID,
		Specialty: data.Specialty,
		Title:     data.Title,
	}
}

func toPatientDomain(data *model.PatientProfileModel) *entity.PatientProfile {
	if data == nil {
		return nil
	}

	profile := &entity.PatientProfile{
		ID:     data.ID,
		UserID: data.UserID,
	}
	if data.User != nil {
		profile.Email = data.User.Email
	}

	return profile
}
