package postgres

import (
	"context"
	"time"

	"github.com/guesssays/med-platform/internal/domain/entity"
	domainerrors "github.com/guesssays/med-platform/internal/domain/errors"
	"github.com/guesssays/med-platform/internal/domain/repository"
	"github.com/guesssays/med-platform/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository is the constructor for appointmentRepository.
func NewAppointmentRepository(db *gorm.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (repo *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	appointmentM := fromAppointmentDomain(appointment)

	if err := repo.db.WithContext(ctx).Create(appointmentM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrDoctorNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create appointment")
	}

	appointment.ID = appointmentM.ID

	return nil
}

func (repo *appointmentRepository) FindByID(ctx context.Context, id uint) (*entity.Appointment, error) {
	var appointmentM model.AppointmentModel
	if err := repo.db.WithContext(ctx).First(&appointmentM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAppointmentNotFound
		}

		return nil, errors.Wrap(err, "failed to find appointment")
	}

	return toAppointmentDomain(&appointmentM), nil
}

func (repo *appointmentRepository) List(ctx context.Context, filter repository.AppointmentFilter) ([]*entity.Appointment, error) {
	query := repo.db.WithContext(ctx).Order("starts_at ASC")
	if filter.DoctorID != nil {
		query = query.Where("doctor_id = ?", *filter.DoctorID)
	}
	if filter.PatientID != nil {
		query = query.Where("patient_id = ?", *filter.PatientID)
	}

	var appointmentModels []*model.AppointmentModel
	if err := query.Find(&appointmentModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list appointments")
	}

	appointments := make([]*entity.Appointment, 0, len(appointmentModels))
	for _, appointmentM := range appointmentModels {
		appointments = append(appointments, toAppointmentDomain(appointmentM))
	}

	return appointments, nil
}

func (repo *appointmentRepository) HasOverlap(ctx context.Context, doctorID uint, startsAt, endsAt time.Time) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.AppointmentModel{}).
		Where("doctor_id = ? AND status = ? AND starts_at < ? AND ends_at > ?",
			doctorID, string(entity.AppointmentScheduled), endsAt.UTC(), startsAt.UTC()).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check appointment overlap")
	}

	return count > 0, nil
}

func (repo *appointmentRepository) UpdateStatus(ctx context.Context, id uint, status entity.AppointmentStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.AppointmentModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update appointment status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAppointmentNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toAppointmentDomain(data *model.AppointmentModel) *entity.Appointment {
	if data == nil {
		return nil
	}

	return &entity.Appointment{
		ID:        data.ID,
		DoctorID:  data.DoctorID,
		PatientID: data.PatientID,
		StartsAt:  data.StartsAt,
		EndsAt:    data.EndsAt,
		Status:    entity.AppointmentStatus(data.Status),
	}
}

func fromAppointmentDomain(data *entity.Appointment) *model.AppointmentModel {
	if data == nil {
		return nil
	}

	status := data.Status
	if status == "" {
		status = entity.AppointmentScheduled
	}

	return &model.AppointmentModel{
		ID:        data.ID,
		DoctorID:  data.DoctorID,
		PatientID: data.PatientID,
		StartsAt:  data.StartsAt.UTC(),
		EndsAt:    data.EndsAt.UTC(),
		Status:    string(status),
	}
}
