package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "github.com/guesssays/med-platform/internal/delivery/context"
	"github.com/guesssays/med-platform/internal/domain/entity"
	domainerrors "github.com/guesssays/med-platform/internal/domain/errors"
	"github.com/guesssays/med-platform/internal/domain/repository"
	"github.com/guesssays/med-platform/internal/domain/service"
	"github.com/guesssays/med-platform/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type appointmentService struct {
	txManager       repository.TransactionManager
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	patientRepo     repository.PatientRepository
	publisher       service.EventPublisher
	logger          *slog.Logger
	now             func() time.Time
}

// AppointmentServiceParams holds dependencies for AppointmentService, injected by Fx.
type AppointmentServiceParams struct {
	fx.In

	TxManager       repository.TransactionManager
	AppointmentRepo repository.AppointmentRepository
	DoctorRepo      repository.DoctorRepository
	PatientRepo     repository.PatientRepository
	Publisher       service.EventPublisher
	Logger          *slog.Logger
}

// NewAppointmentService creates a new appointment service instance.
func NewAppointmentService(params AppointmentServiceParams) usecase.AppointmentUsecase {
	return &appointmentService{
		txManager:       params.TxManager,
		appointmentRepo: params.AppointmentRepo,
		doctorRepo:      params.DoctorRepo,
		patientRepo:     params.PatientRepo,
		publisher:       params.Publisher,
		logger:          params.Logger,
		now:             time.Now,
	}
}

func (srv *appointmentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Book reserves [StartsAt, EndsAt) with a doctor for the calling patient.
func (srv *appointmentService) Book(ctx context.Context, input *usecase.BookAppointmentInput) (*entity.Appointment, error) {
	startsAt, endsAt := input.StartsAt.UTC(), input.EndsAt.UTC()
	if !startsAt.Before(endsAt) || !endsAt.After(srv.now()) {
		return nil, domainerrors.ErrInvalidTimeRange
	}

	var appointment *entity.Appointment
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		// Step 1: The doctor must exist.
		if _, err := findDoctor(ctx, repoFactory.NewDoctorRepository(), input.DoctorID); err != nil {
			return err
		}

		// Step 2: Resolve the caller's patient profile.
		patient, err := repoFactory.NewPatientRepository().FindOrCreateByUserID(ctx, input.User.ID)
		if err != nil {
			return errors.Wrap(err, "failed to load patient profile")
		}

		// Step 3: Reject intersecting slots. This is a read-then-write inside the
		// transaction and relies on its isolation level.
		appointmentRepo := repoFactory.NewAppointmentRepository()
		overlap, err := appointmentRepo.HasOverlap(ctx, input.DoctorID, startsAt, endsAt)
		if err != nil {
			return errors.Wrap(err, "failed to check appointment overlap")
		}
		if overlap {
			return domainerrors.ErrAppointmentConflict
		}

		appointment = &entity.Appointment{
			DoctorID:  input.DoctorID,
			PatientID: patient.ID,
			StartsAt:  startsAt,
			EndsAt:    endsAt,
			Status:    entity.AppointmentScheduled,
		}

		return appointmentRepo.Create(ctx, appointment)
	})
	if err != nil {
		if isClientError(err) {
			return nil, err
		}
		srv.log(ctx).Error("Failed to book appointment", slog.Any("doctorID", input.DoctorID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute booking transaction")
	}

	publishEvent(ctx, srv.publisher, srv.log(ctx), service.EventAppointmentBooked, appointmentPayload(appointment))

	return appointment, nil
}

// List scopes the result by the caller's role.
func (srv *appointmentService) List(ctx context.Context, user *entity.User) ([]*entity.Appointment, error) {
	filter := repository.AppointmentFilter{}

	switch entity.NormalizeRole(user.Role.String()) {
	case entity.RoleAdmin:
	case entity.RoleDoctor:
		doctor, err := srv.doctorRepo.FindByUserID(ctx, user.ID)
		if err != nil {
			if errors.Is(err, repository.ErrDoctorNotFound) {
				return []*entity.Appointment{}, nil
			}

			return nil, errors.Wrap(err, "failed to find doctor profile")
		}
		filter.DoctorID = &doctor.ID
	default:
		patient, err := srv.patientRepo.FindOrCreateByUserID(ctx, user.ID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load patient profile")
		}
		filter.PatientID = &patient.ID
	}

	appointments, err := srv.appointmentRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list appointments")
	}

	return appointments, nil
}

// Cancel is idempotent. Appointments the caller may not see are reported as missing.
func (srv *appointmentService) Cancel(ctx context.Context, user *entity.User, appointmentID uint) (*entity.Appointment, error) {
	appointment, err := srv.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, repository.ErrAppointmentNotFound) {
			return nil, domainerrors.ErrAppointmentNotFound
		}

		return nil, errors.Wrap(err, "failed to find appointment")
	}

	allowed, err := srv.canManage(ctx, user, appointment)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, domainerrors.ErrAppointmentNotFound
	}

	switch appointment.Status {
	case entity.AppointmentCancelled:
		return appointment, nil
	case entity.AppointmentCompleted:
		return nil, domainerrors.ErrConflict.WithDetails("completed appointments cannot be cancelled")
	}

	if err := srv.appointmentRepo.UpdateStatus(ctx, appointment.ID, entity.AppointmentCancelled); err != nil {
		return nil, errors.Wrap(err, "failed to cancel appointment")
	}
	appointment.Status = entity.AppointmentCancelled

	publishEvent(ctx, srv.publisher, srv.log(ctx), service.EventAppointmentCancelled, appointmentPayload(appointment))
	srv.log(ctx).Info("Appointment cancelled", slog.Any("appointmentID", appointment.ID), slog.Any("userID", user.ID))

	return appointment, nil
}

func (srv *appointmentService) canManage(ctx context.Context, user *entity.User, appointment *entity.Appointment) (bool, error) {
	switch entity.NormalizeRole(user.Role.String()) {
	case entity.RoleAdmin:
		return true, nil
	case entity.RoleDoctor:
		doctor, err := srv.doctorRepo.FindByUserID(ctx, user.ID)
		if err != nil {
			if errors.Is(err, repository.ErrDoctorNotFound) {
				return false, nil
			}

			return false, errors.Wrap(err, "failed to find doctor profile")
		}

		return doctor.ID == appointment.DoctorID, nil
	default:
		patient, err := srv.patientRepo.FindOrCreateByUserID(ctx, user.ID)
		if err != nil {
			return false, errors.Wrap(err, "failed to load patient profile")
		}

		return patient.ID == appointment.PatientID, nil
	}
}

func appointmentPayload(appointment *entity.Appointment) map[string]any {
	return map[string]any{
		"appointment_id": appointment.ID,
		"doctor_id":      appointment.DoctorID,
		"patient_id":     appointment.PatientID,
		"starts_at":      appointment.StartsAt.Format(time.RFC3339),
		"ends_at":        appointment.EndsAt.Format(time.RFC3339),
		"status":         string(appointment.Status),
	}
}
