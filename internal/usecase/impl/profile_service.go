package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "github.com/guesssays/med-platform/internal/delivery/context"
	"github.com/guesssays/med-platform/internal/domain/entity"
	domainerrors "github.com/guesssays/med-platform/internal/domain/errors"
	"github.com/guesssays/med-platform/internal/domain/repository"
	"github.com/guesssays/med-platform/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type profileService struct {
	clinicRepo  repository.ClinicRepository
	doctorRepo  repository.DoctorRepository
	patientRepo repository.PatientRepository
	logger      *slog.Logger
}

// ProfileServiceParams holds dependencies for ProfileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	ClinicRepo  repository.ClinicRepository
	DoctorRepo  repository.DoctorRepository
	PatientRepo repository.PatientRepository
	Logger      *slog.Logger
}

// NewProfileService creates a new profile service instance.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		clinicRepo:  params.ClinicRepo,
		doctorRepo:  params.DoctorRepo,
		patientRepo: params.PatientRepo,
		logger:      params.Logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// UpsertDoctorProfile creates or updates the caller's doctor profile.
func (srv *profileService) UpsertDoctorProfile(ctx context.Context, input *usecase.UpsertDoctorProfileInput) (*entity.DoctorProfile, error) {
	if input.ClinicID != nil {
		if _, err := srv.clinicRepo.FindByID(ctx, *input.ClinicID); err != nil {
			if errors.Is(err, repository.ErrClinicNotFound) {
				return nil, domainerrors.ErrValidationFailed.WithDetails("clinic_id does not reference an existing clinic")
			}

			return nil, errors.Wrap(err, "failed to find clinic")
		}
	}

	profile := &entity.DoctorProfile{
		UserID:    input.User.ID,
		ClinicID:  input.ClinicID,
		Specialty: strings.TrimSpace(input.Specialty),
		Title:     strings.TrimSpace(input.Title),
		Email:     input.User.Email,
	}
	if err := srv.doctorRepo.Upsert(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrClinicNotFound) {
			return nil, domainerrors.ErrValidationFailed.WithDetails("clinic_id does not reference an existing clinic")
		}
		srv.log(ctx).Error("Failed to upsert doctor profile", slog.Any("userID", input.User.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to upsert doctor profile")
	}

	return profile, nil
}

// ListDoctors returns doctor profiles, optionally restricted to one clinic.
func (srv *profileService) ListDoctors(ctx context.Context, clinicID *uint) ([]*entity.DoctorProfile, error) {
	doctors, err := srv.doctorRepo.List(ctx, repository.DoctorFilter{ClinicID: clinicID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list doctors")
	}

	return doctors, nil
}

// GetDoctor returns a single doctor profile.
func (srv *profileService) GetDoctor(ctx context.Context, id uint) (*entity.DoctorProfile, error) {
	return findDoctor(ctx, srv.doctorRepo, id)
}

// GetPatientProfile returns the user's patient profile, creating it on first use.
func (srv *profileService) GetPatientProfile(ctx context.Context, user *entity.User) (*entity.PatientProfile, error) {
	profile, err := srv.patientRepo.FindOrCreateByUserID(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load patient profile")
	}

	return profile, nil
}

func findDoctor(ctx context.Context, doctorRepo repository.DoctorRepository, id uint) (*entity.DoctorProfile, error) {
	doctor, err := doctorRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrDoctorNotFound) {
			return nil, domainerrors.ErrDoctorNotFound
		}

		return nil, errors.Wrap(err, "failed to find doctor")
	}

	return doctor, nil
}
