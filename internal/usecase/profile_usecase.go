package usecase

import (
	"context"

	"github.com/guesssays/med-platform/internal/domain/entity"
)

// UpsertDoctorProfileInput updates the caller's doctor profile.
type UpsertDoctorProfileInput struct {
	User      *entity.User
	ClinicID  *uint
	Specialty string
	Title     string
}

// ProfileUsecase manages doctor and patient profiles.
type ProfileUsecase interface {
	UpsertDoctorProfile(ctx context.Context, input *UpsertDoctorProfileInput) (*entity.DoctorProfile, error)
	ListDoctors(ctx context.Context, clinicID *uint) ([]*entity.DoctorProfile, error)
	GetDoctor(ctx context.Context, id uint) (*entity.DoctorProfile, error)
	// GetPatientProfile returns the user's patient profile, creating it on first use.
	GetPatientProfile(ctx context.Context, user *entity.User) (*entity.PatientProfile, error)
}
