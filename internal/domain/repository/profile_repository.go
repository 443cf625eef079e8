package repository

import (
	"context"

	"github.com/guesssays/med-platform/internal/domain/entity"
	"github.com/guesssays/med-platform/internal/errors"
)

// Domain-specific errors for profile persistence.
var (
	// ErrDoctorNotFound is returned when a doctor profile is not found.
	ErrDoctorNotFound = errors.New("doctor profile not found")
	// ErrPatientNotFound is returned when a patient profile is not found.
	ErrPatientNotFound = errors.New("patient profile not found")
)

// DoctorFilter narrows doctor listings.
type DoctorFilter struct {
	ClinicID *uint
}

// DoctorRepository defines doctor profile persistence.
type DoctorRepository interface {
	// Upsert creates or updates the profile keyed by UserID.
	Upsert(ctx context.Context, profile *entity.DoctorProfile) error
	FindByID(ctx context.Context, id uint) (*entity.DoctorProfile, error)
	FindByUserID(ctx context.Context, userID uint) (*entity.DoctorProfile, error)
	List(ctx context.Context, filter DoctorFilter) ([]*entity.DoctorProfile, error)
}

// PatientRepository defines patient profile persistence.
type PatientRepository interface {
	// FindOrCreateByUserID returns the user's patient profile, creating it on first use.
	FindOrCreateByUserID(ctx context.Context, userID uint) (*entity.PatientProfile, error)
	FindByID(ctx context.Context, id uint) (*entity.PatientProfile, error)
}
