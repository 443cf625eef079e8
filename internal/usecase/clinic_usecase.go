package usecase

import (
	"context"

	"github.com/guesssays/med-platform/internal/domain/entity"
)

// CreateClinicInput describes a new clinic. The slug is derived from Name.
type CreateClinicInput struct {
	Owner       *entity.User
	Name        string
	Address     string
	Phone       string
	Description string
}

// ClinicUsecase manages clinics.
type ClinicUsecase interface {
	CreateClinic(ctx context.Context, input *CreateClinicInput) (*entity.Clinic, error)
	ListClinics(ctx context.Context) ([]*entity.Clinic, error)
	GetClinic(ctx context.Context, slug string) (*entity.Clinic, error)
}
