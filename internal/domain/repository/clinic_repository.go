package repository

import (
	"context"

	"github.com/guesssays/med-platform/internal/domain/entity"
	"github.com/guesssays/med-platform/internal/errors"
)

// Domain-specific errors for clinic persistence.
var (
	// ErrClinicNotFound is returned when a clinic is not found.
	ErrClinicNotFound = errors.New("clinic not found")
	// ErrClinicSlugTaken is returned when the slug is already used by another clinic.
	ErrClinicSlugTaken = errors.New("clinic slug already taken")
)

// ClinicRepository defines clinic persistence.
type ClinicRepository interface {
	Create(ctx context.Context, clinic *entity.Clinic) error
	FindByID(ctx context.Context, id uint) (*entity.Clinic, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Clinic, error)
	// ExistsByName reports whether a clinic with exactly this name exists.
	ExistsByName(ctx context.Context, name string) (bool, error)
	List(ctx context.Context) ([]*entity.Clinic, error)
}
