package impl

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	deliverycontext "github.com/guesssays/med-platform/internal/delivery/context"
	"github.com/guesssays/med-platform/internal/domain/entity"
	domainerrors "github.com/guesssays/med-platform/internal/domain/errors"
	"github.com/guesssays/med-platform/internal/domain/repository"
	"github.com/guesssays/med-platform/internal/usecase"

	"github.com/gosimple/slug"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// maxSlugAttempts bounds the "-2", "-3", ... suffix search for a free slug.
const maxSlugAttempts = 20

type clinicService struct {
	clinicRepo repository.ClinicRepository
	logger     *slog.Logger
}

// ClinicServiceParams holds dependencies for ClinicService, injected by Fx.
type ClinicServiceParams struct {
	fx.In

	ClinicRepo repository.ClinicRepository
	Logger     *slog.Logger
}

// NewClinicService creates a new clinic service instance.
func NewClinicService(params ClinicServiceParams) usecase.ClinicUsecase {
	return &clinicService{
		clinicRepo: params.ClinicRepo,
		logger:     params.Logger,
	}
}

func (srv *clinicService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateClinic rejects duplicate names and derives a unique slug from the name.
func (srv *clinicService) CreateClinic(ctx context.Context, input *usecase.CreateClinicInput) (*entity.Clinic, error) {
	name := strings.TrimSpace(input.Name)

	exists, err := srv.clinicRepo.ExistsByName(ctx, name)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check clinic name")
	}
	if exists {
		return nil, domainerrors.ErrClinicAlreadyExists
	}

	base := slug.Make(name)
	if base == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("clinic name must contain letters or digits")
	}

	clinic := &entity.Clinic{
		Name:        name,
		Address:     input.Address,
		Phone:       input.Phone,
		Description: input.Description,
	}
	if input.Owner != nil {
		ownerID := input.Owner.ID
		clinic.OwnerID = &ownerID
	}

	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		clinic.Slug = slugCandidate(base, attempt)

		err := srv.clinicRepo.Create(ctx, clinic)
		if err == nil {
			srv.log(ctx).Info("Clinic created", slog.Any("clinicID", clinic.ID), slog.String("slug", clinic.Slug))

			return clinic, nil
		}
		if !errors.Is(err, repository.ErrClinicSlugTaken) {
			return nil, errors.Wrap(err, "failed to create clinic")
		}
	}

	srv.log(ctx).Warn("No free clinic slug", slog.String("base", base))

	return nil, domainerrors.ErrConflict.WithDetails("could not allocate a unique clinic slug")
}

// ListClinics returns every clinic.
func (srv *clinicService) ListClinics(ctx context.Context) ([]*entity.Clinic, error) {
	clinics, err := srv.clinicRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list clinics")
	}

	return clinics, nil
}

// GetClinic looks a clinic up by slug.
func (srv *clinicService) GetClinic(ctx context.Context, slugValue string) (*entity.Clinic, error) {
	clinic, err := srv.clinicRepo.FindBySlug(ctx, slugValue)
	if err != nil {
		if errors.Is(err, repository.ErrClinicNotFound) {
			return nil, domainerrors.ErrClinicNotFound
		}

		return nil, errors.Wrap(err, "failed to find clinic")
	}

	return clinic, nil
}

func slugCandidate(base string, attempt int) string {
	if attempt == 1 {
		return base
	}

	return base + "-" + strconv.Itoa(attempt)
}
