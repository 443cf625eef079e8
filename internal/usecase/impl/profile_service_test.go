package impl

import (
	"context"
	"testing"

	"github.com/guesssays/med-platform/internal/domain/entity"
	domainerrors "github.com/guesssays/med-platform/internal/domain/errors"
	"github.com/guesssays/med-platform/internal/infra/persistence/postgres"
	"github.com/guesssays/med-platform/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (env *testEnv) profileService() usecase.ProfileUsecase {
	return NewProfileService(ProfileServiceParams{
		ClinicRepo:  postgres.NewClinicRepository(env.db),
		DoctorRepo:  postgres.NewDoctorRepository(env.db),
		PatientRepo: postgres.NewPatientRepository(env.db),
		Logger:      env.logger,
	})
}

// newDoctor registers a DOCTOR account with a filled-in profile.
func (env *testEnv) newDoctor(t *testing.T, email string) (*entity.User, *entity.DoctorProfile) {
	t.Helper()

	user := env.registerAs(t, email, entity.RoleDoctor)
	profile, err := env.profileService().UpsertDoctorProfile(context.Background(), &usecase.UpsertDoctorProfileInput{
		User:      user,
		Specialty: "cardiology",
	})
	require.NoError(t, err)

	return user, profile
}

func TestProfileService_UpsertDoctorProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	srv := env.profileService()
	clinic, err := env.clinicService().CreateClinic(ctx, &usecase.CreateClinicInput{Name: "Heart Center"})
	require.NoError(t, err)

	user, created := env.newDoctor(t, "doc@x.com")
	assert.Nil(t, created.ClinicID)
	assert.Equal(t, "doc@x.com", created.Email)

	updated, err := srv.UpsertDoctorProfile(ctx, &usecase.UpsertDoctorProfileInput{
		User:      user,
		ClinicID:  &clinic.ID,
		Specialty: " surgery ",
		Title:     "MD",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "surgery", updated.Specialty)
	require.NotNil(t, updated.ClinicID)
	assert.Equal(t, clinic.ID, *updated.ClinicID)

	missing := uint(4242)
	_, err = srv.UpsertDoctorProfile(ctx, &usecase.UpsertDoctorProfileInput{User: user, ClinicID: &missing})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	byClinic, err := srv.ListDoctors(ctx, &clinic.ID)
	require.NoError(t, err)
	assert.Len(t, byClinic, 1)

	_, err = srv.GetDoctor(ctx, 9999)
	assert.True(t, errors.Is(err, domainerrors.ErrDoctorNotFound))
}

func TestProfileService_GetPatientProfileIsStable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user, _ := env.register(t, "patient@x.com")

	first, err := env.profileService().GetPatientProfile(ctx, user)
	require.NoError(t, err)
	second, err := env.profileService().GetPatientProfile(ctx, user)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "patient@x.com", second.Email)
}
