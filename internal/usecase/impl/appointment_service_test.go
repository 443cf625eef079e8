package impl

import (
	"context"
	"testing"
	"time"

	"github.com/guesssays/med-platform/internal/domain/entity"
	domainerrors "github.com/guesssays/med-platform/internal/domain/errors"
	"github.com/guesssays/med-platform/internal/domain/service"
	"github.com/guesssays/med-platform/internal/infra/persistence/postgres"
	mockSvc "github.com/guesssays/med-platform/internal/mocks/service"
	"github.com/guesssays/med-platform/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func (env *testEnv) appointmentService(publisher service.EventPublisher) usecase.AppointmentUsecase {
	return NewAppointmentService(AppointmentServiceParams{
		TxManager:       env.txManager,
		AppointmentRepo: postgres.NewAppointmentRepository(env.db),
		DoctorRepo:      postgres.NewDoctorRepository(env.db),
		PatientRepo:     postgres.NewPatientRepository(env.db),
		Publisher:       publisher,
		Logger:          env.logger,
	})
}

func TestAppointmentService_Book(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	srv := env.appointmentService(env.publisher)
	_, doctor := env.newDoctor(t, "doc@x.com")
	patient, _ := env.register(t, "pat@x.com")

	start := time.Date(2030, 1, 10, 9, 0, 0, 0, time.UTC)
	booked, err := srv.Book(ctx, &usecase.BookAppointmentInput{User: patient, DoctorID: doctor.ID, StartsAt: start, EndsAt: start.Add(30 * time.Minute)})
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentScheduled, booked.Status)

	tests := []struct {
		name     string
		doctorID uint
		startsAt time.Time
		endsAt   time.Time
		want     error
	}{
		{name: "overlapping slot", doctorID: doctor.ID, startsAt: start.Add(15 * time.Minute), endsAt: start.Add(45 * time.Minute), want: domainerrors.ErrAppointmentConflict},
		{name: "empty range", doctorID: doctor.ID, startsAt: start, endsAt: start, want: domainerrors.ErrInvalidTimeRange},
		{name: "reversed range", doctorID: doctor.ID, startsAt: start, endsAt: start.Add(-time.Hour), want: domainerrors.ErrInvalidTimeRange},
		{name: "slot in the past", doctorID: doctor.ID, startsAt: time.Date(2020, 1, 1, 9, 0, 0, 0, time.UTC), endsAt: time.Date(2020, 1, 1, 10, 0, 0, 0, time.UTC), want: domainerrors.ErrInvalidTimeRange},
		{name: "unknown doctor", doctorID: 9999, startsAt: start.Add(time.Hour), endsAt: start.Add(2 * time.Hour), want: domainerrors.ErrDoctorNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := srv.Book(ctx, &usecase.BookAppointmentInput{User: patient, DoctorID: tt.doctorID, StartsAt: tt.startsAt, EndsAt: tt.endsAt})
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}

	t.Run("back-to-back slot is free", func(t *testing.T) {
		_, err := srv.Book(ctx, &usecase.BookAppointmentInput{User: patient, DoctorID: doctor.ID, StartsAt: start.Add(30 * time.Minute), EndsAt: start.Add(time.Hour)})
		assert.NoError(t, err)
	})
}

func TestAppointmentService_ListIsScopedByRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	srv := env.appointmentService(env.publisher)
	doctorUser, doctor := env.newDoctor(t, "doc@x.com")
	alice, _ := env.register(t, "alice@x.com")
	bob, _ := env.register(t, "bob@x.com")
	admin := env.registerAs(t, "admin@x.com", entity.RoleAdmin)

	start := time.Date(2030, 2, 1, 9, 0, 0, 0, time.UTC)
	for i, patient := range []*entity.User{alice, bob} {
		slot := start.Add(time.Duration(i) * time.Hour)
		_, err := srv.Book(ctx, &usecase.BookAppointmentInput{User: patient, DoctorID: doctor.ID, StartsAt: slot, EndsAt: slot.Add(time.Hour)})
		require.NoError(t, err)
	}

	mine, err := srv.List(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	forDoctor, err := srv.List(ctx, doctorUser)
	require.NoError(t, err)
	assert.Len(t, forDoctor, 2)

	all, err := srv.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	profileless := env.registerAs(t, "newdoc@x.com", entity.RoleDoctor)
	none, err := srv.List(ctx, profileless)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAppointmentService_Cancel(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	publisher := mockSvc.NewMockEventPublisher(t)
	publisher.EXPECT().
		Publish(mock.Anything, mock.MatchedBy(func(event *service.Event) bool { return event.Type == service.EventAppointmentBooked })).
		Return(nil).
		Once()
	publisher.EXPECT().
		Publish(mock.Anything, mock.MatchedBy(func(event *service.Event) bool { return event.Type == service.EventAppointmentCancelled })).
		Return(nil).
		Once()

	srv := env.appointmentService(publisher)
	_, doctor := env.newDoctor(t, "doc@x.com")
	owner, _ := env.register(t, "owner@x.com")
	stranger, _ := env.register(t, "stranger@x.com")

	start := time.Date(2030, 3, 1, 9, 0, 0, 0, time.UTC)
	booked, err := srv.Book(ctx, &usecase.BookAppointmentInput{User: owner, DoctorID: doctor.ID, StartsAt: start, EndsAt: start.Add(time.Hour)})
	require.NoError(t, err)

	_, err = srv.Cancel(ctx, stranger, booked.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrAppointmentNotFound))

	cancelled, err := srv.Cancel(ctx, owner, booked.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentCancelled, cancelled.Status)

	// A second cancel is a no-op and publishes nothing.
	again, err := srv.Cancel(ctx, owner, booked.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentCancelled, again.Status)

	// The freed slot can be booked again.
	_, err = env.appointmentService(env.publisher).Book(ctx, &usecase.BookAppointmentInput{User: stranger, DoctorID: doctor.ID, StartsAt: start, EndsAt: start.Add(time.Hour)})
	assert.NoError(t, err)
}
