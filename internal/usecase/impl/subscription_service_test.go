package impl

import (
	"context"
	"testing"
	"time"

	domainerrors "github.com/guesssays/med-platform/internal/domain/errors"
	"github.com/guesssays/med-platform/internal/domain/service"
	"github.com/guesssays/med-platform/internal/infra/persistence/postgres"
	mockSvc "github.com/guesssays/med-platform/internal/mocks/service"
	"github.com/guesssays/med-platform/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (env *testEnv) subscriptionService(qr service.QRCodeService) usecase.SubscriptionUsecase {
	return NewSubscriptionService(SubscriptionServiceParams{
		SubscriptionRepo: postgres.NewSubscriptionRepository(env.db),
		DoctorRepo:       postgres.NewDoctorRepository(env.db),
		PatientRepo:      postgres.NewPatientRepository(env.db),
		QRCodeService:    qr,
		Logger:           env.logger,
	})
}

func TestSubscriptionService_SubscribeIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	srv := env.subscriptionService(mockSvc.NewMockQRCodeService(t))
	_, doctor := env.newDoctor(t, "doc@x.com")
	patient, _ := env.register(t, "pat@x.com")

	first, err := srv.Subscribe(ctx, &usecase.SubscribeInput{User: patient, DoctorID: doctor.ID})
	require.NoError(t, err)
	assert.True(t, first.IsActive)

	second, err := srv.Subscribe(ctx, &usecase.SubscribeInput{User: patient, DoctorID: doctor.ID})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	listed, err := srv.ListSubscriptions(ctx, patient)
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	past := time.Now().Add(-time.Hour)
	_, err = srv.Subscribe(ctx, &usecase.SubscribeInput{User: patient, DoctorID: 9999, ExpiresAt: &past})
	assert.True(t, errors.Is(err, domainerrors.ErrDoctorNotFound))
}

func TestSubscriptionService_SubscribeByQR(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	qr := mockSvc.NewMockQRCodeService(t)
	srv := env.subscriptionService(qr)
	_, doctor := env.newDoctor(t, "doc@x.com")
	patient, _ := env.register(t, "pat@x.com")

	qr.EXPECT().ParseSubscriptionQR("valid").Return(doctor.ID, nil).Once()
	qr.EXPECT().ParseSubscriptionQR("garbage").Return(uint(0), errors.New("bad payload")).Once()

	subscription, err := srv.SubscribeByQR(ctx, patient, "valid")
	require.NoError(t, err)
	assert.Equal(t, doctor.ID, subscription.DoctorID)

	_, err = srv.SubscribeByQR(ctx, patient, "garbage")
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidQRCode))
}

func TestSubscriptionService_Unsubscribe(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	srv := env.subscriptionService(mockSvc.NewMockQRCodeService(t))
	_, doctor := env.newDoctor(t, "doc@x.com")
	owner, _ := env.register(t, "owner@x.com")
	other, _ := env.register(t, "other@x.com")

	subscription, err := srv.Subscribe(ctx, &usecase.SubscribeInput{User: owner, DoctorID: doctor.ID})
	require.NoError(t, err)

	_, err = srv.Unsubscribe(ctx, other, subscription.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrSubscriptionNotFound))

	inactive, err := srv.Unsubscribe(ctx, owner, subscription.ID)
	require.NoError(t, err)
	assert.False(t, inactive.IsActive)

	_, err = srv.Unsubscribe(ctx, owner, subscription.ID)
	assert.NoError(t, err)

	// A fresh subscription is created once the old one is inactive.
	renewed, err := srv.Subscribe(ctx, &usecase.SubscribeInput{User: owner, DoctorID: doctor.ID})
	require.NoError(t, err)
	assert.NotEqual(t, subscription.ID, renewed.ID)
}

func TestSubscriptionService_DoctorQRCode(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	qr := mockSvc.NewMockQRCodeService(t)
	srv := env.subscriptionService(qr)
	_, doctor := env.newDoctor(t, "doc@x.com")

	qr.EXPECT().GenerateSubscriptionQR(doctor.ID).Return([]byte("png"), nil).Once()

	png, err := srv.DoctorQRCode(ctx, doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), png)

	_, err = srv.DoctorQRCode(ctx, 9999)
	assert.True(t, errors.Is(err, domainerrors.ErrDoctorNotFound))
}
