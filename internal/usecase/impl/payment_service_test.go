package impl

import (
	"context"
	"testing"

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

func TestParseAmountMinor(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{raw: "150000", want: 15000000},
		{raw: "10.5", want: 1050},
		{raw: " 0.01 ", want: 1},
		{raw: "10.50", want: 1050},
		{raw: "10.505", wantErr: true},
		{raw: "0", wantErr: true},
		{raw: "-5", wantErr: true},
		{raw: "ten", wantErr: true},
		{raw: "", wantErr: true},
		{raw: "999999999999999999999", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseAmountMinor(tt.raw)
			if tt.wantErr {
				assert.True(t, errors.Is(err, domainerrors.ErrInvalidAmount), "got %v", err)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeCurrency(t *testing.T) {
	currency, err := normalizeCurrency("")
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultCurrency, currency)

	currency, err = normalizeCurrency(" usd ")
	require.NoError(t, err)
	assert.Equal(t, "USD", currency)

	_, err = normalizeCurrency("US1")
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestPaymentService_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	publisher := mockSvc.NewMockEventPublisher(t)
	publisher.EXPECT().
		Publish(mock.Anything, mock.MatchedBy(func(event *service.Event) bool {
			return event.Type == service.EventPaymentStatusChanged && event.Payload["to"] == "paid"
		})).
		Return(nil).
		Once()

	srv := NewPaymentService(PaymentServiceParams{
		PaymentRepo: postgres.NewPaymentRepository(env.db),
		Publisher:   publisher,
		Logger:      env.logger,
	})
	user, _ := env.register(t, "payer@x.com")

	payment, err := srv.CreatePayment(ctx, &usecase.CreatePaymentInput{User: user, Provider: "click", Amount: "150000.50"})
	require.NoError(t, err)
	assert.Equal(t, int64(15000050), payment.AmountMinor)
	assert.Equal(t, "UZS", payment.Currency)
	assert.Equal(t, entity.PaymentPending, payment.Status)

	_, err = srv.UpdatePaymentStatus(ctx, payment.ID, "settled")
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidPaymentStatus))

	paid, err := srv.UpdatePaymentStatus(ctx, payment.ID, "PAID")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentPaid, paid.Status)

	// Same status again is a no-op without an event.
	_, err = srv.UpdatePaymentStatus(ctx, payment.ID, "paid")
	require.NoError(t, err)

	_, err = srv.UpdatePaymentStatus(ctx, 9999, "paid")
	assert.True(t, errors.Is(err, domainerrors.ErrPaymentNotFound))

	listed, err := srv.ListPayments(ctx, user)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, entity.PaymentPaid, listed[0].Status)
}
