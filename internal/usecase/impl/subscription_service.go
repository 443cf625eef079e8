package impl

import (
	"context"
	"log/slog"
	"time"

	"github.com/guesssays/med-platform/internal/domain/entity"
	domainerrors "github.com/guesssays/med-platform/internal/domain/errors"
	"github.com/guesssays/med-platform/internal/domain/repository"
	"github.com/guesssays/med-platform/internal/domain/service"
	"github.com/guesssays/med-platform/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type subscriptionService struct {
	subscriptionRepo repository.SubscriptionRepository
	doctorRepo       repository.DoctorRepository
	patientRepo      repository.PatientRepository
	qrcodeService    service.QRCodeService
	logger           *slog.Logger
	now              func() time.Time
}

// SubscriptionServiceParams holds dependencies for SubscriptionService, injected by Fx.
type SubscriptionServiceParams struct {
	fx.In

	SubscriptionRepo repository.SubscriptionRepository
	DoctorRepo       repository.DoctorRepository
	PatientRepo      repository.PatientRepository
	QRCodeService    service.QRCodeService
	Logger           *slog.Logger
}

// NewSubscriptionService creates a new subscription service instance
func NewSubscriptionService(params SubscriptionServiceParams) usecase.SubscriptionUsecase {
	return &subscriptionService{
		subscriptionRepo: params.SubscriptionRepo,
		doctorRepo:       params.DoctorRepo,
		patientRepo:      params.PatientRepo,
		qrcodeService:    params.QRCodeService,
		logger:           params.Logger,
		now:              time.Now,
	}
}

// Subscribe subscribes the calling patient to a doctor
func (s *subscriptionService) Subscribe(ctx context.Context, input *usecase.SubscribeInput) (*entity.Subscription, error) {
	if _, err := findDoctor(ctx, s.doctorRepo, input.DoctorID); err != nil {
		return nil, err
	}

	patient, err := s.patientRepo.FindOrCreateByUserID(ctx, input.User.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load patient profile")
	}

	existing, err := s.subscriptionRepo.FindActiveSubscription(ctx, patient.ID, input.DoctorID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrSubscriptionNotFound) {
		return nil, errors.Wrap(err, "failed to check existing subscription")
	}

	now := s.now().UTC()
	if input.ExpiresAt != nil && !input.ExpiresAt.After(now) {
		return nil, domainerrors.ErrInvalidTimeRange.WithDetails("expires_at must be in the future")
	}

	subscription := &entity.Subscription{
		PatientID: patient.ID,
		DoctorID:  input.DoctorID,
		IsActive:  true,
		StartedAt: now,
		ExpiresAt: input.ExpiresAt,
	}
	if err := s.subscriptionRepo.CreateSubscription(ctx, subscription); err != nil {
		return nil, errors.Wrap(err, "failed to create subscription")
	}

	s.logger.Info("Patient subscribed to doctor",
		slog.Any("patientID", patient.ID),
		slog.Any("doctorID", input.DoctorID))

	return subscription, nil
}

// SubscribeByQR decodes a doctor QR code and subscribes to that doctor
func (s *subscriptionService) SubscribeByQR(ctx context.Context, user *entity.User, qrData string) (*entity.Subscription, error) {
	doctorID, err := s.qrcodeService.ParseSubscriptionQR(qrData)
	if err != nil {
		return nil, domainerrors.ErrInvalidQRCode
	}

	return s.Subscribe(ctx, &usecase.SubscribeInput{User: user, DoctorID: doctorID})
}

// ListSubscriptions retrieves all subscriptions of the calling patient
func (s *subscriptionService) ListSubscriptions(ctx context.Context, user *entity.User) ([]*entity.Subscription, error) {
	patient, err := s.patientRepo.FindOrCreateByUserID(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load patient profile")
	}

	subscriptions, err := s.subscriptionRepo.FindSubscriptionsByPatient(ctx, patient.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get patient subscriptions")
	}

	return subscriptions, nil
}

// Unsubscribe deactivates one of the caller's subscriptions
func (s *subscriptionService) Unsubscribe(ctx context.Context, user *entity.User, subscriptionID uint) (*entity.Subscription, error) {
	subscription, err := s.subscriptionRepo.FindSubscriptionByID(ctx, subscriptionID)
	if err != nil {
		if errors.Is(err, repository.ErrSubscriptionNotFound) {
			return nil, domainerrors.ErrSubscriptionNotFound
		}

		return nil, errors.Wrap(err, "failed to find subscription")
	}

	patient, err := s.patientRepo.FindOrCreateByUserID(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load patient profile")
	}
	if subscription.PatientID != patient.ID {
		return nil, domainerrors.ErrSubscriptionNotFound
	}

	if !subscription.IsActive {
		return subscription, nil
	}

	if err := s.subscriptionRepo.UpdateSubscriptionStatus(ctx, subscription.ID, false); err != nil {
		return nil, errors.Wrap(err, "failed to deactivate subscription")
	}
	subscription.IsActive = false

	return subscription, nil
}

// DoctorQRCode generates the subscription QR code of a doctor
func (s *subscriptionService) DoctorQRCode(ctx context.Context, doctorID uint) ([]byte, error) {
	if _, err := findDoctor(ctx, s.doctorRepo, doctorID); err != nil {
		return nil, err
	}

	qrCode, err := s.qrcodeService.GenerateSubscriptionQR(doctorID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate subscription QR")
	}

	return qrCode, nil
}
