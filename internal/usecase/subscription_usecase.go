package usecase

import (
	"context"
	"time"

	"github.com/guesssays/med-platform/internal/domain/entity"
)

// SubscribeInput subscribes a patient to a doctor.
type SubscribeInput struct {
	User      *entity.User
	DoctorID  uint
	ExpiresAt *time.Time
}

// SubscriptionUsecase manages patient subscriptions to doctors.
type SubscriptionUsecase interface {
	// Subscribe returns the existing active subscription unchanged when there is one.
	Subscribe(ctx context.Context, input *SubscribeInput) (*entity.Subscription, error)
	SubscribeByQR(ctx context.Context, user *entity.User, qrData string) (*entity.Subscription, error)
	ListSubscriptions(ctx context.Context, user *entity.User) ([]*entity.Subscription, error)
	Unsubscribe(ctx context.Context, user *entity.User, subscriptionID uint) (*entity.Subscription, error)
	// DoctorQRCode renders the PNG patients scan to subscribe.
	DoctorQRCode(ctx context.Context, doctorID uint) ([]byte, error)
}
