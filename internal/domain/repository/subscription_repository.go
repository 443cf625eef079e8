// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"github.com/guesssays/med-platform/internal/domain/entity"
	"github.com/guesssays/med-platform/internal/errors"
)

// ErrSubscriptionNotFound is returned when a subscription is not found.
var ErrSubscriptionNotFound = errors.New("subscription not found")

// SubscriptionRepository defines the interface for subscription-related database operations.
type SubscriptionRepository interface {
	// CreateSubscription persists a new subscription relationship.
	CreateSubscription(ctx context.Context, subscription *entity.Subscription) error

	// FindSubscriptionByID retrieves a subscription by its unique ID.
	FindSubscriptionByID(ctx context.Context, id uint) (*entity.Subscription, error)

	// FindActiveSubscription retrieves the active subscription of a patient to a doctor.
	FindActiveSubscription(ctx context.Context, patientID, doctorID uint) (*entity.Subscription, error)

	// FindSubscriptionsByPatient retrieves all subscriptions for a specific patient.
	FindSubscriptionsByPatient(ctx context.Context, patientID uint) ([]*entity.Subscription, error)

	// UpdateSubscriptionStatus updates the active status of a subscription.
	UpdateSubscriptionStatus(ctx context.Context, id uint, isActive bool) error
}
