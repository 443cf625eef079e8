package service

import (
	"context"
	"time"
)

// Event types published by the application.
const (
	EventUserRegistered         = "user.registered"
	EventPasswordResetRequested = "auth.password_reset_requested"
	EventPasswordChanged        = "auth.password_changed"
	EventAppointmentBooked      = "appointment.booked"
	EventAppointmentCancelled   = "appointment.cancelled"
	EventPaymentStatusChanged   = "payment.status_changed"
)

// Event is a domain event handed to the message transport.
type Event struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	RequestID  string            `json:"request_id,omitempty"` // For distributed tracing
	OccurredAt time.Time         `json:"occurred_at"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Payload    map[string]any    `json:"payload,omitempty"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// Publish delivers one event to the configured transport
	Publish(ctx context.Context, event *Event) error

	// Close releases any resources held by the publisher
	Close() error
}
