package usecase

import (
	"context"
	"time"

	"github.com/guesssays/med-platform/internal/domain/entity"
)

// BookAppointmentInput requests a slot with a doctor.
type BookAppointmentInput struct {
	User     *entity.User
	DoctorID uint
	StartsAt time.Time
	EndsAt   time.Time
}

// AppointmentUsecase manages appointment booking and cancellation.
type AppointmentUsecase interface {
	Book(ctx context.Context, input *BookAppointmentInput) (*entity.Appointment, error)
	// List is scoped by role: patients see their own, doctors theirs, admins all.
	List(ctx context.Context, user *entity.User) ([]*entity.Appointment, error)
	Cancel(ctx context.Context, user *entity.User, appointmentID uint) (*entity.Appointment, error)
}
