package repository

import (
	"context"
	"time"

	"github.com/guesssays/med-platform/internal/domain/entity"
	"github.com/guesssays/med-platform/internal/errors"
)

// ErrAppointmentNotFound is returned when an appointment is not found.
var ErrAppointmentNotFound = errors.New("appointment not found")

// AppointmentFilter narrows appointment listings. Zero values mean "any".
type AppointmentFilter struct {
	DoctorID  *uint
	PatientID *uint
}

// AppointmentRepository defines appointment persistence.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	FindByID(ctx context.Context, id uint) (*entity.Appointment, error)
	List(ctx context.Context, filter AppointmentFilter) ([]*entity.Appointment, error)
	// HasOverlap reports whether the doctor has a scheduled appointment intersecting [startsAt, endsAt).
	HasOverlap(ctx context.Context, doctorID uint, startsAt, endsAt time.Time) (bool, error)
	UpdateStatus(ctx context.Context, id uint, status entity.AppointmentStatus) error
}
