package entity

import "time"

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentCompleted AppointmentStatus = "completed"
)

// Appointment is a booked time slot between a patient and a doctor.
type Appointment struct {
	ID        uint
	DoctorID  uint // DoctorProfile.ID
	PatientID uint // PatientProfile.ID
	StartsAt  time.Time
	EndsAt    time.Time
	Status    AppointmentStatus
}

// Overlaps reports whether the half-open intervals [StartsAt, EndsAt) intersect.
func (a *Appointment) Overlaps(startsAt, endsAt time.Time) bool {
	return a.StartsAt.Before(endsAt) && startsAt.Before(a.EndsAt)
}
