package model

import "time"

// AppointmentModel mirrors the 'appointments' table.
type AppointmentModel struct {
	ID        uint      `gorm:"primaryKey"`
	DoctorID  uint      `gorm:"not null;index:idx_appointments_doctor_starts,priority:1"`
	PatientID uint      `gorm:"not null;index"`
	StartsAt  time.Time `gorm:"not null;index:idx_appointments_doctor_starts,priority:2"`
	EndsAt    time.Time `gorm:"not null"`
	Status    string    `gorm:"type:varchar(32);not null;default:scheduled"`
	CreatedAt time.Time

	Doctor  *DoctorProfileModel  `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE"`
	Patient *PatientProfileModel `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (AppointmentModel) TableName() string {
	return "appointments"
}
