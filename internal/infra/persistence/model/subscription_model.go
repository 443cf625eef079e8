package model

import "time"

// SubscriptionModel mirrors the 'subscriptions' table.
type SubscriptionModel struct {
	ID        uint      `gorm:"primaryKey"`
	PatientID uint      `gorm:"not null;index:idx_subscriptions_patient_doctor,priority:1"`
	DoctorID  uint      `gorm:"not null;index:idx_subscriptions_patient_doctor,priority:2"`
	IsActive  bool      `gorm:"not null;default:true"`
	StartedAt time.Time `gorm:"not null"`
	ExpiresAt *time.Time

	Patient *PatientProfileModel `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE"`
	Doctor  *DoctorProfileModel  `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (SubscriptionModel) TableName() string {
	return "subscriptions"
}
