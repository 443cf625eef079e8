package model

import "time"

// DoctorProfileModel mirrors the 'doctor_profiles' table.
type DoctorProfileModel struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"uniqueIndex;not null"`
	ClinicID  *uint  `gorm:"index"`
	Specialty string `gorm:"type:varchar(255)"`
	Title     string `gorm:"type:varchar(255)"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User   *UserModel   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Clinic *ClinicModel `gorm:"foreignKey:ClinicID;constraint:OnDelete:SET NULL"`
}

// TableName explicitly sets the table name for GORM.
func (DoctorProfileModel) TableName() string {
	return "doctor_profiles"
}

// PatientProfileModel mirrors the 'patient_profiles' table.
type PatientProfileModel struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time

	User *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (PatientProfileModel) TableName() string {
	return "patient_profiles"
}
