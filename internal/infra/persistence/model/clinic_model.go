package model

import "time"

// ClinicModel mirrors the 'clinics' table.
type ClinicModel struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"type:varchar(255);not null"`
	Slug        string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Address     string `gorm:"type:varchar(512)"`
	Phone       string `gorm:"type:varchar(64)"`
	Description string `gorm:"type:text"`
	OwnerID     *uint  `gorm:"index"`
	CreatedAt   time.Time

	Owner *UserModel `gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL"`
}

// TableName explicitly sets the table name for GORM.
func (ClinicModel) TableName() string {
	return "clinics"
}
