package model

import "time"

// ContentItemModel mirrors the 'content_items' table. R2Key holds the object storage key.
type ContentItemModel struct {
	ID             uint   `gorm:"primaryKey"`
	AuthorDoctorID uint   `gorm:"not null;index"`
	Title          string `gorm:"type:varchar(255);not null"`
	Kind           string `gorm:"type:varchar(16);not null"`
	Body           string `gorm:"type:text"`
	R2Key          string `gorm:"column:r2_key;type:varchar(512)"`
	CreatedAt      time.Time

	Author *DoctorProfileModel `gorm:"foreignKey:AuthorDoctorID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (ContentItemModel) TableName() string {
	return "content_items"
}
