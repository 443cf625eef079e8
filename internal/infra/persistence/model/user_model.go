package model

import "time"

// UserModel mirrors the 'users' table. Role is stored lower-case.
type UserModel struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Role         string `gorm:"type:varchar(16);not null;default:patient"`
	IsActive     bool   `gorm:"not null;default:true"`
	IsSuperAdmin bool   `gorm:"column:is_superadmin;not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	RefreshTokens       []RefreshTokenModel       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	PasswordResetTokens []PasswordResetTokenModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
