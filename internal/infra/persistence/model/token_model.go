package model

import "time"

// RefreshTokenModel mirrors the 'refresh_tokens' ledger.
type RefreshTokenModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index:idx_refresh_tokens_user_revoked,priority:1"`
	JTI       string    `gorm:"column:jti;type:varchar(64);uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Revoked   bool      `gorm:"not null;default:false;index:idx_refresh_tokens_user_revoked,priority:2"`
	UserAgent string    `gorm:"type:varchar(256)"`
	IP        string    `gorm:"column:ip;type:varchar(64)"`
}

// TableName explicitly sets the table name for GORM.
func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}

// PasswordResetTokenModel mirrors the 'password_reset_tokens' ledger.
type PasswordResetTokenModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index"`
	TokenJTI  string    `gorm:"column:token_jti;type:varchar(64);uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Used      bool      `gorm:"not null;default:false"`
}

// TableName explicitly sets the table name for GORM.
func (PasswordResetTokenModel) TableName() string {
	return "password_reset_tokens"
}
