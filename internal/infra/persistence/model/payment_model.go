package model

import "time"

// PaymentModel mirrors the 'payments' table. AmountMinor is the amount in 1/100 units.
type PaymentModel struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"not null;index"`
	Provider    string `gorm:"type:varchar(64);not null"`
	AmountMinor int64  `gorm:"not null"`
	Currency    string `gorm:"type:varchar(8);not null;default:UZS"`
	Status      string `gorm:"type:varchar(32);not null;default:pending"`
	CreatedAt   time.Time

	User *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (PaymentModel) TableName() string {
	return "payments"
}
