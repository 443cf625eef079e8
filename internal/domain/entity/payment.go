package entity

import "time"

// PaymentStatus is the settlement state of a payment.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// DefaultCurrency is used when a payment request omits the currency.
const DefaultCurrency = "UZS"

// IsValid checks if the PaymentStatus is a valid value.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	default:
		return false
	}
}

// Payment records a charge against a user. Amount is kept in minor units (1/100).
type Payment struct {
	ID          uint
	UserID      uint
	Provider    string
	AmountMinor int64
	Currency    string
	Status      PaymentStatus
	CreatedAt   time.Time
}
