package service

// QRCodeService defines the interface for QR code generation and parsing services
type QRCodeService interface {
	// GenerateSubscriptionQR generates a QR code for subscribing to a doctor
	GenerateSubscriptionQR(doctorID uint) ([]byte, error)

	// ParseSubscriptionQR parses QR code data and returns the doctor ID
	ParseSubscriptionQR(qrData string) (uint, error)
}
