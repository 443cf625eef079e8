// Package qrcode renders and parses doctor subscription QR codes.
package qrcode

import (
	"encoding/json"
	"strings"

	"github.com/guesssays/med-platform/config"
	"github.com/guesssays/med-platform/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

const subscriptionType = "doctor_subscription"

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// Payload is the JSON document encoded into a subscription QR code.
type Payload struct {
	DoctorID uint   `json:"doctor_id"`
	Type     string `json:"type"`
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	size, level := 256, "M"
	if cfg.QRCode != nil {
		if cfg.QRCode.Size > 0 {
			size = cfg.QRCode.Size
		}
		level = cfg.QRCode.ErrorCorrectionLevel
	}

	return newQRCodeService(size, level)
}

func newQRCodeService(size int, errorCorrectionLevel string) *qrcodeService {
	var level qrcode.RecoveryLevel
	switch strings.ToUpper(errorCorrectionLevel) {
	case "L":
		level = qrcode.Low
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// GenerateSubscriptionQR renders a PNG pointing at the doctor.
func (s *qrcodeService) GenerateSubscriptionQR(doctorID uint) ([]byte, error) {
	jsonData, err := json.Marshal(Payload{DoctorID: doctorID, Type: subscriptionType})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal QR code data")
	}

	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}

// ParseSubscriptionQR decodes the scanned text back into a doctor id.
func (s *qrcodeService) ParseSubscriptionQR(qrData string) (uint, error) {
	var data Payload
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return 0, errors.Wrap(err, "failed to unmarshal QR code data")
	}

	if data.Type != subscriptionType {
		return 0, errors.Errorf("invalid QR code type: %s", data.Type)
	}
	if data.DoctorID == 0 {
		return 0, errors.New("QR code carries no doctor id")
	}

	return data.DoctorID, nil
}
