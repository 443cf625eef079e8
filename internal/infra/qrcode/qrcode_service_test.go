package qrcode

import (
	"testing"

	"github.com/guesssays/med-platform/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 0x50, 0x4E, 0x47}

func TestNewQRCodeService(t *testing.T) {
	tests := []struct {
		name                 string
		errorCorrectionLevel string
	}{
		{"Low error correction", "L"},
		{"Medium error correction", "M"},
		{"High error correction", "Q"},
		{"Highest error correction", "h"},
		{"Default error correction", "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewQRCodeService(&config.Config{
				QRCode: &config.QRCodeConfig{Size: 128, ErrorCorrectionLevel: tt.errorCorrectionLevel},
			})
			assert.NotNil(t, svc)
		})
	}

	assert.Equal(t, 256, NewQRCodeService(&config.Config{}).(*qrcodeService).size)
}

func TestQRCodeService_GenerateSubscriptionQR(t *testing.T) {
	for _, size := range []int{128, 256, 512} {
		svc := newQRCodeService(size, "M")

		qrBytes, err := svc.GenerateSubscriptionQR(42)
		require.NoError(t, err)
		require.Greater(t, len(qrBytes), len(pngMagic))
		assert.Equal(t, pngMagic, qrBytes[:len(pngMagic)])
	}
}

func TestQRCodeService_ParseSubscriptionQR(t *testing.T) {
	svc := newQRCodeService(256, "M")

	doctorID, err := svc.ParseSubscriptionQR(`{"doctor_id":42,"type":"doctor_subscription"}`)
	require.NoError(t, err)
	assert.Equal(t, uint(42), doctorID)

	invalid := []string{
		`not json`,
		`{"doctor_id":42,"type":"clinic_invite"}`,
		`{"type":"doctor_subscription"}`,
		`{"doctor_id":-1,"type":"doctor_subscription"}`,
	}
	for _, data := range invalid {
		_, err := svc.ParseSubscriptionQR(data)
		assert.Error(t, err, data)
	}
}
