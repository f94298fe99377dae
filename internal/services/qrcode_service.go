package services

import (
	"context"
	"fmt"
	"log/slog"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/schoolit/asset-service/internal/repositories"
)

// QRCodeService renders printable device labels. Sits behind the QR-code
// feature gate.
type QRCodeService interface {
	DeviceLabel(ctx context.Context, deviceID uint, size int) ([]byte, error)
}

type qrCodeService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewQRCodeService(repo repositories.Repository, logger *slog.Logger) QRCodeService {
	return &qrCodeService{repo: repo, logger: logger}
}

const defaultLabelSize = 256

// DeviceLabel encodes the device's inventory number as a PNG QR code.
func (s *qrCodeService) DeviceLabel(ctx context.Context, deviceID uint, size int) ([]byte, error) {
	device, err := s.repo.Device().GetByID(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	if size <= 0 || size > 2048 {
		size = defaultLabelSize
	}

	png, err := qrcode.Encode(device.InventoryNo, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr label: %w", err)
	}

	s.logger.Debug("qr label generated", "device_id", deviceID, "inventory_no", device.InventoryNo)
	return png, nil
}
