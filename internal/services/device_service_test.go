package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/schoolit/asset-service/internal/authz"
	"github.com/schoolit/asset-service/internal/models"
	"github.com/schoolit/asset-service/internal/repositories"
	"github.com/schoolit/asset-service/internal/validator"
)

type memDeviceRepo struct {
	devices map[uint]*models.Device
	nextID  uint
}

func (m *memDeviceRepo) GetByID(_ context.Context, id uint) (*models.Device, error) {
	device, ok := m.devices[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return device, nil
}

func (m *memDeviceRepo) GetByInventoryNo(_ context.Context, inventoryNo string) (*models.Device, error) {
	for _, device := range m.devices {
		if device.InventoryNo == inventoryNo {
			return device, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memDeviceRepo) List(_ context.Context, _ repositories.DeviceFilters) ([]*models.Device, int64, error) {
	out := make([]*models.Device, 0, len(m.devices))
	for _, device := range m.devices {
		out = append(out, device)
	}
	return out, int64(len(out)), nil
}

func (m *memDeviceRepo) Create(_ context.Context, device *models.Device) error {
	m.nextID++
	device.ID = m.nextID
	m.devices[device.ID] = device
	return nil
}

func (m *memDeviceRepo) Update(_ context.Context, device *models.Device) error {
	if _, ok := m.devices[device.ID]; !ok {
		return repositories.ErrNotFound
	}
	m.devices[device.ID] = device
	return nil
}

func (m *memDeviceRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.devices[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.devices, id)
	return nil
}

func (m *memDeviceRepo) MarkInspected(_ context.Context, id uint, inspectedAt time.Time) error {
	device, ok := m.devices[id]
	if !ok {
		return repositories.ErrNotFound
	}
	device.LastInspectedAt = &inspectedAt
	return nil
}

func newTestDeviceService() (DeviceService, *mockRepository) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	repo := newMockRepository()
	repo.device = &memDeviceRepo{devices: make(map[uint]*models.Device)}
	return NewDeviceService(repo, logger, validator.New()), repo
}

func TestDeviceService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("device lands in an existing school", func(t *testing.T) {
		service, _ := newTestDeviceService()

		device, err := service.Create(ctx, 7, &validator.DeviceCreateRequest{
			InventoryNo: "NB-2024-0042",
			Type:        "notebook",
			Vendor:      "Lenovo",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if device.SchoolID != 7 {
			t.Errorf("expected school 7, got %d", device.SchoolID)
		}
		if device.Status != models.DeviceActive {
			t.Errorf("expected status %s, got %s", models.DeviceActive, device.Status)
		}
	})

	t.Run("unknown school is rejected before any row is written", func(t *testing.T) {
		service, repo := newTestDeviceService()

		_, err := service.Create(ctx, 999, &validator.DeviceCreateRequest{
			InventoryNo: "NB-2024-0042",
			Type:        "notebook",
		})
		if !errors.Is(err, authz.ErrSchoolNotFound) {
			t.Fatalf("expected ErrSchoolNotFound, got %v", err)
		}

		_, total, _ := repo.device.List(ctx, repositories.DeviceFilters{})
		if total != 0 {
			t.Error("no device row may exist for a nonexistent school")
		}
	})

	t.Run("invalid inventory number fails validation", func(t *testing.T) {
		service, _ := newTestDeviceService()

		_, err := service.Create(ctx, 7, &validator.DeviceCreateRequest{
			InventoryNo: "nb-2024-0042",
			Type:        "notebook",
		})
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			t.Fatalf("expected validation errors, got %v", err)
		}
	})
}

func TestDeviceService_Inspect(t *testing.T) {
	ctx := context.Background()
	service, repo := newTestDeviceService()
	_ = repo.device.Create(ctx, &models.Device{InventoryNo: "NB-2024-0042", Type: "notebook", SchoolID: 7, Status: models.DeviceActive})

	device, err := service.Inspect(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if device.LastInspectedAt == nil || device.LastInspectedAt.IsZero() {
		t.Error("expected an inspection timestamp")
	}
}
