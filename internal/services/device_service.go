package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/schoolit/asset-service/internal/models"
	"github.com/schoolit/asset-service/internal/repositories"
	"github.com/schoolit/asset-service/internal/validator"
)

// DeviceListResponse is the paginated device listing.
type DeviceListResponse struct {
	Devices []*models.Device `json:"devices"`
	Total   int64            `json:"total"`
}

type DeviceService interface {
	Get(ctx context.Context, id uint) (*models.Device, error)
	List(ctx context.Context, filters repositories.DeviceFilters) (*DeviceListResponse, error)
	Create(ctx context.Context, schoolID uint, req *validator.DeviceCreateRequest) (*models.Device, error)
	Update(ctx context.Context, id uint, req *validator.DeviceUpdateRequest) (*models.Device, error)

	// Delete retires the concrete row; it sits behind the data-delete
	// feature gate at the route level.
	Delete(ctx context.Context, id uint) error

	// Inspect stamps the device as inspected now.
	Inspect(ctx context.Context, id uint) (*models.Device, error)
}

type deviceService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewDeviceService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) DeviceService {
	return &deviceService{repo: repo, logger: logger, validator: v}
}

func (s *deviceService) Get(ctx context.Context, id uint) (*models.Device, error) {
	return s.repo.Device().GetByID(ctx, id)
}

func (s *deviceService) List(ctx context.Context, filters repositories.DeviceFilters) (*DeviceListResponse, error) {
	devices, total, err := s.repo.Device().List(ctx, filters)
	if err != nil {
		return nil, err
	}
	return &DeviceListResponse{Devices: devices, Total: total}, nil
}

func (s *deviceService) Create(ctx context.Context, schoolID uint, req *validator.DeviceCreateRequest) (*models.Device, error) {
	if verrs := s.validator.Validate(req); verrs.HasErrors() {
		return nil, verrs
	}

	// The school must exist; a device cannot be orphaned at creation.
	if err := ensureSchoolExists(ctx, s.repo, schoolID); err != nil {
		return nil, err
	}

	device := &models.Device{
		InventoryNo: req.InventoryNo,
		Type:        req.Type,
		Vendor:      req.Vendor,
		Model:       req.Model,
		SerialNo:    req.SerialNo,
		Status:      models.DeviceActive,
		SchoolID:    schoolID,
		ClassroomID: req.ClassroomID,
		Notes:       req.Notes,
	}
	if err := s.repo.Device().Create(ctx, device); err != nil {
		return nil, err
	}

	s.logger.Info("device created", "device_id", device.ID, "inventory_no", device.InventoryNo, "school_id", schoolID)
	return device, nil
}

func (s *deviceService) Update(ctx context.Context, id uint, req *validator.DeviceUpdateRequest) (*models.Device, error) {
	if verrs := s.validator.Validate(req); verrs.HasErrors() {
		return nil, verrs
	}

	device, err := s.repo.Device().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		device.Type = *req.Type
	}
	if req.Vendor != nil {
		device.Vendor = *req.Vendor
	}
	if req.Model != nil {
		device.Model = *req.Model
	}
	if req.SerialNo != nil {
		device.SerialNo = req.SerialNo
	}
	if req.Status != nil {
		device.Status = models.DeviceStatus(*req.Status)
	}
	if req.ClassroomID != nil {
		device.ClassroomID = req.ClassroomID
	}
	if req.Notes != nil {
		device.Notes = req.Notes
	}

	if err := s.repo.Device().Update(ctx, device); err != nil {
		return nil, err
	}
	return device, nil
}

func (s *deviceService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Device().Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("device deleted", "device_id", id)
	return nil
}

func (s *deviceService) Inspect(ctx context.Context, id uint) (*models.Device, error) {
	now := time.Now().UTC()
	if err := s.repo.Device().MarkInspected(ctx, id, now); err != nil {
		return nil, err
	}
	return s.repo.Device().GetByID(ctx, id)
}
