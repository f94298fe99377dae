package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/schoolit/asset-service/internal/models"
	"github.com/schoolit/asset-service/internal/repositories"
)

type deviceRepository struct {
	db *gorm.DB
}

func NewDevicePostgreSQL(db *gorm.DB) repositories.DeviceRepository {
	return &deviceRepository{db: db}
}

func (r *deviceRepository) GetByID(ctx context.Context, id uint) (*models.Device, error) {
	var device models.Device
	if err := r.db.WithContext(ctx).First(&device, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("get device by id: %w", err)
	}
	return &device, nil
}

func (r *deviceRepository) GetByInventoryNo(ctx context.Context, inventoryNo string) (*models.Device, error) {
	var device models.Device
	err := r.db.WithContext(ctx).
		Where("inventory_no = ?", inventoryNo).
		First(&device).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("get device by inventory no: %w", err)
	}
	return &device, nil
}

func (r *deviceRepository) List(ctx context.Context, filters repositories.DeviceFilters) ([]*models.Device, int64, error) {
	var devices []*models.Device
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Device{})
	query = r.applyFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count devices: %w", err)
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Order("inventory_no").Find(&devices).Error; err != nil {
		return nil, 0, fmt.Errorf("list devices: %w", err)
	}
	return devices, total, nil
}

func (r *deviceRepository) applyFilters(query *gorm.DB, filters repositories.DeviceFilters) *gorm.DB {
	if filters.SchoolID != nil {
		query = query.Where("school_id = ?", *filters.SchoolID)
	}
	if filters.ClassroomID != nil {
		query = query.Where("classroom_id = ?", *filters.ClassroomID)
	}
	if filters.Type != "" {
		query = query.Where("type = ?", filters.Type)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Query != "" {
		pattern := "%" + filters.Query + "%"
		query = query.Where("inventory_no ILIKE ? OR model ILIKE ?", pattern, pattern)
	}
	return query
}

func (r *deviceRepository) Create(ctx context.Context, device *models.Device) error {
	if err := r.db.WithContext(ctx).Create(device).Error; err != nil {
		return fmt.Errorf("create device: %w", err)
	}
	return nil
}

func (r *deviceRepository) Update(ctx context.Context, device *models.Device) error {
	if err := r.db.WithContext(ctx).Save(device).Error; err != nil {
		return fmt.Errorf("update device: %w", err)
	}
	return nil
}

func (r *deviceRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Device{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete device: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *deviceRepository) MarkInspected(ctx context.Context, id uint, inspectedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.Device{}).
		Where("id = ?", id).
		Update("last_inspected_at", inspectedAt)
	if result.Error != nil {
		return fmt.Errorf("mark device inspected: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
