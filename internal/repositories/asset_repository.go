package repositories

import (
	"context"
	"time"

	"github.com/schoolit/asset-service/internal/models"
)

// DeviceFilters defines filters for device queries.
type DeviceFilters struct {
	SchoolID    *uint
	ClassroomID *uint
	Type        string
	Status      models.DeviceStatus
	Query       string // Search query for inventory number or model
	Limit       int
	Offset      int
}

type DeviceRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Device, error)
	GetByInventoryNo(ctx context.Context, inventoryNo string) (*models.Device, error)
	List(ctx context.Context, filters DeviceFilters) ([]*models.Device, int64, error)

	Create(ctx context.Context, device *models.Device) error
	Update(ctx context.Context, device *models.Device) error
	Delete(ctx context.Context, id uint) error

	MarkInspected(ctx context.Context, id uint, inspectedAt time.Time) error
}

type ClassroomRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Classroom, error)
	ListBySchool(ctx context.Context, schoolID uint) ([]*models.Classroom, error)

	Create(ctx context.Context, classroom *models.Classroom) error
	Update(ctx context.Context, classroom *models.Classroom) error
	Delete(ctx context.Context, id uint) error
}

type FloorPlanRepository interface {
	GetByID(ctx context.Context, id uint) (*models.FloorPlan, error)
	ListBySchool(ctx context.Context, schoolID uint) ([]*models.FloorPlan, error)

	Create(ctx context.Context, plan *models.FloorPlan) error
	Update(ctx context.Context, plan *models.FloorPlan) error
	Delete(ctx context.Context, id uint) error
}

type WirelessAPRepository interface {
	GetByID(ctx context.Context, id uint) (*models.WirelessAP, error)
	ListBySchool(ctx context.Context, schoolID uint) ([]*models.WirelessAP, error)

	Create(ctx context.Context, ap *models.WirelessAP) error
	Update(ctx context.Context, ap *models.WirelessAP) error
	Delete(ctx context.Context, id uint) error
}
