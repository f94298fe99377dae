package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/schoolit/asset-service/internal/models"
	"github.com/schoolit/asset-service/internal/repositories"
)

// ===== CLASSROOMS =====

type classroomRepository struct {
	db *gorm.DB
}

func NewClassroomPostgreSQL(db *gorm.DB) repositories.ClassroomRepository {
	return &classroomRepository{db: db}
}

func (r *classroomRepository) GetByID(ctx context.Context, id uint) (*models.Classroom, error) {
	var room models.Classroom
	if err := r.db.WithContext(ctx).First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("get classroom by id: %w", err)
	}
	return &room, nil
}

func (r *classroomRepository) ListBySchool(ctx context.Context, schoolID uint) ([]*models.Classroom, error) {
	var rooms []*models.Classroom
	err := r.db.WithContext(ctx).
		Where("school_id = ?", schoolID).
		Order("floor, name").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("list classrooms: %w", err)
	}
	return rooms, nil
}

func (r *classroomRepository) Create(ctx context.Context, classroom *models.Classroom) error {
	if err := r.db.WithContext(ctx).Create(classroom).Error; err != nil {
		return fmt.Errorf("create classroom: %w", err)
	}
	return nil
}

func (r *classroomRepository) Update(ctx context.Context, classroom *models.Classroom) error {
	if err := r.db.WithContext(ctx).Save(classroom).Error; err != nil {
		return fmt.Errorf("update classroom: %w", err)
	}
	return nil
}

func (r *classroomRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Classroom{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete classroom: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// ===== FLOOR PLANS =====

type floorPlanRepository struct {
	db *gorm.DB
}

func NewFloorPlanPostgreSQL(db *gorm.DB) repositories.FloorPlanRepository {
	return &floorPlanRepository{db: db}
}

func (r *floorPlanRepository) GetByID(ctx context.Context, id uint) (*models.FloorPlan, error) {
	var plan models.FloorPlan
	if err := r.db.WithContext(ctx).First(&plan, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("get floor plan by id: %w", err)
	}
	return &plan, nil
}

func (r *floorPlanRepository) ListBySchool(ctx context.Context, schoolID uint) ([]*models.FloorPlan, error) {
	var plans []*models.FloorPlan
	err := r.db.WithContext(ctx).
		Where("school_id = ?", schoolID).
		Order("floor").
		Find(&plans).Error
	if err != nil {
		return nil, fmt.Errorf("list floor plans: %w", err)
	}
	return plans, nil
}

func (r *floorPlanRepository) Create(ctx context.Context, plan *models.FloorPlan) error {
	if err := r.db.WithContext(ctx).Create(plan).Error; err != nil {
		return fmt.Errorf("create floor plan: %w", err)
	}
	return nil
}

func (r *floorPlanRepository) Update(ctx context.Context, plan *models.FloorPlan) error {
	if err := r.db.WithContext(ctx).Save(plan).Error; err != nil {
		return fmt.Errorf("update floor plan: %w", err)
	}
	return nil
}

func (r *floorPlanRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.FloorPlan{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete floor plan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// ===== WIRELESS APS =====

type wirelessAPRepository struct {
	db *gorm.DB
}

func NewWirelessAPPostgreSQL(db *gorm.DB) repositories.WirelessAPRepository {
	return &wirelessAPRepository{db: db}
}

func (r *wirelessAPRepository) GetByID(ctx context.Context, id uint) (*models.WirelessAP, error) {
	var ap models.WirelessAP
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("get wireless ap by id: %w", err)
	}
	return &ap, nil
}

func (r *wirelessAPRepository) ListBySchool(ctx context.Context, schoolID uint) ([]*models.WirelessAP, error) {
	var aps []*models.WirelessAP
	err := r.db.WithContext(ctx).
		Where("school_id = ?", schoolID).
		Order("name").
		Find(&aps).Error
	if err != nil {
		return nil, fmt.Errorf("list wireless aps: %w", err)
	}
	return aps, nil
}

func (r *wirelessAPRepository) Create(ctx context.Context, ap *models.WirelessAP) error {
	if err := r.db.WithContext(ctx).Create(ap).Error; err != nil {
		return fmt.Errorf("create wireless ap: %w", err)
	}
	return nil
}

func (r *wirelessAPRepository) Update(ctx context.Context, ap *models.WirelessAP) error {
	if err := r.db.WithContext(ctx).Save(ap).Error; err != nil {
		return fmt.Errorf("update wireless ap: %w", err)
	}
	return nil
}

func (r *wirelessAPRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.WirelessAP{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete wireless ap: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
