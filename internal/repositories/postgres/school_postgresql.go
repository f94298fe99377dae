package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/schoolit/asset-service/internal/authz"
	"github.com/schoolit/asset-service/internal/cache"
	"github.com/schoolit/asset-service/internal/models"
	"github.com/schoolit/asset-service/internal/repositories"
)

type schoolRepository struct {
	db    *gorm.DB
	cache *cache.CacheHelper
}

func NewSchoolPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.SchoolRepository {
	return &schoolRepository{
		db:    db,
		cache: cache.NewCacheHelper(redisClient, "school", 5*time.Minute),
	}
}

func (r *schoolRepository) GetByID(ctx context.Context, id uint) (*models.School, error) {
	var school models.School
	if err := r.cache.GetJSON(ctx, &school, id); err == nil {
		return &school, nil
	}

	if err := r.db.WithContext(ctx).First(&school, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, authz.ErrSchoolNotFound
		}
		return nil, fmt.Errorf("get school by id: %w", err)
	}

	r.cache.SetJSON(ctx, &school, id)
	return &school, nil
}

func (r *schoolRepository) List(ctx context.Context, limit, offset int) ([]*models.School, int64, error) {
	var schools []*models.School
	var total int64

	query := r.db.WithContext(ctx).Model(&models.School{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count schools: %w", err)
	}

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Order("name").Find(&schools).Error; err != nil {
		return nil, 0, fmt.Errorf("list schools: %w", err)
	}
	return schools, total, nil
}

func (r *schoolRepository) Create(ctx context.Context, school *models.School) error {
	if err := r.db.WithContext(ctx).Create(school).Error; err != nil {
		return fmt.Errorf("create school: %w", err)
	}
	return nil
}

func (r *schoolRepository) Update(ctx context.Context, school *models.School) error {
	if err := r.db.WithContext(ctx).Save(school).Error; err != nil {
		return fmt.Errorf("update school: %w", err)
	}
	r.cache.Invalidate(ctx, []any{school.ID})
	return nil
}

func (r *schoolRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.School{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete school: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return authz.ErrSchoolNotFound
	}
	r.cache.Invalidate(ctx, []any{id})
	return nil
}

func (r *schoolRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.School{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check school: %w", err)
	}
	return count > 0, nil
}
