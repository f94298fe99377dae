package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/schoolit/asset-service/internal/cache"
	"github.com/schoolit/asset-service/internal/models"
	"github.com/schoolit/asset-service/internal/repositories"
)

type permissionRepository struct {
	db    *gorm.DB
	cache *cache.CacheHelper
}

// NewPermissionPostgreSQL creates the grant store. Existence answers are
// cached for a short TTL and invalidated on every grant mutation.
func NewPermissionPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.PermissionRepository {
	return &permissionRepository{
		db:    db,
		cache: cache.NewCacheHelper(redisClient, "grant", 2*time.Minute),
	}
}

// ===== EXISTENCE CHECKS =====

func (r *permissionRepository) HasFeatureGrant(ctx context.Context, userID uint, feature models.Feature) (bool, error) {
	if ok, err := r.cache.GetBool(ctx, "feature", userID, feature); err == nil {
		return ok, nil
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Permission{}).
		Where("user_id = ? AND feature = ?", userID, feature).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check feature grant: %w", err)
	}

	r.cache.SetBool(ctx, count > 0, "feature", userID, feature)
	return count > 0, nil
}

func (r *permissionRepository) HasSchoolGrant(ctx context.Context, userID, schoolID uint) (bool, error) {
	if ok, err := r.cache.GetBool(ctx, "school", userID, schoolID); err == nil {
		return ok, nil
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SchoolPermission{}).
		Where("user_id = ? AND school_id = ?", userID, schoolID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check school grant: %w", err)
	}

	r.cache.SetBool(ctx, count > 0, "school", userID, schoolID)
	return count > 0, nil
}

// ===== GRANT / REVOKE =====

// GrantFeature inserts the grant row. A concurrent or repeated grant of the
// same pair hits the unique index and is dropped by ON CONFLICT DO NOTHING.
func (r *permissionRepository) GrantFeature(ctx context.Context, userID uint, feature models.Feature) error {
	grant := models.Permission{UserID: userID, Feature: feature}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&grant).Error
	if err != nil {
		return fmt.Errorf("grant feature: %w", err)
	}

	r.cache.Invalidate(ctx, []any{"feature", userID, feature})
	return nil
}

// RevokeFeature deletes the grant row; a missing row is a no-op.
func (r *permissionRepository) RevokeFeature(ctx context.Context, userID uint, feature models.Feature) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND feature = ?", userID, feature).
		Delete(&models.Permission{}).Error
	if err != nil {
		return fmt.Errorf("revoke feature: %w", err)
	}

	r.cache.Invalidate(ctx, []any{"feature", userID, feature})
	return nil
}

func (r *permissionRepository) GrantSchool(ctx context.Context, userID, schoolID uint) error {
	grant := models.SchoolPermission{UserID: userID, SchoolID: schoolID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&grant).Error
	if err != nil {
		return fmt.Errorf("grant school: %w", err)
	}

	r.cache.Invalidate(ctx, []any{"school", userID, schoolID})
	return nil
}

func (r *permissionRepository) RevokeSchool(ctx context.Context, userID, schoolID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND school_id = ?", userID, schoolID).
		Delete(&models.SchoolPermission{}).Error
	if err != nil {
		return fmt.Errorf("revoke school: %w", err)
	}

	r.cache.Invalidate(ctx, []any{"school", userID, schoolID})
	return nil
}

// ===== LISTING =====

func (r *permissionRepository) ListFeatures(ctx context.Context, userID uint) ([]models.Permission, error) {
	var grants []models.Permission
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&grants).Error
	if err != nil {
		return nil, fmt.Errorf("list feature grants: %w", err)
	}
	return grants, nil
}

func (r *permissionRepository) ListSchools(ctx context.Context, userID uint) ([]models.SchoolPermission, error) {
	var grants []models.SchoolPermission
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&grants).Error
	if err != nil {
		return nil, fmt.Errorf("list school grants: %w", err)
	}
	return grants, nil
}

// ===== CLEANUP =====

// DeleteAllForUser removes every grant of one user. Called from the user
// deletion flow so grants never outlive their account.
func (r *permissionRepository) DeleteAllForUser(ctx context.Context, userID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Permission{}).Error
	if err != nil {
		return fmt.Errorf("delete feature grants: %w", err)
	}

	err = r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.SchoolPermission{}).Error
	if err != nil {
		return fmt.Errorf("delete school grants: %w", err)
	}

	if err := r.cache.InvalidatePrefix(ctx, "feature", userID); err != nil {
		return err
	}
	return r.cache.InvalidatePrefix(ctx, "school", userID)
}
