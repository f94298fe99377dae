package repositories

import (
	"context"

	"github.com/schoolit/asset-service/internal/models"
)

// PermissionRepository is the grant store behind the authorization engine.
// The existence checks answer raw row existence; the admin bypass lives in
// the decision engine, not here.
//
// Grant operations are idempotent: granting an existing pair is a no-op and
// revoking a missing pair is a no-op. Row uniqueness is enforced by the
// composite unique indexes on (user_id, feature) and (user_id, school_id).
type PermissionRepository interface {
	HasFeatureGrant(ctx context.Context, userID uint, feature models.Feature) (bool, error)
	HasSchoolGrant(ctx context.Context, userID, schoolID uint) (bool, error)

	GrantFeature(ctx context.Context, userID uint, feature models.Feature) error
	RevokeFeature(ctx context.Context, userID uint, feature models.Feature) error
	GrantSchool(ctx context.Context, userID, schoolID uint) error
	RevokeSchool(ctx context.Context, userID, schoolID uint) error

	ListFeatures(ctx context.Context, userID uint) ([]models.Permission, error)
	ListSchools(ctx context.Context, userID uint) ([]models.SchoolPermission, error)

	// DeleteAllForUser is the explicit grant cleanup invoked when an
	// account is deleted.
	DeleteAllForUser(ctx context.Context, userID uint) error
}
