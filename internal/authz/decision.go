package authz

import (
	"context"

	"github.com/schoolit/asset-service/internal/models"
)

// Store is the grant relation the decision engine queries. It answers pure
// existence questions; the admin bypass is applied here in the engine, never
// in the store.
type Store interface {
	HasFeatureGrant(ctx context.Context, userID uint, feature models.Feature) (bool, error)
	HasSchoolGrant(ctx context.Context, userID, schoolID uint) (bool, error)
}

// Decision is the outcome of evaluating a user against a feature and an
// optional school scope.
type Decision struct {
	Allowed  bool
	Kind     DenyKind
	Feature  models.Feature
	SchoolID *uint
}

// Err converts a denied decision into the typed enforcement error. It is nil
// for an allowed decision.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return &Error{Kind: d.Kind, Feature: d.Feature, SchoolID: d.SchoolID}
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(kind DenyKind, feature models.Feature, schoolID *uint) Decision {
	return Decision{Kind: kind, Feature: feature, SchoolID: schoolID}
}

// Checker is the decision engine. It is stateless per request: every
// decision is one or two store lookups against one loaded user record.
type Checker struct {
	store Store
}

func NewChecker(store Store) *Checker {
	return &Checker{store: store}
}

// MayUseFeature reports whether the user may exercise the feature: an admin
// always may, anyone else needs a feature grant.
func (c *Checker) MayUseFeature(ctx context.Context, user *models.User, feature models.Feature) (bool, error) {
	if user == nil {
		return false, nil
	}
	if user.IsAdmin() {
		return true, nil
	}
	return c.store.HasFeatureGrant(ctx, user.ID, feature)
}

// MayAccessSchool reports whether the user may act on the school: an admin
// always may, anyone else needs a school grant.
func (c *Checker) MayAccessSchool(ctx context.Context, user *models.User, schoolID uint) (bool, error) {
	if user == nil {
		return false, nil
	}
	if user.IsAdmin() {
		return true, nil
	}
	return c.store.HasSchoolGrant(ctx, user.ID, schoolID)
}

// Authorize combines both tiers. The feature check always runs first and
// short-circuits; the school check runs only when a school id is supplied
// and the feature check passed. Store errors propagate unchanged, they are
// never reinterpreted as a denial.
func (c *Checker) Authorize(ctx context.Context, user *models.User, feature models.Feature, schoolID *uint) (Decision, error) {
	if user == nil {
		return deny(DenyUnauthenticated, feature, schoolID), nil
	}

	ok, err := c.MayUseFeature(ctx, user, feature)
	if err != nil {
		return Decision{}, err
	}
	if !ok {
		return deny(DenyFeature, feature, nil), nil
	}

	if schoolID == nil {
		return allow(), nil
	}

	ok, err = c.MayAccessSchool(ctx, user, *schoolID)
	if err != nil {
		return Decision{}, err
	}
	if !ok {
		return deny(DenyScope, feature, schoolID), nil
	}

	return allow(), nil
}
