package authz

import (
	"context"
	"errors"
	"testing"

	"github.com/schoolit/asset-service/internal/models"
)

// mockStore is an in-memory grant relation that records every lookup, so
// tests can assert which tier was consulted.
type mockStore struct {
	featureGrants map[uint]map[models.Feature]bool
	schoolGrants  map[uint]map[uint]bool

	featureCalls int
	schoolCalls  int

	featureErr error
	schoolErr  error
}

func newMockStore() *mockStore {
	return &mockStore{
		featureGrants: make(map[uint]map[models.Feature]bool),
		schoolGrants:  make(map[uint]map[uint]bool),
	}
}

func (m *mockStore) grantFeature(userID uint, feature models.Feature) {
	if m.featureGrants[userID] == nil {
		m.featureGrants[userID] = make(map[models.Feature]bool)
	}
	m.featureGrants[userID][feature] = true
}

func (m *mockStore) grantSchool(userID, schoolID uint) {
	if m.schoolGrants[userID] == nil {
		m.schoolGrants[userID] = make(map[uint]bool)
	}
	m.schoolGrants[userID][schoolID] = true
}

func (m *mockStore) HasFeatureGrant(_ context.Context, userID uint, feature models.Feature) (bool, error) {
	m.featureCalls++
	if m.featureErr != nil {
		return false, m.featureErr
	}
	return m.featureGrants[userID][feature], nil
}

func (m *mockStore) HasSchoolGrant(_ context.Context, userID, schoolID uint) (bool, error) {
	m.schoolCalls++
	if m.schoolErr != nil {
		return false, m.schoolErr
	}
	return m.schoolGrants[userID][schoolID], nil
}

func uintPtr(v uint) *uint { return &v }

func employee(id uint) *models.User {
	return &models.User{ID: id, Username: "employee", Role: models.RoleEmployee, Status: models.StatusApproved}
}

func admin(id uint) *models.User {
	return &models.User{ID: id, Username: "admin", Role: models.RoleAdmin, Status: models.StatusApproved}
}

func TestChecker_Authorize(t *testing.T) {
	ctx := context.Background()

	t.Run("nil user is denied as unauthenticated", func(t *testing.T) {
		store := newMockStore()
		checker := NewChecker(store)

		decision, err := checker.Authorize(ctx, nil, models.FeatureDeviceList, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if decision.Allowed {
			t.Fatal("expected denial for nil user")
		}
		if decision.Kind != DenyUnauthenticated {
			t.Errorf("expected kind %s, got %s", DenyUnauthenticated, decision.Kind)
		}
		if store.featureCalls != 0 || store.schoolCalls != 0 {
			t.Error("store must not be consulted for a nil user")
		}
	})

	t.Run("admin is allowed without store lookups", func(t *testing.T) {
		store := newMockStore()
		checker := NewChecker(store)

		decision, err := checker.Authorize(ctx, admin(1), models.FeatureDeviceManagement, uintPtr(42))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !decision.Allowed {
			t.Fatal("expected admin to be allowed")
		}
		if store.featureCalls != 0 || store.schoolCalls != 0 {
			t.Errorf("admin bypass must not hit the store, got %d feature and %d school lookups",
				store.featureCalls, store.schoolCalls)
		}
	})

	t.Run("missing feature grant denies before the scope tier", func(t *testing.T) {
		store := newMockStore()
		// The user may access the school, but holds no feature grant. The
		// scope grant must not rescue the call and must not even be read.
		store.grantSchool(2, 42)
		checker := NewChecker(store)

		decision, err := checker.Authorize(ctx, employee(2), models.FeatureDeviceManagement, uintPtr(42))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if decision.Allowed {
			t.Fatal("expected feature denial")
		}
		if decision.Kind != DenyFeature {
			t.Errorf("expected kind %s, got %s", DenyFeature, decision.Kind)
		}
		if store.schoolCalls != 0 {
			t.Errorf("scope tier must not run after a feature denial, got %d lookups", store.schoolCalls)
		}
	})

	t.Run("feature grant without scope grant denies on the scope tier", func(t *testing.T) {
		store := newMockStore()
		store.grantFeature(2, models.FeatureDeviceList)
		store.grantSchool(2, 7)
		checker := NewChecker(store)

		decision, err := checker.Authorize(ctx, employee(2), models.FeatureDeviceList, uintPtr(42))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if decision.Allowed {
			t.Fatal("expected scope denial for school 42")
		}
		if decision.Kind != DenyScope {
			t.Errorf("expected kind %s, got %s", DenyScope, decision.Kind)
		}
		if decision.SchoolID == nil || *decision.SchoolID != 42 {
			t.Errorf("expected denial to carry school 42, got %v", decision.SchoolID)
		}
	})

	t.Run("both grants allow", func(t *testing.T) {
		store := newMockStore()
		store.grantFeature(2, models.FeatureDeviceList)
		store.grantSchool(2, 7)
		checker := NewChecker(store)

		decision, err := checker.Authorize(ctx, employee(2), models.FeatureDeviceList, uintPtr(7))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !decision.Allowed {
			t.Fatalf("expected allow, got %s", decision.Kind)
		}
		if decision.Err() != nil {
			t.Error("allowed decision must convert to a nil error")
		}
	})

	t.Run("nil school id skips the scope tier", func(t *testing.T) {
		store := newMockStore()
		store.grantFeature(2, models.FeatureDeviceList)
		checker := NewChecker(store)

		decision, err := checker.Authorize(ctx, employee(2), models.FeatureDeviceList, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !decision.Allowed {
			t.Fatalf("expected allow, got %s", decision.Kind)
		}
		if store.schoolCalls != 0 {
			t.Error("scope tier must not run without a school id")
		}
	})

	t.Run("grants are independent per axis", func(t *testing.T) {
		store := newMockStore()
		// DEVICE_LIST is granted, DEVICE_MANAGEMENT is not. The school
		// grant applies to every feature alike.
		store.grantFeature(2, models.FeatureDeviceList)
		store.grantSchool(2, 7)
		checker := NewChecker(store)

		decision, err := checker.Authorize(ctx, employee(2), models.FeatureDeviceManagement, uintPtr(7))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if decision.Allowed {
			t.Fatal("a school grant must not imply any feature grant")
		}
		if decision.Kind != DenyFeature {
			t.Errorf("expected kind %s, got %s", DenyFeature, decision.Kind)
		}
	})

	t.Run("store errors propagate and are not denials", func(t *testing.T) {
		storeErr := errors.New("connection reset")

		store := newMockStore()
		store.featureErr = storeErr
		checker := NewChecker(store)

		_, err := checker.Authorize(ctx, employee(2), models.FeatureDeviceList, nil)
		if !errors.Is(err, storeErr) {
			t.Fatalf("expected the store error back, got %v", err)
		}

		store = newMockStore()
		store.grantFeature(2, models.FeatureDeviceList)
		store.schoolErr = storeErr
		checker = NewChecker(store)

		_, err = checker.Authorize(ctx, employee(2), models.FeatureDeviceList, uintPtr(7))
		if !errors.Is(err, storeErr) {
			t.Fatalf("expected the store error back, got %v", err)
		}
	})
}

func TestChecker_MayUseFeature(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	store.grantFeature(2, models.FeatureDeviceList)
	checker := NewChecker(store)

	tests := []struct {
		name    string
		user    *models.User
		feature models.Feature
		want    bool
	}{
		{"nil user", nil, models.FeatureDeviceList, false},
		{"admin without grant", admin(1), models.FeatureDataDelete, true},
		{"employee with grant", employee(2), models.FeatureDeviceList, true},
		{"employee without grant", employee(2), models.FeatureDataDelete, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := checker.MayUseFeature(ctx, tt.user, tt.feature)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("MayUseFeature() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChecker_MayAccessSchool(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	store.grantSchool(2, 7)
	checker := NewChecker(store)

	tests := []struct {
		name     string
		user     *models.User
		schoolID uint
		want     bool
	}{
		{"nil user", nil, 7, false},
		{"admin without grant", admin(1), 42, true},
		{"employee with grant", employee(2), 7, true},
		{"employee without grant", employee(2), 42, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := checker.MayAccessSchool(ctx, tt.user, tt.schoolID)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("MayAccessSchool() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecision_Err(t *testing.T) {
	d := deny(DenyScope, models.FeatureDeviceList, uintPtr(42))
	err := d.Err()
	if err == nil {
		t.Fatal("expected an error for a denied decision")
	}
	var authzErr *Error
	if !errors.As(err, &authzErr) {
		t.Fatalf("expected *authz.Error, got %T", err)
	}
	if authzErr.Kind != DenyScope {
		t.Errorf("expected kind %s, got %s", DenyScope, authzErr.Kind)
	}
}
