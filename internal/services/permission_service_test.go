package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/schoolit/asset-service/internal/events"
	"github.com/schoolit/asset-service/internal/models"
	"github.com/schoolit/asset-service/internal/repositories"
)

// memPermissionRepo is an in-memory grant store with the same idempotence
// contract as the PostgreSQL implementation.
type memPermissionRepo struct {
	features map[uint]map[models.Feature]bool
	schools  map[uint]map[uint]bool
}

func newMemPermissionRepo() *memPermissionRepo {
	return &memPermissionRepo{
		features: make(map[uint]map[models.Feature]bool),
		schools:  make(map[uint]map[uint]bool),
	}
}

func (m *memPermissionRepo) HasFeatureGrant(_ context.Context, userID uint, feature models.Feature) (bool, error) {
	return m.features[userID][feature], nil
}

func (m *memPermissionRepo) HasSchoolGrant(_ context.Context, userID, schoolID uint) (bool, error) {
	return m.schools[userID][schoolID], nil
}

func (m *memPermissionRepo) GrantFeature(_ context.Context, userID uint, feature models.Feature) error {
	if m.features[userID] == nil {
		m.features[userID] = make(map[models.Feature]bool)
	}
	m.features[userID][feature] = true
	return nil
}

func (m *memPermissionRepo) RevokeFeature(_ context.Context, userID uint, feature models.Feature) error {
	delete(m.features[userID], feature)
	return nil
}

func (m *memPermissionRepo) GrantSchool(_ context.Context, userID, schoolID uint) error {
	if m.schools[userID] == nil {
		m.schools[userID] = make(map[uint]bool)
	}
	m.schools[userID][schoolID] = true
	return nil
}

func (m *memPermissionRepo) RevokeSchool(_ context.Context, userID, schoolID uint) error {
	delete(m.schools[userID], schoolID)
	return nil
}

func (m *memPermissionRepo) ListFeatures(_ context.Context, userID uint) ([]models.Permission, error) {
	var out []models.Permission
	for feature := range m.features[userID] {
		out = append(out, models.Permission{UserID: userID, Feature: feature})
	}
	return out, nil
}

func (m *memPermissionRepo) ListSchools(_ context.Context, userID uint) ([]models.SchoolPermission, error) {
	var out []models.SchoolPermission
	for schoolID := range m.schools[userID] {
		out = append(out, models.SchoolPermission{UserID: userID, SchoolID: schoolID})
	}
	return out, nil
}

func (m *memPermissionRepo) DeleteAllForUser(_ context.Context, userID uint) error {
	delete(m.features, userID)
	delete(m.schools, userID)
	return nil
}

// memUserRepo is a stateful in-memory account store shared by the
// permission and user service tests.
type memUserRepo struct {
	users  map[uint]*models.User
	nextID uint

	permissions *memPermissionRepo
}

func (m *memUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (m *memUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memUserRepo) List(_ context.Context, _ repositories.UserFilters) ([]*models.User, int64, error) {
	out := make([]*models.User, 0, len(m.users))
	for _, user := range m.users {
		out = append(out, user)
	}
	return out, int64(len(out)), nil
}

func (m *memUserRepo) Create(_ context.Context, user *models.User) error {
	m.nextID++
	user.ID = m.nextID
	m.users[user.ID] = user
	return nil
}

func (m *memUserRepo) UpdateStatus(_ context.Context, id uint, status models.UserStatus) error {
	user, ok := m.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	user.Status = status
	return nil
}

func (m *memUserRepo) UpdateRole(_ context.Context, id uint, role models.UserRole) error {
	user, ok := m.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	user.Role = role
	return nil
}

func (m *memUserRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := m.users[id]; !ok {
		return repositories.ErrNotFound
	}
	if m.permissions != nil {
		_ = m.permissions.DeleteAllForUser(ctx, id)
	}
	delete(m.users, id)
	return nil
}

func (m *memUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := m.GetByUsername(ctx, username)
	if errors.Is(err, repositories.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

type memSchoolRepo struct {
	schools map[uint]*models.School
}

func (m *memSchoolRepo) GetByID(_ context.Context, id uint) (*models.School, error) {
	school, ok := m.schools[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return school, nil
}

func (m *memSchoolRepo) List(_ context.Context, _, _ int) ([]*models.School, int64, error) {
	return nil, 0, nil
}
func (m *memSchoolRepo) Create(_ context.Context, _ *models.School) error { return nil }
func (m *memSchoolRepo) Update(_ context.Context, _ *models.School) error { return nil }
func (m *memSchoolRepo) Delete(_ context.Context, _ uint) error           { return nil }
func (m *memSchoolRepo) ExistsByID(_ context.Context, id uint) (bool, error) {
	_, ok := m.schools[id]
	return ok, nil
}

// mockRepository aggregates the in-memory repositories; domains the
// permission service never touches stay nil.
type mockRepository struct {
	permission *memPermissionRepo
	user       *memUserRepo
	school     *memSchoolRepo
	device     *memDeviceRepo
}

func newMockRepository() *mockRepository {
	permissions := newMemPermissionRepo()
	return &mockRepository{
		permission: permissions,
		user: &memUserRepo{
			users: map[uint]*models.User{
				1: {ID: 1, Username: "admin", Role: models.RoleAdmin, Status: models.StatusApproved},
				2: {ID: 2, Username: "employee", Role: models.RoleEmployee, Status: models.StatusApproved},
			},
			nextID:      2,
			permissions: permissions,
		},
		school: &memSchoolRepo{schools: map[uint]*models.School{
			7: {ID: 7, Name: "Grundschule Nord", ShortName: "GSN"},
		}},
	}
}

func (m *mockRepository) User() repositories.UserRepository             { return m.user }
func (m *mockRepository) Permission() repositories.PermissionRepository { return m.permission }
func (m *mockRepository) School() repositories.SchoolRepository         { return m.school }
func (m *mockRepository) Device() repositories.DeviceRepository         { return m.device }
func (m *mockRepository) Classroom() repositories.ClassroomRepository   { return nil }
func (m *mockRepository) FloorPlan() repositories.FloorPlanRepository   { return nil }
func (m *mockRepository) WirelessAP() repositories.WirelessAPRepository { return nil }
func (m *mockRepository) WithTransaction(_ context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}
func (m *mockRepository) Ping(_ context.Context) error { return nil }
func (m *mockRepository) Close() error                 { return nil }

func newTestPermissionService() (PermissionService, *mockRepository, *events.MockEventPublisher) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(logger)
	return NewPermissionService(repo, publisher, logger), repo, publisher
}

func testAdmin() *models.User {
	return &models.User{ID: 1, Username: "admin", Role: models.RoleAdmin, Status: models.StatusApproved}
}

func testEmployee() *models.User {
	return &models.User{ID: 2, Username: "employee", Role: models.RoleEmployee, Status: models.StatusApproved}
}

func TestPermissionService_GrantFeature(t *testing.T) {
	ctx := context.Background()

	t.Run("admin grants a feature and an audit event is emitted", func(t *testing.T) {
		service, repo, publisher := newTestPermissionService()

		if err := service.GrantFeature(ctx, testAdmin(), 2, models.FeatureDeviceList); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		has, _ := repo.permission.HasFeatureGrant(ctx, 2, models.FeatureDeviceList)
		if !has {
			t.Error("grant row should exist")
		}

		published := publisher.Events()
		if len(published) != 1 {
			t.Fatalf("expected 1 event, got %d", len(published))
		}
		if published[0].Type != events.EventFeatureGranted {
			t.Errorf("expected event type %s, got %s", events.EventFeatureGranted, published[0].Type)
		}
		if published[0].ActorID != 1 {
			t.Errorf("expected actor 1, got %d", published[0].ActorID)
		}
	})

	t.Run("granting twice keeps a single grant and stays error-free", func(t *testing.T) {
		service, repo, _ := newTestPermissionService()

		if err := service.GrantFeature(ctx, testAdmin(), 2, models.FeatureDeviceList); err != nil {
			t.Fatalf("first grant: %v", err)
		}
		if err := service.GrantFeature(ctx, testAdmin(), 2, models.FeatureDeviceList); err != nil {
			t.Fatalf("second grant: %v", err)
		}

		features, _ := repo.permission.ListFeatures(ctx, 2)
		if len(features) != 1 {
			t.Errorf("expected 1 grant row, got %d", len(features))
		}
	})

	t.Run("non-admin actor is rejected without side effects", func(t *testing.T) {
		service, repo, publisher := newTestPermissionService()

		err := service.GrantFeature(ctx, testEmployee(), 2, models.FeatureDeviceList)
		if !errors.Is(err, ErrAdminRequired) {
			t.Fatalf("expected ErrAdminRequired, got %v", err)
		}

		has, _ := repo.permission.HasFeatureGrant(ctx, 2, models.FeatureDeviceList)
		if has {
			t.Error("no grant row should exist")
		}
		if len(publisher.Events()) != 0 {
			t.Error("no audit event should be emitted")
		}
	})

	t.Run("uncataloged feature is rejected", func(t *testing.T) {
		service, _, _ := newTestPermissionService()

		err := service.GrantFeature(ctx, testAdmin(), 2, models.Feature("NOT_A_FEATURE"))
		if !errors.Is(err, models.ErrUnknownFeature) {
			t.Fatalf("expected ErrUnknownFeature, got %v", err)
		}
	})

	t.Run("unknown target user is rejected", func(t *testing.T) {
		service, _, _ := newTestPermissionService()

		err := service.GrantFeature(ctx, testAdmin(), 999, models.FeatureDeviceList)
		if !errors.Is(err, repositories.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestPermissionService_RevokeFeature(t *testing.T) {
	ctx := context.Background()

	t.Run("revoking an existing grant removes it", func(t *testing.T) {
		service, repo, publisher := newTestPermissionService()
		_ = repo.permission.GrantFeature(ctx, 2, models.FeatureDeviceList)

		if err := service.RevokeFeature(ctx, testAdmin(), 2, models.FeatureDeviceList); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		has, _ := repo.permission.HasFeatureGrant(ctx, 2, models.FeatureDeviceList)
		if has {
			t.Error("grant row should be gone")
		}
		published := publisher.Events()
		if len(published) != 1 || published[0].Type != events.EventFeatureRevoked {
			t.Errorf("expected a single %s event, got %+v", events.EventFeatureRevoked, published)
		}
	})

	t.Run("revoking an absent grant is a no-op", func(t *testing.T) {
		service, _, _ := newTestPermissionService()

		if err := service.RevokeFeature(ctx, testAdmin(), 2, models.FeatureDeviceList); err != nil {
			t.Fatalf("expected no error for an absent grant, got %v", err)
		}
	})

	t.Run("non-admin actor is rejected", func(t *testing.T) {
		service, _, _ := newTestPermissionService()

		err := service.RevokeFeature(ctx, testEmployee(), 2, models.FeatureDeviceList)
		if !errors.Is(err, ErrAdminRequired) {
			t.Fatalf("expected ErrAdminRequired, got %v", err)
		}
	})
}

func TestPermissionService_SchoolGrants(t *testing.T) {
	ctx := context.Background()

	t.Run("grant and revoke round trip", func(t *testing.T) {
		service, repo, publisher := newTestPermissionService()

		if err := service.GrantSchool(ctx, testAdmin(), 2, 7); err != nil {
			t.Fatalf("grant: %v", err)
		}
		has, _ := repo.permission.HasSchoolGrant(ctx, 2, 7)
		if !has {
			t.Error("school grant row should exist")
		}

		if err := service.RevokeSchool(ctx, testAdmin(), 2, 7); err != nil {
			t.Fatalf("revoke: %v", err)
		}
		has, _ = repo.permission.HasSchoolGrant(ctx, 2, 7)
		if has {
			t.Error("school grant row should be gone")
		}

		published := publisher.Events()
		if len(published) != 2 {
			t.Fatalf("expected 2 events, got %d", len(published))
		}
		if published[0].Type != events.EventSchoolGranted || published[1].Type != events.EventSchoolRevoked {
			t.Errorf("unexpected event types: %s, %s", published[0].Type, published[1].Type)
		}
	})

	t.Run("granting an unknown school is rejected", func(t *testing.T) {
		service, _, _ := newTestPermissionService()

		err := service.GrantSchool(ctx, testAdmin(), 2, 999)
		if !errors.Is(err, repositories.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("school grants never affect feature grants", func(t *testing.T) {
		service, repo, _ := newTestPermissionService()

		if err := service.GrantSchool(ctx, testAdmin(), 2, 7); err != nil {
			t.Fatalf("grant: %v", err)
		}

		features, _ := repo.permission.ListFeatures(ctx, 2)
		if len(features) != 0 {
			t.Errorf("expected no feature grants, got %d", len(features))
		}
	})
}

func TestPermissionService_GetUserGrants(t *testing.T) {
	ctx := context.Background()

	t.Run("lists both axes", func(t *testing.T) {
		service, repo, _ := newTestPermissionService()
		_ = repo.permission.GrantFeature(ctx, 2, models.FeatureDeviceList)
		_ = repo.permission.GrantFeature(ctx, 2, models.FeatureDeviceInspection)
		_ = repo.permission.GrantSchool(ctx, 2, 7)

		grants, err := service.GetUserGrants(ctx, testAdmin(), 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if grants.UserID != 2 {
			t.Errorf("expected user 2, got %d", grants.UserID)
		}
		if len(grants.Features) != 2 {
			t.Errorf("expected 2 feature grants, got %d", len(grants.Features))
		}
		if len(grants.Schools) != 1 {
			t.Errorf("expected 1 school grant, got %d", len(grants.Schools))
		}
	})

	t.Run("non-admin actor is rejected", func(t *testing.T) {
		service, _, _ := newTestPermissionService()

		_, err := service.GetUserGrants(ctx, testEmployee(), 2)
		if !errors.Is(err, ErrAdminRequired) {
			t.Fatalf("expected ErrAdminRequired, got %v", err)
		}
	})
}
