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
	"github.com/schoolit/asset-service/internal/validator"
)

func newTestUserService() (UserService, *mockRepository, *events.MockEventPublisher) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(logger)
	return NewUserService(repo, publisher, logger, validator.New()), repo, publisher
}

func TestUserService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("new accounts start pending and external", func(t *testing.T) {
		service, _, _ := newTestUserService()

		user, err := service.Signup(ctx, &validator.SignupRequest{
			Username: "mmustermann",
			FullName: "Max Mustermann",
			Email:    "max.mustermann@schule.example",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.Status != models.StatusPending {
			t.Errorf("expected status %s, got %s", models.StatusPending, user.Status)
		}
		if user.Role != models.RoleExternal {
			t.Errorf("expected role %s, got %s", models.RoleExternal, user.Role)
		}
		if user.ID == 0 {
			t.Error("expected an assigned id")
		}
	})

	t.Run("taken username is rejected", func(t *testing.T) {
		service, _, _ := newTestUserService()

		_, err := service.Signup(ctx, &validator.SignupRequest{
			Username: "employee",
			FullName: "Someone Else",
			Email:    "someone@schule.example",
		})
		if err == nil {
			t.Fatal("expected an error for a taken username")
		}
	})

	t.Run("invalid request fails validation", func(t *testing.T) {
		service, _, _ := newTestUserService()

		_, err := service.Signup(ctx, &validator.SignupRequest{
			Username: "ab",
			FullName: "Too Short",
			Email:    "not-an-email",
		})
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			t.Fatalf("expected validation errors, got %v", err)
		}
	})
}

func TestUserService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("admin lists all accounts", func(t *testing.T) {
		service, _, _ := newTestUserService()

		users, total, err := service.List(ctx, testAdmin(), repositories.UserFilters{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if total != 2 || len(users) != 2 {
			t.Errorf("expected 2 accounts, got %d (total %d)", len(users), total)
		}
	})

	t.Run("non-admin actor is rejected", func(t *testing.T) {
		service, _, _ := newTestUserService()

		users, _, err := service.List(ctx, testEmployee(), repositories.UserFilters{})
		if !errors.Is(err, ErrAdminRequired) {
			t.Fatalf("expected ErrAdminRequired, got %v", err)
		}
		if users != nil {
			t.Error("no accounts may leak to a non-admin caller")
		}
	})
}

func TestUserService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("admin approves a pending account", func(t *testing.T) {
		service, repo, publisher := newTestUserService()
		pending := &models.User{Username: "pending", Role: models.RoleExternal, Status: models.StatusPending}
		_ = repo.user.Create(ctx, pending)

		if err := service.UpdateStatus(ctx, testAdmin(), pending.ID, models.StatusApproved); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, _ := repo.user.GetByID(ctx, pending.ID)
		if got.Status != models.StatusApproved {
			t.Errorf("expected status %s, got %s", models.StatusApproved, got.Status)
		}

		published := publisher.Events()
		if len(published) != 1 || published[0].Type != events.EventUserStatus {
			t.Errorf("expected a single %s event, got %+v", events.EventUserStatus, published)
		}
	})

	t.Run("non-admin actor is rejected", func(t *testing.T) {
		service, _, _ := newTestUserService()

		err := service.UpdateStatus(ctx, testEmployee(), 2, models.StatusSuspended)
		if !errors.Is(err, ErrAdminRequired) {
			t.Fatalf("expected ErrAdminRequired, got %v", err)
		}
	})

	t.Run("unknown account", func(t *testing.T) {
		service, _, _ := newTestUserService()

		err := service.UpdateStatus(ctx, testAdmin(), 999, models.StatusApproved)
		if !errors.Is(err, repositories.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestUserService_UpdateRole(t *testing.T) {
	ctx := context.Background()
	service, repo, _ := newTestUserService()

	if err := service.UpdateRole(ctx, testAdmin(), 2, models.RoleAdmin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := repo.user.GetByID(ctx, 2)
	if got.Role != models.RoleAdmin {
		t.Errorf("expected role %s, got %s", models.RoleAdmin, got.Role)
	}

	if err := service.UpdateRole(ctx, testEmployee(), 2, models.RoleAdmin); !errors.Is(err, ErrAdminRequired) {
		t.Fatalf("expected ErrAdminRequired, got %v", err)
	}
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletion removes the account and its grants", func(t *testing.T) {
		service, repo, publisher := newTestUserService()
		_ = repo.permission.GrantFeature(ctx, 2, models.FeatureDeviceList)
		_ = repo.permission.GrantSchool(ctx, 2, 7)

		if err := service.Delete(ctx, testAdmin(), 2); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := repo.user.GetByID(ctx, 2); !errors.Is(err, repositories.ErrNotFound) {
			t.Error("account should be gone")
		}
		features, _ := repo.permission.ListFeatures(ctx, 2)
		schools, _ := repo.permission.ListSchools(ctx, 2)
		if len(features) != 0 || len(schools) != 0 {
			t.Error("grants must not outlive the account")
		}

		published := publisher.Events()
		if len(published) != 1 || published[0].Type != events.EventUserDeleted {
			t.Errorf("expected a single %s event, got %+v", events.EventUserDeleted, published)
		}
	})

	t.Run("non-admin actor is rejected", func(t *testing.T) {
		service, repo, _ := newTestUserService()

		err := service.Delete(ctx, testEmployee(), 2)
		if !errors.Is(err, ErrAdminRequired) {
			t.Fatalf("expected ErrAdminRequired, got %v", err)
		}
		if _, err := repo.user.GetByID(ctx, 2); err != nil {
			t.Error("account should still exist")
		}
	})
}
