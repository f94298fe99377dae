package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/schoolit/asset-service/internal/events"
	"github.com/schoolit/asset-service/internal/models"
	"github.com/schoolit/asset-service/internal/repositories"
	"github.com/schoolit/asset-service/internal/validator"
)

// UserService covers signup and the admin approval workflow. Status and
// role changes emit audit events; deletion removes the account together
// with every grant it owns.
type UserService interface {
	Signup(ctx context.Context, req *validator.SignupRequest) (*models.User, error)
	Get(ctx context.Context, id uint) (*models.User, error)

	// List enumerates accounts. Admin only: the listing exposes every
	// username and email address.
	List(ctx context.Context, actor *models.User, filters repositories.UserFilters) ([]*models.User, int64, error)

	UpdateStatus(ctx context.Context, actor *models.User, id uint, status models.UserStatus) error
	UpdateRole(ctx context.Context, actor *models.User, id uint, role models.UserRole) error
	Delete(ctx context.Context, actor *models.User, id uint) error
}

type userService struct {
	repo      repositories.Repository
	publisher events.Publisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewUserService(repo repositories.Repository, publisher events.Publisher, logger *slog.Logger, v *validator.Validator) UserService {
	return &userService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

// Signup creates a PENDING account with the EXTERNAL role. Roles are only
// ever raised by an explicit admin action afterwards.
func (s *userService) Signup(ctx context.Context, req *validator.SignupRequest) (*models.User, error) {
	if verrs := s.validator.Validate(req); verrs.HasErrors() {
		return nil, verrs
	}

	exists, err := s.repo.User().ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("username %q is already taken", req.Username)
	}

	user := &models.User{
		Username: req.Username,
		FullName: req.FullName,
		Email:    req.Email,
		Role:     models.RoleExternal,
		Status:   models.StatusPending,
	}
	if err := s.repo.User().Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user signed up", "username", user.Username)
	return user, nil
}

func (s *userService) Get(ctx context.Context, id uint) (*models.User, error) {
	return s.repo.User().GetByID(ctx, id)
}

func (s *userService) List(ctx context.Context, actor *models.User, filters repositories.UserFilters) ([]*models.User, int64, error) {
	if !actor.IsAdmin() {
		return nil, 0, ErrAdminRequired
	}
	return s.repo.User().List(ctx, filters)
}

func (s *userService) UpdateStatus(ctx context.Context, actor *models.User, id uint, status models.UserStatus) error {
	if !actor.IsAdmin() {
		return ErrAdminRequired
	}

	if err := s.repo.User().UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.publish(ctx, events.EventUserStatus, actor.ID, map[string]any{
		"user_id": id,
		"status":  status,
	})
	s.logger.Info("user status changed", "actor", actor.Username, "user_id", id, "status", status)
	return nil
}

func (s *userService) UpdateRole(ctx context.Context, actor *models.User, id uint, role models.UserRole) error {
	if !actor.IsAdmin() {
		return ErrAdminRequired
	}

	if err := s.repo.User().UpdateRole(ctx, id, role); err != nil {
		return err
	}

	s.publish(ctx, events.EventUserRole, actor.ID, map[string]any{
		"user_id": id,
		"role":    role,
	})
	s.logger.Info("user role changed", "actor", actor.Username, "user_id", id, "role", role)
	return nil
}

// Delete removes the account. The repository deletes the grant rows first,
// so no grant ever outlives its user.
func (s *userService) Delete(ctx context.Context, actor *models.User, id uint) error {
	if !actor.IsAdmin() {
		return ErrAdminRequired
	}

	if err := s.repo.User().Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, events.EventUserDeleted, actor.ID, map[string]any{
		"user_id": id,
	})
	s.logger.Info("user deleted", "actor", actor.Username, "user_id", id)
	return nil
}

func (s *userService) publish(ctx context.Context, eventType string, actorID uint, payload map[string]any) {
	event := events.NewEvent(eventType, actorID, payload)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish audit event", "type", eventType, "error", err)
	}
}
