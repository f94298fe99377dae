package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/schoolit/asset-service/internal/events"
	"github.com/schoolit/asset-service/internal/models"
	"github.com/schoolit/asset-service/internal/repositories"
)

// UserGrantsResponse lists both grant axes of one user.
type UserGrantsResponse struct {
	UserID   uint                      `json:"user_id"`
	Features []models.Permission       `json:"features"`
	Schools  []models.SchoolPermission `json:"schools"`
}

// PermissionService is the admin-facing grant management surface. Every
// mutation requires an ADMIN actor and emits an audit event.
type PermissionService interface {
	GrantFeature(ctx context.Context, actor *models.User, userID uint, feature models.Feature) error
	RevokeFeature(ctx context.Context, actor *models.User, userID uint, feature models.Feature) error
	GrantSchool(ctx context.Context, actor *models.User, userID, schoolID uint) error
	RevokeSchool(ctx context.Context, actor *models.User, userID, schoolID uint) error

	GetUserGrants(ctx context.Context, actor *models.User, userID uint) (*UserGrantsResponse, error)
}

type permissionService struct {
	repo      repositories.Repository
	publisher events.Publisher
	logger    *slog.Logger
}

func NewPermissionService(repo repositories.Repository, publisher events.Publisher, logger *slog.Logger) PermissionService {
	return &permissionService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *permissionService) requireAdmin(actor *models.User) error {
	if !actor.IsAdmin() {
		return ErrAdminRequired
	}
	return nil
}

// ensureTargetExists rejects grants to unknown accounts so grant rows never
// reference a user the decision engine cannot load.
func (s *permissionService) ensureTargetExists(ctx context.Context, userID uint) error {
	if _, err := s.repo.User().GetByID(ctx, userID); err != nil {
		return err
	}
	return nil
}

func (s *permissionService) GrantFeature(ctx context.Context, actor *models.User, userID uint, feature models.Feature) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}
	if !feature.Valid() {
		return fmt.Errorf("%w: %q", models.ErrUnknownFeature, feature)
	}
	if err := s.ensureTargetExists(ctx, userID); err != nil {
		return err
	}

	if err := s.repo.Permission().GrantFeature(ctx, userID, feature); err != nil {
		return err
	}

	s.publish(ctx, events.EventFeatureGranted, actor.ID, map[string]any{
		"user_id": userID,
		"feature": feature,
	})
	s.logger.Info("feature granted", "actor", actor.Username, "user_id", userID, "feature", feature)
	return nil
}

func (s *permissionService) RevokeFeature(ctx context.Context, actor *models.User, userID uint, feature models.Feature) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}
	if !feature.Valid() {
		return fmt.Errorf("%w: %q", models.ErrUnknownFeature, feature)
	}

	if err := s.repo.Permission().RevokeFeature(ctx, userID, feature); err != nil {
		return err
	}

	s.publish(ctx, events.EventFeatureRevoked, actor.ID, map[string]any{
		"user_id": userID,
		"feature": feature,
	})
	s.logger.Info("feature revoked", "actor", actor.Username, "user_id", userID, "feature", feature)
	return nil
}

func (s *permissionService) GrantSchool(ctx context.Context, actor *models.User, userID, schoolID uint) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}
	if err := s.ensureTargetExists(ctx, userID); err != nil {
		return err
	}
	if _, err := s.repo.School().GetByID(ctx, schoolID); err != nil {
		return err
	}

	if err := s.repo.Permission().GrantSchool(ctx, userID, schoolID); err != nil {
		return err
	}

	s.publish(ctx, events.EventSchoolGranted, actor.ID, map[string]any{
		"user_id":   userID,
		"school_id": schoolID,
	})
	s.logger.Info("school granted", "actor", actor.Username, "user_id", userID, "school_id", schoolID)
	return nil
}

func (s *permissionService) RevokeSchool(ctx context.Context, actor *models.User, userID, schoolID uint) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}

	if err := s.repo.Permission().RevokeSchool(ctx, userID, schoolID); err != nil {
		return err
	}

	s.publish(ctx, events.EventSchoolRevoked, actor.ID, map[string]any{
		"user_id":   userID,
		"school_id": schoolID,
	})
	s.logger.Info("school revoked", "actor", actor.Username, "user_id", userID, "school_id", schoolID)
	return nil
}

func (s *permissionService) GetUserGrants(ctx context.Context, actor *models.User, userID uint) (*UserGrantsResponse, error) {
	if err := s.requireAdmin(actor); err != nil {
		return nil, err
	}

	features, err := s.repo.Permission().ListFeatures(ctx, userID)
	if err != nil {
		return nil, err
	}
	schools, err := s.repo.Permission().ListSchools(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserGrantsResponse{
		UserID:   userID,
		Features: features,
		Schools:  schools,
	}, nil
}

// publish emits the audit event; a broker outage must not fail the grant
// that already committed.
func (s *permissionService) publish(ctx context.Context, eventType string, actorID uint, payload map[string]any) {
	event := events.NewEvent(eventType, actorID, payload)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish audit event", "type", eventType, "error", err)
	}
}
