package services

import (
	"context"
	"log/slog"

	"github.com/schoolit/asset-service/internal/models"
	"github.com/schoolit/asset-service/internal/repositories"
	"github.com/schoolit/asset-service/internal/validator"
)

// SchoolListResponse is the paginated school listing.
type SchoolListResponse struct {
	Schools []*models.School `json:"schools"`
	Total   int64            `json:"total"`
}

type SchoolService interface {
	Get(ctx context.Context, id uint) (*models.School, error)
	List(ctx context.Context, limit, offset int) (*SchoolListResponse, error)
	Create(ctx context.Context, req *validator.SchoolCreateRequest) (*models.School, error)
	Update(ctx context.Context, id uint, req *validator.SchoolUpdateRequest) (*models.School, error)
	Delete(ctx context.Context, id uint) error
}

type schoolService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewSchoolService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) SchoolService {
	return &schoolService{repo: repo, logger: logger, validator: v}
}

func (s *schoolService) Get(ctx context.Context, id uint) (*models.School, error) {
	return s.repo.School().GetByID(ctx, id)
}

func (s *schoolService) List(ctx context.Context, limit, offset int) (*SchoolListResponse, error) {
	schools, total, err := s.repo.School().List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return &SchoolListResponse{Schools: schools, Total: total}, nil
}

func (s *schoolService) Create(ctx context.Context, req *validator.SchoolCreateRequest) (*models.School, error) {
	if verrs := s.validator.Validate(req); verrs.HasErrors() {
		return nil, verrs
	}

	school := &models.School{
		Name:      req.Name,
		ShortName: req.ShortName,
		Address:   req.Address,
	}
	if err := s.repo.School().Create(ctx, school); err != nil {
		return nil, err
	}

	s.logger.Info("school created", "school_id", school.ID, "name", school.Name)
	return school, nil
}

func (s *schoolService) Update(ctx context.Context, id uint, req *validator.SchoolUpdateRequest) (*models.School, error) {
	if verrs := s.validator.Validate(req); verrs.HasErrors() {
		return nil, verrs
	}

	school, err := s.repo.School().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		school.Name = *req.Name
	}
	if req.Address != nil {
		school.Address = req.Address
	}

	if err := s.repo.School().Update(ctx, school); err != nil {
		return nil, err
	}
	return school, nil
}

func (s *schoolService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.School().Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("school deleted", "school_id", id)
	return nil
}
