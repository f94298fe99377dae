package services

import (
	"context"
	"log/slog"

	"github.com/schoolit/asset-service/internal/models"
	"github.com/schoolit/asset-service/internal/repositories"
	"github.com/schoolit/asset-service/internal/validator"
)

// ===== CLASSROOMS =====

type ClassroomService interface {
	Get(ctx context.Context, id uint) (*models.Classroom, error)
	ListBySchool(ctx context.Context, schoolID uint) ([]*models.Classroom, error)
	Create(ctx context.Context, schoolID uint, req *validator.ClassroomRequest) (*models.Classroom, error)
	Update(ctx context.Context, id uint, req *validator.ClassroomRequest) (*models.Classroom, error)
	Delete(ctx context.Context, id uint) error
}

type classroomService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewClassroomService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) ClassroomService {
	return &classroomService{repo: repo, logger: logger, validator: v}
}

func (s *classroomService) Get(ctx context.Context, id uint) (*models.Classroom, error) {
	return s.repo.Classroom().GetByID(ctx, id)
}

func (s *classroomService) ListBySchool(ctx context.Context, schoolID uint) ([]*models.Classroom, error) {
	return s.repo.Classroom().ListBySchool(ctx, schoolID)
}

func (s *classroomService) Create(ctx context.Context, schoolID uint, req *validator.ClassroomRequest) (*models.Classroom, error) {
	if verrs := s.validator.Validate(req); verrs.HasErrors() {
		return nil, verrs
	}
	if err := ensureSchoolExists(ctx, s.repo, schoolID); err != nil {
		return nil, err
	}

	room := &models.Classroom{
		Name:     req.Name,
		Floor:    req.Floor,
		SchoolID: schoolID,
		Notes:    req.Notes,
	}
	if err := s.repo.Classroom().Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *classroomService) Update(ctx context.Context, id uint, req *validator.ClassroomRequest) (*models.Classroom, error) {
	if verrs := s.validator.Validate(req); verrs.HasErrors() {
		return nil, verrs
	}

	room, err := s.repo.Classroom().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	room.Name = req.Name
	room.Floor = req.Floor
	room.Notes = req.Notes

	if err := s.repo.Classroom().Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *classroomService) Delete(ctx context.Context, id uint) error {
	return s.repo.Classroom().Delete(ctx, id)
}

// ===== FLOOR PLANS =====

type FloorPlanService interface {
	Get(ctx context.Context, id uint) (*models.FloorPlan, error)
	ListBySchool(ctx context.Context, schoolID uint) ([]*models.FloorPlan, error)
	Create(ctx context.Context, schoolID uint, req *validator.FloorPlanRequest) (*models.FloorPlan, error)
	Update(ctx context.Context, id uint, req *validator.FloorPlanRequest) (*models.FloorPlan, error)
	Delete(ctx context.Context, id uint) error
}

type floorPlanService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewFloorPlanService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) FloorPlanService {
	return &floorPlanService{repo: repo, logger: logger, validator: v}
}

func (s *floorPlanService) Get(ctx context.Context, id uint) (*models.FloorPlan, error) {
	return s.repo.FloorPlan().GetByID(ctx, id)
}

func (s *floorPlanService) ListBySchool(ctx context.Context, schoolID uint) ([]*models.FloorPlan, error) {
	return s.repo.FloorPlan().ListBySchool(ctx, schoolID)
}

func (s *floorPlanService) Create(ctx context.Context, schoolID uint, req *validator.FloorPlanRequest) (*models.FloorPlan, error) {
	if verrs := s.validator.Validate(req); verrs.HasErrors() {
		return nil, verrs
	}
	if err := ensureSchoolExists(ctx, s.repo, schoolID); err != nil {
		return nil, err
	}

	plan := &models.FloorPlan{
		Name:     req.Name,
		Floor:    req.Floor,
		SchoolID: schoolID,
		Layout:   req.Layout,
	}
	if err := s.repo.FloorPlan().Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *floorPlanService) Update(ctx context.Context, id uint, req *validator.FloorPlanRequest) (*models.FloorPlan, error) {
	if verrs := s.validator.Validate(req); verrs.HasErrors() {
		return nil, verrs
	}

	plan, err := s.repo.FloorPlan().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	plan.Name = req.Name
	plan.Floor = req.Floor
	plan.Layout = req.Layout

	if err := s.repo.FloorPlan().Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *floorPlanService) Delete(ctx context.Context, id uint) error {
	return s.repo.FloorPlan().Delete(ctx, id)
}

// ===== WIRELESS APS =====

type WirelessAPService interface {
	Get(ctx context.Context, id uint) (*models.WirelessAP, error)
	ListBySchool(ctx context.Context, schoolID uint) ([]*models.WirelessAP, error)
	Create(ctx context.Context, schoolID uint, req *validator.WirelessAPRequest) (*models.WirelessAP, error)
	Update(ctx context.Context, id uint, req *validator.WirelessAPRequest) (*models.WirelessAP, error)
	Delete(ctx context.Context, id uint) error
}

type wirelessAPService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewWirelessAPService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) WirelessAPService {
	return &wirelessAPService{repo: repo, logger: logger, validator: v}
}

func (s *wirelessAPService) Get(ctx context.Context, id uint) (*models.WirelessAP, error) {
	return s.repo.WirelessAP().GetByID(ctx, id)
}

func (s *wirelessAPService) ListBySchool(ctx context.Context, schoolID uint) ([]*models.WirelessAP, error) {
	return s.repo.WirelessAP().ListBySchool(ctx, schoolID)
}

func (s *wirelessAPService) Create(ctx context.Context, schoolID uint, req *validator.WirelessAPRequest) (*models.WirelessAP, error) {
	if verrs := s.validator.Validate(req); verrs.HasErrors() {
		return nil, verrs
	}
	if err := ensureSchoolExists(ctx, s.repo, schoolID); err != nil {
		return nil, err
	}

	ap := &models.WirelessAP{
		Name:        req.Name,
		MACAddress:  req.MACAddress,
		IPAddress:   req.IPAddress,
		SchoolID:    schoolID,
		ClassroomID: req.ClassroomID,
	}
	if err := s.repo.WirelessAP().Create(ctx, ap); err != nil {
		return nil, err
	}
	return ap, nil
}

func (s *wirelessAPService) Update(ctx context.Context, id uint, req *validator.WirelessAPRequest) (*models.WirelessAP, error) {
	if verrs := s.validator.Validate(req); verrs.HasErrors() {
		return nil, verrs
	}

	ap, err := s.repo.WirelessAP().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ap.Name = req.Name
	ap.MACAddress = req.MACAddress
	ap.IPAddress = req.IPAddress
	ap.ClassroomID = req.ClassroomID

	if err := s.repo.WirelessAP().Update(ctx, ap); err != nil {
		return nil, err
	}
	return ap, nil
}

func (s *wirelessAPService) Delete(ctx context.Context, id uint) error {
	return s.repo.WirelessAP().Delete(ctx, id)
}
