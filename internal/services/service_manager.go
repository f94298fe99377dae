package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/schoolit/asset-service/internal/events"
	"github.com/schoolit/asset-service/internal/repositories"
	"github.com/schoolit/asset-service/internal/validator"
)

// serviceManager implements ServiceManager.
type serviceManager struct {
	repo      repositories.Repository
	publisher events.Publisher
	logger    *slog.Logger
	validator *validator.Validator

	permissionService PermissionService
	userService       UserService
	schoolService     SchoolService
	deviceService     DeviceService
	classroomService  ClassroomService
	floorPlanService  FloorPlanService
	wirelessAPService WirelessAPService
	exportService     ExportService
	qrCodeService     QRCodeService

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a service manager with all dependencies.
func NewServiceManager(repo repositories.Repository, publisher events.Publisher, logger *slog.Logger, v *validator.Validator) ServiceManager {
	return &serviceManager{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

// Initialize sets up all services.
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	sm.permissionService = NewPermissionService(sm.repo, sm.publisher, sm.logger)
	sm.userService = NewUserService(sm.repo, sm.publisher, sm.logger, sm.validator)
	sm.schoolService = NewSchoolService(sm.repo, sm.logger, sm.validator)
	sm.deviceService = NewDeviceService(sm.repo, sm.logger, sm.validator)
	sm.classroomService = NewClassroomService(sm.repo, sm.logger, sm.validator)
	sm.floorPlanService = NewFloorPlanService(sm.repo, sm.logger, sm.validator)
	sm.wirelessAPService = NewWirelessAPService(sm.repo, sm.logger, sm.validator)
	sm.exportService = NewExportService(sm.repo, sm.logger)
	sm.qrCodeService = NewQRCodeService(sm.repo, sm.logger)

	sm.initialized = true
	sm.logger.Info("Service manager initialized")
	return nil
}

func (sm *serviceManager) get(name string, ready bool) {
	if !sm.initialized {
		panic("service manager not initialized")
	}
	if !ready {
		panic(name + " service not initialized")
	}
}

func (sm *serviceManager) Permission() PermissionService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("permission", sm.permissionService != nil)
	return sm.permissionService
}

func (sm *serviceManager) User() UserService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("user", sm.userService != nil)
	return sm.userService
}

func (sm *serviceManager) School() SchoolService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("school", sm.schoolService != nil)
	return sm.schoolService
}

func (sm *serviceManager) Device() DeviceService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("device", sm.deviceService != nil)
	return sm.deviceService
}

func (sm *serviceManager) Classroom() ClassroomService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("classroom", sm.classroomService != nil)
	return sm.classroomService
}

func (sm *serviceManager) FloorPlan() FloorPlanService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("floor plan", sm.floorPlanService != nil)
	return sm.floorPlanService
}

func (sm *serviceManager) WirelessAP() WirelessAPService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("wireless ap", sm.wirelessAPService != nil)
	return sm.wirelessAPService
}

func (sm *serviceManager) Export() ExportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("export", sm.exportService != nil)
	return sm.exportService
}

func (sm *serviceManager) QRCode() QRCodeService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("qr code", sm.qrCodeService != nil)
	return sm.qrCodeService
}

// HealthCheck verifies the repository connections behind all services.
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	return sm.repo.Ping(ctx)
}

// Shutdown closes the audit publisher; repository connections are closed by
// the repository manager.
func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if err := sm.publisher.Close(); err != nil {
		sm.logger.Error("Failed to close audit publisher", "error", err)
	}

	sm.shutdown = true
	return nil
}
