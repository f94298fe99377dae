package services

import (
	"context"
	"errors"

	"github.com/schoolit/asset-service/internal/authz"
	"github.com/schoolit/asset-service/internal/repositories"
)

// ErrAdminRequired is returned by grant-management operations invoked by a
// non-admin actor.
var ErrAdminRequired = errors.New("operation requires the ADMIN role")

// ensureSchoolExists guards every create that would otherwise attach a row
// to a nonexistent school.
func ensureSchoolExists(ctx context.Context, repo repositories.Repository, schoolID uint) error {
	exists, err := repo.School().ExistsByID(ctx, schoolID)
	if err != nil {
		return err
	}
	if !exists {
		return authz.ErrSchoolNotFound
	}
	return nil
}

// ServiceManager exposes all application services.
type ServiceManager interface {
	Permission() PermissionService
	User() UserService
	School() SchoolService
	Device() DeviceService
	Classroom() ClassroomService
	FloorPlan() FloorPlanService
	WirelessAP() WirelessAPService
	Export() ExportService
	QRCode() QRCodeService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
