package repositories

import (
	"context"
	"errors"
)

// ErrNotFound marks a lookup by id that matched no row.
var ErrNotFound = errors.New("record not found")

// Repository aggregates all per-domain repository interfaces.
type Repository interface {
	// Identity and grants
	User() UserRepository
	Permission() PermissionRepository

	// School domain (also the scope entity of the permission model)
	School() SchoolRepository

	// Asset domain
	Device() DeviceRepository
	Classroom() ClassroomRepository
	FloorPlan() FloorPlanRepository
	WirelessAP() WirelessAPRepository

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager manages repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
