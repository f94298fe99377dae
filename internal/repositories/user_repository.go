package repositories

import (
	"context"

	"github.com/schoolit/asset-service/internal/models"
)

// UserFilters defines filters for user queries.
type UserFilters struct {
	Query  string // Search query for username or full name
	Status models.UserStatus
	Role   models.UserRole
	Limit  int
	Offset int
}

// UserRepository covers account lookup and the admin approval workflow.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)

	Create(ctx context.Context, user *models.User) error
	UpdateStatus(ctx context.Context, id uint, status models.UserStatus) error
	UpdateRole(ctx context.Context, id uint, role models.UserRole) error

	// Delete removes the user and, through the grant cleanup in the
	// permission repository, all of their grant rows.
	Delete(ctx context.Context, id uint) error

	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
