package repositories

import (
	"context"

	"github.com/schoolit/asset-service/internal/models"
)

// SchoolRepository covers the school CRUD and the scope-existence lookup
// the authorization helper depends on.
type SchoolRepository interface {
	GetByID(ctx context.Context, id uint) (*models.School, error)
	List(ctx context.Context, limit, offset int) ([]*models.School, int64, error)

	Create(ctx context.Context, school *models.School) error
	Update(ctx context.Context, school *models.School) error
	Delete(ctx context.Context, id uint) error

	ExistsByID(ctx context.Context, id uint) (bool, error)
}
