package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/domain/entity"
)

// CategoryRepository persists the per-user category tree.
// Listing methods return categories ordered by name and skip soft-deleted rows.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error

	// FindByID returns domainerror.ErrCategoryNotFound when the id is unknown.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindByUser returns every category of the user, subcategories included.
	// Trend aggregation builds the parent map from this list.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error)

	FindTopLevelByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error)

	// ExistsByNameAndUser compares names case-insensitively.
	ExistsByNameAndUser(ctx context.Context, name string, userID uuid.UUID) (bool, error)

	CountChildren(ctx context.Context, id uuid.UUID) (int64, error)

	// Delete soft-deletes the category.
	Delete(ctx context.Context, id uuid.UUID) error
}
