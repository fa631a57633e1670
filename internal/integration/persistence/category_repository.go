package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	"github.com/finance-tracker/recurring/internal/domain/entity"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
	"github.com/finance-tracker/recurring/internal/integration/persistence/model"
)

// categoryRepository implements the adapter.CategoryRepository interface.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance.
func NewCategoryRepository(db *gorm.DB) adapter.CategoryRepository {
	return &categoryRepository{
		db: db,
	}
}

// Create creates a new category in the database.
func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return r.db.WithContext(ctx).Create(model.CategoryFromEntity(category)).Error
}

// FindByID retrieves a category by its ID.
func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryNotFound
		}
		return nil, result.Error
	}
	return categoryModel.ToEntity(), nil
}

// FindByUser retrieves all categories for a given user.
func (r *categoryRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

// FindTopLevelByUser retrieves the user's categories without a parent.
func (r *categoryRepository) FindTopLevelByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ? AND parent_id IS NULL", userID))
}

func (r *categoryRepository) find(query *gorm.DB) ([]*entity.Category, error) {
	var rows []model.CategoryModel
	if err := query.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return model.CategoriesToEntities(rows), nil
}

// ExistsByNameAndUser checks if a category with the given name exists for the user (case-insensitive).
func (r *categoryRepository) ExistsByNameAndUser(ctx context.Context, name string, userID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.CategoryModel{}).
		Where("LOWER(name) = ? AND user_id = ?", strings.ToLower(name), userID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// CountChildren counts the live subcategories of a category.
func (r *categoryRepository) CountChildren(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.CategoryModel{}).
		Where("parent_id = ?", id).
		Count(&count)
	return count, result.Error
}

// Delete soft-deletes a category from the database.
func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.CategoryModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrCategoryNotFound
	}
	return nil
}
