package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	CategoryID uuid.UUID
	UserID     uuid.UUID
}

// DeleteCategoryUseCase handles category deletion logic.
type DeleteCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(categoryRepo adapter.CategoryRepository) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category deletion. Categories with subcategories cannot be deleted.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) error {
	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		return fmt.Errorf("failed to find category: %w", err)
	}

	if !category.OwnedBy(input.UserID) {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeNotAuthorizedCategory,
			"not authorized to delete this category",
			domainerror.ErrNotAuthorizedToModifyCategory,
		)
	}

	children, err := uc.categoryRepo.CountChildren(ctx, input.CategoryID)
	if err != nil {
		return fmt.Errorf("failed to count subcategories: %w", err)
	}
	if children > 0 {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryHasChildren,
			"category has subcategories",
			domainerror.ErrCategoryHasChildren,
		)
	}

	if err := uc.categoryRepo.Delete(ctx, input.CategoryID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}
