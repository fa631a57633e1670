// Package category contains category-related use cases.
package category

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	"github.com/finance-tracker/recurring/internal/domain/entity"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
)

// MaxCategoryNameLength is the maximum allowed length for category names.
const MaxCategoryNameLength = 50

// hexColorRegex accepts #RGB and #RRGGBB.
var hexColorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	UserID   uuid.UUID
	Name     string
	Color    string // Optional, defaults to DefaultCategoryColor
	Type     entity.CategoryType
	ParentID *uuid.UUID
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category *entity.Category
}

// CreateCategoryUseCase handles category creation logic.
type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(categoryRepo adapter.CategoryRepository) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category creation.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeMissingCategoryFields,
			"name is required",
			nil,
		)
	}

	// Validate name length
	if len(name) > MaxCategoryNameLength {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameTooLong,
			fmt.Sprintf("category name must not exceed %d characters", MaxCategoryNameLength),
			domainerror.ErrCategoryNameTooLong,
		)
	}

	// Validate color format if provided
	if input.Color != "" && !hexColorRegex.MatchString(input.Color) {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidColorFormat,
			"color must be a valid hex format (#XXXXXX)",
			domainerror.ErrInvalidColorFormat,
		)
	}

	color := input.Color
	if color == "" {
		color = entity.DefaultCategoryColor
	}

	if !input.Type.IsValid() {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryType,
			"category type must be 'expense' or 'income'",
			domainerror.ErrInvalidCategoryType,
		)
	}

	// The parent must exist and belong to the same user
	if input.ParentID != nil {
		parent, err := uc.categoryRepo.FindByID(ctx, *input.ParentID)
		if err != nil && !errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, fmt.Errorf("failed to find parent category: %w", err)
		}
		if !parent.OwnedBy(input.UserID) {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeParentNotFound,
				"parent category not found",
				domainerror.ErrParentCategoryNotFound,
			)
		}
	}

	exists, err := uc.categoryRepo.ExistsByNameAndUser(ctx, name, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameExists,
			"a category with this name already exists",
			domainerror.ErrCategoryNameExists,
		)
	}

	category := entity.NewCategory(input.UserID, name, color, input.Type, input.ParentID)

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &CreateCategoryOutput{
		Category: category,
	}, nil
}
