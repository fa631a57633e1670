package category

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	"github.com/finance-tracker/recurring/internal/domain/entity"
)

// ListCategoriesInput filters the user's categories.
type ListCategoriesInput struct {
	UserID       uuid.UUID
	CategoryType *entity.CategoryType
	TopLevelOnly bool
}

// ListCategoriesOutput lists categories in tree order: every parent is
// followed by its subcategories, siblings sorted by name.
type ListCategoriesOutput struct {
	Categories []*entity.Category
}

type ListCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

func NewListCategoriesUseCase(categoryRepo adapter.CategoryRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{categoryRepo: categoryRepo}
}

func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	find := uc.categoryRepo.FindByUser
	if input.TopLevelOnly {
		find = uc.categoryRepo.FindTopLevelByUser
	}
	categories, err := find(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	if input.CategoryType != nil {
		categories = slices.DeleteFunc(categories, func(c *entity.Category) bool {
			return c.Type != *input.CategoryType
		})
	}

	return &ListCategoriesOutput{Categories: treeOrder(categories)}, nil
}

// treeOrder walks the categories depth-first from the roots. A category whose
// parent is not in the list is treated as a root so nothing is dropped.
func treeOrder(categories []*entity.Category) []*entity.Category {
	byName := func(a, b *entity.Category) int {
		return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	}

	present := make(map[uuid.UUID]bool, len(categories))
	for _, c := range categories {
		present[c.ID] = true
	}

	children := make(map[uuid.UUID][]*entity.Category)
	var roots []*entity.Category
	for _, c := range categories {
		if c.IsTopLevel() || !present[*c.ParentID] {
			roots = append(roots, c)
			continue
		}
		children[*c.ParentID] = append(children[*c.ParentID], c)
	}

	ordered := make([]*entity.Category, 0, len(categories))
	visited := make(map[uuid.UUID]bool, len(categories))
	var walk func(level []*entity.Category)
	walk = func(level []*entity.Category) {
		slices.SortStableFunc(level, byName)
		for _, c := range level {
			if visited[c.ID] {
				continue
			}
			visited[c.ID] = true
			ordered = append(ordered, c)
			walk(children[c.ID])
		}
	}
	walk(roots)

	// Members of a parent cycle are unreachable from any root.
	for _, c := range categories {
		if !visited[c.ID] {
			ordered = append(ordered, c)
		}
	}
	return ordered
}
