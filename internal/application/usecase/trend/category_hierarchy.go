package trend

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/domain/entity"
)

// CategoryParentMap maps every category id to the id of its top-level ancestor.
// Top-level categories map to themselves.
type CategoryParentMap map[uuid.UUID]uuid.UUID

// BuildParentMap walks each category's parent chain to its root.
// A category whose chain reaches an unknown parent is left out of the map.
// A category whose chain loops is logged and mapped to itself.
func BuildParentMap(categories []*entity.Category) CategoryParentMap {
	byID := make(map[uuid.UUID]*entity.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	parents := make(CategoryParentMap, len(categories))
	for _, c := range categories {
		root, ok := findRoot(c, byID)
		if !ok {
			continue
		}
		parents[c.ID] = root
	}
	return parents
}

func findRoot(category *entity.Category, byID map[uuid.UUID]*entity.Category) (uuid.UUID, bool) {
	visited := map[uuid.UUID]bool{category.ID: true}
	current := category

	for current.ParentID != nil {
		parentID := *current.ParentID
		if visited[parentID] {
			slog.Warn("Category hierarchy contains a cycle, treating category as top-level",
				"category_id", category.ID,
				"parent_id", parentID,
			)
			return category.ID, true
		}

		parent, ok := byID[parentID]
		if !ok {
			slog.Warn("Category parent not found", "category_id", category.ID, "parent_id", parentID)
			return uuid.Nil, false
		}
		visited[parentID] = true
		current = parent
	}

	return current.ID, true
}

// Subtree returns rootID followed by every category whose parent chain passes
// through it. Cycles are cut at the first repeated id.
func Subtree(categories []*entity.Category, rootID uuid.UUID) []uuid.UUID {
	children := make(map[uuid.UUID][]uuid.UUID)
	for _, c := range categories {
		if c.ParentID != nil {
			children[*c.ParentID] = append(children[*c.ParentID], c.ID)
		}
	}

	ids := []uuid.UUID{rootID}
	seen := map[uuid.UUID]bool{rootID: true}
	for i := 0; i < len(ids); i++ {
		for _, child := range children[ids[i]] {
			if seen[child] {
				continue
			}
			seen[child] = true
			ids = append(ids, child)
		}
	}
	return ids
}
