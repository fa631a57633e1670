// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// CategoryType is the kind of transaction a category groups.
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeIncome  CategoryType = "income"
)

// IsValid reports whether the type is expense or income.
func (t CategoryType) IsValid() bool {
	return t == CategoryTypeExpense || t == CategoryTypeIncome
}

const DefaultCategoryColor = "#6366F1"

// Category groups transactions. Subcategories point at their parent through ParentID,
// and trend reports roll them up to the root of that chain.
type Category struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Color     string
	Type      CategoryType
	ParentID  *uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// NewCategory creates a category with a fresh ID. The color is stored as given.
func NewCategory(userID uuid.UUID, name, color string, categoryType CategoryType, parentID *uuid.UUID) *Category {
	now := time.Now().UTC()
	return &Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Color:     color,
		Type:      categoryType,
		ParentID:  parentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsTopLevel reports whether the category has no parent.
func (c *Category) IsTopLevel() bool {
	return c.ParentID == nil
}

// OwnedBy reports whether the category belongs to the user.
func (c *Category) OwnedBy(userID uuid.UUID) bool {
	return c != nil && c.UserID == userID
}
