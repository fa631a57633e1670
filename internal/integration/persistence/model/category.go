package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/recurring/internal/domain/entity"
)

// CategoryModel is the categories table. ParentID links a subcategory to the
// category it rolls up into for spending trends.
type CategoryModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_categories_user_parent,priority:1"`
	Name      string         `gorm:"type:varchar(50);not null"`
	Color     string         `gorm:"type:varchar(7);not null"`
	Type      string         `gorm:"type:varchar(10);not null"`
	ParentID  *uuid.UUID     `gorm:"type:uuid;index:idx_categories_user_parent,priority:2"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (CategoryModel) TableName() string {
	return "categories"
}

// ToEntity converts the row into a domain Category.
func (m *CategoryModel) ToEntity() *entity.Category {
	category := &entity.Category{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Color:     m.Color,
		Type:      entity.CategoryType(m.Type),
		ParentID:  m.ParentID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.DeletedAt.Valid {
		deletedAt := m.DeletedAt.Time
		category.DeletedAt = &deletedAt
	}
	if category.Color == "" {
		category.Color = entity.DefaultCategoryColor
	}
	return category
}

// CategoriesToEntities converts a result set, preserving order.
func CategoriesToEntities(rows []CategoryModel) []*entity.Category {
	categories := make([]*entity.Category, len(rows))
	for i := range rows {
		categories[i] = rows[i].ToEntity()
	}
	return categories
}

// CategoryFromEntity maps a domain Category onto a row.
func CategoryFromEntity(category *entity.Category) *CategoryModel {
	row := &CategoryModel{
		ID:        category.ID,
		UserID:    category.UserID,
		Name:      category.Name,
		Color:     category.Color,
		Type:      string(category.Type),
		ParentID:  category.ParentID,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
	if category.DeletedAt != nil {
		row.DeletedAt = gorm.DeletedAt{Time: *category.DeletedAt, Valid: true}
	}
	return row
}
