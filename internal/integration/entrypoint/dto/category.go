package dto

import (
	"time"

	"github.com/finance-tracker/recurring/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name     string  `json:"name" binding:"required,min=1,max=50"`
	Color    string  `json:"color,omitempty"`
	Type     string  `json:"type" binding:"required,oneof=expense income"`
	ParentID *string `json:"parent_id,omitempty"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Type      string    `json:"type"`
	ParentID  *string   `json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryResponse(cat *entity.Category) CategoryResponse {
	response := CategoryResponse{
		ID:        cat.ID.String(),
		Name:      cat.Name,
		Color:     cat.Color,
		Type:      string(cat.Type),
		CreatedAt: cat.CreatedAt,
		UpdatedAt: cat.UpdatedAt,
	}
	response.ParentID = optionalID(cat.ParentID)
	return response
}

// ToCategoryListResponse converts a list of categories to a CategoryListResponse DTO.
func ToCategoryListResponse(categories []*entity.Category) CategoryListResponse {
	responses := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		responses[i] = ToCategoryResponse(cat)
	}
	return CategoryListResponse{Categories: responses}
}
