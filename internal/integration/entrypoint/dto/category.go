// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Type        string `json:"type,omitempty" binding:"omitempty,oneof=expense income"`
	Color       string `json:"color,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Description string `json:"description,omitempty" binding:"omitempty,max=500"`
	UserID      *uint  `json:"user_id,omitempty"`
}

// UpdateCategoryRequest represents the request body for category update.
type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Type        *string `json:"type,omitempty" binding:"omitempty,oneof=expense income"`
	Color       *string `json:"color,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=500"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Color       string    `json:"color"`
	Icon        string    `json:"icon"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryWithCountResponse represents a category with its transaction count.
type CategoryWithCountResponse struct {
	CategoryResponse
	TransactionCount int64 `json:"transaction_count"`
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryResponse(category *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		UserID:      category.UserID,
		Name:        category.Name,
		Type:        string(category.Type),
		Color:       category.Color,
		Icon:        category.Icon,
		Description: category.Description,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

// ToCategoryListResponse converts a listing result to the shared page envelope.
func ToCategoryListResponse(result *adapter.CategoryListResult) PageResponse {
	categories := make([]CategoryResponse, len(result.Categories))
	for i, category := range result.Categories {
		categories[i] = ToCategoryResponse(category)
	}
	return PageResponse{
		Total:      result.Total,
		Page:       result.Page,
		TotalPages: result.TotalPages,
		Data:       categories,
	}
}

// ToCategoryWithCountResponses converts counted rows to DTOs.
func ToCategoryWithCountResponses(rows []*entity.CategoryWithCount) []CategoryWithCountResponse {
	responses := make([]CategoryWithCountResponse, len(rows))
	for i, row := range rows {
		responses[i] = CategoryWithCountResponse{
			CategoryResponse: ToCategoryResponse(row.Category),
			TransactionCount: row.TransactionCount,
		}
	}
	return responses
}
