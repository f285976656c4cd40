// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"encoding/json"
	"time"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
)

// CreateTagRequest represents the request body for tag creation.
type CreateTagRequest struct {
	Name   string `json:"name" binding:"required,min=1,max=50"`
	Color  string `json:"color,omitempty"`
	UserID *uint  `json:"user_id,omitempty"`
}

// UpdateTagRequest represents the request body for tag update.
type UpdateTagRequest struct {
	Name  *string `json:"name,omitempty" binding:"omitempty,min=1,max=50"`
	Color *string `json:"color,omitempty"`
}

// TagResponse represents a single tag in API responses.
type TagResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PopularTagResponse represents a tag with its usage count.
type PopularTagResponse struct {
	TagResponse
	UsageCount int64 `json:"usage_count"`
}

// TagStatsResponse represents the aggregated usage of one tag.
type TagStatsResponse struct {
	TransactionCount int64       `json:"transaction_count"`
	IncomeTotal      json.Number `json:"income_total"`
	IncomeCount      int64       `json:"income_count"`
	ExpenseTotal     json.Number `json:"expense_total"`
	ExpenseCount     int64       `json:"expense_count"`
	NetTotal         json.Number `json:"net_total"`
	FirstUsed        *time.Time  `json:"first_used"`
	LastUsed         *time.Time  `json:"last_used"`
}

// ToTagResponse converts a domain Tag entity to a TagResponse DTO.
func ToTagResponse(tag *entity.Tag) TagResponse {
	return TagResponse{
		ID:        tag.ID,
		UserID:    tag.UserID,
		Name:      tag.Name,
		Color:     tag.Color,
		CreatedAt: tag.CreatedAt,
		UpdatedAt: tag.UpdatedAt,
	}
}

// ToTagListResponse converts a listing result to the shared page envelope.
func ToTagListResponse(result *adapter.TagListResult) PageResponse {
	tags := make([]TagResponse, len(result.Tags))
	for i, tag := range result.Tags {
		tags[i] = ToTagResponse(tag)
	}
	return PageResponse{
		Total:      result.Total,
		Page:       result.Page,
		TotalPages: result.TotalPages,
		Data:       tags,
	}
}

// ToPopularTagResponses converts counted rows to DTOs.
func ToPopularTagResponses(rows []*entity.TagWithCount) []PopularTagResponse {
	responses := make([]PopularTagResponse, len(rows))
	for i, row := range rows {
		responses[i] = PopularTagResponse{
			TagResponse: ToTagResponse(row.Tag),
			UsageCount:  row.TransactionCount,
		}
	}
	return responses
}

// ToTagStatsResponse converts aggregated tag usage to a TagStatsResponse DTO.
func ToTagStatsResponse(stats *entity.TagStats) TagStatsResponse {
	return TagStatsResponse{
		TransactionCount: stats.TransactionCount,
		IncomeTotal:      Money(stats.IncomeTotal),
		IncomeCount:      stats.IncomeCount,
		ExpenseTotal:     Money(stats.ExpenseTotal),
		ExpenseCount:     stats.ExpenseCount,
		NetTotal:         Money(stats.NetTotal),
		FirstUsed:        stats.FirstUsed,
		LastUsed:         stats.LastUsed,
	}
}
