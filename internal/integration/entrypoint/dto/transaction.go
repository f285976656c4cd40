// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Type        string          `json:"type" binding:"required,oneof=expense income"`
	CategoryID  uint            `json:"category_id" binding:"required"`
	Description string          `json:"description,omitempty" binding:"omitempty,max=255"`
	Date        string          `json:"date" binding:"required"`
	Notes       string          `json:"notes,omitempty" binding:"omitempty,max=1000"`
	TagIDs      []uint          `json:"tag_ids,omitempty"`
	UserID      *uint           `json:"user_id,omitempty"`
}

// UpdateTransactionRequest represents the request body for transaction update.
type UpdateTransactionRequest struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Type        *string          `json:"type,omitempty" binding:"omitempty,oneof=expense income"`
	CategoryID  *uint            `json:"category_id,omitempty"`
	Description *string          `json:"description,omitempty" binding:"omitempty,max=255"`
	Date        *string          `json:"date,omitempty"`
	Notes       *string          `json:"notes,omitempty" binding:"omitempty,max=1000"`
	TagIDs      *[]uint          `json:"tag_ids,omitempty"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          uint              `json:"id"`
	UserID      uint              `json:"user_id"`
	CategoryID  uint              `json:"category_id"`
	Type        string            `json:"type"`
	Amount      json.Number       `json:"amount"`
	Description string            `json:"description"`
	Date        string            `json:"date"`
	Notes       string            `json:"notes"`
	Category    *CategoryResponse `json:"category,omitempty"`
	Tags        []TagResponse     `json:"tags"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// DirectionSummaryResponse represents one direction of the summary.
type DirectionSummaryResponse struct {
	Total json.Number `json:"total"`
	Count int64       `json:"count"`
}

// TransactionSummaryResponse represents the ?summary=true response shape.
type TransactionSummaryResponse struct {
	Income  DirectionSummaryResponse `json:"income"`
	Expense DirectionSummaryResponse `json:"expense"`
	Balance json.Number              `json:"balance"`
}

// CategoryBreakdownResponse represents one row of the ?stats=true breakdown.
type CategoryBreakdownResponse struct {
	CategoryID    uint        `json:"category_id"`
	CategoryName  string      `json:"category_name"`
	CategoryColor string      `json:"category_color"`
	Total         json.Number `json:"total"`
	Count         int64       `json:"count"`
}

// CategoryStatsResponse represents the ?stats=true response shape.
type CategoryStatsResponse struct {
	Expenses []CategoryBreakdownResponse `json:"expenses"`
	Income   []CategoryBreakdownResponse `json:"income"`
}

// ToTransactionResponse converts a domain Transaction entity to a TransactionResponse DTO.
func ToTransactionResponse(txn *entity.Transaction) TransactionResponse {
	response := TransactionResponse{
		ID:          txn.ID,
		UserID:      txn.UserID,
		CategoryID:  txn.CategoryID,
		Type:        string(txn.Type),
		Amount:      Money(txn.Amount),
		Description: txn.Description,
		Date:        txn.Date.Format("2006-01-02"),
		Notes:       txn.Notes,
		Tags:        make([]TagResponse, len(txn.Tags)),
		CreatedAt:   txn.CreatedAt,
		UpdatedAt:   txn.UpdatedAt,
	}
	if txn.Category != nil {
		category := ToCategoryResponse(txn.Category)
		response.Category = &category
	}
	for i, tag := range txn.Tags {
		response.Tags[i] = ToTagResponse(tag)
	}
	return response
}

// ToTransactionListResponse converts a listing result to the shared page envelope.
func ToTransactionListResponse(result *adapter.TransactionListResult) PageResponse {
	transactions := make([]TransactionResponse, len(result.Transactions))
	for i, txn := range result.Transactions {
		transactions[i] = ToTransactionResponse(txn)
	}
	return PageResponse{
		Total:      result.Total,
		Page:       result.Page,
		TotalPages: result.TotalPages,
		Data:       transactions,
	}
}

// ToTransactionSummaryResponse converts an aggregation to the summary DTO.
func ToTransactionSummaryResponse(summary *entity.TransactionSummary) TransactionSummaryResponse {
	return TransactionSummaryResponse{
		Income: DirectionSummaryResponse{
			Total: Money(summary.IncomeTotal),
			Count: summary.IncomeCount,
		},
		Expense: DirectionSummaryResponse{
			Total: Money(summary.ExpenseTotal),
			Count: summary.ExpenseCount,
		},
		Balance: Money(summary.Balance),
	}
}

// ToCategoryBreakdownResponses converts breakdown rows to DTOs.
func ToCategoryBreakdownResponses(rows []*entity.CategoryBreakdown) []CategoryBreakdownResponse {
	responses := make([]CategoryBreakdownResponse, len(rows))
	for i, row := range rows {
		responses[i] = CategoryBreakdownResponse{
			CategoryID:    row.CategoryID,
			CategoryName:  row.CategoryName,
			CategoryColor: row.CategoryColor,
			Total:         Money(row.Total),
			Count:         row.Count,
		}
	}
	return responses
}
