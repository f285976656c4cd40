// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"encoding/json"
	"time"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
)

// CreateUserRequest represents the request body for user creation.
type CreateUserRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=100"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	Role       string `json:"role,omitempty" binding:"omitempty,oneof=regular admin viewer"`
	DelegateOf *uint  `json:"delegate_of,omitempty"`
}

// UpdateUserRequest represents the request body for user update.
type UpdateUserRequest struct {
	Name       *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Email      *string `json:"email,omitempty" binding:"omitempty,email"`
	Password   *string `json:"password,omitempty" binding:"omitempty,min=8"`
	Role       *string `json:"role,omitempty" binding:"omitempty,oneof=regular admin viewer"`
	DelegateOf *uint   `json:"delegate_of,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

// UserResponse represents the user data in API responses.
type UserResponse struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	DelegateOf *uint     `json:"delegate_of,omitempty"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// UserStatsResponse represents the aggregated activity of one account.
type UserStatsResponse struct {
	Transactions struct {
		Count   int64       `json:"count"`
		Income  json.Number `json:"income"`
		Expense json.Number `json:"expense"`
		Balance json.Number `json:"balance"`
	} `json:"transactions"`
	Categories int64 `json:"categories"`
	Tags       int64 `json:"tags"`
	Goals      struct {
		Count     int64 `json:"count"`
		Completed int64 `json:"completed"`
	} `json:"goals"`
}

// ToUserResponse converts a domain User entity to a UserResponse DTO.
func ToUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Role:       string(user.Role),
		DelegateOf: user.DelegateOf,
		IsActive:   user.IsActive,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}

// ToUserListResponse converts a listing result to the shared page envelope.
func ToUserListResponse(result *adapter.UserListResult) PageResponse {
	users := make([]UserResponse, len(result.Users))
	for i, user := range result.Users {
		users[i] = ToUserResponse(user)
	}
	return PageResponse{
		Total:      result.Total,
		Page:       result.Page,
		TotalPages: result.TotalPages,
		Data:       users,
	}
}

// ToUserStatsResponse converts aggregated stats to a UserStatsResponse DTO.
func ToUserStatsResponse(stats *entity.UserStats) UserStatsResponse {
	var response UserStatsResponse
	response.Transactions.Count = stats.TransactionCount
	response.Transactions.Income = Money(stats.IncomeTotal)
	response.Transactions.Expense = Money(stats.ExpenseTotal)
	response.Transactions.Balance = Money(stats.Balance)
	response.Categories = stats.CategoryCount
	response.Tags = stats.TagCount
	response.Goals.Count = stats.GoalCount
	response.Goals.Completed = stats.GoalsCompleted
	return response
}
