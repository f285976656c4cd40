// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/application/usecase/goal"
	"github.com/finflow/backend/internal/domain/entity"
)

// CreateGoalRequest represents the request body for goal creation.
type CreateGoalRequest struct {
	Name          string           `json:"name" binding:"required,min=1,max=100"`
	Description   string           `json:"description,omitempty" binding:"omitempty,max=500"`
	TargetAmount  decimal.Decimal  `json:"target_amount" binding:"required"`
	CurrentAmount *decimal.Decimal `json:"current_amount,omitempty"`
	TargetDate    *string          `json:"target_date,omitempty"`
	Priority      string           `json:"priority,omitempty" binding:"omitempty,oneof=low medium high"`
	CategoryID    *uint            `json:"category_id,omitempty"`
	UserID        *uint            `json:"user_id,omitempty"`
}

// UpdateGoalRequest represents the request body for goal update.
type UpdateGoalRequest struct {
	Name            *string          `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Description     *string          `json:"description,omitempty" binding:"omitempty,max=500"`
	TargetAmount    *decimal.Decimal `json:"target_amount,omitempty"`
	CurrentAmount   *decimal.Decimal `json:"current_amount,omitempty"`
	TargetDate      *string          `json:"target_date,omitempty"`
	ClearTargetDate bool             `json:"clear_target_date,omitempty"`
	Priority        *string          `json:"priority,omitempty" binding:"omitempty,oneof=low medium high"`
	CategoryID      *uint            `json:"category_id,omitempty"`
	ClearCategory   bool             `json:"clear_category,omitempty"`
}

// AddProgressRequest represents the request body for adding savings progress.
type AddProgressRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// GoalResponse represents a single goal in API responses, derived progress
// fields included.
type GoalResponse struct {
	ID                  uint              `json:"id"`
	UserID              uint              `json:"user_id"`
	Name                string            `json:"name"`
	Description         string            `json:"description"`
	TargetAmount        json.Number       `json:"target_amount"`
	CurrentAmount       json.Number       `json:"current_amount"`
	TargetDate          *string           `json:"target_date"`
	Priority            string            `json:"priority"`
	CategoryID          *uint             `json:"category_id,omitempty"`
	Category            *CategoryResponse `json:"category,omitempty"`
	IsCompleted         bool              `json:"is_completed"`
	ProgressPercentage  int               `json:"progress_percentage"`
	RemainingAmount     json.Number       `json:"remaining_amount"`
	DaysRemaining       *int              `json:"days_remaining"`
	IsOverdue           bool              `json:"is_overdue"`
	RequiredDailySaving json.Number       `json:"required_daily_savings"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

// ProgressMessageResponse represents the add-progress response.
type ProgressMessageResponse struct {
	Goal    GoalResponse `json:"goal"`
	Message string       `json:"message"`
}

// MilestoneResponse represents one of the four fixed checkpoints.
type MilestoneResponse struct {
	Percent  int         `json:"percent"`
	Amount   json.Number `json:"amount"`
	Achieved bool        `json:"achieved"`
}

// GoalProgressResponse represents the milestone view of one goal.
type GoalProgressResponse struct {
	Goal          GoalResponse        `json:"goal"`
	Milestones    []MilestoneResponse `json:"milestones"`
	NextMilestone *MilestoneResponse  `json:"next_milestone"`
}

// GoalOverviewItemResponse represents one goal inside the overview.
type GoalOverviewItemResponse struct {
	ID                 uint   `json:"id"`
	Name               string `json:"name"`
	ProgressPercentage int    `json:"progress_percentage"`
	IsCompleted        bool   `json:"is_completed"`
}

// GoalOverviewResponse represents the ?progress=true response shape.
type GoalOverviewResponse struct {
	TotalGoals         int64                      `json:"total_goals"`
	CompletedGoals     int64                      `json:"completed_goals"`
	TotalTargetAmount  json.Number                `json:"total_target_amount"`
	TotalCurrentAmount json.Number                `json:"total_current_amount"`
	OverallPercentage  int                        `json:"overall_percentage"`
	Goals              []GoalOverviewItemResponse `json:"goals"`
}

// ToGoalResponse converts a domain Goal entity to a GoalResponse DTO.
func ToGoalResponse(g *entity.Goal) GoalResponse {
	now := time.Now().UTC()
	response := GoalResponse{
		ID:                  g.ID,
		UserID:              g.UserID,
		Name:                g.Name,
		Description:         g.Description,
		TargetAmount:        Money(g.TargetAmount),
		CurrentAmount:       Money(g.CurrentAmount),
		Priority:            string(g.Priority),
		CategoryID:          g.CategoryID,
		IsCompleted:         g.IsCompleted,
		ProgressPercentage:  g.ProgressPercentage(),
		RemainingAmount:     Money(g.RemainingAmount()),
		DaysRemaining:       g.DaysRemaining(now),
		IsOverdue:           g.IsOverdue(now),
		RequiredDailySaving: Money(g.RequiredDailySavings(now)),
		CreatedAt:           g.CreatedAt,
		UpdatedAt:           g.UpdatedAt,
	}
	if g.TargetDate != nil {
		date := g.TargetDate.Format("2006-01-02")
		response.TargetDate = &date
	}
	if g.Category != nil {
		category := ToCategoryResponse(g.Category)
		response.Category = &category
	}
	return response
}

// ToGoalListResponse converts a listing result to the shared page envelope.
func ToGoalListResponse(result *adapter.GoalListResult) PageResponse {
	goals := make([]GoalResponse, len(result.Goals))
	for i, g := range result.Goals {
		goals[i] = ToGoalResponse(g)
	}
	return PageResponse{
		Total:      result.Total,
		Page:       result.Page,
		TotalPages: result.TotalPages,
		Data:       goals,
	}
}

// ToMilestoneResponse converts a milestone checkpoint to its DTO.
func ToMilestoneResponse(m entity.GoalMilestone) MilestoneResponse {
	return MilestoneResponse{
		Percent:  m.Percent,
		Amount:   Money(m.Amount),
		Achieved: m.Achieved,
	}
}

// ToGoalProgressResponse converts the milestone view to its DTO.
func ToGoalProgressResponse(output *goal.GetProgressOutput) GoalProgressResponse {
	response := GoalProgressResponse{
		Goal:       ToGoalResponse(output.Goal),
		Milestones: make([]MilestoneResponse, len(output.Milestones)),
	}
	for i, m := range output.Milestones {
		response.Milestones[i] = ToMilestoneResponse(m)
	}
	if output.NextMilestone != nil {
		next := ToMilestoneResponse(*output.NextMilestone)
		response.NextMilestone = &next
	}
	return response
}

// ToGoalOverviewResponse converts the all-goals aggregation to its DTO.
func ToGoalOverviewResponse(output *goal.GetOverviewOutput) GoalOverviewResponse {
	response := GoalOverviewResponse{
		TotalGoals:         output.Overview.TotalGoals,
		CompletedGoals:     output.Overview.CompletedGoals,
		TotalTargetAmount:  Money(output.Overview.TargetTotal),
		TotalCurrentAmount: Money(output.Overview.CurrentTotal),
		OverallPercentage:  output.Overview.OverallProgress,
		Goals:              make([]GoalOverviewItemResponse, len(output.Goals)),
	}
	for i, g := range output.Goals {
		response.Goals[i] = GoalOverviewItemResponse{
			ID:                 g.ID,
			Name:               g.Name,
			ProgressPercentage: g.ProgressPercentage(),
			IsCompleted:        g.IsCompleted,
		}
	}
	return response
}
