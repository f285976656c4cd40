// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"fmt"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
)

// ListGoalsInput represents the input for listing goals.
type ListGoalsInput struct {
	Principal    entity.Principal
	TargetUserID *uint
	Filter       adapter.GoalFilter
	Pagination   adapter.Pagination
}

// ListGoalsOutput represents the output of listing goals.
type ListGoalsOutput struct {
	Result *adapter.GoalListResult
}

// ListGoalsUseCase handles the filtered, paginated goal listing.
type ListGoalsUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewListGoalsUseCase creates a new ListGoalsUseCase instance.
func NewListGoalsUseCase(goalRepo adapter.GoalRepository) *ListGoalsUseCase {
	return &ListGoalsUseCase{goalRepo: goalRepo}
}

// Execute performs the goal listing.
func (uc *ListGoalsUseCase) Execute(ctx context.Context, input ListGoalsInput) (*ListGoalsOutput, error) {
	pagination := input.Pagination.Normalized()

	scope, ok := input.Principal.ReadScope(input.TargetUserID)
	if !ok {
		return &ListGoalsOutput{Result: &adapter.GoalListResult{
			Goals:      []*entity.Goal{},
			Page:       pagination.Page,
			Limit:      pagination.Limit,
			TotalPages: 1,
		}}, nil
	}

	result, err := uc.goalRepo.FindByFilter(ctx, scope, input.Filter, pagination)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return &ListGoalsOutput{Result: result}, nil
}
