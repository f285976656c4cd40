// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"errors"
	"fmt"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
	domainerror "github.com/finflow/backend/internal/domain/error"
)

// GetGoalInput represents the input for fetching one goal.
type GetGoalInput struct {
	Principal entity.Principal
	GoalID    uint
}

// GetGoalOutput represents the output of fetching one goal.
type GetGoalOutput struct {
	Goal *entity.Goal
}

// GetGoalUseCase handles scoped single-goal lookup.
type GetGoalUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewGetGoalUseCase creates a new GetGoalUseCase instance.
func NewGetGoalUseCase(goalRepo adapter.GoalRepository) *GetGoalUseCase {
	return &GetGoalUseCase{goalRepo: goalRepo}
}

// Execute performs the goal lookup.
func (uc *GetGoalUseCase) Execute(ctx context.Context, input GetGoalInput) (*GetGoalOutput, error) {
	scope, ok := input.Principal.ReadScope(nil)
	if !ok {
		return nil, goalNotFound()
	}

	goal, err := uc.goalRepo.FindByID(ctx, input.GoalID, scope)
	if err != nil {
		if errors.Is(err, domainerror.ErrGoalNotFound) {
			return nil, goalNotFound()
		}
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}
	return &GetGoalOutput{Goal: goal}, nil
}
