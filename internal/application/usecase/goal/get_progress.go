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

// GetProgressInput represents the input for the milestone view.
type GetProgressInput struct {
	Principal entity.Principal
	GoalID    uint
}

// GetProgressOutput represents the output of the milestone view.
type GetProgressOutput struct {
	Goal          *entity.Goal
	Milestones    []entity.GoalMilestone
	NextMilestone *entity.GoalMilestone
}

// GetProgressUseCase reports the fixed 25/50/75/100% checkpoints of a goal.
type GetProgressUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewGetProgressUseCase creates a new GetProgressUseCase instance.
func NewGetProgressUseCase(goalRepo adapter.GoalRepository) *GetProgressUseCase {
	return &GetProgressUseCase{goalRepo: goalRepo}
}

// Execute performs the milestone computation.
func (uc *GetProgressUseCase) Execute(ctx context.Context, input GetProgressInput) (*GetProgressOutput, error) {
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

	return &GetProgressOutput{
		Goal:          goal,
		Milestones:    goal.Milestones(),
		NextMilestone: goal.NextMilestone(),
	}, nil
}
