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

// DeleteGoalInput represents the input for goal deletion.
type DeleteGoalInput struct {
	Principal entity.Principal
	GoalID    uint
}

// DeleteGoalOutput represents the output of goal deletion.
type DeleteGoalOutput struct {
	Deleted bool
}

// DeleteGoalUseCase handles goal deletion.
type DeleteGoalUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewDeleteGoalUseCase creates a new DeleteGoalUseCase instance.
func NewDeleteGoalUseCase(goalRepo adapter.GoalRepository) *DeleteGoalUseCase {
	return &DeleteGoalUseCase{goalRepo: goalRepo}
}

// Execute performs the goal deletion.
func (uc *DeleteGoalUseCase) Execute(ctx context.Context, input DeleteGoalInput) (*DeleteGoalOutput, error) {
	if !input.Principal.CanWrite() {
		return nil, domainerror.ErrReadOnlyRole
	}

	scope, _ := input.Principal.ReadScope(nil)
	existing, err := uc.goalRepo.FindByID(ctx, input.GoalID, scope)
	if err != nil {
		if errors.Is(err, domainerror.ErrGoalNotFound) {
			return nil, goalNotFound()
		}
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}

	if err := uc.goalRepo.Delete(ctx, existing.ID); err != nil {
		return nil, fmt.Errorf("failed to delete goal: %w", err)
	}
	return &DeleteGoalOutput{Deleted: true}, nil
}
