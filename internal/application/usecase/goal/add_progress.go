// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
	domainerror "github.com/finflow/backend/internal/domain/error"
)

// AddProgressInput represents the input for adding savings progress.
type AddProgressInput struct {
	Principal entity.Principal
	GoalID    uint
	Amount    decimal.Decimal
}

// AddProgressOutput represents the output of adding savings progress.
type AddProgressOutput struct {
	Goal    *entity.Goal
	Message string
}

// AddProgressUseCase handles incremental savings toward a goal. Additions
// are not deduplicated; the completed flag crosses once and stays set.
type AddProgressUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewAddProgressUseCase creates a new AddProgressUseCase instance.
func NewAddProgressUseCase(goalRepo adapter.GoalRepository) *AddProgressUseCase {
	return &AddProgressUseCase{goalRepo: goalRepo}
}

// Execute performs the progress addition.
func (uc *AddProgressUseCase) Execute(ctx context.Context, input AddProgressInput) (*AddProgressOutput, error) {
	if !input.Principal.CanWrite() {
		return nil, domainerror.ErrReadOnlyRole
	}

	if !input.Amount.IsPositive() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidProgressAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidProgressAmount,
		)
	}

	scope, _ := input.Principal.ReadScope(nil)
	existing, err := uc.goalRepo.FindByID(ctx, input.GoalID, scope)
	if err != nil {
		if errors.Is(err, domainerror.ErrGoalNotFound) {
			return nil, goalNotFound()
		}
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}

	if existing.IsCompleted {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeGoalAlreadyCompleted,
			"goal is already completed",
			domainerror.ErrGoalAlreadyCompleted,
		)
	}

	completed := existing.AddProgress(input.Amount)
	existing.UpdatedAt = time.Now().UTC()

	if err := uc.goalRepo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	message := fmt.Sprintf("Added %s to '%s'. You're at %d%% of your target.",
		input.Amount.StringFixed(2), existing.Name, existing.ProgressPercentage())
	if completed {
		message = fmt.Sprintf("Congratulations! You've reached your goal '%s'.", existing.Name)
	}

	return &AddProgressOutput{Goal: existing, Message: message}, nil
}
