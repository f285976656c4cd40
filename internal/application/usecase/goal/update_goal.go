// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
	domainerror "github.com/finflow/backend/internal/domain/error"
)

// UpdateGoalInput represents the input for goal update. Nil fields are left
// untouched. ClearCategory detaches the category link; ClearTargetDate
// removes the deadline.
type UpdateGoalInput struct {
	Principal       entity.Principal
	GoalID          uint
	Name            *string
	Description     *string
	TargetAmount    *decimal.Decimal
	CurrentAmount   *decimal.Decimal
	TargetDate      *time.Time
	ClearTargetDate bool
	Priority        *string
	CategoryID      *uint
	ClearCategory   bool
}

// UpdateGoalOutput represents the output of goal update.
type UpdateGoalOutput struct {
	Goal *entity.Goal
}

// UpdateGoalUseCase handles goal update logic. The completed flag is
// recomputed upward only, it is never unset by edits.
type UpdateGoalUseCase struct {
	goalRepo     adapter.GoalRepository
	categoryRepo adapter.CategoryRepository
}

// NewUpdateGoalUseCase creates a new UpdateGoalUseCase instance.
func NewUpdateGoalUseCase(goalRepo adapter.GoalRepository, categoryRepo adapter.CategoryRepository) *UpdateGoalUseCase {
	return &UpdateGoalUseCase{goalRepo: goalRepo, categoryRepo: categoryRepo}
}

// Execute performs the goal update.
func (uc *UpdateGoalUseCase) Execute(ctx context.Context, input UpdateGoalInput) (*UpdateGoalOutput, error) {
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

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeMissingGoalFields,
				"name cannot be empty",
				domainerror.ErrMissingGoalFields,
			)
		}
		if !strings.EqualFold(name, existing.Name) {
			taken, err := uc.goalRepo.ExistsByName(ctx, existing.UserID, name, existing.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to check goal name: %w", err)
			}
			if taken {
				return nil, domainerror.NewGoalError(
					domainerror.ErrCodeGoalNameTaken,
					"a goal with this name already exists",
					domainerror.ErrGoalNameTaken,
				)
			}
		}
		existing.Name = name
	}

	if input.TargetAmount != nil {
		if !input.TargetAmount.IsPositive() {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeInvalidTargetAmount,
				"target_amount must be greater than zero",
				domainerror.ErrInvalidTargetAmount,
			)
		}
		existing.TargetAmount = *input.TargetAmount
	}

	if input.CurrentAmount != nil {
		if input.CurrentAmount.IsNegative() {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeInvalidCurrentAmount,
				"current_amount cannot be negative",
				domainerror.ErrInvalidCurrentAmount,
			)
		}
		existing.CurrentAmount = *input.CurrentAmount
	}

	if input.ClearTargetDate {
		existing.TargetDate = nil
	} else if input.TargetDate != nil {
		if !input.TargetDate.After(time.Now().UTC()) {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeInvalidTargetDate,
				"target_date must be in the future",
				domainerror.ErrInvalidTargetDate,
			)
		}
		existing.TargetDate = input.TargetDate
	}

	if input.Priority != nil {
		if !entity.ValidGoalPriority(*input.Priority) {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeMissingGoalFields,
				"priority must be 'low', 'medium' or 'high'",
				domainerror.ErrMissingGoalFields,
			)
		}
		existing.Priority = entity.GoalPriority(*input.Priority)
	}

	if input.ClearCategory {
		existing.CategoryID = nil
	} else if input.CategoryID != nil {
		if err := ensureOwnedCategory(ctx, uc.categoryRepo, existing.UserID, *input.CategoryID); err != nil {
			return nil, err
		}
		existing.CategoryID = input.CategoryID
	}

	if input.Description != nil {
		existing.Description = *input.Description
	}

	existing.RefreshCompletion()
	existing.UpdatedAt = time.Now().UTC()

	if err := uc.goalRepo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	loaded, err := uc.goalRepo.FindByID(ctx, existing.ID, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to load updated goal: %w", err)
	}
	return &UpdateGoalOutput{Goal: loaded}, nil
}
