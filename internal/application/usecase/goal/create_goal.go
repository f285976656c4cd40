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

// CreateGoalInput represents the input for goal creation. TargetUserID is
// honored for admins only.
type CreateGoalInput struct {
	Principal     entity.Principal
	TargetUserID  *uint
	Name          string
	Description   string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	TargetDate    *time.Time
	Priority      string
	CategoryID    *uint
}

// CreateGoalOutput represents the output of goal creation.
type CreateGoalOutput struct {
	Goal *entity.Goal
}

// CreateGoalUseCase handles goal creation logic.
type CreateGoalUseCase struct {
	goalRepo     adapter.GoalRepository
	categoryRepo adapter.CategoryRepository
}

// NewCreateGoalUseCase creates a new CreateGoalUseCase instance.
func NewCreateGoalUseCase(goalRepo adapter.GoalRepository, categoryRepo adapter.CategoryRepository) *CreateGoalUseCase {
	return &CreateGoalUseCase{goalRepo: goalRepo, categoryRepo: categoryRepo}
}

// Execute performs the goal creation.
func (uc *CreateGoalUseCase) Execute(ctx context.Context, input CreateGoalInput) (*CreateGoalOutput, error) {
	if !input.Principal.CanWrite() {
		return nil, domainerror.ErrReadOnlyRole
	}

	name := strings.TrimSpace(input.Name)
	if name == "" || input.TargetAmount.IsZero() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeMissingGoalFields,
			"name and target_amount are required",
			domainerror.ErrMissingGoalFields,
		)
	}
	if !input.TargetAmount.IsPositive() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidTargetAmount,
			"target_amount must be greater than zero",
			domainerror.ErrInvalidTargetAmount,
		)
	}
	if input.CurrentAmount.IsNegative() || input.CurrentAmount.GreaterThan(input.TargetAmount) {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidCurrentAmount,
			"current_amount must be between zero and target_amount",
			domainerror.ErrInvalidCurrentAmount,
		)
	}
	if input.TargetDate != nil && !input.TargetDate.After(time.Now().UTC()) {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidTargetDate,
			"target_date must be in the future",
			domainerror.ErrInvalidTargetDate,
		)
	}

	priority := entity.DefaultGoalPriority
	if input.Priority != "" {
		if !entity.ValidGoalPriority(input.Priority) {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeMissingGoalFields,
				"priority must be 'low', 'medium' or 'high'",
				domainerror.ErrMissingGoalFields,
			)
		}
		priority = entity.GoalPriority(input.Priority)
	}

	ownerID := input.Principal.WriteOwner(input.TargetUserID)

	taken, err := uc.goalRepo.ExistsByName(ctx, ownerID, name, 0)
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

	if input.CategoryID != nil {
		if err := ensureOwnedCategory(ctx, uc.categoryRepo, ownerID, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	created := entity.NewGoal(ownerID, name, input.Description, input.TargetAmount, input.CurrentAmount, input.TargetDate, input.CategoryID)
	created.Priority = priority

	if err := uc.goalRepo.Create(ctx, created); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	loaded, err := uc.goalRepo.FindByID(ctx, created.ID, entity.ScopeFor(ownerID))
	if err != nil {
		return nil, fmt.Errorf("failed to load created goal: %w", err)
	}
	return &CreateGoalOutput{Goal: loaded}, nil
}

// ensureOwnedCategory verifies the category belongs to the owner, mapping a
// miss to the goal-flavored conflict error.
func ensureOwnedCategory(ctx context.Context, categoryRepo adapter.CategoryRepository, ownerID, categoryID uint) error {
	if _, err := categoryRepo.FindByID(ctx, categoryID, entity.ScopeFor(ownerID)); err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return domainerror.NewGoalError(
				domainerror.ErrCodeGoalCategoryNotFound,
				"category not found for this user",
				domainerror.ErrGoalCategoryNotFound,
			)
		}
		return fmt.Errorf("failed to find category: %w", err)
	}
	return nil
}

// goalNotFound is the shared absent-or-out-of-scope error.
func goalNotFound() error {
	return domainerror.NewGoalError(
		domainerror.ErrCodeGoalNotFound,
		"goal not found",
		domainerror.ErrGoalNotFound,
	)
}
