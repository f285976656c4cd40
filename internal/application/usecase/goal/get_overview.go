// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
)

// GetOverviewInput represents the input for the all-goals overview.
type GetOverviewInput struct {
	Principal    entity.Principal
	TargetUserID *uint
}

// GetOverviewOutput represents the output of the all-goals overview.
type GetOverviewOutput struct {
	Overview *entity.GoalOverview
	Goals    []*entity.Goal
}

// GetOverviewUseCase aggregates every visible goal for the ?progress=true
// response shape.
type GetOverviewUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewGetOverviewUseCase creates a new GetOverviewUseCase instance.
func NewGetOverviewUseCase(goalRepo adapter.GoalRepository) *GetOverviewUseCase {
	return &GetOverviewUseCase{goalRepo: goalRepo}
}

// Execute performs the overview aggregation.
func (uc *GetOverviewUseCase) Execute(ctx context.Context, input GetOverviewInput) (*GetOverviewOutput, error) {
	empty := &GetOverviewOutput{
		Overview: &entity.GoalOverview{
			TargetTotal:  decimal.Zero,
			CurrentTotal: decimal.Zero,
		},
		Goals: []*entity.Goal{},
	}

	scope, ok := input.Principal.ReadScope(input.TargetUserID)
	if !ok {
		return empty, nil
	}

	overview, err := uc.goalRepo.GetOverview(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate goals: %w", err)
	}

	goals, err := uc.goalRepo.FindAll(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	return &GetOverviewOutput{Overview: overview, Goals: goals}, nil
}
