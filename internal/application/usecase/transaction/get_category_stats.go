// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
)

// GetCategoryStatsInput represents the input for the per-category breakdown.
type GetCategoryStatsInput struct {
	Principal    entity.Principal
	TargetUserID *uint
	Filter       adapter.TransactionFilter
}

// GetCategoryStatsOutput represents the output of the per-category
// breakdown, expenses and income kept apart.
type GetCategoryStatsOutput struct {
	Expenses []*entity.CategoryBreakdown
	Income   []*entity.CategoryBreakdown
}

// GetCategoryStatsUseCase aggregates per-category totals for the
// ?stats=true response shape.
type GetCategoryStatsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetCategoryStatsUseCase creates a new GetCategoryStatsUseCase instance.
func NewGetCategoryStatsUseCase(transactionRepo adapter.TransactionRepository) *GetCategoryStatsUseCase {
	return &GetCategoryStatsUseCase{transactionRepo: transactionRepo}
}

// Execute performs the breakdown aggregation.
func (uc *GetCategoryStatsUseCase) Execute(ctx context.Context, input GetCategoryStatsInput) (*GetCategoryStatsOutput, error) {
	output := &GetCategoryStatsOutput{
		Expenses: []*entity.CategoryBreakdown{},
		Income:   []*entity.CategoryBreakdown{},
	}

	scope, ok := input.Principal.ReadScope(input.TargetUserID)
	if !ok {
		return output, nil
	}

	rows, err := uc.transactionRepo.GetCategoryBreakdown(ctx, scope, input.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate categories: %w", err)
	}

	for _, row := range rows {
		if row.Type == entity.TransactionTypeExpense {
			output.Expenses = append(output.Expenses, row)
		} else {
			output.Income = append(output.Income, row)
		}
	}
	return output, nil
}
