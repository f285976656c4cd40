// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
)

// GetSummaryInput represents the input for the summary aggregation.
type GetSummaryInput struct {
	Principal    entity.Principal
	TargetUserID *uint
	Filter       adapter.TransactionFilter
}

// GetSummaryOutput represents the output of the summary aggregation.
type GetSummaryOutput struct {
	Summary *entity.TransactionSummary
}

// GetSummaryUseCase aggregates income/expense totals for the
// ?summary=true response shape.
type GetSummaryUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(transactionRepo adapter.TransactionRepository) *GetSummaryUseCase {
	return &GetSummaryUseCase{transactionRepo: transactionRepo}
}

// Execute performs the aggregation.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	scope, ok := input.Principal.ReadScope(input.TargetUserID)
	if !ok {
		return &GetSummaryOutput{Summary: &entity.TransactionSummary{
			IncomeTotal:  decimal.Zero,
			ExpenseTotal: decimal.Zero,
			Balance:      decimal.Zero,
		}}, nil
	}

	summary, err := uc.transactionRepo.GetSummary(ctx, scope, input.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate transactions: %w", err)
	}
	return &GetSummaryOutput{Summary: summary}, nil
}
