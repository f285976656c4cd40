// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
	domainerror "github.com/finflow/backend/internal/domain/error"
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	Principal    entity.Principal
	TargetUserID *uint
	Filter       adapter.TransactionFilter
	Pagination   adapter.Pagination
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Result *adapter.TransactionListResult
}

// ListTransactionsUseCase handles the filtered, paginated listing.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{transactionRepo: transactionRepo}
}

// Execute performs the transaction listing.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	pagination := input.Pagination.Normalized()

	scope, ok := input.Principal.ReadScope(input.TargetUserID)
	if !ok {
		return &ListTransactionsOutput{Result: &adapter.TransactionListResult{
			Transactions: []*entity.Transaction{},
			Page:         pagination.Page,
			Limit:        pagination.Limit,
			TotalPages:   1,
		}}, nil
	}

	result, err := uc.transactionRepo.FindByFilter(ctx, scope, input.Filter, pagination)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return &ListTransactionsOutput{Result: result}, nil
}

// transactionNotFound is the shared absent-or-out-of-scope error.
func transactionNotFound() error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeTransactionNotFound,
		"transaction not found",
		domainerror.ErrTransactionNotFound,
	)
}
