// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
	domainerror "github.com/finflow/backend/internal/domain/error"
)

// GetTransactionInput represents the input for fetching one transaction.
type GetTransactionInput struct {
	Principal     entity.Principal
	TransactionID uint
}

// GetTransactionOutput represents the output of fetching one transaction.
type GetTransactionOutput struct {
	Transaction *entity.Transaction
}

// GetTransactionUseCase handles scoped single-transaction lookup.
type GetTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetTransactionUseCase creates a new GetTransactionUseCase instance.
func NewGetTransactionUseCase(transactionRepo adapter.TransactionRepository) *GetTransactionUseCase {
	return &GetTransactionUseCase{transactionRepo: transactionRepo}
}

// Execute performs the transaction lookup.
func (uc *GetTransactionUseCase) Execute(ctx context.Context, input GetTransactionInput) (*GetTransactionOutput, error) {
	scope, ok := input.Principal.ReadScope(nil)
	if !ok {
		return nil, transactionNotFound()
	}

	transaction, err := uc.transactionRepo.FindByID(ctx, input.TransactionID, scope)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, transactionNotFound()
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	return &GetTransactionOutput{Transaction: transaction}, nil
}
