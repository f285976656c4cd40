// Package category contains category-related use cases.
package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
	domainerror "github.com/finflow/backend/internal/domain/error"
)

// ListCategoryTransactionsInput represents the input for listing the
// transactions of one category.
type ListCategoryTransactionsInput struct {
	Principal  entity.Principal
	CategoryID uint
	Pagination adapter.Pagination
}

// ListCategoryTransactionsOutput represents the output of listing the
// transactions of one category.
type ListCategoryTransactionsOutput struct {
	Category *entity.Category
	Result   *adapter.TransactionListResult
}

// ListCategoryTransactionsUseCase pages through the transactions of a
// scoped category.
type ListCategoryTransactionsUseCase struct {
	categoryRepo    adapter.CategoryRepository
	transactionRepo adapter.TransactionRepository
}

// NewListCategoryTransactionsUseCase creates a new
// ListCategoryTransactionsUseCase instance.
func NewListCategoryTransactionsUseCase(
	categoryRepo adapter.CategoryRepository,
	transactionRepo adapter.TransactionRepository,
) *ListCategoryTransactionsUseCase {
	return &ListCategoryTransactionsUseCase{
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute performs the listing.
func (uc *ListCategoryTransactionsUseCase) Execute(ctx context.Context, input ListCategoryTransactionsInput) (*ListCategoryTransactionsOutput, error) {
	scope, ok := input.Principal.ReadScope(nil)
	if !ok {
		return nil, categoryNotFound()
	}

	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID, scope)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, categoryNotFound()
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	filter := adapter.TransactionFilter{CategoryID: &category.ID}
	result, err := uc.transactionRepo.FindByFilter(ctx, scope, filter, input.Pagination.Normalized())
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &ListCategoryTransactionsOutput{Category: category, Result: result}, nil
}
