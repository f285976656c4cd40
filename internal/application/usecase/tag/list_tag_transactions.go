// Package tag contains tag-related use cases.
package tag

import (
	"context"
	"errors"
	"fmt"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
	domainerror "github.com/finflow/backend/internal/domain/error"
)

// ListTagTransactionsInput represents the input for listing a tag's
// transactions.
type ListTagTransactionsInput struct {
	Principal  entity.Principal
	TagID      uint
	Pagination adapter.Pagination
}

// ListTagTransactionsOutput represents the output of the tag-scoped listing.
type ListTagTransactionsOutput struct {
	Tag    *entity.Tag
	Result *adapter.TransactionListResult
}

// ListTagTransactionsUseCase lists the transactions carrying one tag.
type ListTagTransactionsUseCase struct {
	tagRepo         adapter.TagRepository
	transactionRepo adapter.TransactionRepository
}

// NewListTagTransactionsUseCase creates a new ListTagTransactionsUseCase instance.
func NewListTagTransactionsUseCase(tagRepo adapter.TagRepository, transactionRepo adapter.TransactionRepository) *ListTagTransactionsUseCase {
	return &ListTagTransactionsUseCase{tagRepo: tagRepo, transactionRepo: transactionRepo}
}

// Execute performs the tag-scoped transaction listing.
func (uc *ListTagTransactionsUseCase) Execute(ctx context.Context, input ListTagTransactionsInput) (*ListTagTransactionsOutput, error) {
	scope, ok := input.Principal.ReadScope(nil)
	if !ok {
		return nil, tagNotFound()
	}

	tag, err := uc.tagRepo.FindByID(ctx, input.TagID, scope)
	if err != nil {
		if errors.Is(err, domainerror.ErrTagNotFound) {
			return nil, tagNotFound()
		}
		return nil, fmt.Errorf("failed to find tag: %w", err)
	}

	filter := adapter.TransactionFilter{TagID: &tag.ID}
	result, err := uc.transactionRepo.FindByFilter(ctx, scope, filter, input.Pagination.Normalized())
	if err != nil {
		return nil, fmt.Errorf("failed to list tag transactions: %w", err)
	}
	return &ListTagTransactionsOutput{Tag: tag, Result: result}, nil
}
