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

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	Principal  entity.Principal
	CategoryID uint
}

// DeleteCategoryOutput represents the output of category deletion.
type DeleteCategoryOutput struct {
	Deleted bool
}

// DeleteCategoryUseCase handles category deletion. A category referenced by
// transactions is never deleted; the caller gets the blocking count back.
// Goals pointing at the category merely lose the link, inside the delete
// transaction.
type DeleteCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(categoryRepo adapter.CategoryRepository) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{categoryRepo: categoryRepo}
}

// Execute performs the category deletion.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) (*DeleteCategoryOutput, error) {
	if !input.Principal.CanWrite() {
		return nil, domainerror.ErrReadOnlyRole
	}

	scope, _ := input.Principal.ReadScope(nil)
	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID, scope)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, categoryNotFound()
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	blocking, err := uc.categoryRepo.CountTransactions(ctx, category.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}
	if blocking > 0 {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryInUse,
			fmt.Sprintf("category is used by %d transactions", blocking),
			domainerror.ErrCategoryInUse,
		)
	}

	if err := uc.categoryRepo.Delete(ctx, category.ID); err != nil {
		return nil, fmt.Errorf("failed to delete category: %w", err)
	}

	return &DeleteCategoryOutput{Deleted: true}, nil
}
