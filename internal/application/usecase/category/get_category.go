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

// GetCategoryInput represents the input for fetching a single category.
type GetCategoryInput struct {
	Principal  entity.Principal
	CategoryID uint
}

// GetCategoryOutput represents the output of fetching a single category.
type GetCategoryOutput struct {
	Category *entity.Category
}

// GetCategoryUseCase handles scoped single-category lookup.
type GetCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewGetCategoryUseCase creates a new GetCategoryUseCase instance.
func NewGetCategoryUseCase(categoryRepo adapter.CategoryRepository) *GetCategoryUseCase {
	return &GetCategoryUseCase{categoryRepo: categoryRepo}
}

// Execute performs the category lookup.
func (uc *GetCategoryUseCase) Execute(ctx context.Context, input GetCategoryInput) (*GetCategoryOutput, error) {
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
	return &GetCategoryOutput{Category: category}, nil
}
