// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
	domainerror "github.com/finflow/backend/internal/domain/error"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	Principal    entity.Principal
	TargetUserID *uint
	Filter       adapter.CategoryFilter
	Pagination   adapter.Pagination
}

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Result *adapter.CategoryListResult
}

// ListCategoriesUseCase handles listing categories under the caller's scope.
type ListCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(categoryRepo adapter.CategoryRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{categoryRepo: categoryRepo}
}

// Execute performs the category listing.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	pagination := input.Pagination.Normalized()

	scope, ok := input.Principal.ReadScope(input.TargetUserID)
	if !ok {
		// Another user's data resolves to an empty page rather than a 403.
		return &ListCategoriesOutput{Result: &adapter.CategoryListResult{
			Categories: []*entity.Category{},
			Page:       pagination.Page,
			Limit:      pagination.Limit,
			TotalPages: 1,
		}}, nil
	}

	result, err := uc.categoryRepo.FindByFilter(ctx, scope, input.Filter, pagination)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return &ListCategoriesOutput{Result: result}, nil
}

// categoryNotFound is the shared absent-or-out-of-scope error.
func categoryNotFound() error {
	return domainerror.NewCategoryError(
		domainerror.ErrCodeCategoryNotFound,
		"category not found",
		domainerror.ErrCategoryNotFound,
	)
}
