// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
)

// GetCategoryCountsInput represents the input for the with_counts listing.
type GetCategoryCountsInput struct {
	Principal    entity.Principal
	TargetUserID *uint
}

// GetCategoryCountsOutput represents the output of the with_counts listing.
type GetCategoryCountsOutput struct {
	Categories []*entity.CategoryWithCount
}

// GetCategoryCountsUseCase returns every category in scope with its
// transaction count, for the ?with_counts=true response shape.
type GetCategoryCountsUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewGetCategoryCountsUseCase creates a new GetCategoryCountsUseCase instance.
func NewGetCategoryCountsUseCase(categoryRepo adapter.CategoryRepository) *GetCategoryCountsUseCase {
	return &GetCategoryCountsUseCase{categoryRepo: categoryRepo}
}

// Execute performs the counted listing.
func (uc *GetCategoryCountsUseCase) Execute(ctx context.Context, input GetCategoryCountsInput) (*GetCategoryCountsOutput, error) {
	scope, ok := input.Principal.ReadScope(input.TargetUserID)
	if !ok {
		return &GetCategoryCountsOutput{Categories: []*entity.CategoryWithCount{}}, nil
	}

	categories, err := uc.categoryRepo.FindAllWithCounts(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	return &GetCategoryCountsOutput{Categories: categories}, nil
}
