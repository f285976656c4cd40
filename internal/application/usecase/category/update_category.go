// Package category contains category-related use cases.
package category

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
	domainerror "github.com/finflow/backend/internal/domain/error"
)

// UpdateCategoryInput represents the input for category update. Nil fields
// are left untouched.
type UpdateCategoryInput struct {
	Principal   entity.Principal
	CategoryID  uint
	Name        *string
	Type        *string
	Color       *string
	Icon        *string
	Description *string
}

// UpdateCategoryOutput represents the output of category update.
type UpdateCategoryOutput struct {
	Category *entity.Category
}

// UpdateCategoryUseCase handles category update logic.
type UpdateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewUpdateCategoryUseCase creates a new UpdateCategoryUseCase instance.
func NewUpdateCategoryUseCase(categoryRepo adapter.CategoryRepository) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{categoryRepo: categoryRepo}
}

// Execute performs the category update.
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, input UpdateCategoryInput) (*UpdateCategoryOutput, error) {
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

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeMissingCategoryFields,
				"name cannot be empty",
				domainerror.ErrMissingCategoryFields,
			)
		}
		exists, err := uc.categoryRepo.ExistsByName(ctx, category.UserID, name, category.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check category name: %w", err)
		}
		if exists {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNameTaken,
				"a category with this name already exists",
				domainerror.ErrCategoryNameTaken,
			)
		}
		category.Name = name
	}

	if input.Type != nil {
		categoryType := entity.CategoryType(*input.Type)
		if categoryType != entity.CategoryTypeExpense && categoryType != entity.CategoryTypeIncome {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeInvalidCategoryType,
				"type must be 'expense' or 'income'",
				domainerror.ErrInvalidCategoryType,
			)
		}
		category.Type = categoryType
	}

	if input.Color != nil {
		category.Color = *input.Color
	}
	if input.Icon != nil {
		category.Icon = *input.Icon
	}
	if input.Description != nil {
		category.Description = *input.Description
	}

	category.UpdatedAt = time.Now().UTC()
	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return &UpdateCategoryOutput{Category: category}, nil
}
