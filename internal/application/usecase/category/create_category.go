// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"
	"strings"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
	domainerror "github.com/finflow/backend/internal/domain/error"
)

// CreateCategoryInput represents the input for category creation.
// TargetUserID is honored for admins only; everyone else creates for
// themselves.
type CreateCategoryInput struct {
	Principal    entity.Principal
	TargetUserID *uint
	Name         string
	Type         string
	Color        string
	Icon         string
	Description  string
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category *entity.Category
}

// CreateCategoryUseCase handles category creation logic.
type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(categoryRepo adapter.CategoryRepository) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{categoryRepo: categoryRepo}
}

// Execute performs the category creation.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	if !input.Principal.CanWrite() {
		return nil, domainerror.ErrReadOnlyRole
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeMissingCategoryFields,
			"name is required",
			domainerror.ErrMissingCategoryFields,
		)
	}

	categoryType := entity.CategoryType(input.Type)
	if input.Type == "" {
		categoryType = entity.CategoryTypeExpense
	}
	if categoryType != entity.CategoryTypeExpense && categoryType != entity.CategoryTypeIncome {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryType,
			"type must be 'expense' or 'income'",
			domainerror.ErrInvalidCategoryType,
		)
	}

	ownerID := input.Principal.WriteOwner(input.TargetUserID)

	exists, err := uc.categoryRepo.ExistsByName(ctx, ownerID, name, 0)
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

	color := input.Color
	if color == "" {
		color = entity.DefaultCategoryColor
	}
	icon := input.Icon
	if icon == "" {
		icon = entity.DefaultCategoryIcon
	}

	created := entity.NewCategory(ownerID, name, categoryType, color, icon, input.Description)
	if err := uc.categoryRepo.Create(ctx, created); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &CreateCategoryOutput{Category: created}, nil
}
