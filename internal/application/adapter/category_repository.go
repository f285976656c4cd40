// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/finflow/backend/internal/domain/entity"
)

// CategoryFilter defines filter options for listing categories.
type CategoryFilter struct {
	Type   *entity.CategoryType
	Search string // Case-insensitive name match
}

// CategoryListResult represents the result of listing categories.
type CategoryListResult struct {
	Categories []*entity.Category
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create creates a new category in the database.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by its ID within the given scope.
	FindByID(ctx context.Context, id uint, scope entity.AccessScope) (*entity.Category, error)

	// FindByFilter retrieves categories within the scope, filtered and paginated.
	FindByFilter(ctx context.Context, scope entity.AccessScope, filter CategoryFilter, pagination Pagination) (*CategoryListResult, error)

	// FindAllWithCounts retrieves every category within the scope together
	// with its transaction count.
	FindAllWithCounts(ctx context.Context, scope entity.AccessScope) ([]*entity.CategoryWithCount, error)

	// ExistsByName checks if the owner already has a category with the given
	// name, compared case-insensitively, excluding the given id.
	ExistsByName(ctx context.Context, ownerID uint, name string, excludeID uint) (bool, error)

	// Update updates an existing category in the database.
	Update(ctx context.Context, category *entity.Category) error

	// Delete removes a category, clearing goal links in the same transaction.
	Delete(ctx context.Context, id uint) error

	// CountTransactions counts transactions referencing the category.
	CountTransactions(ctx context.Context, categoryID uint) (int64, error)
}
