// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/finflow/backend/internal/domain/entity"
)

// GoalFilter defines filter options for listing goals.
type GoalFilter struct {
	Completed  *bool
	Priority   *entity.GoalPriority
	CategoryID *uint
	Search     string // Case-insensitive name match
}

// GoalListResult represents the result of listing goals.
type GoalListResult struct {
	Goals      []*entity.Goal
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// GoalRepository defines the interface for goal persistence operations.
type GoalRepository interface {
	// Create creates a new goal in the database.
	Create(ctx context.Context, goal *entity.Goal) error

	// FindByID retrieves a goal with its category by ID within the given scope.
	FindByID(ctx context.Context, id uint, scope entity.AccessScope) (*entity.Goal, error)

	// FindByFilter retrieves goals within the scope, filtered and paginated.
	FindByFilter(ctx context.Context, scope entity.AccessScope, filter GoalFilter, pagination Pagination) (*GoalListResult, error)

	// FindAll retrieves every goal within the scope, oldest first. Used by
	// the progress overview, which reports on the whole set.
	FindAll(ctx context.Context, scope entity.AccessScope) ([]*entity.Goal, error)

	// ExistsByName checks if the owner already has a goal with the given
	// name, compared case-insensitively, excluding the given id.
	ExistsByName(ctx context.Context, ownerID uint, name string, excludeID uint) (bool, error)

	// Update updates an existing goal in the database.
	Update(ctx context.Context, goal *entity.Goal) error

	// Delete removes a goal from the database.
	Delete(ctx context.Context, id uint) error

	// GetOverview aggregates every goal within the scope.
	GetOverview(ctx context.Context, scope entity.AccessScope) (*entity.GoalOverview, error)
}
