// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/finflow/backend/internal/domain/entity"
)

// TagFilter defines filter options for listing tags.
type TagFilter struct {
	Search string // Case-insensitive name match
}

// TagListResult represents the result of listing tags.
type TagListResult struct {
	Tags       []*entity.Tag
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// TagRepository defines the interface for tag persistence operations.
type TagRepository interface {
	// Create creates a new tag in the database.
	Create(ctx context.Context, tag *entity.Tag) error

	// FindByID retrieves a tag by its ID within the given scope.
	FindByID(ctx context.Context, id uint, scope entity.AccessScope) (*entity.Tag, error)

	// FindByFilter retrieves tags within the scope, filtered and paginated.
	FindByFilter(ctx context.Context, scope entity.AccessScope, filter TagFilter, pagination Pagination) (*TagListResult, error)

	// FindPopular retrieves the most used tags within the scope, ordered by
	// transaction count descending.
	FindPopular(ctx context.Context, scope entity.AccessScope, limit int) ([]*entity.TagWithCount, error)

	// FindOwnedByIDs retrieves the subset of the given tag ids owned by the
	// user. Ids outside the owner's tag set are silently dropped.
	FindOwnedByIDs(ctx context.Context, ownerID uint, ids []uint) ([]*entity.Tag, error)

	// ExistsByName checks if the owner already has a tag with the given name,
	// compared case-insensitively, excluding the given id.
	ExistsByName(ctx context.Context, ownerID uint, name string, excludeID uint) (bool, error)

	// Update updates an existing tag in the database.
	Update(ctx context.Context, tag *entity.Tag) error

	// Delete removes a tag together with its transaction links.
	Delete(ctx context.Context, id uint) error

	// CountTransactions counts transactions linked to the tag.
	CountTransactions(ctx context.Context, tagID uint) (int64, error)

	// GetStats aggregates the transactions linked to the tag.
	GetStats(ctx context.Context, tagID uint) (*entity.TagStats, error)
}
