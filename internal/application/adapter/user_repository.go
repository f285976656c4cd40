// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/finflow/backend/internal/domain/entity"
)

// UserFilter defines filter options for listing users.
type UserFilter struct {
	Search   string // Case-insensitive name or email match
	Role     *entity.Role
	IsActive *bool
}

// UserListResult represents the result of listing users.
type UserListResult struct {
	Users      []*entity.User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create creates a new user in the database.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a user by their ID.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// FindByEmail retrieves a user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindVisible retrieves the users the principal may see: everyone for
	// admins, self plus delegated viewers for regular users, self plus the
	// delegate target for viewers.
	FindVisible(ctx context.Context, principal entity.Principal, filter UserFilter, pagination Pagination) (*UserListResult, error)

	// Update updates an existing user in the database.
	Update(ctx context.Context, user *entity.User) error

	// Delete hard-deletes a user together with their tags and tag links.
	Delete(ctx context.Context, id uint) error

	// ExistsByEmail checks if another user with the given email exists.
	ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error)

	// CountDependents counts the records that block the user from deletion.
	CountDependents(ctx context.Context, userID uint) (*entity.UserDependents, error)

	// GetStats aggregates the user's financial activity.
	GetStats(ctx context.Context, userID uint) (*entity.UserStats, error)

	// AdminExists checks whether at least one admin account exists.
	AdminExists(ctx context.Context) (bool, error)
}
