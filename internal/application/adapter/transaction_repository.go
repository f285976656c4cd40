// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/finflow/backend/internal/domain/entity"
)

// TransactionFilter defines filter options for listing transactions.
type TransactionFilter struct {
	CategoryID *uint
	TagID      *uint
	Type       *entity.TransactionType
	StartDate  *time.Time
	EndDate    *time.Time
	Search     string // Case-insensitive description match
}

// TransactionListResult represents the result of listing transactions.
type TransactionListResult struct {
	Transactions []*entity.Transaction
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// CreateWithTags creates a transaction and its tag links in a single
	// database transaction.
	CreateWithTags(ctx context.Context, transaction *entity.Transaction, tagIDs []uint) error

	// FindByID retrieves a transaction with its category and tags by ID
	// within the given scope.
	FindByID(ctx context.Context, id uint, scope entity.AccessScope) (*entity.Transaction, error)

	// FindByFilter retrieves transactions within the scope, filtered and
	// paginated, with categories and tags loaded.
	FindByFilter(ctx context.Context, scope entity.AccessScope, filter TransactionFilter, pagination Pagination) (*TransactionListResult, error)

	// UpdateWithTags updates a transaction and, when replaceTags is set,
	// replaces its tag links, all in a single database transaction.
	UpdateWithTags(ctx context.Context, transaction *entity.Transaction, tagIDs []uint, replaceTags bool) error

	// Delete removes a transaction together with its tag links.
	Delete(ctx context.Context, id uint) error

	// GetSummary aggregates income and expense totals within the scope.
	GetSummary(ctx context.Context, scope entity.AccessScope, filter TransactionFilter) (*entity.TransactionSummary, error)

	// GetCategoryBreakdown aggregates totals per category within the scope.
	GetCategoryBreakdown(ctx context.Context, scope entity.AccessScope, filter TransactionFilter) ([]*entity.CategoryBreakdown, error)
}
