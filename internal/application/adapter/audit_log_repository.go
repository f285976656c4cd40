// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/finflow/backend/internal/domain/entity"
)

// AuditLogFilter defines filter options for querying audit logs.
type AuditLogFilter struct {
	UserID     string
	Action     string
	EntityType string
	StartDate  *time.Time
	EndDate    *time.Time
}

// AuditLogListResult represents the result of querying audit logs.
type AuditLogListResult struct {
	Entries    []*entity.AuditLogEntry
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// AuditLogRepository defines the interface for the append-only audit store.
// Entries are never updated; deletion exists for admin housekeeping only.
type AuditLogRepository interface {
	// Insert appends a new log entry.
	Insert(ctx context.Context, entry *entity.AuditLogEntry) error

	// FindByFilter retrieves entries matching the filter, newest first.
	FindByFilter(ctx context.Context, filter AuditLogFilter, pagination Pagination) (*AuditLogListResult, error)

	// FindByLogID retrieves a single entry by its log id.
	FindByLogID(ctx context.Context, logID string) (*entity.AuditLogEntry, error)

	// FindByEntity retrieves the entries recorded against one entity, newest
	// first. A non-empty userID restricts the result, totals included, to
	// that actor's entries.
	FindByEntity(ctx context.Context, entityType, entityID, userID string, pagination Pagination) (*AuditLogListResult, error)

	// Delete removes a single entry by its log id.
	Delete(ctx context.Context, logID string) error
}
