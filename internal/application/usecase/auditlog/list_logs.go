// Package auditlog contains audit trail use cases.
package auditlog

import (
	"context"
	"fmt"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
)

// ListLogsInput represents the input for the audit trail listing. The
// filter's UserID is honored for admins only; everyone else is pinned to
// their visible actor.
type ListLogsInput struct {
	Principal  entity.Principal
	Filter     adapter.AuditLogFilter
	Pagination adapter.Pagination
}

// ListLogsOutput represents the output of the audit trail listing.
type ListLogsOutput struct {
	Result *adapter.AuditLogListResult
}

// ListLogsUseCase handles the filtered, paginated audit trail listing.
type ListLogsUseCase struct {
	auditRepo adapter.AuditLogRepository
}

// NewListLogsUseCase creates a new ListLogsUseCase instance.
func NewListLogsUseCase(auditRepo adapter.AuditLogRepository) *ListLogsUseCase {
	return &ListLogsUseCase{auditRepo: auditRepo}
}

// Execute performs the audit trail listing.
func (uc *ListLogsUseCase) Execute(ctx context.Context, input ListLogsInput) (*ListLogsOutput, error) {
	filter := input.Filter
	if restricted := visibleUserID(input.Principal); restricted != "" {
		filter.UserID = restricted
	}

	result, err := uc.auditRepo.FindByFilter(ctx, filter, input.Pagination.Normalized())
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return &ListLogsOutput{Result: result}, nil
}
