// Package auditlog contains audit trail use cases.
package auditlog

import (
	"context"
	"fmt"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
)

// ListEntityLogsInput represents the input for the per-entity audit trail.
type ListEntityLogsInput struct {
	Principal  entity.Principal
	EntityType string
	EntityID   string
	Pagination adapter.Pagination
}

// ListEntityLogsOutput represents the output of the per-entity audit trail.
type ListEntityLogsOutput struct {
	Result *adapter.AuditLogListResult
}

// ListEntityLogsUseCase lists the entries recorded against one entity,
// restricted to what the principal may see. The restriction is applied
// at query level so pagination totals only count visible entries.
type ListEntityLogsUseCase struct {
	auditRepo adapter.AuditLogRepository
}

// NewListEntityLogsUseCase creates a new ListEntityLogsUseCase instance.
func NewListEntityLogsUseCase(auditRepo adapter.AuditLogRepository) *ListEntityLogsUseCase {
	return &ListEntityLogsUseCase{auditRepo: auditRepo}
}

// Execute performs the per-entity listing.
func (uc *ListEntityLogsUseCase) Execute(ctx context.Context, input ListEntityLogsInput) (*ListEntityLogsOutput, error) {
	result, err := uc.auditRepo.FindByEntity(ctx, input.EntityType, input.EntityID, visibleUserID(input.Principal), input.Pagination.Normalized())
	if err != nil {
		return nil, fmt.Errorf("failed to list entity audit logs: %w", err)
	}
	return &ListEntityLogsOutput{Result: result}, nil
}
