// Package auditlog contains audit trail use cases.
package auditlog

import (
	"context"
	"errors"
	"fmt"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
	domainerror "github.com/finflow/backend/internal/domain/error"
)

// DeleteLogInput represents the input for audit entry deletion.
type DeleteLogInput struct {
	Principal entity.Principal
	LogID     string
}

// DeleteLogOutput represents the output of audit entry deletion.
type DeleteLogOutput struct {
	Deleted bool
}

// DeleteLogUseCase handles admin-only housekeeping deletion. The trail is
// otherwise append-only.
type DeleteLogUseCase struct {
	auditRepo adapter.AuditLogRepository
}

// NewDeleteLogUseCase creates a new DeleteLogUseCase instance.
func NewDeleteLogUseCase(auditRepo adapter.AuditLogRepository) *DeleteLogUseCase {
	return &DeleteLogUseCase{auditRepo: auditRepo}
}

// Execute performs the entry deletion.
func (uc *DeleteLogUseCase) Execute(ctx context.Context, input DeleteLogInput) (*DeleteLogOutput, error) {
	if !input.Principal.IsAdmin() {
		return nil, domainerror.ErrAuditAdminOnly
	}

	if _, err := uc.auditRepo.FindByLogID(ctx, input.LogID); err != nil {
		if errors.Is(err, domainerror.ErrAuditLogNotFound) {
			return nil, logNotFound()
		}
		return nil, fmt.Errorf("failed to find audit log: %w", err)
	}

	if err := uc.auditRepo.Delete(ctx, input.LogID); err != nil {
		return nil, fmt.Errorf("failed to delete audit log: %w", err)
	}
	return &DeleteLogOutput{Deleted: true}, nil
}
