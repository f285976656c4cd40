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

// GetLogInput represents the input for fetching one audit log entry.
type GetLogInput struct {
	Principal entity.Principal
	LogID     string
}

// GetLogOutput represents the output of fetching one audit log entry.
type GetLogOutput struct {
	Entry *entity.AuditLogEntry
}

// GetLogUseCase handles visibility-checked single-entry lookup.
type GetLogUseCase struct {
	auditRepo adapter.AuditLogRepository
}

// NewGetLogUseCase creates a new GetLogUseCase instance.
func NewGetLogUseCase(auditRepo adapter.AuditLogRepository) *GetLogUseCase {
	return &GetLogUseCase{auditRepo: auditRepo}
}

// Execute performs the entry lookup.
func (uc *GetLogUseCase) Execute(ctx context.Context, input GetLogInput) (*GetLogOutput, error) {
	entry, err := uc.auditRepo.FindByLogID(ctx, input.LogID)
	if err != nil {
		if errors.Is(err, domainerror.ErrAuditLogNotFound) {
			return nil, logNotFound()
		}
		return nil, fmt.Errorf("failed to find audit log: %w", err)
	}

	if !canSee(input.Principal, entry) {
		return nil, logNotFound()
	}
	return &GetLogOutput{Entry: entry}, nil
}
