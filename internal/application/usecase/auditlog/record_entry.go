// Package auditlog contains audit trail use cases.
package auditlog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
)

// RecordEntryInput carries the raw facts of a finished request. The recorder
// middleware fills it from the gin context.
type RecordEntryInput struct {
	UserID     string
	Method     string
	Path       string
	StatusCode int
	IPAddress  string
	UserAgent  string
	// RequestBody is the decoded JSON request body, redacted before storage.
	RequestBody any
	// OldValue is the pre-image a handler published for updates and deletes.
	OldValue any
	// CreatedEntityID is the id taken from the response body on 2xx creates,
	// used when the path carries no trailing id.
	CreatedEntityID string
}

// RecordEntryOutput represents the stored log entry.
type RecordEntryOutput struct {
	Entry *entity.AuditLogEntry
}

// RecordEntryUseCase classifies and appends one audit log entry.
type RecordEntryUseCase struct {
	auditRepo adapter.AuditLogRepository
}

// NewRecordEntryUseCase creates a new RecordEntryUseCase instance.
func NewRecordEntryUseCase(auditRepo adapter.AuditLogRepository) *RecordEntryUseCase {
	return &RecordEntryUseCase{auditRepo: auditRepo}
}

// Execute classifies the request and appends the entry.
func (uc *RecordEntryUseCase) Execute(ctx context.Context, input RecordEntryInput) (*RecordEntryOutput, error) {
	logID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate log id: %w", err)
	}

	userID := input.UserID
	if userID == "" {
		userID = entity.AnonymousUser
	}

	entityID := TrailingID(input.Path)
	if entityID == "" {
		entityID = input.CreatedEntityID
	}

	var newValue any
	if input.RequestBody != nil {
		newValue = Redact(input.RequestBody)
	}

	entry := &entity.AuditLogEntry{
		LogID:      logID.String(),
		UserID:     userID,
		Action:     ClassifyAction(input.Method, input.Path),
		EntityType: ClassifyEntityType(input.Path),
		EntityID:   entityID,
		Method:     input.Method,
		Path:       input.Path,
		StatusCode: input.StatusCode,
		IPAddress:  input.IPAddress,
		UserAgent:  input.UserAgent,
		OldValue:   input.OldValue,
		NewValue:   newValue,
		CreatedAt:  time.Now().UTC(),
	}

	if err := uc.auditRepo.Insert(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to insert audit log: %w", err)
	}
	return &RecordEntryOutput{Entry: entry}, nil
}
