// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
)

// AuditLogResponse represents a single audit log entry in API responses.
type AuditLogResponse struct {
	LogID      string    `json:"log_id"`
	UserID     string    `json:"user_id"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id,omitempty"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	StatusCode int       `json:"status_code"`
	IPAddress  string    `json:"ip_address"`
	UserAgent  string    `json:"user_agent"`
	OldValue   any       `json:"old_value,omitempty"`
	NewValue   any       `json:"new_value,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToAuditLogResponse converts a domain AuditLogEntry to its DTO.
func ToAuditLogResponse(entry *entity.AuditLogEntry) AuditLogResponse {
	return AuditLogResponse{
		LogID:      entry.LogID,
		UserID:     entry.UserID,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Method:     entry.Method,
		Path:       entry.Path,
		StatusCode: entry.StatusCode,
		IPAddress:  entry.IPAddress,
		UserAgent:  entry.UserAgent,
		OldValue:   entry.OldValue,
		NewValue:   entry.NewValue,
		CreatedAt:  entry.CreatedAt,
	}
}

// ToAuditLogListResponse converts a listing result to the shared page envelope.
func ToAuditLogListResponse(result *adapter.AuditLogListResult) PageResponse {
	entries := make([]AuditLogResponse, len(result.Entries))
	for i, entry := range result.Entries {
		entries[i] = ToAuditLogResponse(entry)
	}
	return PageResponse{
		Total:      result.Total,
		Page:       result.Page,
		TotalPages: result.TotalPages,
		Data:       entries,
	}
}
