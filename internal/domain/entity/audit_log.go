// Package entity defines the core business entities for the domain layer.
package entity

import "time"

// AnonymousUser is recorded as the actor for unauthenticated requests.
const AnonymousUser = "anonymous"

// Audit actions derived from the request method and path.
const (
	AuditActionRegister      = "register"
	AuditActionAddProgress   = "add_progress"
	AuditActionGetProgress   = "get_progress"
	AuditActionGetEntityLogs = "get_entity_logs"
	AuditActionCreate        = "create"
	AuditActionUpdate        = "update"
	AuditActionDelete        = "delete"
	AuditActionReadOne       = "read_one"
	AuditActionReadAll       = "read_all"
)

// AuditLogEntry is one append-only record of a mutating API request. Entries
// live in the document store, outside the relational transaction of the
// operation they describe.
type AuditLogEntry struct {
	LogID      string
	UserID     string // Actor id as a string, or "anonymous"
	Action     string
	EntityType string
	EntityID   string // Empty when the request targets no single row
	Method     string
	Path       string
	StatusCode int
	IPAddress  string
	UserAgent  string
	OldValue   any // Pre-image published by update/delete handlers
	NewValue   any // Redacted request body
	CreatedAt  time.Time
}
