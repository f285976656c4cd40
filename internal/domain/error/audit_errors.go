// Package error defines domain-specific errors for the FinFlow API.
package error

import "errors"

// Audit log domain errors.
var (
	// ErrAuditLogNotFound is returned when no log entry matches the requested id.
	ErrAuditLogNotFound = errors.New("audit log not found")

	// ErrAuditAdminOnly is returned when a non-admin attempts to delete a log entry.
	ErrAuditAdminOnly = errors.New("audit log deletion requires admin role")

	// ErrAuditStoreUnavailable is returned when the document store is not connected.
	ErrAuditStoreUnavailable = errors.New("audit store unavailable")
)
