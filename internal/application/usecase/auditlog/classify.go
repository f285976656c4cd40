// Package auditlog contains audit trail use cases.
package auditlog

import (
	"net/http"
	"strings"

	"github.com/finflow/backend/internal/domain/entity"
)

// entityTypes maps path segment prefixes to audit entity types. Matching by
// prefix folds plurals ("categories" → "category").
var entityTypes = []struct {
	prefix string
	name   string
}{
	{"auth", "auth"},
	{"users", "user"},
	{"transactions", "transaction"},
	{"categor", "category"},
	{"tags", "tag"},
	{"goals", "goal"},
	{"logs", "log"},
}

// ClassifyAction derives the audit action from the request method and path.
// First match wins:
//
//  1. /auth/register → "register" (logins are never recorded)
//  2. /progress → "add_progress" on POST, "get_progress" on GET
//  3. /entity/ on GET → "get_entity_logs"
//  4. by method, with GET split on a trailing numeric id
func ClassifyAction(method, path string) string {
	switch {
	case strings.Contains(path, "/auth/register"):
		return entity.AuditActionRegister
	case strings.Contains(path, "/progress"):
		if method == http.MethodPost {
			return entity.AuditActionAddProgress
		}
		return entity.AuditActionGetProgress
	case strings.Contains(path, "/entity/") && method == http.MethodGet:
		return entity.AuditActionGetEntityLogs
	}

	switch method {
	case http.MethodPost:
		return entity.AuditActionCreate
	case http.MethodPut:
		return entity.AuditActionUpdate
	case http.MethodDelete:
		return entity.AuditActionDelete
	default:
		if TrailingID(path) != "" {
			return entity.AuditActionReadOne
		}
		return entity.AuditActionReadAll
	}
}

// ClassifyEntityType returns the audit entity type for the first recognized
// path segment, or "" when none matches.
func ClassifyEntityType(path string) string {
	for _, segment := range strings.Split(path, "/") {
		if segment == "" {
			continue
		}
		for _, et := range entityTypes {
			if strings.HasPrefix(segment, et.prefix) {
				return et.name
			}
		}
	}
	return ""
}

// TrailingID returns the last path segment when it is numeric, else "".
func TrailingID(path string) string {
	segments := strings.Split(strings.TrimRight(path, "/"), "/")
	if len(segments) == 0 {
		return ""
	}
	last := segments[len(segments)-1]
	if last == "" || !isDigits(last) {
		return ""
	}
	return last
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
