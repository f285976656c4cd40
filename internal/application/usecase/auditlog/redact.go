// Package auditlog contains audit trail use cases.
package auditlog

import "strings"

// RedactedValue replaces sensitive field values in recorded bodies.
const RedactedValue = "[REDACTED]"

// sensitiveMarkers flag a key as sensitive when its lowercased name contains
// any of them.
var sensitiveMarkers = []string{"password", "token", "secret", "key", "auth"}

// Redact walks a decoded JSON value and replaces the value of every sensitive
// key, recursing through nested objects and arrays. The input is not
// modified; maps and slices are rebuilt.
func Redact(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, inner := range v {
			if sensitiveKey(key) {
				out[key] = RedactedValue
				continue
			}
			out[key] = Redact(inner)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, inner := range v {
			out[i] = Redact(inner)
		}
		return out
	default:
		return value
	}
}

func sensitiveKey(key string) bool {
	lowered := strings.ToLower(key)
	for _, marker := range sensitiveMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}
