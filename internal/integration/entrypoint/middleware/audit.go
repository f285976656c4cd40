// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finflow/backend/internal/application/usecase/auditlog"
)

// OldValueKey is the context key under which update/delete handlers publish
// the pre-image of the row they are about to change.
const OldValueKey ContextKey = "audit_old_value"

// PublishOldValue hands the pre-image of an update or delete to the audit
// recorder.
func PublishOldValue(c *gin.Context, value any) {
	c.Set(string(OldValueKey), value)
}

// auditWriter tees the response body so the recorder can read the id of a
// created entity.
type auditWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *auditWriter) Write(p []byte) (int, error) {
	w.body.Write(p)
	return w.ResponseWriter.Write(p)
}

// AuditRecorder records mutating requests into the audit trail after the
// handler has run. Recording is fire-and-forget: failures are logged and
// swallowed, never surfaced to the client.
type AuditRecorder struct {
	recordUseCase *auditlog.RecordEntryUseCase
	logger        *slog.Logger
	timeout       time.Duration
}

// NewAuditRecorder creates a new audit recorder instance. A nil use case
// disables recording.
func NewAuditRecorder(recordUseCase *auditlog.RecordEntryUseCase, logger *slog.Logger) *AuditRecorder {
	return &AuditRecorder{
		recordUseCase: recordUseCase,
		logger:        logger,
		timeout:       5 * time.Second,
	}
}

// Middleware returns a Gin middleware handler that records the request.
func (r *AuditRecorder) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if r.recordUseCase == nil || skipAudit(c.Request.Method, c.Request.URL.Path) {
			c.Next()
			return
		}

		var requestBody any
		if c.Request.Body != nil {
			raw, err := io.ReadAll(c.Request.Body)
			if err == nil {
				c.Request.Body = io.NopCloser(bytes.NewReader(raw))
				if len(raw) > 0 {
					_ = json.Unmarshal(raw, &requestBody)
				}
			}
		}

		writer := &auditWriter{ResponseWriter: c.Writer}
		c.Writer = writer

		c.Next()

		input := auditlog.RecordEntryInput{
			Method:      c.Request.Method,
			Path:        c.Request.URL.Path,
			StatusCode:  writer.Status(),
			IPAddress:   c.ClientIP(),
			UserAgent:   c.Request.UserAgent(),
			RequestBody: requestBody,
		}
		if principal, ok := GetPrincipal(c); ok {
			input.UserID = strconv.FormatUint(uint64(principal.UserID), 10)
		}
		if oldValue, exists := c.Get(string(OldValueKey)); exists {
			input.OldValue = oldValue
		}
		if c.Request.Method == http.MethodPost && writer.Status() >= 200 && writer.Status() < 300 {
			input.CreatedEntityID = createdID(writer.body.Bytes())
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
			defer cancel()
			if _, err := r.recordUseCase.Execute(ctx, input); err != nil {
				r.logger.Error("audit record failed",
					"method", input.Method,
					"path", input.Path,
					"error", err,
				)
			}
		}()
	}
}

// skipAudit reports whether the request is outside the recorder's remit:
// reads, logins, the audit trail itself, and infrastructure endpoints.
func skipAudit(method, path string) bool {
	if method == http.MethodGet {
		return true
	}
	switch {
	case strings.Contains(path, "/auth/login"),
		strings.Contains(path, "/logs"),
		strings.Contains(path, "/health"),
		strings.Contains(path, "/favicon"):
		return true
	}
	return false
}

// createdID pulls the numeric id out of a create response body.
func createdID(body []byte) string {
	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return ""
	}
	id, ok := decoded["id"].(float64)
	if !ok {
		return ""
	}
	return strconv.FormatUint(uint64(id), 10)
}
