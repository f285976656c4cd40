// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/application/usecase/auditlog"
	domainerror "github.com/finflow/backend/internal/domain/error"
	"github.com/finflow/backend/internal/integration/entrypoint/dto"
)

// AuditLogController handles audit trail endpoints.
type AuditLogController struct {
	listUseCase       *auditlog.ListLogsUseCase
	getUseCase        *auditlog.GetLogUseCase
	listEntityUseCase *auditlog.ListEntityLogsUseCase
	deleteUseCase     *auditlog.DeleteLogUseCase
}

// NewAuditLogController creates a new audit log controller instance.
func NewAuditLogController(
	listUseCase *auditlog.ListLogsUseCase,
	getUseCase *auditlog.GetLogUseCase,
	listEntityUseCase *auditlog.ListEntityLogsUseCase,
	deleteUseCase *auditlog.DeleteLogUseCase,
) *AuditLogController {
	return &AuditLogController{
		listUseCase:       listUseCase,
		getUseCase:        getUseCase,
		listEntityUseCase: listEntityUseCase,
		deleteUseCase:     deleteUseCase,
	}
}

// List handles GET /logs requests.
func (c *AuditLogController) List(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	filter := adapter.AuditLogFilter{
		UserID:     ctx.Query("user_id"),
		Action:     ctx.Query("action"),
		EntityType: ctx.Query("entity_type"),
		StartDate:  dateQuery(ctx, "start_date"),
		EndDate:    dateQuery(ctx, "end_date"),
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), auditlog.ListLogsInput{
		Principal:  principal,
		Filter:     filter,
		Pagination: parsePagination(ctx),
	})
	if err != nil {
		c.handleAuditError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAuditLogListResponse(output.Result))
}

// Get handles GET /logs/:id requests.
func (c *AuditLogController) Get(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), auditlog.GetLogInput{
		Principal: principal,
		LogID:     ctx.Param("id"),
	})
	if err != nil {
		c.handleAuditError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAuditLogResponse(output.Entry))
}

// ListByEntity handles GET /logs/entity/:type/:id requests.
func (c *AuditLogController) ListByEntity(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	output, err := c.listEntityUseCase.Execute(ctx.Request.Context(), auditlog.ListEntityLogsInput{
		Principal:  principal,
		EntityType: ctx.Param("type"),
		EntityID:   ctx.Param("id"),
		Pagination: parsePagination(ctx),
	})
	if err != nil {
		c.handleAuditError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAuditLogListResponse(output.Result))
}

// Delete handles DELETE /logs/:id requests.
func (c *AuditLogController) Delete(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	if _, err := c.deleteUseCase.Execute(ctx.Request.Context(), auditlog.DeleteLogInput{
		Principal: principal,
		LogID:     ctx.Param("id"),
	}); err != nil {
		c.handleAuditError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handleAuditError maps audit log errors to HTTP responses.
func (c *AuditLogController) handleAuditError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domainerror.ErrAuditLogNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Audit log not found",
		})
	case errors.Is(err, domainerror.ErrAuditAdminOnly):
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{
			Error: "Audit log deletion requires admin role",
		})
	case errors.Is(err, domainerror.ErrAuditStoreUnavailable):
		ctx.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Error: "Audit store is unavailable",
		})
	default:
		internalError(ctx)
	}
}
