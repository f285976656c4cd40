// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
	domainerror "github.com/finflow/backend/internal/domain/error"
	"github.com/finflow/backend/internal/integration/entrypoint/dto"
	"github.com/finflow/backend/internal/integration/entrypoint/middleware"
)

// dateLayout is the wire format for dates in requests and query strings.
const dateLayout = "2006-01-02"

// requirePrincipal extracts the authenticated principal or writes a 401.
func requirePrincipal(ctx *gin.Context) (entity.Principal, bool) {
	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
	}
	return principal, ok
}

// parseIDParam parses the numeric :id path parameter or writes a 400.
func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid id parameter",
		})
		return 0, false
	}
	return uint(id), true
}

// parseUserIDParam parses the :id path parameter of user routes, accepting
// the "me" alias for the caller's own id.
func parseUserIDParam(ctx *gin.Context, principal entity.Principal) (uint, bool) {
	if ctx.Param("id") == "me" {
		return principal.UserID, true
	}
	return parseIDParam(ctx, "id")
}

// parsePagination reads page/limit query parameters, leaving normalization
// to the use case.
func parsePagination(ctx *gin.Context) adapter.Pagination {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	return adapter.Pagination{Page: page, Limit: limit}
}

// uintQuery reads an optional numeric query parameter.
func uintQuery(ctx *gin.Context, name string) *uint {
	raw := ctx.Query(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	id := uint(value)
	return &id
}

// boolQuery reports whether the query parameter is set to "true".
func boolQuery(ctx *gin.Context, name string) bool {
	return ctx.Query(name) == "true"
}

// dateQuery reads an optional date query parameter.
func dateQuery(ctx *gin.Context, name string) *time.Time {
	raw := ctx.Query(name)
	if raw == "" {
		return nil
	}
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil
	}
	return &date
}

// badRequest writes a 400 with the given message.
func badRequest(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: message})
}

// forbiddenWrite writes the uniform 403 for read-only principals.
func forbiddenWrite(ctx *gin.Context) {
	ctx.JSON(http.StatusForbidden, dto.ErrorResponse{
		Error: "This account has read-only access",
		Code:  string(domainerror.ErrCodeReadOnlyRole),
	})
}

// internalError writes the generic 500.
func internalError(ctx *gin.Context) {
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
