// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/application/usecase/tag"
	domainerror "github.com/finflow/backend/internal/domain/error"
	"github.com/finflow/backend/internal/integration/entrypoint/dto"
	"github.com/finflow/backend/internal/integration/entrypoint/middleware"
)

// TagController handles tag endpoints.
type TagController struct {
	createUseCase   *tag.CreateTagUseCase
	listUseCase     *tag.ListTagsUseCase
	popularUseCase  *tag.GetPopularTagsUseCase
	getUseCase      *tag.GetTagUseCase
	updateUseCase   *tag.UpdateTagUseCase
	deleteUseCase   *tag.DeleteTagUseCase
	statsUseCase    *tag.GetTagStatsUseCase
	listTxnsUseCase *tag.ListTagTransactionsUseCase
}

// NewTagController creates a new tag controller instance.
func NewTagController(
	createUseCase *tag.CreateTagUseCase,
	listUseCase *tag.ListTagsUseCase,
	popularUseCase *tag.GetPopularTagsUseCase,
	getUseCase *tag.GetTagUseCase,
	updateUseCase *tag.UpdateTagUseCase,
	deleteUseCase *tag.DeleteTagUseCase,
	statsUseCase *tag.GetTagStatsUseCase,
	listTxnsUseCase *tag.ListTagTransactionsUseCase,
) *TagController {
	return &TagController{
		createUseCase:   createUseCase,
		listUseCase:     listUseCase,
		popularUseCase:  popularUseCase,
		getUseCase:      getUseCase,
		updateUseCase:   updateUseCase,
		deleteUseCase:   deleteUseCase,
		statsUseCase:    statsUseCase,
		listTxnsUseCase: listTxnsUseCase,
	}
}

// Create handles POST /tags requests.
func (c *TagController) Create(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	var req dto.CreateTagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body")
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), tag.CreateTagInput{
		Principal:    principal,
		TargetUserID: req.UserID,
		Name:         req.Name,
		Color:        req.Color,
	})
	if err != nil {
		c.handleTagError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTagResponse(output.Tag))
}

// List handles GET /tags requests. ?popular=true switches to usage-ordered
// rows.
func (c *TagController) List(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	if boolQuery(ctx, "popular") {
		limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
		output, err := c.popularUseCase.Execute(ctx.Request.Context(), tag.GetPopularTagsInput{
			Principal:    principal,
			TargetUserID: uintQuery(ctx, "user_id"),
			Limit:        limit,
		})
		if err != nil {
			c.handleTagError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.ToPopularTagResponses(output.Tags))
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), tag.ListTagsInput{
		Principal:    principal,
		TargetUserID: uintQuery(ctx, "user_id"),
		Filter:       adapter.TagFilter{Search: ctx.Query("search")},
		Pagination:   parsePagination(ctx),
	})
	if err != nil {
		c.handleTagError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTagListResponse(output.Result))
}

// Get handles GET /tags/:id requests.
func (c *TagController) Get(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	tagID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), tag.GetTagInput{
		Principal: principal,
		TagID:     tagID,
	})
	if err != nil {
		c.handleTagError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTagResponse(output.Tag))
}

// Update handles PUT /tags/:id requests.
func (c *TagController) Update(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	tagID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateTagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body")
		return
	}

	if existing, err := c.getUseCase.Execute(ctx.Request.Context(), tag.GetTagInput{
		Principal: principal,
		TagID:     tagID,
	}); err == nil {
		middleware.PublishOldValue(ctx, dto.ToTagResponse(existing.Tag))
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), tag.UpdateTagInput{
		Principal: principal,
		TagID:     tagID,
		Name:      req.Name,
		Color:     req.Color,
	})
	if err != nil {
		c.handleTagError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTagResponse(output.Tag))
}

// Delete handles DELETE /tags/:id requests.
func (c *TagController) Delete(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	tagID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if existing, err := c.getUseCase.Execute(ctx.Request.Context(), tag.GetTagInput{
		Principal: principal,
		TagID:     tagID,
	}); err == nil {
		middleware.PublishOldValue(ctx, dto.ToTagResponse(existing.Tag))
	}

	if _, err := c.deleteUseCase.Execute(ctx.Request.Context(), tag.DeleteTagInput{
		Principal: principal,
		TagID:     tagID,
	}); err != nil {
		c.handleTagError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Stats handles GET /tags/:id/stats requests.
func (c *TagController) Stats(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	tagID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	output, err := c.statsUseCase.Execute(ctx.Request.Context(), tag.GetTagStatsInput{
		Principal: principal,
		TagID:     tagID,
	})
	if err != nil {
		c.handleTagError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTagStatsResponse(output.Stats))
}

// Transactions handles GET /tags/:id/transactions requests.
func (c *TagController) Transactions(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	tagID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	output, err := c.listTxnsUseCase.Execute(ctx.Request.Context(), tag.ListTagTransactionsInput{
		Principal:  principal,
		TagID:      tagID,
		Pagination: parsePagination(ctx),
	})
	if err != nil {
		c.handleTagError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output.Result))
}

// handleTagError maps tag errors to HTTP responses.
func (c *TagController) handleTagError(ctx *gin.Context, err error) {
	if errors.Is(err, domainerror.ErrReadOnlyRole) {
		forbiddenWrite(ctx)
		return
	}

	var tagErr *domainerror.TagError
	if errors.As(err, &tagErr) {
		ctx.JSON(c.statusForTagError(tagErr.Code), dto.ErrorResponse{
			Error: tagErr.Message,
			Code:  string(tagErr.Code),
		})
		return
	}

	internalError(ctx)
}

// statusForTagError maps tag error codes to HTTP status codes.
func (c *TagController) statusForTagError(code domainerror.TagErrorCode) int {
	switch code {
	case domainerror.ErrCodeTagNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeMissingTagFields,
		domainerror.ErrCodeTagNameTaken,
		domainerror.ErrCodeTagInUse:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
