// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/application/usecase/category"
	"github.com/finflow/backend/internal/domain/entity"
	domainerror "github.com/finflow/backend/internal/domain/error"
	"github.com/finflow/backend/internal/integration/entrypoint/dto"
	"github.com/finflow/backend/internal/integration/entrypoint/middleware"
)

// CategoryController handles category endpoints.
type CategoryController struct {
	createUseCase   *category.CreateCategoryUseCase
	listUseCase     *category.ListCategoriesUseCase
	countsUseCase   *category.GetCategoryCountsUseCase
	getUseCase      *category.GetCategoryUseCase
	updateUseCase   *category.UpdateCategoryUseCase
	deleteUseCase   *category.DeleteCategoryUseCase
	listTxnsUseCase *category.ListCategoryTransactionsUseCase
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(
	createUseCase *category.CreateCategoryUseCase,
	listUseCase *category.ListCategoriesUseCase,
	countsUseCase *category.GetCategoryCountsUseCase,
	getUseCase *category.GetCategoryUseCase,
	updateUseCase *category.UpdateCategoryUseCase,
	deleteUseCase *category.DeleteCategoryUseCase,
	listTxnsUseCase *category.ListCategoryTransactionsUseCase,
) *CategoryController {
	return &CategoryController{
		createUseCase:   createUseCase,
		listUseCase:     listUseCase,
		countsUseCase:   countsUseCase,
		getUseCase:      getUseCase,
		updateUseCase:   updateUseCase,
		deleteUseCase:   deleteUseCase,
		listTxnsUseCase: listTxnsUseCase,
	}
}

// Create handles POST /categories requests.
func (c *CategoryController) Create(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body")
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), category.CreateCategoryInput{
		Principal:    principal,
		TargetUserID: req.UserID,
		Name:         req.Name,
		Type:         req.Type,
		Color:        req.Color,
		Icon:         req.Icon,
		Description:  req.Description,
	})
	if err != nil {
		c.handleCategoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCategoryResponse(output.Category))
}

// List handles GET /categories requests. ?with_counts=true switches to the
// counted shape.
func (c *CategoryController) List(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	if boolQuery(ctx, "with_counts") {
		output, err := c.countsUseCase.Execute(ctx.Request.Context(), category.GetCategoryCountsInput{
			Principal:    principal,
			TargetUserID: uintQuery(ctx, "user_id"),
		})
		if err != nil {
			c.handleCategoryError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.ToCategoryWithCountResponses(output.Categories))
		return
	}

	filter := adapter.CategoryFilter{Search: ctx.Query("search")}
	if categoryType := ctx.Query("type"); categoryType != "" {
		catType := entity.CategoryType(categoryType)
		filter.Type = &catType
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), category.ListCategoriesInput{
		Principal:    principal,
		TargetUserID: uintQuery(ctx, "user_id"),
		Filter:       filter,
		Pagination:   parsePagination(ctx),
	})
	if err != nil {
		c.handleCategoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(output.Result))
}

// Get handles GET /categories/:id requests.
func (c *CategoryController) Get(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	categoryID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), category.GetCategoryInput{
		Principal:  principal,
		CategoryID: categoryID,
	})
	if err != nil {
		c.handleCategoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryResponse(output.Category))
}

// Update handles PUT /categories/:id requests.
func (c *CategoryController) Update(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	categoryID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body")
		return
	}

	if existing, err := c.getUseCase.Execute(ctx.Request.Context(), category.GetCategoryInput{
		Principal:  principal,
		CategoryID: categoryID,
	}); err == nil {
		middleware.PublishOldValue(ctx, dto.ToCategoryResponse(existing.Category))
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), category.UpdateCategoryInput{
		Principal:   principal,
		CategoryID:  categoryID,
		Name:        req.Name,
		Type:        req.Type,
		Color:       req.Color,
		Icon:        req.Icon,
		Description: req.Description,
	})
	if err != nil {
		c.handleCategoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryResponse(output.Category))
}

// Delete handles DELETE /categories/:id requests.
func (c *CategoryController) Delete(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	categoryID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if existing, err := c.getUseCase.Execute(ctx.Request.Context(), category.GetCategoryInput{
		Principal:  principal,
		CategoryID: categoryID,
	}); err == nil {
		middleware.PublishOldValue(ctx, dto.ToCategoryResponse(existing.Category))
	}

	if _, err := c.deleteUseCase.Execute(ctx.Request.Context(), category.DeleteCategoryInput{
		Principal:  principal,
		CategoryID: categoryID,
	}); err != nil {
		c.handleCategoryError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Transactions handles GET /categories/:id/transactions requests.
func (c *CategoryController) Transactions(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	categoryID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	output, err := c.listTxnsUseCase.Execute(ctx.Request.Context(), category.ListCategoryTransactionsInput{
		Principal:  principal,
		CategoryID: categoryID,
		Pagination: parsePagination(ctx),
	})
	if err != nil {
		c.handleCategoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output.Result))
}

// handleCategoryError maps category errors to HTTP responses.
func (c *CategoryController) handleCategoryError(ctx *gin.Context, err error) {
	if errors.Is(err, domainerror.ErrReadOnlyRole) {
		forbiddenWrite(ctx)
		return
	}

	var catErr *domainerror.CategoryError
	if errors.As(err, &catErr) {
		ctx.JSON(c.statusForCategoryError(catErr.Code), dto.ErrorResponse{
			Error: catErr.Message,
			Code:  string(catErr.Code),
		})
		return
	}

	internalError(ctx)
}

// statusForCategoryError maps category error codes to HTTP status codes.
func (c *CategoryController) statusForCategoryError(code domainerror.CategoryErrorCode) int {
	switch code {
	case domainerror.ErrCodeCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidCategoryType,
		domainerror.ErrCodeMissingCategoryFields,
		domainerror.ErrCodeCategoryNameTaken,
		domainerror.ErrCodeCategoryInUse:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
