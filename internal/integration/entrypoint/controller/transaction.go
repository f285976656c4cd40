// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/application/usecase/transaction"
	"github.com/finflow/backend/internal/domain/entity"
	domainerror "github.com/finflow/backend/internal/domain/error"
	"github.com/finflow/backend/internal/integration/entrypoint/dto"
	"github.com/finflow/backend/internal/integration/entrypoint/middleware"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	createUseCase  *transaction.CreateTransactionUseCase
	listUseCase    *transaction.ListTransactionsUseCase
	getUseCase     *transaction.GetTransactionUseCase
	updateUseCase  *transaction.UpdateTransactionUseCase
	deleteUseCase  *transaction.DeleteTransactionUseCase
	summaryUseCase *transaction.GetSummaryUseCase
	statsUseCase   *transaction.GetCategoryStatsUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	createUseCase *transaction.CreateTransactionUseCase,
	listUseCase *transaction.ListTransactionsUseCase,
	getUseCase *transaction.GetTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
	summaryUseCase *transaction.GetSummaryUseCase,
	statsUseCase *transaction.GetCategoryStatsUseCase,
) *TransactionController {
	return &TransactionController{
		createUseCase:  createUseCase,
		listUseCase:    listUseCase,
		getUseCase:     getUseCase,
		updateUseCase:  updateUseCase,
		deleteUseCase:  deleteUseCase,
		summaryUseCase: summaryUseCase,
		statsUseCase:   statsUseCase,
	}
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body")
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		badRequest(ctx, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), transaction.CreateTransactionInput{
		Principal:    principal,
		TargetUserID: req.UserID,
		CategoryID:   req.CategoryID,
		Type:         req.Type,
		Amount:       req.Amount,
		Description:  req.Description,
		Date:         date,
		Notes:        req.Notes,
		TagIDs:       req.TagIDs,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// List handles GET /transactions requests. ?summary=true and ?stats=true
// switch to the aggregated shapes.
func (c *TransactionController) List(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	filter := c.parseFilter(ctx)
	targetUserID := uintQuery(ctx, "user_id")

	switch {
	case boolQuery(ctx, "summary"):
		output, err := c.summaryUseCase.Execute(ctx.Request.Context(), transaction.GetSummaryInput{
			Principal:    principal,
			TargetUserID: targetUserID,
			Filter:       filter,
		})
		if err != nil {
			c.handleTransactionError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.ToTransactionSummaryResponse(output.Summary))

	case boolQuery(ctx, "stats"):
		output, err := c.statsUseCase.Execute(ctx.Request.Context(), transaction.GetCategoryStatsInput{
			Principal:    principal,
			TargetUserID: targetUserID,
			Filter:       filter,
		})
		if err != nil {
			c.handleTransactionError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.CategoryStatsResponse{
			Expenses: dto.ToCategoryBreakdownResponses(output.Expenses),
			Income:   dto.ToCategoryBreakdownResponses(output.Income),
		})

	default:
		output, err := c.listUseCase.Execute(ctx.Request.Context(), transaction.ListTransactionsInput{
			Principal:    principal,
			TargetUserID: targetUserID,
			Filter:       filter,
			Pagination:   parsePagination(ctx),
		})
		if err != nil {
			c.handleTransactionError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output.Result))
	}
}

// Get handles GET /transactions/:id requests.
func (c *TransactionController) Get(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	transactionID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), transaction.GetTransactionInput{
		Principal:     principal,
		TransactionID: transactionID,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Update handles PUT /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	transactionID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body")
		return
	}

	input := transaction.UpdateTransactionInput{
		Principal:     principal,
		TransactionID: transactionID,
		Amount:        req.Amount,
		Type:          req.Type,
		CategoryID:    req.CategoryID,
		Description:   req.Description,
		Notes:         req.Notes,
	}
	if req.Date != nil {
		date, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			badRequest(ctx, "Invalid date format, expected YYYY-MM-DD")
			return
		}
		input.Date = &date
	}
	if req.TagIDs != nil {
		input.TagIDs = *req.TagIDs
		input.ReplaceTags = true
	}

	if existing, err := c.getUseCase.Execute(ctx.Request.Context(), transaction.GetTransactionInput{
		Principal:     principal,
		TransactionID: transactionID,
	}); err == nil {
		middleware.PublishOldValue(ctx, dto.ToTransactionResponse(existing.Transaction))
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	transactionID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if existing, err := c.getUseCase.Execute(ctx.Request.Context(), transaction.GetTransactionInput{
		Principal:     principal,
		TransactionID: transactionID,
	}); err == nil {
		middleware.PublishOldValue(ctx, dto.ToTransactionResponse(existing.Transaction))
	}

	if _, err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		Principal:     principal,
		TransactionID: transactionID,
	}); err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// parseFilter reads the shared transaction filter query parameters.
func (c *TransactionController) parseFilter(ctx *gin.Context) adapter.TransactionFilter {
	filter := adapter.TransactionFilter{
		CategoryID: uintQuery(ctx, "category_id"),
		TagID:      uintQuery(ctx, "tag_id"),
		StartDate:  dateQuery(ctx, "start_date"),
		EndDate:    dateQuery(ctx, "end_date"),
		Search:     ctx.Query("search"),
	}
	if txnType := ctx.Query("type"); entity.ValidTransactionType(txnType) {
		t := entity.TransactionType(txnType)
		filter.Type = &t
	}
	return filter
}

// handleTransactionError maps transaction errors to HTTP responses.
func (c *TransactionController) handleTransactionError(ctx *gin.Context, err error) {
	if errors.Is(err, domainerror.ErrReadOnlyRole) {
		forbiddenWrite(ctx)
		return
	}

	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		ctx.JSON(c.statusForTransactionError(txnErr.Code), dto.ErrorResponse{
			Error: txnErr.Message,
			Code:  string(txnErr.Code),
		})
		return
	}

	internalError(ctx)
}

// statusForTransactionError maps transaction error codes to HTTP status codes.
func (c *TransactionController) statusForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidAmount,
		domainerror.ErrCodeInvalidTransactionType,
		domainerror.ErrCodeMissingTxnFields,
		domainerror.ErrCodeTxnCategoryNotFound:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
