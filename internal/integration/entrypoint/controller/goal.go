// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/application/usecase/goal"
	"github.com/finflow/backend/internal/domain/entity"
	domainerror "github.com/finflow/backend/internal/domain/error"
	"github.com/finflow/backend/internal/integration/entrypoint/dto"
	"github.com/finflow/backend/internal/integration/entrypoint/middleware"
)

// GoalController handles savings goal endpoints.
type GoalController struct {
	createUseCase      *goal.CreateGoalUseCase
	listUseCase        *goal.ListGoalsUseCase
	overviewUseCase    *goal.GetOverviewUseCase
	getUseCase         *goal.GetGoalUseCase
	updateUseCase      *goal.UpdateGoalUseCase
	deleteUseCase      *goal.DeleteGoalUseCase
	addProgressUseCase *goal.AddProgressUseCase
	getProgressUseCase *goal.GetProgressUseCase
}

// NewGoalController creates a new goal controller instance.
func NewGoalController(
	createUseCase *goal.CreateGoalUseCase,
	listUseCase *goal.ListGoalsUseCase,
	overviewUseCase *goal.GetOverviewUseCase,
	getUseCase *goal.GetGoalUseCase,
	updateUseCase *goal.UpdateGoalUseCase,
	deleteUseCase *goal.DeleteGoalUseCase,
	addProgressUseCase *goal.AddProgressUseCase,
	getProgressUseCase *goal.GetProgressUseCase,
) *GoalController {
	return &GoalController{
		createUseCase:      createUseCase,
		listUseCase:        listUseCase,
		overviewUseCase:    overviewUseCase,
		getUseCase:         getUseCase,
		updateUseCase:      updateUseCase,
		deleteUseCase:      deleteUseCase,
		addProgressUseCase: addProgressUseCase,
		getProgressUseCase: getProgressUseCase,
	}
}

// Create handles POST /goals requests.
func (c *GoalController) Create(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	var req dto.CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body")
		return
	}

	input := goal.CreateGoalInput{
		Principal:    principal,
		TargetUserID: req.UserID,
		Name:         req.Name,
		Description:  req.Description,
		TargetAmount: req.TargetAmount,
		Priority:     req.Priority,
		CategoryID:   req.CategoryID,
	}
	if req.CurrentAmount != nil {
		input.CurrentAmount = *req.CurrentAmount
	} else {
		input.CurrentAmount = decimal.Zero
	}
	if req.TargetDate != nil {
		date, err := time.Parse(dateLayout, *req.TargetDate)
		if err != nil {
			badRequest(ctx, "Invalid target_date format, expected YYYY-MM-DD")
			return
		}
		input.TargetDate = &date
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToGoalResponse(output.Goal))
}

// List handles GET /goals requests. ?progress=true switches to the overview.
func (c *GoalController) List(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	if boolQuery(ctx, "progress") {
		output, err := c.overviewUseCase.Execute(ctx.Request.Context(), goal.GetOverviewInput{
			Principal:    principal,
			TargetUserID: uintQuery(ctx, "user_id"),
		})
		if err != nil {
			c.handleGoalError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.ToGoalOverviewResponse(output))
		return
	}

	filter := adapter.GoalFilter{
		CategoryID: uintQuery(ctx, "category_id"),
		Search:     ctx.Query("search"),
	}
	if completed := ctx.Query("completed"); completed != "" {
		isCompleted := completed == "true"
		filter.Completed = &isCompleted
	}
	if priority := ctx.Query("priority"); entity.ValidGoalPriority(priority) {
		p := entity.GoalPriority(priority)
		filter.Priority = &p
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), goal.ListGoalsInput{
		Principal:    principal,
		TargetUserID: uintQuery(ctx, "user_id"),
		Filter:       filter,
		Pagination:   parsePagination(ctx),
	})
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalListResponse(output.Result))
}

// Get handles GET /goals/:id requests.
func (c *GoalController) Get(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	goalID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), goal.GetGoalInput{
		Principal: principal,
		GoalID:    goalID,
	})
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(output.Goal))
}

// Update handles PUT /goals/:id requests.
func (c *GoalController) Update(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	goalID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body")
		return
	}

	input := goal.UpdateGoalInput{
		Principal:       principal,
		GoalID:          goalID,
		Name:            req.Name,
		Description:     req.Description,
		TargetAmount:    req.TargetAmount,
		CurrentAmount:   req.CurrentAmount,
		ClearTargetDate: req.ClearTargetDate,
		Priority:        req.Priority,
		CategoryID:      req.CategoryID,
		ClearCategory:   req.ClearCategory,
	}
	if req.TargetDate != nil {
		date, err := time.Parse(dateLayout, *req.TargetDate)
		if err != nil {
			badRequest(ctx, "Invalid target_date format, expected YYYY-MM-DD")
			return
		}
		input.TargetDate = &date
	}

	if existing, err := c.getUseCase.Execute(ctx.Request.Context(), goal.GetGoalInput{
		Principal: principal,
		GoalID:    goalID,
	}); err == nil {
		middleware.PublishOldValue(ctx, dto.ToGoalResponse(existing.Goal))
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(output.Goal))
}

// Delete handles DELETE /goals/:id requests.
func (c *GoalController) Delete(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	goalID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if existing, err := c.getUseCase.Execute(ctx.Request.Context(), goal.GetGoalInput{
		Principal: principal,
		GoalID:    goalID,
	}); err == nil {
		middleware.PublishOldValue(ctx, dto.ToGoalResponse(existing.Goal))
	}

	if _, err := c.deleteUseCase.Execute(ctx.Request.Context(), goal.DeleteGoalInput{
		Principal: principal,
		GoalID:    goalID,
	}); err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// AddProgress handles POST /goals/:id/progress requests.
func (c *GoalController) AddProgress(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	goalID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AddProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body")
		return
	}

	output, err := c.addProgressUseCase.Execute(ctx.Request.Context(), goal.AddProgressInput{
		Principal: principal,
		GoalID:    goalID,
		Amount:    req.Amount,
	})
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ProgressMessageResponse{
		Goal:    dto.ToGoalResponse(output.Goal),
		Message: output.Message,
	})
}

// GetProgress handles GET /goals/:id/progress requests.
func (c *GoalController) GetProgress(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	goalID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	output, err := c.getProgressUseCase.Execute(ctx.Request.Context(), goal.GetProgressInput{
		Principal: principal,
		GoalID:    goalID,
	})
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalProgressResponse(output))
}

// handleGoalError maps goal errors to HTTP responses.
func (c *GoalController) handleGoalError(ctx *gin.Context, err error) {
	if errors.Is(err, domainerror.ErrReadOnlyRole) {
		forbiddenWrite(ctx)
		return
	}

	var goalErr *domainerror.GoalError
	if errors.As(err, &goalErr) {
		ctx.JSON(c.statusForGoalError(goalErr.Code), dto.ErrorResponse{
			Error: goalErr.Message,
			Code:  string(goalErr.Code),
		})
		return
	}

	internalError(ctx)
}

// statusForGoalError maps goal error codes to HTTP status codes.
func (c *GoalController) statusForGoalError(code domainerror.GoalErrorCode) int {
	switch code {
	case domainerror.ErrCodeGoalNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidTargetAmount,
		domainerror.ErrCodeInvalidProgressAmount,
		domainerror.ErrCodeGoalAlreadyCompleted,
		domainerror.ErrCodeMissingGoalFields,
		domainerror.ErrCodeInvalidTargetDate,
		domainerror.ErrCodeInvalidCurrentAmount,
		domainerror.ErrCodeGoalNameTaken,
		domainerror.ErrCodeGoalCategoryNotFound:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
