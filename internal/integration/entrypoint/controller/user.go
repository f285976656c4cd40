// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/application/usecase/user"
	"github.com/finflow/backend/internal/domain/entity"
	domainerror "github.com/finflow/backend/internal/domain/error"
	"github.com/finflow/backend/internal/integration/entrypoint/dto"
	"github.com/finflow/backend/internal/integration/entrypoint/middleware"
)

// UserController handles user directory endpoints.
type UserController struct {
	createUseCase    *user.CreateUserUseCase
	listUseCase      *user.ListUsersUseCase
	getUseCase       *user.GetUserUseCase
	updateUseCase    *user.UpdateUserUseCase
	deleteUseCase    *user.DeleteUserUseCase
	statsUseCase     *user.GetUserStatsUseCase
	setActiveUseCase *user.SetUserActiveUseCase
}

// NewUserController creates a new user controller instance.
func NewUserController(
	createUseCase *user.CreateUserUseCase,
	listUseCase *user.ListUsersUseCase,
	getUseCase *user.GetUserUseCase,
	updateUseCase *user.UpdateUserUseCase,
	deleteUseCase *user.DeleteUserUseCase,
	statsUseCase *user.GetUserStatsUseCase,
	setActiveUseCase *user.SetUserActiveUseCase,
) *UserController {
	return &UserController{
		createUseCase:    createUseCase,
		listUseCase:      listUseCase,
		getUseCase:       getUseCase,
		updateUseCase:    updateUseCase,
		deleteUseCase:    deleteUseCase,
		statsUseCase:     statsUseCase,
		setActiveUseCase: setActiveUseCase,
	}
}

// Create handles POST /users requests.
func (c *UserController) Create(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	var req dto.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body")
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), user.CreateUserInput{
		Principal:  principal,
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Role:       req.Role,
		DelegateOf: req.DelegateOf,
	})
	if err != nil {
		c.handleUserError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToUserResponse(output.User))
}

// List handles GET /users requests.
func (c *UserController) List(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	filter := adapter.UserFilter{Search: ctx.Query("search")}
	if role := ctx.Query("role"); role != "" && entity.ValidRole(role) {
		r := entity.Role(role)
		filter.Role = &r
	}
	if active := ctx.Query("active"); active != "" {
		isActive := active == "true"
		filter.IsActive = &isActive
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), user.ListUsersInput{
		Principal:  principal,
		Filter:     filter,
		Pagination: parsePagination(ctx),
	})
	if err != nil {
		c.handleUserError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserListResponse(output.Result))
}

// Get handles GET /users/:id requests. "me" resolves to the caller.
func (c *UserController) Get(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	userID, ok := parseUserIDParam(ctx, principal)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), user.GetUserInput{
		Principal: principal,
		UserID:    userID,
	})
	if err != nil {
		c.handleUserError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(output.User))
}

// Update handles PUT /users/:id requests.
func (c *UserController) Update(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	userID, ok := parseUserIDParam(ctx, principal)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body")
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), user.UpdateUserInput{
		Principal:  principal,
		UserID:     userID,
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Role:       req.Role,
		DelegateOf: req.DelegateOf,
		IsActive:   req.IsActive,
	})
	if err != nil {
		c.handleUserError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(output.User))
}

// Delete handles DELETE /users/:id requests.
func (c *UserController) Delete(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	userID, ok := parseUserIDParam(ctx, principal)
	if !ok {
		return
	}

	if existing, err := c.getUseCase.Execute(ctx.Request.Context(), user.GetUserInput{
		Principal: principal,
		UserID:    userID,
	}); err == nil {
		middleware.PublishOldValue(ctx, dto.ToUserResponse(existing.User))
	}

	if _, err := c.deleteUseCase.Execute(ctx.Request.Context(), user.DeleteUserInput{
		Principal: principal,
		UserID:    userID,
	}); err != nil {
		c.handleUserError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Stats handles GET /users/:id/stats requests.
func (c *UserController) Stats(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	userID, ok := parseUserIDParam(ctx, principal)
	if !ok {
		return
	}

	output, err := c.statsUseCase.Execute(ctx.Request.Context(), user.GetUserStatsInput{
		Principal: principal,
		UserID:    userID,
	})
	if err != nil {
		c.handleUserError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserStatsResponse(output.Stats))
}

// Activate handles POST /users/:id/activate requests.
func (c *UserController) Activate(ctx *gin.Context) {
	c.setActive(ctx, true)
}

// Deactivate handles POST /users/:id/deactivate requests.
func (c *UserController) Deactivate(ctx *gin.Context) {
	c.setActive(ctx, false)
}

func (c *UserController) setActive(ctx *gin.Context, active bool) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	userID, ok := parseUserIDParam(ctx, principal)
	if !ok {
		return
	}

	output, err := c.setActiveUseCase.Execute(ctx.Request.Context(), user.SetUserActiveInput{
		Principal: principal,
		UserID:    userID,
		Active:    active,
	})
	if err != nil {
		c.handleUserError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(output.User))
}

// handleUserError maps user errors to HTTP responses. Account-field
// validation reuses the auth error codes, so both families are handled.
func (c *UserController) handleUserError(ctx *gin.Context, err error) {
	var userErr *domainerror.UserError
	if errors.As(err, &userErr) {
		ctx.JSON(c.statusForUserError(userErr.Code), dto.ErrorResponse{
			Error: userErr.Message,
			Code:  string(userErr.Code),
		})
		return
	}

	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: authErr.Message,
			Code:  string(authErr.Code),
		})
		return
	}

	internalError(ctx)
}

// statusForUserError maps user error codes to HTTP status codes.
func (c *UserController) statusForUserError(code domainerror.UserErrorCode) int {
	switch code {
	case domainerror.ErrCodeUserNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeReadOnlyRole, domainerror.ErrCodeForbiddenWrite:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidRole,
		domainerror.ErrCodeDelegateNotFound,
		domainerror.ErrCodeDelegateViewer,
		domainerror.ErrCodeDelegateRequired,
		domainerror.ErrCodeUserHasDependents:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
