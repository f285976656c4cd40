// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/finflow/backend/internal/integration/entrypoint/controller"
	"github.com/finflow/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	authController        *controller.AuthController
	userController        *controller.UserController
	categoryController    *controller.CategoryController
	transactionController *controller.TransactionController
	tagController         *controller.TagController
	goalController        *controller.GoalController
	auditLogController    *controller.AuditLogController
	loginRateLimiter      *middleware.RateLimiter
	authMiddleware        *middleware.AuthMiddleware
	auditRecorder         *middleware.AuditRecorder
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	userController *controller.UserController,
	categoryController *controller.CategoryController,
	transactionController *controller.TransactionController,
	tagController *controller.TagController,
	goalController *controller.GoalController,
	auditLogController *controller.AuditLogController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
	auditRecorder *middleware.AuditRecorder,
) *Router {
	return &Router{
		healthController:      healthController,
		authController:        authController,
		userController:        userController,
		categoryController:    categoryController,
		transactionController: transactionController,
		tagController:         tagController,
		goalController:        goalController,
		auditLogController:    auditLogController,
		loginRateLimiter:      loginRateLimiter,
		authMiddleware:        authMiddleware,
		auditRecorder:         auditRecorder,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAuthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAuthRoutes configures the public authentication endpoints.
func (r *Router) setupAuthRoutes() {
	if r.authController == nil {
		return
	}

	auth := r.engine.Group("/auth")
	if r.auditRecorder != nil {
		auth.Use(r.auditRecorder.Middleware())
	}
	{
		auth.POST("/register", r.authController.Register)
		if r.loginRateLimiter != nil {
			auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
		} else {
			auth.POST("/login", r.authController.Login)
		}
		auth.POST("/refresh", r.authController.Refresh)
		auth.POST("/logout", r.authController.Logout)
	}
}

// setupAPIRoutes configures the authenticated API routes.
func (r *Router) setupAPIRoutes() {
	if r.authMiddleware == nil {
		return
	}

	authed := r.engine.Group("")
	authed.Use(r.authMiddleware.Authenticate())
	if r.auditRecorder != nil {
		authed.Use(r.auditRecorder.Middleware())
	}

	if r.userController != nil {
		users := authed.Group("/users")
		{
			users.POST("", r.userController.Create)
			users.GET("", r.userController.List)
			users.GET("/:id", r.userController.Get)
			users.PUT("/:id", r.userController.Update)
			users.DELETE("/:id", r.userController.Delete)
			users.GET("/:id/stats", r.userController.Stats)
			users.POST("/:id/activate", r.userController.Activate)
			users.POST("/:id/deactivate", r.userController.Deactivate)
		}
	}

	if r.categoryController != nil {
		categories := authed.Group("/categories")
		{
			categories.POST("", r.categoryController.Create)
			categories.GET("", r.categoryController.List)
			categories.GET("/:id", r.categoryController.Get)
			categories.PUT("/:id", r.categoryController.Update)
			categories.DELETE("/:id", r.categoryController.Delete)
			categories.GET("/:id/transactions", r.categoryController.Transactions)
		}
	}

	if r.transactionController != nil {
		transactions := authed.Group("/transactions")
		{
			transactions.POST("", r.transactionController.Create)
			transactions.GET("", r.transactionController.List)
			transactions.GET("/:id", r.transactionController.Get)
			transactions.PUT("/:id", r.transactionController.Update)
			transactions.DELETE("/:id", r.transactionController.Delete)
		}
	}

	if r.tagController != nil {
		tags := authed.Group("/tags")
		{
			tags.POST("", r.tagController.Create)
			tags.GET("", r.tagController.List)
			tags.GET("/:id", r.tagController.Get)
			tags.PUT("/:id", r.tagController.Update)
			tags.DELETE("/:id", r.tagController.Delete)
			tags.GET("/:id/stats", r.tagController.Stats)
			tags.GET("/:id/transactions", r.tagController.Transactions)
		}
	}

	if r.goalController != nil {
		goals := authed.Group("/goals")
		{
			goals.POST("", r.goalController.Create)
			goals.GET("", r.goalController.List)
			goals.GET("/:id", r.goalController.Get)
			goals.PUT("/:id", r.goalController.Update)
			goals.DELETE("/:id", r.goalController.Delete)
			goals.POST("/:id/progress", r.goalController.AddProgress)
			goals.GET("/:id/progress", r.goalController.GetProgress)
		}
	}

	if r.auditLogController != nil {
		logs := authed.Group("/logs")
		{
			logs.GET("", r.auditLogController.List)
			logs.GET("/:id", r.auditLogController.Get)
			logs.GET("/entity/:type/:id", r.auditLogController.ListByEntity)
			logs.DELETE("/:id", r.auditLogController.Delete)
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
