// Package dependency provides dependency injection for the application.
package dependency

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/finflow/backend/config"
	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/application/usecase/auditlog"
	"github.com/finflow/backend/internal/application/usecase/auth"
	"github.com/finflow/backend/internal/application/usecase/category"
	"github.com/finflow/backend/internal/application/usecase/goal"
	"github.com/finflow/backend/internal/application/usecase/tag"
	"github.com/finflow/backend/internal/application/usecase/transaction"
	"github.com/finflow/backend/internal/application/usecase/user"
	"github.com/finflow/backend/internal/infra/server/router"
	"github.com/finflow/backend/internal/integration/adapters"
	"github.com/finflow/backend/internal/integration/entrypoint/controller"
	"github.com/finflow/backend/internal/integration/entrypoint/middleware"
	"github.com/finflow/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
// auditRepo and redisClient come from main so that the application can run
// degraded when MongoDB or Redis is unreachable.
func NewInjector(
	cfg *config.Config,
	db *gorm.DB,
	auditRepo adapter.AuditLogRepository,
	redisClient *redis.Client,
	logger *slog.Logger,
) *Injector {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	tagRepo := persistence.NewTagRepository(db)
	goalRepo := persistence.NewGoalRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry, tokenRepo)

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(userRepo, tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

	// Create user use cases
	createUserUseCase := user.NewCreateUserUseCase(userRepo, passwordService)
	listUsersUseCase := user.NewListUsersUseCase(userRepo)
	getUserUseCase := user.NewGetUserUseCase(userRepo)
	updateUserUseCase := user.NewUpdateUserUseCase(userRepo, passwordService)
	deleteUserUseCase := user.NewDeleteUserUseCase(userRepo, tokenService)
	getUserStatsUseCase := user.NewGetUserStatsUseCase(userRepo)
	setUserActiveUseCase := user.NewSetUserActiveUseCase(userRepo, tokenService)

	// Create category use cases
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	getCategoryCountsUseCase := category.NewGetCategoryCountsUseCase(categoryRepo)
	getCategoryUseCase := category.NewGetCategoryUseCase(categoryRepo)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo)
	listCategoryTransactionsUseCase := category.NewListCategoryTransactionsUseCase(categoryRepo, transactionRepo)

	// Create transaction use cases
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, categoryRepo, tagRepo)
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	getTransactionUseCase := transaction.NewGetTransactionUseCase(transactionRepo)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, categoryRepo, tagRepo)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)
	getSummaryUseCase := transaction.NewGetSummaryUseCase(transactionRepo)
	getCategoryStatsUseCase := transaction.NewGetCategoryStatsUseCase(transactionRepo)

	// Create tag use cases
	createTagUseCase := tag.NewCreateTagUseCase(tagRepo)
	listTagsUseCase := tag.NewListTagsUseCase(tagRepo)
	getPopularTagsUseCase := tag.NewGetPopularTagsUseCase(tagRepo)
	getTagUseCase := tag.NewGetTagUseCase(tagRepo)
	updateTagUseCase := tag.NewUpdateTagUseCase(tagRepo)
	deleteTagUseCase := tag.NewDeleteTagUseCase(tagRepo)
	getTagStatsUseCase := tag.NewGetTagStatsUseCase(tagRepo)
	listTagTransactionsUseCase := tag.NewListTagTransactionsUseCase(tagRepo, transactionRepo)

	// Create goal use cases
	createGoalUseCase := goal.NewCreateGoalUseCase(goalRepo, categoryRepo)
	listGoalsUseCase := goal.NewListGoalsUseCase(goalRepo)
	getOverviewUseCase := goal.NewGetOverviewUseCase(goalRepo)
	getGoalUseCase := goal.NewGetGoalUseCase(goalRepo)
	updateGoalUseCase := goal.NewUpdateGoalUseCase(goalRepo, categoryRepo)
	deleteGoalUseCase := goal.NewDeleteGoalUseCase(goalRepo)
	addProgressUseCase := goal.NewAddProgressUseCase(goalRepo)
	getProgressUseCase := goal.NewGetProgressUseCase(goalRepo)

	// Create audit log use cases
	recordEntryUseCase := auditlog.NewRecordEntryUseCase(auditRepo)
	listLogsUseCase := auditlog.NewListLogsUseCase(auditRepo)
	getLogUseCase := auditlog.NewGetLogUseCase(auditRepo)
	listEntityLogsUseCase := auditlog.NewListEntityLogsUseCase(auditRepo)
	deleteLogUseCase := auditlog.NewDeleteLogUseCase(auditRepo)

	// Create controllers
	healthController := controller.NewHealthController()

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
	)

	userController := controller.NewUserController(
		createUserUseCase,
		listUsersUseCase,
		getUserUseCase,
		updateUserUseCase,
		deleteUserUseCase,
		getUserStatsUseCase,
		setUserActiveUseCase,
	)

	categoryController := controller.NewCategoryController(
		createCategoryUseCase,
		listCategoriesUseCase,
		getCategoryCountsUseCase,
		getCategoryUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
		listCategoryTransactionsUseCase,
	)

	transactionController := controller.NewTransactionController(
		createTransactionUseCase,
		listTransactionsUseCase,
		getTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
		getSummaryUseCase,
		getCategoryStatsUseCase,
	)

	tagController := controller.NewTagController(
		createTagUseCase,
		listTagsUseCase,
		getPopularTagsUseCase,
		getTagUseCase,
		updateTagUseCase,
		deleteTagUseCase,
		getTagStatsUseCase,
		listTagTransactionsUseCase,
	)

	goalController := controller.NewGoalController(
		createGoalUseCase,
		listGoalsUseCase,
		getOverviewUseCase,
		getGoalUseCase,
		updateGoalUseCase,
		deleteGoalUseCase,
		addProgressUseCase,
		getProgressUseCase,
	)

	auditLogController := controller.NewAuditLogController(
		listLogsUseCase,
		getLogUseCase,
		listEntityLogsUseCase,
		deleteLogUseCase,
	)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(redisClient, 1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter(redisClient)
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService, userRepo)
	auditRecorder := middleware.NewAuditRecorder(recordEntryUseCase, logger)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		userController,
		categoryController,
		transactionController,
		tagController,
		goalController,
		auditLogController,
		loginRateLimiter,
		authMiddleware,
		auditRecorder,
	)

	return &Injector{
		Config: cfg,
		DB:     db,
		Router: r,
	}
}
