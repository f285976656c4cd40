// Package main is the entry point for the FinFlow API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/finflow/backend/config"
	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
	"github.com/finflow/backend/internal/infra/db"
	"github.com/finflow/backend/internal/infra/dependency"
	"github.com/finflow/backend/internal/integration/adapters"
	"github.com/finflow/backend/internal/integration/persistence"
	"github.com/finflow/backend/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting FinFlow API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Initialize database connection
	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	// Run database migrations
	if err := database.AutoMigrate(
		&model.UserModel{},
		&model.RefreshTokenModel{},
		&model.CategoryModel{},
		&model.TransactionModel{},
		&model.TagModel{},
		&model.GoalModel{},
	); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	// MongoDB holds the audit trail; the API runs degraded without it
	var auditRepo adapter.AuditLogRepository
	mongoDatabase, err := db.NewMongoConnection(&cfg.Mongo)
	if err != nil {
		slog.Warn("MongoDB connection failed, audit trail disabled", "error", err)
		auditRepo = persistence.NewUnavailableAuditLogRepository()
	} else {
		if err := persistence.EnsureAuditLogIndexes(context.Background(), mongoDatabase.Database()); err != nil {
			slog.Warn("Failed to ensure audit log indexes", "error", err)
		}
		auditRepo = persistence.NewAuditLogRepository(mongoDatabase.Database())
		defer func() {
			if err := mongoDatabase.Close(); err != nil {
				slog.Error("Failed to close MongoDB connection", "error", err)
			}
		}()
	}

	// Redis backs login throttling; without it logins are not throttled
	var redisClient *redis.Client
	redisClient, err = db.NewRedisConnection(&cfg.Redis)
	if err != nil {
		slog.Warn("Redis connection failed, login throttling disabled", "error", err)
		redisClient = nil
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				slog.Error("Failed to close Redis connection", "error", err)
			}
		}()
	}

	// Seed the bootstrap admin account when none exists
	if err := seedAdmin(context.Background(), database, &cfg.Admin); err != nil {
		slog.Error("Failed to seed admin account", "error", err)
		os.Exit(1)
	}

	// Wire dependencies and setup router
	injector := dependency.NewInjector(cfg, database.DB(), auditRepo, redisClient, logger)
	engine := injector.Router.Setup(cfg.Server.Environment)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}

// seedAdmin creates the configured admin account if no admin exists yet.
// Registration only produces regular accounts, so a fresh install needs one.
func seedAdmin(ctx context.Context, database *db.Database, cfg *config.AdminConfig) error {
	userRepo := persistence.NewUserRepository(database.DB())

	exists, err := userRepo.AdminExists(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for admin account: %w", err)
	}
	if exists {
		return nil
	}
	if cfg.Password == "" {
		slog.Warn("No admin account exists and ADMIN_PASSWORD is not set, skipping admin seed")
		return nil
	}

	passwordService := adapters.NewPasswordService()
	hash, err := passwordService.HashPassword(cfg.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := entity.NewUser(cfg.Name, cfg.Email, hash, entity.RoleAdmin)
	if err := userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	slog.Info("Seeded admin account", "email", cfg.Email)
	return nil
}
