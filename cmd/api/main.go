package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stitchline/tailorflow-api/internal/application/service"
	"github.com/stitchline/tailorflow-api/internal/config"
	"github.com/stitchline/tailorflow-api/internal/infrastructure/database"
	"github.com/stitchline/tailorflow-api/internal/infrastructure/notification"
	"github.com/stitchline/tailorflow-api/internal/infrastructure/repository"
	"github.com/stitchline/tailorflow-api/internal/presentation/http/handler"
	"github.com/stitchline/tailorflow-api/internal/presentation/http/routes"
	"github.com/stitchline/tailorflow-api/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db, logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	txManager := repository.NewTxManager(db)
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderItemRepo := repository.NewOrderItemRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize notification dispatcher
	dispatcher := notification.NewDispatcher(notificationRepo, logger)

	// Purge expired idempotency keys in the background
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := idempotencyRepo.DeleteExpired(context.Background()); err != nil {
				logger.Warn("idempotency key cleanup failed", zap.Error(err))
			}
		}
	}()

	// Initialize services
	sequenceService := service.NewSequenceService(sequenceRepo)
	authService := service.NewAuthService(userRepo, jwtManager)
	customerService := service.NewCustomerService(customerRepo)
	inventoryService := service.NewInventoryService(txManager, inventoryRepo)
	orderService := service.NewOrderService(txManager, orderRepo, orderItemRepo, inventoryRepo, customerRepo, userRepo, taskRepo, sequenceService, dispatcher, logger)
	paymentService := service.NewPaymentService(txManager, paymentRepo, orderRepo, customerRepo, sequenceService, dispatcher, logger)
	taskService := service.NewTaskService(taskRepo)
	notificationService := service.NewNotificationService(notificationRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Customer:     handler.NewCustomerHandler(customerService),
		Inventory:    handler.NewInventoryHandler(inventoryService),
		Order:        handler.NewOrderHandler(orderService),
		Payment:      handler.NewPaymentHandler(paymentService),
		Task:         handler.NewTaskHandler(taskService),
		Notification: handler.NewNotificationHandler(notificationService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		Log:             logger,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	logger.Info("starting server",
		zap.String("service", cfg.App.Name),
		zap.String("port", port),
		zap.String("env", cfg.App.Env),
	)

	if err := router.Run(":" + port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.App.Env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
