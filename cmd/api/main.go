package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"quiz-import/internal/adapter"
	"quiz-import/internal/cache"
	"quiz-import/internal/config"
	"quiz-import/internal/database"
	"quiz-import/internal/domain"
	"quiz-import/internal/handler"
	"quiz-import/internal/logger"
	"quiz-import/internal/middleware"
	"quiz-import/internal/repository"
	"quiz-import/internal/service"
	"quiz-import/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	categoryRepository := repository.NewCategoryDatabaseAdapter(db)
	productTypeRepository := repository.NewProductTypeDatabaseAdapter(db)
	questionRepository := repository.NewQuestionDatabaseAdapter(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Import history is optional; without Redis the last-summary endpoint
	// just reports not found.
	var historyCache domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		historyCache = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("Import history cache initialized")
	} else {
		appLogger.Warn("Redis address not configured; import history is disabled")
	}

	importService := service.NewImportService(
		categoryRepository,
		productTypeRepository,
		questionRepository,
		txManager,
		historyCache,
		cfg,
		appLogger,
	)

	importHandler := handler.NewImportHandler(importService, validation.NewValidator(), cfg.Sheets)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	// Import routes (all protected)
	importGroup := app.Group("/api/import", middleware.Protected(cfg.Auth.JWTSecret))
	importGroup.Post("/upload", importHandler.UploadWorkbook)
	importGroup.Post("/sheet", importHandler.ImportFromSheet)
	importGroup.Get("/last", importHandler.LastSummary)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
