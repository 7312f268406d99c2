package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"quiz-import/internal/adapter"
	"quiz-import/internal/adapter/source"
	"quiz-import/internal/cache"
	"quiz-import/internal/config"
	"quiz-import/internal/database"
	"quiz-import/internal/domain"
	"quiz-import/internal/logger"
	"quiz-import/internal/repository"
	"quiz-import/internal/service"

	"go.uber.org/zap"
)

// One-shot import runner. Reads a workbook file or a linked Google Sheet
// and reconciles storage against it, then exits.
func main() {
	filePath := flag.String("file", "", "path to an .xlsx workbook")
	sheetURL := flag.String("url", "", "URL of a Google Sheet")
	flag.Parse()

	if (*filePath == "") == (*sheetURL == "") {
		fmt.Fprintln(os.Stderr, "exactly one of -file or -url is required")
		flag.Usage()
		os.Exit(2)
	}

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

	var historyCache domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Warn("Redis unavailable; import history will not be recorded", zap.Error(err))
		} else {
			historyCache = adapter.NewRedisCacheAdapter(redisClient)
		}
	}

	importService := service.NewImportService(
		repository.NewCategoryDatabaseAdapter(db),
		repository.NewProductTypeDatabaseAdapter(db),
		repository.NewQuestionDatabaseAdapter(db),
		repository.NewTransactionManagerAdapter(db),
		historyCache,
		cfg,
		appLogger,
	)

	var src domain.SheetSource
	if *filePath != "" {
		file, err := os.Open(*filePath)
		if err != nil {
			appLogger.Fatal("Failed to open workbook", zap.String("file", *filePath), zap.Error(err))
		}
		defer file.Close()
		src = source.NewExcelSource(file)
	} else {
		src = source.NewGoogleSheetSource(*sheetURL, cfg.Sheets)
	}

	ctx := context.Background()

	data, err := src.Fetch(ctx)
	if err != nil {
		appLogger.Fatal("Failed to read source", zap.Error(err))
	}

	summary, err := importService.ProcessData(ctx, data)
	if err != nil {
		appLogger.Fatal("Import failed", zap.Error(err))
	}

	appLogger.Info("Import finished",
		zap.Int("created", summary.Created),
		zap.Int("updated", summary.Updated),
		zap.Int("deleted", summary.Deleted),
		zap.Int("skipped", summary.Skipped),
		zap.Int("warnings", len(summary.Warnings)),
		zap.Int("errors", len(summary.Errors)),
		zap.String("log_file", summary.LogFile),
	)
}
