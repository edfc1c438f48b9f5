package main

import (
	"log"

	"github.com/almhq/license-manager/internal/config"
	"github.com/almhq/license-manager/internal/database"
	"github.com/almhq/license-manager/internal/handlers"
	"github.com/almhq/license-manager/internal/logger"
	"github.com/almhq/license-manager/internal/services"
	"github.com/almhq/license-manager/internal/storage"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional outside local dev; real deployments set the
	// environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	zlog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zlog.Sync()

	db, err := database.Connect(cfg.Database, zlog)
	if err != nil {
		log.Fatal("failed to connect to database: ", err)
	}

	blobStore, err := storage.NewDiskStore(cfg.Uploads.Dir)
	if err != nil {
		log.Fatal("failed to initialize upload directory: ", err)
	}

	applicationService := services.NewApplicationService(db, zlog)
	workflowService := services.NewWorkflowService(db, zlog)
	documentService := services.NewDocumentService(db, blobStore, cfg.Uploads.MaxFileSizeBytes, zlog)
	checklistService := services.NewChecklistService(db, zlog)
	statsService := services.NewStatsService(db)

	router := handlers.NewRouter(handlers.RouterDeps{
		DB:           db,
		Log:          zlog,
		Applications: handlers.NewApplicationHandler(applicationService, workflowService),
		Documents:    handlers.NewDocumentHandler(documentService),
		Checklists:   handlers.NewChecklistHandler(checklistService),
		Stats:        handlers.NewStatsHandler(statsService),
	})

	zlog.Info("server starting", zap.String("port", cfg.HTTPPort))
	if err := router.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatal("server failed to start: ", err)
	}
}
