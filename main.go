// main.go
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"filmorate/cmd"
	"filmorate/internal/data/memory"
	"filmorate/internal/data/repository"
	"filmorate/internal/wire"
	"filmorate/pkg/database"
	"filmorate/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("storage", config.App.Storage),
		zap.String("friendship_policy", config.Domain.FriendshipPolicy),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var repos *repository.Repository
	switch config.App.Storage {
	case utils.StorageMemory:
		repos = memory.NewStore(logger).Repository()
		logger.Info("Using in-memory storage")

	case utils.StoragePostgres:
		db, err := database.InitDB(config.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		logger.Info("Database connected successfully")

		if config.Database.AutoSchema {
			if err := database.EnsureSchema(ctx, db); err != nil {
				logger.Fatal("Failed to apply schema", zap.Error(err))
			}
			logger.Info("Database schema ensured")
		}

		repos = repository.NewRepository(db, logger)

	default:
		logger.Fatal("Unknown storage backend", zap.String("storage", config.App.Storage))
	}

	// Wire all dependencies
	app, err := wire.Wiring(repos, config, logger)
	if err != nil {
		logger.Fatal("Failed to wire application", zap.Error(err))
	}

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, config.App.ShutdownTimeout, logger); err != nil {
		logger.Error("Server error", zap.Error(err))
	}
}
