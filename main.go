package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kennel-registry/cmd"
	"kennel-registry/internal/usecase"
	"kennel-registry/internal/wire"
	"kennel-registry/pkg/blob"

	"go.uber.org/zap"
)

const sessionCleanupInterval = time.Hour

// @title Kennel Registry API
// @version 1.0
// @description Breed association pedigree registry.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	config, logger := cmd.Setup()
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := cmd.OpenRepository(ctx, config, logger)
	if err != nil {
		logger.Fatal("Failed to open repository", zap.Error(err))
	}
	defer closeRepo()

	if config.Database.Driver == "memory" {
		if _, err := usecase.SeedSuperAdmin(ctx, repo, config.Seed, logger); err != nil && !errors.Is(err, usecase.ErrSeedNotConfigured) {
			logger.Fatal("Failed to seed super admin", zap.Error(err))
		}
	}

	store, err := blob.Open(ctx, config.Blob)
	if err != nil {
		logger.Fatal("Failed to open blob store", zap.Error(err))
	}
	logger.Info("Blob store ready", zap.String("driver", string(store.Driver())))

	app := wire.Wiring(repo, store, config, logger)

	go cleanSessions(ctx, app.Service.Auth, logger)

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		closeRepo()
		os.Exit(1)
	}
}

// cleanSessions prunes expired and revoked sessions until ctx ends.
func cleanSessions(ctx context.Context, auth usecase.AuthService, logger *zap.Logger) {
	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := auth.CleanExpiredSessions(ctx); err != nil {
				logger.Warn("Session cleanup failed", zap.Error(err))
			}
		}
	}
}
