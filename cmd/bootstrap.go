package cmd

import (
	"context"
	"fmt"
	"log"

	"kennel-registry/internal/data/memory"
	"kennel-registry/internal/data/repository"
	"kennel-registry/pkg/database"
	"kennel-registry/pkg/utils"

	"go.uber.org/zap"
)

// Setup loads config and builds the logger shared by every command.
func Setup() (*utils.Config, *zap.Logger) {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	return config, logger
}

// OpenRepository connects the configured store. For postgres it applies
// pending migrations when DB_MIGRATE is set. The returned func releases it.
func OpenRepository(ctx context.Context, config *utils.Config, logger *zap.Logger) (*repository.Repository, func(), error) {
	switch config.Database.Driver {
	case "memory":
		logger.Warn("Using in-memory store, data is lost on exit")
		return memory.NewRepository(), func() {}, nil

	case "postgres", "":
		db, err := database.InitDB(ctx, config.Database, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("connect database: %w", err)
		}

		if config.Database.Migrate {
			if err := database.Migrate(ctx, db, logger); err != nil {
				db.Close()
				return nil, nil, fmt.Errorf("migrate database: %w", err)
			}
		}
		return repository.NewRepository(db, logger), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown database driver %q", config.Database.Driver)
	}
}
