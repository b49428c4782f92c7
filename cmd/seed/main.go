// Command seed creates or resets the SUPER_ADMIN account from the
// SEED_ADMIN_* settings, applying migrations first.
package main

import (
	"context"
	"time"

	"kennel-registry/cmd"
	"kennel-registry/internal/usecase"

	"go.uber.org/zap"
)

func main() {
	config, logger := cmd.Setup()
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	repo, closeRepo, err := cmd.OpenRepository(ctx, config, logger)
	if err != nil {
		logger.Fatal("Failed to open repository", zap.Error(err))
	}
	defer closeRepo()

	user, err := usecase.SeedSuperAdmin(ctx, repo, config.Seed, logger)
	if err != nil {
		logger.Fatal("Failed to seed super admin", zap.Error(err))
	}

	logger.Info("Seed complete", zap.String("email", user.Email))
}
