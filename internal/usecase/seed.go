package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kennel-registry/internal/data/entity"
	"kennel-registry/internal/data/repository"
	"kennel-registry/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrSeedNotConfigured = errors.New("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD must be set")

// SeedSuperAdmin creates the SUPER_ADMIN account, or resets its password,
// name and activation when it already exists.
func SeedSuperAdmin(ctx context.Context, repo *repository.Repository, seed utils.SeedConfig, log *zap.Logger) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(seed.AdminEmail))
	if email == "" || seed.AdminPassword == "" {
		return nil, ErrSeedNotConfigured
	}
	if len(seed.AdminPassword) < 8 {
		return nil, utils.NewFieldError("SEED_ADMIN_PASSWORD", "Must be at least 8 characters")
	}

	hashed, err := utils.HashPassword(seed.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	name := strings.TrimSpace(seed.AdminName)
	if name == "" {
		name = "Registry Administrator"
	}

	user, err := repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find admin: %w", err)
	}

	now := time.Now()
	if user == nil {
		user = &entity.User{
			Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
			Email:        email,
			Name:         name,
			PasswordHash: hashed,
			Role:         entity.RoleSuperAdmin,
			IsActive:     true,
		}
		if err := repo.User.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("create admin: %w", err)
		}
		log.Info("Super admin created", zap.String("user_id", user.ID.String()), zap.String("email", email))
		return user, nil
	}

	user.Name = name
	user.PasswordHash = hashed
	user.Role = entity.RoleSuperAdmin
	user.IsActive = true
	user.UpdatedAt = now
	if err := repo.User.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("reset admin: %w", err)
	}
	if err := repo.Session.RevokeAllUserSessions(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("revoke admin sessions: %w", err)
	}
	log.Info("Super admin reset", zap.String("user_id", user.ID.String()), zap.String("email", email))
	return user, nil
}
