package usecase

import (
	"context"
	"fmt"

	"kennel-registry/internal/data/entity"
	"kennel-registry/internal/data/repository"
	"kennel-registry/internal/dto/response"

	"go.uber.org/zap"
)

type DashboardService interface {
	Counts(ctx context.Context) (*response.DashboardResponse, error)
}

type dashboardService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewDashboardService(repo *repository.Repository, log *zap.Logger) DashboardService {
	return &dashboardService{
		repo: repo,
		log:  log.With(zap.String("service", "dashboard")),
	}
}

func (s *dashboardService) Counts(ctx context.Context) (*response.DashboardResponse, error) {
	var (
		out      response.DashboardResponse
		err      error
		inactive = false
	)
	if out.Dogs, err = s.repo.Dog.CountAll(ctx, entity.DogFilter{}); err != nil {
		return nil, fmt.Errorf("count dogs: %w", err)
	}
	if out.Kennels, err = s.repo.Kennel.CountAll(ctx, ""); err != nil {
		return nil, fmt.Errorf("count kennels: %w", err)
	}
	if out.Litters, err = s.repo.Litter.CountAll(ctx, nil); err != nil {
		return nil, fmt.Errorf("count litters: %w", err)
	}
	if out.Members, err = s.repo.User.CountAll(ctx, entity.UserFilter{}); err != nil {
		return nil, fmt.Errorf("count members: %w", err)
	}
	if out.PendingMembers, err = s.repo.User.CountAll(ctx, entity.UserFilter{IsActive: &inactive}); err != nil {
		return nil, fmt.Errorf("count pending members: %w", err)
	}
	return &out, nil
}
