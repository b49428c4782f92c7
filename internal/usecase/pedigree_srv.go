package usecase

import (
	"context"
	"fmt"
	"time"

	"kennel-registry/internal/data/entity"
	"kennel-registry/internal/data/repository"
	"kennel-registry/internal/dto/response"
	"kennel-registry/internal/pedigree"
	"kennel-registry/pkg/utils"

	"go.uber.org/zap"
)

type PedigreeService interface {
	// Tree returns the dog and its ancestor tree for page rendering.
	Tree(ctx context.Context, id string) (*entity.Dog, *pedigree.Node, error)
	Pedigree(ctx context.Context, id string) (*response.PedigreeResponse, error)
	Offspring(ctx context.Context, id string) ([]response.DogSummary, error)
	Siblings(ctx context.Context, id string) ([]response.DogSummary, error)
	Inbreeding(ctx context.Context, id string) (*response.InbreedingResponse, error)
	SaveInbreeding(ctx context.Context, id string) (*response.InbreedingResponse, error)
}

type pedigreeService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewPedigreeService(repo *repository.Repository, config *utils.Config, log *zap.Logger) PedigreeService {
	return &pedigreeService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "pedigree")),
	}
}

func (s *pedigreeService) Tree(ctx context.Context, id string) (*entity.Dog, *pedigree.Node, error) {
	dog, err := findDog(ctx, s.repo, id)
	if err != nil {
		return nil, nil, err
	}
	tree, err := pedigree.Build(ctx, s.repo.Dog, dog, pedigree.Generations)
	if err != nil {
		return nil, nil, fmt.Errorf("build pedigree: %w", err)
	}
	return dog, tree, nil
}

func (s *pedigreeService) Pedigree(ctx context.Context, id string) (*response.PedigreeResponse, error) {
	_, tree, err := s.Tree(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := response.PedigreeToResponse(tree, pedigree.Generations)
	return &resp, nil
}

func (s *pedigreeService) Offspring(ctx context.Context, id string) ([]response.DogSummary, error) {
	dog, err := findDog(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	limit := s.config.Registry.OffspringLimit
	if limit <= 0 {
		limit = 50
	}
	dogs, err := s.repo.Dog.FindOffspring(ctx, dog.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("list offspring: %w", err)
	}
	return response.DogsToSummaries(dogs), nil
}

func (s *pedigreeService) Siblings(ctx context.Context, id string) ([]response.DogSummary, error) {
	dog, err := findDog(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	if dog.LitterID == nil {
		return []response.DogSummary{}, nil
	}
	litter, err := s.repo.Dog.FindByLitter(ctx, *dog.LitterID)
	if err != nil {
		return nil, fmt.Errorf("list siblings: %w", err)
	}
	siblings := make([]*entity.Dog, 0, len(litter))
	for _, d := range litter {
		if d.ID != dog.ID {
			siblings = append(siblings, d)
		}
	}
	return response.DogsToSummaries(siblings), nil
}

func (s *pedigreeService) compute(ctx context.Context, dog *entity.Dog) (*pedigree.Inbreeding, error) {
	res, err := pedigree.DogCoefficient(ctx, s.repo.Dog, dog, s.config.Registry.COIGenerations)
	if err != nil {
		return nil, fmt.Errorf("compute inbreeding: %w", err)
	}
	return res, nil
}

func (s *pedigreeService) Inbreeding(ctx context.Context, id string) (*response.InbreedingResponse, error) {
	dog, err := findDog(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	res, err := s.compute(ctx, dog)
	if err != nil {
		return nil, err
	}
	resp := response.InbreedingToResponse(dog, res)
	return &resp, nil
}

// SaveInbreeding stores the computed coefficient in the dog's manual field.
func (s *pedigreeService) SaveInbreeding(ctx context.Context, id string) (*response.InbreedingResponse, error) {
	dog, err := findDog(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	res, err := s.compute(ctx, dog)
	if err != nil {
		return nil, err
	}

	coi := res.Coefficient
	dog.InbreedingCoefficient = &coi
	dog.UpdatedAt = time.Now()
	if err := s.repo.Dog.Update(ctx, dog); err != nil {
		return nil, fmt.Errorf("save inbreeding: %w", err)
	}

	s.log.Info("Inbreeding coefficient saved",
		zap.String("dog_id", dog.ID.String()),
		zap.Float64("coefficient", coi))
	resp := response.InbreedingToResponse(dog, res)
	return &resp, nil
}
