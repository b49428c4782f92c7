package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kennel-registry/internal/data/entity"
	"kennel-registry/internal/data/repository"
	"kennel-registry/internal/dto/request"
	"kennel-registry/internal/dto/response"
	"kennel-registry/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// kennelDogLimit bounds the dog list embedded in a kennel detail.
const kennelDogLimit = 500

type KennelService interface {
	List(ctx context.Context, page request.PaginatedRequest, search string) (*response.PaginatedResponse[response.KennelResponse], error)
	Get(ctx context.Context, id string) (*response.KennelDetailResponse, error)
	Create(ctx context.Context, req *request.KennelRequest) (*response.KennelResponse, error)
	Update(ctx context.Context, id string, req *request.KennelRequest) (*response.KennelResponse, error)
	Delete(ctx context.Context, id string) error
}

type kennelService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewKennelService(repo *repository.Repository, log *zap.Logger) KennelService {
	return &kennelService{
		repo: repo,
		log:  log.With(zap.String("service", "kennel")),
	}
}

func (s *kennelService) List(ctx context.Context, page request.PaginatedRequest, search string) (*response.PaginatedResponse[response.KennelResponse], error) {
	kennels, err := s.repo.Kennel.FindAll(ctx, page.Limit(), page.Offset(), search)
	if err != nil {
		return nil, fmt.Errorf("list kennels: %w", err)
	}
	total, err := s.repo.Kennel.CountAll(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("count kennels: %w", err)
	}

	data := make([]response.KennelResponse, 0, len(kennels))
	for _, k := range kennels {
		data = append(data, response.KennelToResponse(k))
	}
	return response.NewPaginatedResponse(data, page.Page, page.Limit(), total), nil
}

func (s *kennelService) find(ctx context.Context, rawID string) (*entity.Kennel, error) {
	id, err := parseID("id", rawID)
	if err != nil {
		return nil, err
	}
	kennel, err := s.repo.Kennel.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find kennel: %w", err)
	}
	if kennel == nil {
		return nil, ErrKennelNotFound
	}
	return kennel, nil
}

func (s *kennelService) Get(ctx context.Context, id string) (*response.KennelDetailResponse, error) {
	kennel, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	dogs, err := s.repo.Dog.FindAll(ctx, kennelDogLimit, 0, entity.DogFilter{KennelID: &kennel.ID})
	if err != nil {
		return nil, fmt.Errorf("list kennel dogs: %w", err)
	}

	return &response.KennelDetailResponse{
		KennelResponse: response.KennelToResponse(kennel),
		Dogs:           response.DogsToSummaries(dogs),
	}, nil
}

func (s *kennelService) apply(ctx context.Context, kennel *entity.Kennel, req *request.KennelRequest) error {
	req.Normalize()
	if errs := utils.ValidateStruct(req); errs != nil {
		return errs
	}

	name := strings.TrimSpace(req.Name)
	existing, err := s.repo.Kennel.FindByName(ctx, name)
	if err != nil {
		return fmt.Errorf("check kennel name: %w", err)
	}
	if existing != nil && existing.ID != kennel.ID {
		return ErrKennelNameTaken
	}

	kennel.Name = name
	kennel.Prefix = clean(req.Prefix)
	kennel.OwnerName = clean(req.OwnerName)
	kennel.ContactEmail = clean(req.ContactEmail)
	kennel.Phone = clean(req.Phone)
	kennel.Website = clean(req.Website)
	kennel.City = clean(req.City)
	kennel.Country = clean(req.Country)
	kennel.Description = clean(req.Description)
	kennel.IsActive = true
	if req.IsActive != nil {
		kennel.IsActive = *req.IsActive
	}
	return nil
}

func (s *kennelService) Create(ctx context.Context, req *request.KennelRequest) (*response.KennelResponse, error) {
	now := time.Now()
	kennel := &entity.Kennel{
		Base: entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
	}
	if err := s.apply(ctx, kennel, req); err != nil {
		return nil, err
	}

	if err := s.repo.Kennel.Create(ctx, kennel); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrKennelNameTaken
		}
		return nil, fmt.Errorf("create kennel: %w", err)
	}

	s.log.Info("Kennel created", zap.String("kennel_id", kennel.ID.String()))
	resp := response.KennelToResponse(kennel)
	return &resp, nil
}

func (s *kennelService) Update(ctx context.Context, id string, req *request.KennelRequest) (*response.KennelResponse, error) {
	kennel, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, kennel, req); err != nil {
		return nil, err
	}
	kennel.UpdatedAt = time.Now()

	if err := s.repo.Kennel.Update(ctx, kennel); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrKennelNameTaken
		}
		return nil, fmt.Errorf("update kennel: %w", err)
	}

	resp := response.KennelToResponse(kennel)
	return &resp, nil
}

// Delete removes the kennel. Its dogs and litters stay, unassigned.
func (s *kennelService) Delete(ctx context.Context, id string) error {
	kennel, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Kennel.Delete(ctx, kennel.ID); err != nil {
		return fmt.Errorf("delete kennel: %w", err)
	}
	s.log.Info("Kennel deleted", zap.String("kennel_id", kennel.ID.String()))
	return nil
}
