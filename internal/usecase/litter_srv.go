package usecase

import (
	"context"
	"fmt"
	"time"

	"kennel-registry/internal/data/entity"
	"kennel-registry/internal/data/repository"
	"kennel-registry/internal/dto/request"
	"kennel-registry/internal/dto/response"
	"kennel-registry/internal/pedigree"
	"kennel-registry/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type LitterService interface {
	List(ctx context.Context, page request.PaginatedRequest, kennelID string) (*response.PaginatedResponse[response.LitterResponse], error)
	Get(ctx context.Context, id string) (*response.LitterDetailResponse, error)
	Create(ctx context.Context, req *request.LitterRequest) (*response.LitterResponse, error)
	Update(ctx context.Context, id string, req *request.LitterRequest) (*response.LitterResponse, error)
	Delete(ctx context.Context, id string) error
}

type litterService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewLitterService(repo *repository.Repository, log *zap.Logger) LitterService {
	return &litterService{
		repo: repo,
		log:  log.With(zap.String("service", "litter")),
	}
}

func (s *litterService) List(ctx context.Context, page request.PaginatedRequest, kennelID string) (*response.PaginatedResponse[response.LitterResponse], error) {
	var kennel *uuid.UUID
	if kennelID != "" {
		id, err := parseID("kennelId", kennelID)
		if err != nil {
			return nil, err
		}
		kennel = &id
	}

	litters, err := s.repo.Litter.FindAll(ctx, page.Limit(), page.Offset(), kennel)
	if err != nil {
		return nil, fmt.Errorf("list litters: %w", err)
	}
	total, err := s.repo.Litter.CountAll(ctx, kennel)
	if err != nil {
		return nil, fmt.Errorf("count litters: %w", err)
	}

	data := make([]response.LitterResponse, 0, len(litters))
	for _, l := range litters {
		resp, err := s.toResponse(ctx, l)
		if err != nil {
			return nil, err
		}
		data = append(data, *resp)
	}
	return response.NewPaginatedResponse(data, page.Page, page.Limit(), total), nil
}

func (s *litterService) find(ctx context.Context, rawID string) (*entity.Litter, error) {
	id, err := parseID("id", rawID)
	if err != nil {
		return nil, err
	}
	litter, err := s.repo.Litter.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find litter: %w", err)
	}
	if litter == nil {
		return nil, ErrLitterNotFound
	}
	return litter, nil
}

func (s *litterService) toResponse(ctx context.Context, l *entity.Litter) (*response.LitterResponse, error) {
	resp := response.LitterToResponse(l)

	var ids []uuid.UUID
	if l.SireID != nil {
		ids = append(ids, *l.SireID)
	}
	if l.DamID != nil {
		ids = append(ids, *l.DamID)
	}
	parents, err := s.repo.Dog.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load litter parents: %w", err)
	}
	for _, p := range parents {
		if l.SireID != nil && p.ID == *l.SireID {
			resp.Sire = response.DogToSummary(p)
		}
		if l.DamID != nil && p.ID == *l.DamID {
			resp.Dam = response.DogToSummary(p)
		}
	}

	if l.KennelID != nil {
		kennel, err := s.repo.Kennel.FindByID(ctx, *l.KennelID)
		if err != nil {
			return nil, fmt.Errorf("load litter kennel: %w", err)
		}
		resp.Kennel = response.KennelToSummary(kennel)
	}
	return &resp, nil
}

func (s *litterService) Get(ctx context.Context, id string) (*response.LitterDetailResponse, error) {
	litter, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp, err := s.toResponse(ctx, litter)
	if err != nil {
		return nil, err
	}
	puppies, err := s.repo.Dog.FindByLitter(ctx, litter.ID)
	if err != nil {
		return nil, fmt.Errorf("list puppies: %w", err)
	}
	return &response.LitterDetailResponse{
		LitterResponse: *resp,
		Puppies:        response.DogsToSummaries(puppies),
	}, nil
}

func (s *litterService) apply(ctx context.Context, litter *entity.Litter, req *request.LitterRequest) error {
	req.Normalize()
	if errs := utils.ValidateStruct(req); errs != nil {
		return errs
	}

	dob, err := parseDate("dateOfBirth", &req.DateOfBirth)
	if err != nil {
		return err
	}
	sireID, err := parseOptionalID("sireId", req.SireID)
	if err != nil {
		return err
	}
	damID, err := parseOptionalID("damId", req.DamID)
	if err != nil {
		return err
	}
	kennelID, err := parseOptionalID("kennelId", req.KennelID)
	if err != nil {
		return err
	}

	var sire, dam *entity.Dog
	if sireID != nil {
		if sire, err = s.repo.Dog.FindByID(ctx, *sireID); err != nil {
			return fmt.Errorf("load sire: %w", err)
		}
	}
	if damID != nil {
		if dam, err = s.repo.Dog.FindByID(ctx, *damID); err != nil {
			return fmt.Errorf("load dam: %w", err)
		}
	}
	if err := pedigree.CheckParents(uuid.Nil, sireID, sire, damID, dam); err != nil {
		return fieldError(err)
	}

	if kennelID != nil {
		kennel, err := s.repo.Kennel.FindByID(ctx, *kennelID)
		if err != nil {
			return fmt.Errorf("check kennel: %w", err)
		}
		if kennel == nil {
			return utils.NewFieldError("kennelId", "Kennel not found")
		}
	}

	litter.SireID = sireID
	litter.DamID = damID
	litter.DateOfBirth = *dob
	litter.NumberOfPups = req.NumberOfPups
	litter.KennelID = kennelID
	litter.Notes = clean(req.Notes)
	return nil
}

func (s *litterService) Create(ctx context.Context, req *request.LitterRequest) (*response.LitterResponse, error) {
	now := time.Now()
	litter := &entity.Litter{Base: entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}}
	if err := s.apply(ctx, litter, req); err != nil {
		return nil, err
	}

	if err := s.repo.Litter.Create(ctx, litter); err != nil {
		return nil, fmt.Errorf("create litter: %w", err)
	}

	s.log.Info("Litter created", zap.String("litter_id", litter.ID.String()))
	return s.toResponse(ctx, litter)
}

func (s *litterService) Update(ctx context.Context, id string, req *request.LitterRequest) (*response.LitterResponse, error) {
	litter, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, litter, req); err != nil {
		return nil, err
	}
	if err := s.checkPuppies(ctx, litter); err != nil {
		return nil, err
	}
	litter.UpdatedAt = time.Now()

	if err := s.repo.Litter.Update(ctx, litter); err != nil {
		return nil, fmt.Errorf("update litter: %w", err)
	}
	return s.toResponse(ctx, litter)
}

// checkPuppies rejects parents that contradict a puppy already recorded in
// the litter. Puppies without a parent on that side are left alone.
func (s *litterService) checkPuppies(ctx context.Context, litter *entity.Litter) error {
	puppies, err := s.repo.Dog.FindByLitter(ctx, litter.ID)
	if err != nil {
		return fmt.Errorf("list puppies: %w", err)
	}
	for _, pup := range puppies {
		if conflicts(pup.SireID, litter.SireID) {
			return utils.NewFieldError("sireId", "Must match the sire of puppy "+pup.RegisteredName)
		}
		if conflicts(pup.DamID, litter.DamID) {
			return utils.NewFieldError("damId", "Must match the dam of puppy "+pup.RegisteredName)
		}
	}
	return nil
}

func conflicts(a, b *uuid.UUID) bool {
	return a != nil && b != nil && *a != *b
}

// Delete removes the litter; its puppies keep their records.
func (s *litterService) Delete(ctx context.Context, id string) error {
	litter, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Litter.Delete(ctx, litter.ID); err != nil {
		return fmt.Errorf("delete litter: %w", err)
	}
	s.log.Info("Litter deleted", zap.String("litter_id", litter.ID.String()))
	return nil
}
