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
	"kennel-registry/internal/pedigree"
	"kennel-registry/pkg/blob"
	"kennel-registry/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DogService interface {
	List(ctx context.Context, q *request.DogListQuery) (*response.PaginatedResponse[response.DogSummary], error)
	Get(ctx context.Context, id string) (*response.DogResponse, error)
	Create(ctx context.Context, req *request.DogRequest) (*response.DogResponse, error)
	Update(ctx context.Context, id string, req *request.DogRequest) (*response.DogResponse, error)
	Delete(ctx context.Context, id string) error
}

type dogService struct {
	repo  *repository.Repository
	store blob.Store
	log   *zap.Logger
}

func NewDogService(repo *repository.Repository, store blob.Store, log *zap.Logger) DogService {
	return &dogService{
		repo:  repo,
		store: store,
		log:   log.With(zap.String("service", "dog")),
	}
}

func (s *dogService) List(ctx context.Context, q *request.DogListQuery) (*response.PaginatedResponse[response.DogSummary], error) {
	if errs := utils.ValidateStruct(q); errs != nil {
		return nil, errs
	}

	filter := entity.DogFilter{
		Query:  q.Query,
		Sex:    entity.DogSex(q.Sex),
		Status: entity.DogStatus(q.Status),
	}
	if q.KennelID != "" {
		id := uuid.MustParse(q.KennelID)
		filter.KennelID = &id
	}

	dogs, err := s.repo.Dog.FindAll(ctx, q.Limit(), q.Offset(), filter)
	if err != nil {
		return nil, fmt.Errorf("list dogs: %w", err)
	}
	total, err := s.repo.Dog.CountAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count dogs: %w", err)
	}

	return response.NewPaginatedResponse(response.DogsToSummaries(dogs), q.Page, q.Limit(), total), nil
}

func findDog(ctx context.Context, repo *repository.Repository, rawID string) (*entity.Dog, error) {
	id, err := parseID("id", rawID)
	if err != nil {
		return nil, err
	}
	dog, err := repo.Dog.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find dog: %w", err)
	}
	if dog == nil {
		return nil, ErrDogNotFound
	}
	return dog, nil
}

func (s *dogService) Get(ctx context.Context, id string) (*response.DogResponse, error) {
	dog, err := findDog(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, dog)
}

// toResponse expands the sire, dam and kennel references into summaries.
func (s *dogService) toResponse(ctx context.Context, dog *entity.Dog) (*response.DogResponse, error) {
	resp := response.DogToResponse(dog)

	var parentIDs []uuid.UUID
	if dog.SireID != nil {
		parentIDs = append(parentIDs, *dog.SireID)
	}
	if dog.DamID != nil {
		parentIDs = append(parentIDs, *dog.DamID)
	}
	parents, err := s.repo.Dog.FindByIDs(ctx, parentIDs)
	if err != nil {
		return nil, fmt.Errorf("load parents: %w", err)
	}
	for _, p := range parents {
		if dog.SireID != nil && p.ID == *dog.SireID {
			resp.Sire = response.DogToSummary(p)
		}
		if dog.DamID != nil && p.ID == *dog.DamID {
			resp.Dam = response.DogToSummary(p)
		}
	}

	if dog.KennelID != nil {
		kennel, err := s.repo.Kennel.FindByID(ctx, *dog.KennelID)
		if err != nil {
			return nil, fmt.Errorf("load kennel: %w", err)
		}
		resp.Kennel = response.KennelToSummary(kennel)
	}

	return &resp, nil
}

// apply validates req against the registry and copies it onto dog. isNew
// skips the ancestry walk, since nothing can descend from a new dog yet.
func (s *dogService) apply(ctx context.Context, dog *entity.Dog, req *request.DogRequest, isNew bool) error {
	req.Normalize()
	if errs := utils.ValidateStruct(req); errs != nil {
		return errs
	}

	var err error
	if dog.DateOfBirth, err = parseDate("dateOfBirth", req.DateOfBirth); err != nil {
		return err
	}
	if dog.DateOfDeath, err = parseDate("dateOfDeath", req.DateOfDeath); err != nil {
		return err
	}
	if dog.AppraisalDate, err = parseDate("appraisalDate", req.AppraisalDate); err != nil {
		return err
	}
	if dog.DateOfBirth != nil && dog.DateOfDeath != nil && dog.DateOfDeath.Before(*dog.DateOfBirth) {
		return utils.NewFieldError("dateOfDeath", "Must not be before dateOfBirth")
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
	litterID, err := parseOptionalID("litterId", req.LitterID)
	if err != nil {
		return err
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

	if litterID != nil {
		litter, err := s.repo.Litter.FindByID(ctx, *litterID)
		if err != nil {
			return fmt.Errorf("check litter: %w", err)
		}
		if litter == nil {
			return utils.NewFieldError("litterId", "Litter not found")
		}
		if sireID, err = inheritParent("sireId", sireID, litter.SireID); err != nil {
			return err
		}
		if damID, err = inheritParent("damId", damID, litter.DamID); err != nil {
			return err
		}
	}

	sire, dam, err := s.loadParents(ctx, sireID, damID)
	if err != nil {
		return err
	}
	if err := pedigree.CheckParents(dog.ID, sireID, sire, damID, dam); err != nil {
		return fieldError(err)
	}
	if !isNew {
		if err := pedigree.CheckAncestry(ctx, s.repo.Dog, dog.ID, sire, dam); err != nil {
			return fieldError(err)
		}
	}

	regNo := clean(req.RegistrationNumber)
	if regNo != nil {
		existing, err := s.repo.Dog.FindByRegistrationNumber(ctx, *regNo)
		if err != nil {
			return fmt.Errorf("check registration number: %w", err)
		}
		if existing != nil && existing.ID != dog.ID {
			return ErrRegistrationTaken
		}
	}
	chip := clean(req.Microchip)
	if chip != nil {
		existing, err := s.repo.Dog.FindByMicrochip(ctx, *chip)
		if err != nil {
			return fmt.Errorf("check microchip: %w", err)
		}
		if existing != nil && existing.ID != dog.ID {
			return ErrMicrochipTaken
		}
	}

	dog.RegisteredName = strings.TrimSpace(req.RegisteredName)
	dog.CallName = clean(req.CallName)
	dog.RegistrationNumber = regNo
	dog.Microchip = chip
	dog.Sex = entity.DogSex(req.Sex)
	dog.Color = clean(req.Color)
	dog.Status = entity.DogStatusActive
	if req.Status != "" {
		dog.Status = entity.DogStatus(req.Status)
	}
	dog.SireID = sireID
	dog.DamID = damID
	dog.KennelID = kennelID
	dog.LitterID = litterID
	dog.BreederName = clean(req.BreederName)
	dog.OwnerName = clean(req.OwnerName)
	dog.AppraisalScore = req.AppraisalScore
	dog.AppraisalJudge = clean(req.AppraisalJudge)
	dog.AppraisalNotes = clean(req.AppraisalNotes)
	dog.HipScore = clean(req.HipScore)
	dog.ElbowScore = clean(req.ElbowScore)
	dog.EyeTest = clean(req.EyeTest)
	dog.DNAProfile = clean(req.DNAProfile)
	dog.InbreedingCoefficient = req.InbreedingCoefficient
	dog.Notes = clean(req.Notes)
	return nil
}

// inheritParent fills an omitted parent from the litter and rejects one
// that contradicts it.
func inheritParent(field string, given, fromLitter *uuid.UUID) (*uuid.UUID, error) {
	switch {
	case given == nil:
		return fromLitter, nil
	case fromLitter != nil && *given != *fromLitter:
		return nil, utils.NewFieldError(field, "Must match the litter's parent")
	default:
		return given, nil
	}
}

func (s *dogService) loadParents(ctx context.Context, sireID, damID *uuid.UUID) (sire, dam *entity.Dog, err error) {
	if sireID != nil {
		if sire, err = s.repo.Dog.FindByID(ctx, *sireID); err != nil {
			return nil, nil, fmt.Errorf("load sire: %w", err)
		}
	}
	if damID != nil {
		if dam, err = s.repo.Dog.FindByID(ctx, *damID); err != nil {
			return nil, nil, fmt.Errorf("load dam: %w", err)
		}
	}
	return sire, dam, nil
}

func mapDogWriteErr(err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return ErrDuplicateRecord
	}
	return err
}

func (s *dogService) Create(ctx context.Context, req *request.DogRequest) (*response.DogResponse, error) {
	now := time.Now()
	dog := &entity.Dog{Base: entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}}
	if err := s.apply(ctx, dog, req, true); err != nil {
		return nil, err
	}

	if err := s.repo.Dog.Create(ctx, dog); err != nil {
		return nil, fmt.Errorf("create dog: %w", mapDogWriteErr(err))
	}

	s.log.Info("Dog created",
		zap.String("dog_id", dog.ID.String()),
		zap.String("registered_name", dog.RegisteredName))
	return s.toResponse(ctx, dog)
}

func (s *dogService) Update(ctx context.Context, id string, req *request.DogRequest) (*response.DogResponse, error) {
	dog, err := findDog(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, dog, req, false); err != nil {
		return nil, err
	}
	dog.UpdatedAt = time.Now()

	if err := s.repo.Dog.Update(ctx, dog); err != nil {
		return nil, fmt.Errorf("update dog: %w", mapDogWriteErr(err))
	}

	s.log.Info("Dog updated", zap.String("dog_id", dog.ID.String()))
	return s.toResponse(ctx, dog)
}

// Delete removes the dog and its attachment files. Offspring keep their
// record with the parent reference cleared.
func (s *dogService) Delete(ctx context.Context, id string) error {
	dog, err := findDog(ctx, s.repo, id)
	if err != nil {
		return err
	}

	var keys []string
	for _, kind := range []entity.AttachmentKind{entity.AttachmentPhoto, entity.AttachmentCertificate} {
		atts, err := s.repo.Attachment.FindByDog(ctx, dog.ID, kind)
		if err != nil {
			return fmt.Errorf("list attachments: %w", err)
		}
		for _, a := range atts {
			keys = append(keys, a.StorageKey)
		}
	}

	if err := s.repo.Dog.Delete(ctx, dog.ID); err != nil {
		return fmt.Errorf("delete dog: %w", err)
	}

	for _, key := range keys {
		if _, err := s.store.Delete(ctx, key); err != nil {
			s.log.Warn("Failed to delete attachment blob", zap.Error(err), zap.String("key", key))
		}
	}

	s.log.Info("Dog deleted", zap.String("dog_id", dog.ID.String()))
	return nil
}
