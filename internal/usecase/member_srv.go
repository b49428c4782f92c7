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

// MemberService is the admin-side account management. SUPER_ADMIN accounts
// are visible but cannot be changed or deleted through it.
type MemberService interface {
	List(ctx context.Context, q *request.MemberListQuery) (*response.PaginatedResponse[response.UserResponse], error)
	Get(ctx context.Context, id string) (*response.UserResponse, error)
	Create(ctx context.Context, req *request.MemberCreateRequest) (*response.UserResponse, error)
	Update(ctx context.Context, actorID uuid.UUID, id string, req *request.MemberUpdateRequest) (*response.UserResponse, error)
	Delete(ctx context.Context, actorID uuid.UUID, id string) error
}

type memberService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMemberService(repo *repository.Repository, log *zap.Logger) MemberService {
	return &memberService{
		repo: repo,
		log:  log.With(zap.String("service", "member")),
	}
}

func (s *memberService) List(ctx context.Context, q *request.MemberListQuery) (*response.PaginatedResponse[response.UserResponse], error) {
	if errs := utils.ValidateStruct(q); errs != nil {
		return nil, errs
	}

	filter := entity.UserFilter{
		Query:    q.Query,
		Role:     entity.UserRole(q.Role),
		IsActive: q.IsActive,
	}

	users, err := s.repo.User.FindAll(ctx, q.Limit(), q.Offset(), filter)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	total, err := s.repo.User.CountAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count members: %w", err)
	}

	data := make([]response.UserResponse, 0, len(users))
	for _, u := range users {
		data = append(data, response.UserToResponse(u))
	}

	return response.NewPaginatedResponse(data, q.Page, q.Limit(), total), nil
}

func (s *memberService) find(ctx context.Context, rawID string) (*entity.User, error) {
	id, err := parseID("id", rawID)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find member: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *memberService) Get(ctx context.Context, id string) (*response.UserResponse, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *memberService) emailFree(ctx context.Context, email string, self uuid.UUID) error {
	existing, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if existing != nil && existing.ID != self {
		return ErrEmailTaken
	}
	return nil
}

func (s *memberService) Create(ctx context.Context, req *request.MemberCreateRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); errs != nil {
		return nil, errs
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.emailFree(ctx, email, uuid.Nil); err != nil {
		return nil, err
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	now := time.Now()
	user := &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hashed,
		Role:         entity.UserRole(req.Role),
		IsActive:     active,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create member: %w", err)
	}

	s.log.Info("Member created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *memberService) Update(ctx context.Context, actorID uuid.UUID, id string, req *request.MemberUpdateRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); errs != nil {
		return nil, errs
	}

	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Protected() {
		s.log.Warn("Attempt to modify protected account",
			zap.String("actor_id", actorID.String()),
			zap.String("user_id", user.ID.String()))
		return nil, ErrProtectedMember
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if err := s.emailFree(ctx, email, user.ID); err != nil {
			return nil, err
		}
		user.Email = email
	}
	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Password != nil {
		hashed, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hashed
	}
	if req.Role != nil {
		user.Role = entity.UserRole(*req.Role)
	}
	deactivated := false
	if req.IsActive != nil {
		deactivated = user.IsActive && !*req.IsActive
		user.IsActive = *req.IsActive
	}
	user.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("update member: %w", err)
	}

	// a deactivated or re-keyed account loses its open sessions
	if deactivated || req.Password != nil {
		if err := s.repo.Session.RevokeAllUserSessions(ctx, user.ID); err != nil {
			s.log.Warn("Failed to revoke sessions", zap.Error(err), zap.String("user_id", user.ID.String()))
		}
	}

	s.log.Info("Member updated",
		zap.String("actor_id", actorID.String()),
		zap.String("user_id", user.ID.String()))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *memberService) Delete(ctx context.Context, actorID uuid.UUID, id string) error {
	user, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if user.Protected() {
		s.log.Warn("Attempt to delete protected account",
			zap.String("actor_id", actorID.String()),
			zap.String("user_id", user.ID.String()))
		return ErrProtectedMember
	}
	if user.ID == actorID {
		return ErrSelfDelete
	}

	if err := s.repo.User.Delete(ctx, user.ID); err != nil {
		return fmt.Errorf("delete member: %w", err)
	}

	s.log.Info("Member deleted",
		zap.String("actor_id", actorID.String()),
		zap.String("user_id", user.ID.String()))
	return nil
}
