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

const sessionRetention = 7 * 24 * time.Hour

// ClientInfo is recorded on the session for auditing.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest, client ClientInfo) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	CleanExpiredSessions(ctx context.Context) error
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

// Register creates an inactive MEMBER account. An admin activates it.
func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); errs != nil {
		return nil, errs
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hashed,
		Role:         entity.RoleMember,
		IsActive:     false,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("Member registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, client ClientInfo) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); errs != nil {
		return nil, errs
	}

	user, err := s.repo.User.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Failed login attempt", zap.String("email", req.Email))
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.String("user_id", user.ID.String()))
		return nil, ErrAccountInactive
	}

	session, err := s.createSession(ctx, user.ID, client)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

// Logout revokes the token. A token that is already gone counts as logged out.
func (s *authService) Logout(ctx context.Context, token string) error {
	err := s.repo.Session.Revoke(ctx, token)
	if errors.Is(err, repository.ErrSessionNotFound) {
		s.log.Debug("Logout with unknown or revoked session")
		return nil
	}
	if err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// CleanExpiredSessions drops sessions that ended more than sessionRetention ago.
func (s *authService) CleanExpiredSessions(ctx context.Context) error {
	removed, err := s.repo.Session.CleanExpiredSessions(ctx, time.Now().Add(-sessionRetention))
	if err != nil {
		return fmt.Errorf("clean sessions: %w", err)
	}
	if removed > 0 {
		s.log.Info("Expired sessions removed", zap.Int64("count", removed))
	}
	return nil
}

func (s *authService) createSession(ctx context.Context, userID uuid.UUID, client ClientInfo) (*entity.Session, error) {
	ttl := time.Duration(s.config.Session.TTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}

	now := time.Now()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    userID,
		Token:     utils.GenerateSessionToken(),
		UserAgent: clean(&client.UserAgent),
		IPAddress: clean(&client.IPAddress),
		ExpiresAt: now.Add(ttl),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}
