package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kennel-registry/internal/data/entity"
	"kennel-registry/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	FindValidSession(ctx context.Context, token string) (*entity.Session, error)
	Revoke(ctx context.Context, token string) error
	RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error
	// CleanExpiredSessions deletes sessions that expired or were revoked
	// before cutoff and reports how many were removed.
	CleanExpiredSessions(ctx context.Context, cutoff time.Time) (int64, error)
}

type sessionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSessionRepository(db database.PgxIface, log *zap.Logger) SessionRepository {
	return &sessionRepository{
		db:  db,
		log: log.With(zap.String("repository", "session")),
	}
}

const sessionColumns = `id, user_id, token, user_agent, ip_address, expires_at, revoked_at, created_at`

func scanSession(row pgx.Row) (*entity.Session, error) {
	var s entity.Session
	err := row.Scan(&s.ID, &s.UserID, &s.Token, &s.UserAgent, &s.IPAddress,
		&s.ExpiresAt, &s.RevokedAt, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO sessions (`+sessionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		session.ID, session.UserID, session.Token, session.UserAgent, session.IPAddress,
		session.ExpiresAt, session.RevokedAt, session.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create session",
			zap.Error(err),
			zap.String("user_id", session.UserID.String()))
		return fmt.Errorf("create session: %w", wrapWriteErr(err))
	}
	return nil
}

// FindValidSession returns the live session for token, or nil when the
// token is malformed, unknown, expired or revoked.
func (r *sessionRepository) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	parsed, err := uuid.Parse(token)
	if err != nil {
		return nil, nil
	}

	session, err := scanSession(r.db.QueryRow(ctx, `
		SELECT `+sessionColumns+`
		FROM sessions
		WHERE token = $1 AND revoked_at IS NULL AND expires_at > NOW()`, parsed))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find session", zap.Error(err))
		return nil, fmt.Errorf("find session: %w", err)
	}
	return session, nil
}

func (r *sessionRepository) Revoke(ctx context.Context, token string) error {
	parsed, err := uuid.Parse(token)
	if err != nil {
		return ErrSessionNotFound
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE sessions SET revoked_at = NOW()
		WHERE token = $1 AND revoked_at IS NULL`, parsed)
	if err != nil {
		r.log.Error("Failed to revoke session", zap.Error(err))
		return fmt.Errorf("revoke session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (r *sessionRepository) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE sessions SET revoked_at = NOW()
		WHERE user_id = $1 AND revoked_at IS NULL`, userID)
	if err != nil {
		r.log.Error("Failed to revoke user sessions",
			zap.Error(err),
			zap.String("user_id", userID.String()))
		return fmt.Errorf("revoke user sessions: %w", err)
	}

	r.log.Debug("User sessions revoked",
		zap.String("user_id", userID.String()),
		zap.Int64("revoked", tag.RowsAffected()))
	return nil
}

func (r *sessionRepository) CleanExpiredSessions(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM sessions
		WHERE expires_at < $1 OR revoked_at < $1`, cutoff)
	if err != nil {
		r.log.Error("Failed to clean sessions", zap.Error(err))
		return 0, fmt.Errorf("clean sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
