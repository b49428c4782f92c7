package memory

import (
	"context"
	"time"

	"kennel-registry/internal/data/entity"
	"kennel-registry/internal/data/repository"

	"github.com/google/uuid"
)

type sessionRepo struct {
	s *store
}

func (r *sessionRepo) Create(ctx context.Context, session *entity.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.sessions {
		if existing.Token == session.Token {
			return duplicate("session token", session.Token.String())
		}
	}
	r.s.sessions[session.ID] = *session
	return nil
}

func (r *sessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	parsed, err := uuid.Parse(token)
	if err != nil {
		return nil, nil
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	now := time.Now()
	for _, sess := range r.s.sessions {
		if sess.Token == parsed && sess.RevokedAt == nil && sess.ExpiresAt.After(now) {
			return &sess, nil
		}
	}
	return nil, nil
}

func (r *sessionRepo) Revoke(ctx context.Context, token string) error {
	parsed, err := uuid.Parse(token)
	if err != nil {
		return repository.ErrSessionNotFound
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now()
	for id, sess := range r.s.sessions {
		if sess.Token == parsed && sess.RevokedAt == nil {
			sess.RevokedAt = &now
			r.s.sessions[id] = sess
			return nil
		}
	}
	return repository.ErrSessionNotFound
}

func (r *sessionRepo) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now()
	for id, sess := range r.s.sessions {
		if sess.UserID == userID && sess.RevokedAt == nil {
			sess.RevokedAt = &now
			r.s.sessions[id] = sess
		}
	}
	return nil
}

func (r *sessionRepo) CleanExpiredSessions(ctx context.Context, cutoff time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var removed int64
	for id, sess := range r.s.sessions {
		if sess.ExpiresAt.Before(cutoff) || (sess.RevokedAt != nil && sess.RevokedAt.Before(cutoff)) {
			delete(r.s.sessions, id)
			removed++
		}
	}
	return removed, nil
}
