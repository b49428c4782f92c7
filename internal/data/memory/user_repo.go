package memory

import (
	"context"
	"strings"

	"kennel-registry/internal/data/entity"

	"github.com/google/uuid"
)

type userRepo struct {
	s *store
}

func (r *userRepo) emailTaken(email string, except uuid.UUID) bool {
	for id, u := range r.s.users {
		if id != except && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func (r *userRepo) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.emailTaken(user.Email, user.ID) {
		return duplicate("email", user.Email)
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func matchUser(u entity.User, f entity.UserFilter) bool {
	if q := strings.TrimSpace(f.Query); q != "" && !containsFold(u.Email, q) && !containsFold(u.Name, q) {
		return false
	}
	if f.Role != "" && u.Role != f.Role {
		return false
	}
	if f.IsActive != nil && u.IsActive != *f.IsActive {
		return false
	}
	return true
}

func (r *userRepo) filter(f entity.UserFilter) []*entity.User {
	var out []*entity.User
	for _, u := range r.s.users {
		if matchUser(u, f) {
			out = append(out, &u)
		}
	}
	sortBy(out, func(a, b *entity.User) bool { return a.CreatedAt.After(b.CreatedAt) })
	return out
}

func (r *userRepo) FindAll(ctx context.Context, limit, offset int, f entity.UserFilter) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return page(r.filter(f), limit, offset), nil
}

func (r *userRepo) CountAll(ctx context.Context, f entity.UserFilter) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.filter(f))), nil
}

func (r *userRepo) Update(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.ID]; !ok {
		return notFound("user", user.ID)
	}
	if r.emailTaken(user.Email, user.ID) {
		return duplicate("email", user.Email)
	}
	r.s.users[user.ID] = *user
	return nil
}

// Delete removes the user and its sessions.
func (r *userRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return notFound("user", id)
	}
	delete(r.s.users, id)
	for sid, sess := range r.s.sessions {
		if sess.UserID == id {
			delete(r.s.sessions, sid)
		}
	}
	return nil
}
