package memory

import (
	"context"
	"strings"

	"kennel-registry/internal/data/entity"

	"github.com/google/uuid"
)

type kennelRepo struct {
	s *store
}

func (r *kennelRepo) nameTaken(name string, except uuid.UUID) bool {
	for id, k := range r.s.kennels {
		if id != except && k.Name == name {
			return true
		}
	}
	return false
}

func (r *kennelRepo) Create(ctx context.Context, kennel *entity.Kennel) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.nameTaken(kennel.Name, kennel.ID) {
		return duplicate("kennel name", kennel.Name)
	}
	r.s.kennels[kennel.ID] = *kennel
	return nil
}

func (r *kennelRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Kennel, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	k, ok := r.s.kennels[id]
	if !ok {
		return nil, nil
	}
	return &k, nil
}

func (r *kennelRepo) FindByName(ctx context.Context, name string) (*entity.Kennel, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, k := range r.s.kennels {
		if strings.EqualFold(k.Name, name) {
			return &k, nil
		}
	}
	return nil, nil
}

func (r *kennelRepo) filter(search string) []*entity.Kennel {
	search = strings.TrimSpace(search)
	var out []*entity.Kennel
	for _, k := range r.s.kennels {
		if search != "" && !containsFold(k.Name, search) && !ptrContainsFold(k.Prefix, search) {
			continue
		}
		out = append(out, &k)
	}
	sortBy(out, func(a, b *entity.Kennel) bool { return a.Name < b.Name })
	return out
}

func (r *kennelRepo) FindAll(ctx context.Context, limit, offset int, search string) ([]*entity.Kennel, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return page(r.filter(search), limit, offset), nil
}

func (r *kennelRepo) CountAll(ctx context.Context, search string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.filter(search))), nil
}

func (r *kennelRepo) Update(ctx context.Context, kennel *entity.Kennel) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.kennels[kennel.ID]; !ok {
		return notFound("kennel", kennel.ID)
	}
	if r.nameTaken(kennel.Name, kennel.ID) {
		return duplicate("kennel name", kennel.Name)
	}
	r.s.kennels[kennel.ID] = *kennel
	return nil
}

// Delete removes the kennel and clears kennel references on dogs and litters.
func (r *kennelRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.kennels[id]; !ok {
		return notFound("kennel", id)
	}
	delete(r.s.kennels, id)

	for did, d := range r.s.dogs {
		if sameID(d.KennelID, id) {
			d.KennelID = nil
			r.s.dogs[did] = d
		}
	}
	for lid, l := range r.s.litters {
		if sameID(l.KennelID, id) {
			l.KennelID = nil
			r.s.litters[lid] = l
		}
	}
	return nil
}
