package memory

import (
	"context"

	"kennel-registry/internal/data/entity"

	"github.com/google/uuid"
)

type litterRepo struct {
	s *store
}

func (r *litterRepo) Create(ctx context.Context, litter *entity.Litter) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.litters[litter.ID] = *litter
	return nil
}

func (r *litterRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Litter, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	l, ok := r.s.litters[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *litterRepo) filter(kennelID *uuid.UUID) []*entity.Litter {
	var out []*entity.Litter
	for _, l := range r.s.litters {
		if kennelID != nil && !sameID(l.KennelID, *kennelID) {
			continue
		}
		out = append(out, &l)
	}
	sortBy(out, func(a, b *entity.Litter) bool { return a.DateOfBirth.After(b.DateOfBirth) })
	return out
}

func (r *litterRepo) FindAll(ctx context.Context, limit, offset int, kennelID *uuid.UUID) ([]*entity.Litter, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return page(r.filter(kennelID), limit, offset), nil
}

func (r *litterRepo) CountAll(ctx context.Context, kennelID *uuid.UUID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.filter(kennelID))), nil
}

func (r *litterRepo) Update(ctx context.Context, litter *entity.Litter) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.litters[litter.ID]; !ok {
		return notFound("litter", litter.ID)
	}
	r.s.litters[litter.ID] = *litter
	return nil
}

// Delete removes the litter and clears litter references on its puppies.
func (r *litterRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.litters[id]; !ok {
		return notFound("litter", id)
	}
	delete(r.s.litters, id)

	for did, d := range r.s.dogs {
		if sameID(d.LitterID, id) {
			d.LitterID = nil
			r.s.dogs[did] = d
		}
	}
	return nil
}
