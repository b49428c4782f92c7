package memory

import (
	"context"
	"strings"

	"kennel-registry/internal/data/entity"

	"github.com/google/uuid"
)

type dogRepo struct {
	s *store
}

func (r *dogRepo) checkUnique(dog *entity.Dog) error {
	for id, d := range r.s.dogs {
		if id == dog.ID {
			continue
		}
		if samePtr(d.RegistrationNumber, dog.RegistrationNumber) {
			return duplicate("registration number", *dog.RegistrationNumber)
		}
		if samePtr(d.Microchip, dog.Microchip) {
			return duplicate("microchip", *dog.Microchip)
		}
	}
	return nil
}

func (r *dogRepo) Create(ctx context.Context, dog *entity.Dog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.checkUnique(dog); err != nil {
		return err
	}
	r.s.dogs[dog.ID] = *dog
	return nil
}

func (r *dogRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Dog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	d, ok := r.s.dogs[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *dogRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Dog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*entity.Dog
	for _, id := range ids {
		if d, ok := r.s.dogs[id]; ok {
			out = append(out, &d)
		}
	}
	return out, nil
}

func (r *dogRepo) findOne(match func(entity.Dog) bool) *entity.Dog {
	for _, d := range r.s.dogs {
		if match(d) {
			return &d
		}
	}
	return nil
}

func (r *dogRepo) FindByRegistrationNumber(ctx context.Context, number string) (*entity.Dog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.findOne(func(d entity.Dog) bool { return samePtr(d.RegistrationNumber, &number) }), nil
}

func (r *dogRepo) FindByMicrochip(ctx context.Context, microchip string) (*entity.Dog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.findOne(func(d entity.Dog) bool { return samePtr(d.Microchip, &microchip) }), nil
}

func matchDog(d entity.Dog, f entity.DogFilter) bool {
	if q := strings.TrimSpace(f.Query); q != "" &&
		!containsFold(d.RegisteredName, q) &&
		!ptrContainsFold(d.CallName, q) &&
		!ptrContainsFold(d.RegistrationNumber, q) &&
		!ptrContainsFold(d.Microchip, q) {
		return false
	}
	if f.Sex != "" && d.Sex != f.Sex {
		return false
	}
	if f.Status != "" && d.Status != f.Status {
		return false
	}
	if f.KennelID != nil && !sameID(d.KennelID, *f.KennelID) {
		return false
	}
	return true
}

func (r *dogRepo) collect(match func(entity.Dog) bool) []*entity.Dog {
	var out []*entity.Dog
	for _, d := range r.s.dogs {
		if match(d) {
			out = append(out, &d)
		}
	}
	sortBy(out, func(a, b *entity.Dog) bool { return a.RegisteredName < b.RegisteredName })
	return out
}

func (r *dogRepo) FindAll(ctx context.Context, limit, offset int, f entity.DogFilter) ([]*entity.Dog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return page(r.collect(func(d entity.Dog) bool { return matchDog(d, f) }), limit, offset), nil
}

func (r *dogRepo) CountAll(ctx context.Context, f entity.DogFilter) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.collect(func(d entity.Dog) bool { return matchDog(d, f) }))), nil
}

func (r *dogRepo) FindOffspring(ctx context.Context, parentID uuid.UUID, limit int) ([]*entity.Dog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := r.collect(func(d entity.Dog) bool { return sameID(d.SireID, parentID) || sameID(d.DamID, parentID) })
	sortBy(out, func(a, b *entity.Dog) bool {
		switch {
		case a.DateOfBirth == nil:
			return false
		case b.DateOfBirth == nil:
			return true
		default:
			return a.DateOfBirth.Before(*b.DateOfBirth)
		}
	})
	return page(out, limit, 0), nil
}

func (r *dogRepo) FindByLitter(ctx context.Context, litterID uuid.UUID) ([]*entity.Dog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.collect(func(d entity.Dog) bool { return sameID(d.LitterID, litterID) }), nil
}

func (r *dogRepo) Update(ctx context.Context, dog *entity.Dog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.dogs[dog.ID]; !ok {
		return notFound("dog", dog.ID)
	}
	if err := r.checkUnique(dog); err != nil {
		return err
	}
	r.s.dogs[dog.ID] = *dog
	return nil
}

// Delete removes the dog, clears parent references to it on dogs and
// litters, and drops its attachments.
func (r *dogRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.dogs[id]; !ok {
		return notFound("dog", id)
	}
	delete(r.s.dogs, id)

	for did, d := range r.s.dogs {
		changed := false
		if sameID(d.SireID, id) {
			d.SireID, changed = nil, true
		}
		if sameID(d.DamID, id) {
			d.DamID, changed = nil, true
		}
		if changed {
			r.s.dogs[did] = d
		}
	}
	for lid, l := range r.s.litters {
		changed := false
		if sameID(l.SireID, id) {
			l.SireID, changed = nil, true
		}
		if sameID(l.DamID, id) {
			l.DamID, changed = nil, true
		}
		if changed {
			r.s.litters[lid] = l
		}
	}
	for aid, a := range r.s.attachments {
		if a.DogID == id {
			delete(r.s.attachments, aid)
		}
	}
	return nil
}
