package pedigree

import (
	"context"
	"sort"

	"kennel-registry/internal/data/entity"

	"github.com/google/uuid"
)

// Inbreeding is the result of a coefficient computation.
type Inbreeding struct {
	Coefficient     float64
	Generations     int
	CommonAncestors []*entity.Dog
}

// Coefficient computes Wright's coefficient of inbreeding of a mating
// between sire and dam by recursive coancestry over their ancestors loaded
// to the given number of generations. Ancestors beyond that depth count as
// unrelated.
func Coefficient(ctx context.Context, loader Loader, sire, dam *entity.Dog, generations int) (*Inbreeding, error) {
	res := &Inbreeding{Generations: generations}
	if sire == nil || dam == nil {
		return res, nil
	}

	depth := generations - 1
	if depth < 0 {
		depth = 0
	}
	known, err := LoadAncestors(ctx, loader, []*entity.Dog{sire, dam}, depth)
	if err != nil {
		return nil, err
	}

	k := newKinship(known)
	res.Coefficient = k.kin(sire.ID, dam.ID)
	res.CommonAncestors = commonAncestors(known, sire.ID, dam.ID)
	return res, nil
}

// DogCoefficient computes the coefficient of an existing dog from its
// recorded parents. generations counts from the parents upward.
func DogCoefficient(ctx context.Context, loader Loader, dog *entity.Dog, generations int) (*Inbreeding, error) {
	parents, err := LoadAncestors(ctx, loader, []*entity.Dog{dog}, 1)
	if err != nil {
		return nil, err
	}
	return Coefficient(ctx, loader, lookup(parents, dog.SireID), lookup(parents, dog.DamID), generations)
}

type pair struct{ a, b uuid.UUID }

type kinship struct {
	known map[uuid.UUID]*entity.Dog
	rank  map[uuid.UUID]int
	memo  map[pair]float64
}

func newKinship(known map[uuid.UUID]*entity.Dog) *kinship {
	return &kinship{
		known: known,
		rank:  make(map[uuid.UUID]int, len(known)),
		memo:  make(map[pair]float64),
	}
}

func (k *kinship) parents(id uuid.UUID) (sire, dam *uuid.UUID) {
	d := k.known[id]
	if d == nil {
		return nil, nil
	}
	if d.SireID != nil && k.known[*d.SireID] != nil {
		sire = d.SireID
	}
	if d.DamID != nil && k.known[*d.DamID] != nil {
		dam = d.DamID
	}
	return sire, dam
}

// order returns a rank strictly greater than that of every known ancestor,
// so expanding the higher ranked dog never expands an ancestor of the other.
func (k *kinship) order(id uuid.UUID) int {
	if r, ok := k.rank[id]; ok {
		return r
	}
	k.rank[id] = 0
	r := 1
	sire, dam := k.parents(id)
	if sire != nil {
		r = max(r, k.order(*sire)+1)
	}
	if dam != nil {
		r = max(r, k.order(*dam)+1)
	}
	k.rank[id] = r
	return r
}

func (k *kinship) self(id uuid.UUID) float64 {
	sire, dam := k.parents(id)
	if sire == nil || dam == nil {
		return 0.5
	}
	return 0.5 * (1 + k.kin(*sire, *dam))
}

// kin is the coefficient of coancestry of a and b.
func (k *kinship) kin(a, b uuid.UUID) float64 {
	if a == b {
		return k.self(a)
	}
	if k.order(a) < k.order(b) {
		a, b = b, a
	}
	key := pair{a, b}
	if v, ok := k.memo[key]; ok {
		return v
	}
	k.memo[key] = 0

	var v float64
	sire, dam := k.parents(a)
	if sire != nil {
		v += 0.5 * k.kin(*sire, b)
	}
	if dam != nil {
		v += 0.5 * k.kin(*dam, b)
	}
	k.memo[key] = v
	return v
}

func ancestorSet(known map[uuid.UUID]*entity.Dog, id uuid.UUID) map[uuid.UUID]bool {
	set := map[uuid.UUID]bool{}
	stack := []uuid.UUID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		d := known[cur]
		if d == nil || set[cur] {
			continue
		}
		set[cur] = true
		stack = append(stack, parentIDs(d)...)
	}
	return set
}

func commonAncestors(known map[uuid.UUID]*entity.Dog, sireID, damID uuid.UUID) []*entity.Dog {
	left := ancestorSet(known, sireID)
	right := ancestorSet(known, damID)

	var out []*entity.Dog
	for id := range left {
		if right[id] {
			out = append(out, known[id])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RegisteredName < out[j].RegisteredName })
	return out
}
