// Package pedigree assembles ancestor trees and checks lineage rules over
// the dog sire/dam graph.
package pedigree

import (
	"context"
	"fmt"

	"kennel-registry/internal/data/entity"

	"github.com/google/uuid"
)

// Loader resolves dogs by id. Unknown ids are skipped, not reported.
type Loader interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Dog, error)
}

func parentIDs(d *entity.Dog) []uuid.UUID {
	var ids []uuid.UUID
	if d.SireID != nil {
		ids = append(ids, *d.SireID)
	}
	if d.DamID != nil {
		ids = append(ids, *d.DamID)
	}
	return ids
}

// LoadAncestors fetches the ancestors of roots up to depth generations
// above them, one query per generation. The roots are included in the
// result. depth < 0 walks until the graph is exhausted.
func LoadAncestors(ctx context.Context, loader Loader, roots []*entity.Dog, depth int) (map[uuid.UUID]*entity.Dog, error) {
	known := make(map[uuid.UUID]*entity.Dog, len(roots))
	var frontier []uuid.UUID
	for _, r := range roots {
		known[r.ID] = r
		frontier = append(frontier, parentIDs(r)...)
	}

	for gen := 0; len(frontier) > 0 && (depth < 0 || gen < depth); gen++ {
		var missing []uuid.UUID
		seen := make(map[uuid.UUID]bool, len(frontier))
		for _, id := range frontier {
			if _, ok := known[id]; !ok && !seen[id] {
				seen[id] = true
				missing = append(missing, id)
			}
		}
		if len(missing) == 0 {
			break
		}

		dogs, err := loader.FindByIDs(ctx, missing)
		if err != nil {
			return nil, fmt.Errorf("load ancestors generation %d: %w", gen+1, err)
		}

		frontier = frontier[:0]
		for _, d := range dogs {
			known[d.ID] = d
			frontier = append(frontier, parentIDs(d)...)
		}
	}

	return known, nil
}
