package pedigree

import (
	"context"
	"fmt"

	"kennel-registry/internal/data/entity"

	"github.com/google/uuid"
)

// Violation is a lineage rule failure tied to the request field that
// caused it.
type Violation struct {
	Field   string
	Message string
}

func (v *Violation) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// CheckParents validates the proposed sire and dam of dogID. A nil id means
// the parent is not set; a set id with a nil record means it does not exist.
func CheckParents(dogID uuid.UUID, sireID *uuid.UUID, sire *entity.Dog, damID *uuid.UUID, dam *entity.Dog) error {
	if sireID != nil {
		switch {
		case *sireID == dogID:
			return &Violation{Field: "sireId", Message: "a dog cannot be its own sire"}
		case sire == nil:
			return &Violation{Field: "sireId", Message: "sire not found"}
		case sire.Sex != entity.SexMale:
			return &Violation{Field: "sireId", Message: "sire must be MALE"}
		}
	}
	if damID != nil {
		switch {
		case *damID == dogID:
			return &Violation{Field: "damId", Message: "a dog cannot be its own dam"}
		case dam == nil:
			return &Violation{Field: "damId", Message: "dam not found"}
		case dam.Sex != entity.SexFemale:
			return &Violation{Field: "damId", Message: "dam must be FEMALE"}
		}
	}
	return nil
}

// CheckAncestry reports a Violation when dogID appears among the ancestors
// of the proposed parents, which would close a cycle in the pedigree.
func CheckAncestry(ctx context.Context, loader Loader, dogID uuid.UUID, sire, dam *entity.Dog) error {
	for _, p := range []struct {
		field  string
		parent *entity.Dog
	}{{"sireId", sire}, {"damId", dam}} {
		if p.parent == nil {
			continue
		}
		ancestors, err := LoadAncestors(ctx, loader, []*entity.Dog{p.parent}, -1)
		if err != nil {
			return err
		}
		if _, ok := ancestors[dogID]; ok {
			return &Violation{Field: p.field, Message: "a dog cannot be its own ancestor"}
		}
	}
	return nil
}
