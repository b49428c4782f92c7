package pedigree

import (
	"context"

	"kennel-registry/internal/data/entity"

	"github.com/google/uuid"
)

// Generations is the depth of the displayed pedigree: the dog, its parents
// and its grandparents.
const Generations = 3

const UnknownName = "Unknown"

// Node is one slot of a pedigree tree. Dog is nil for an unknown ancestor.
// Sire and Dam are nil only on the last generation.
type Node struct {
	Dog  *entity.Dog
	Sire *Node
	Dam  *Node
}

func (n *Node) Known() bool {
	return n != nil && n.Dog != nil
}

func (n *Node) Name() string {
	if !n.Known() {
		return UnknownName
	}
	return n.Dog.RegisteredName
}

// Build assembles a full binary tree of the given number of generations
// rooted at dog. Slots whose ancestor is not recorded hold unknown nodes,
// so one missing parent never hides the other branch.
func Build(ctx context.Context, loader Loader, dog *entity.Dog, generations int) (*Node, error) {
	if generations < 1 {
		generations = 1
	}
	known, err := LoadAncestors(ctx, loader, []*entity.Dog{dog}, generations-1)
	if err != nil {
		return nil, err
	}
	return grow(known, dog, generations), nil
}

func grow(known map[uuid.UUID]*entity.Dog, dog *entity.Dog, remaining int) *Node {
	n := &Node{Dog: dog}
	if remaining <= 1 {
		return n
	}

	var sire, dam *entity.Dog
	if dog != nil {
		sire = lookup(known, dog.SireID)
		dam = lookup(known, dog.DamID)
	}
	n.Sire = grow(known, sire, remaining-1)
	n.Dam = grow(known, dam, remaining-1)
	return n
}

func lookup(known map[uuid.UUID]*entity.Dog, id *uuid.UUID) *entity.Dog {
	if id == nil {
		return nil
	}
	return known[*id]
}

// Rows flattens the tree by generation, left to right, sire before dam.
// Row g holds 2^g slots.
func (n *Node) Rows() [][]*Node {
	var rows [][]*Node
	level := []*Node{n}
	for len(level) > 0 && level[0] != nil {
		rows = append(rows, level)
		var next []*Node
		for _, slot := range level {
			if slot.Sire == nil {
				next = nil
				break
			}
			next = append(next, slot.Sire, slot.Dam)
		}
		level = next
	}
	return rows
}
