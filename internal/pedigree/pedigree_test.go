package pedigree

import (
	"context"
	"errors"
	"math"
	"testing"

	"kennel-registry/internal/data/entity"

	"github.com/google/uuid"
)

type mapLoader map[uuid.UUID]*entity.Dog

func (m mapLoader) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.Dog, error) {
	var out []*entity.Dog
	for _, id := range ids {
		if d, ok := m[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m mapLoader) add(name string, sex entity.DogSex, sire, dam *entity.Dog) *entity.Dog {
	d := &entity.Dog{RegisteredName: name, Sex: sex, Status: entity.DogStatusActive}
	d.ID = uuid.New()
	if sire != nil {
		d.SireID = &sire.ID
	}
	if dam != nil {
		d.DamID = &dam.ID
	}
	m[d.ID] = d
	return d
}

func TestBuildMissingDamRendersUnknownAndKeepsSireBranch(t *testing.T) {
	dogs := mapLoader{}
	gs := dogs.add("Grand Sire", entity.SexMale, nil, nil)
	gd := dogs.add("Grand Dam", entity.SexFemale, nil, nil)
	sire := dogs.add("Sire", entity.SexMale, gs, gd)
	pup := dogs.add("Pup", entity.SexFemale, sire, nil)

	tree, err := Build(context.Background(), dogs, pup, Generations)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if tree.Dam.Known() || tree.Dam.Name() != UnknownName {
		t.Fatalf("dam = %q, want %q", tree.Dam.Name(), UnknownName)
	}
	if tree.Dam.Sire.Name() != UnknownName || tree.Dam.Dam.Name() != UnknownName {
		t.Fatalf("dam-side grandparents should be unknown")
	}
	if tree.Sire.Name() != "Sire" {
		t.Fatalf("sire = %q", tree.Sire.Name())
	}
	if tree.Sire.Sire.Name() != "Grand Sire" || tree.Sire.Dam.Name() != "Grand Dam" {
		t.Fatalf("sire-side grandparents = %q, %q", tree.Sire.Sire.Name(), tree.Sire.Dam.Name())
	}
	if tree.Sire.Sire.Sire != nil {
		t.Fatalf("tree deeper than %d generations", Generations)
	}
}

func TestRowsShape(t *testing.T) {
	dogs := mapLoader{}
	pup := dogs.add("Alone", entity.SexMale, nil, nil)

	tree, err := Build(context.Background(), dogs, pup, Generations)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	rows := tree.Rows()
	if len(rows) != Generations {
		t.Fatalf("rows = %d, want %d", len(rows), Generations)
	}
	for g, row := range rows {
		if want := 1 << g; len(row) != want {
			t.Fatalf("row %d has %d slots, want %d", g, len(row), want)
		}
	}
}

func TestCheckParents(t *testing.T) {
	dogs := mapLoader{}
	male := dogs.add("Male", entity.SexMale, nil, nil)
	female := dogs.add("Female", entity.SexFemale, nil, nil)
	self := uuid.New()
	missing := uuid.New()

	tests := []struct {
		name      string
		sireID    *uuid.UUID
		sire      *entity.Dog
		damID     *uuid.UUID
		dam       *entity.Dog
		wantField string
	}{
		{name: "valid pair", sireID: &male.ID, sire: male, damID: &female.ID, dam: female},
		{name: "no parents"},
		{name: "female sire", sireID: &female.ID, sire: female, wantField: "sireId"},
		{name: "male dam", damID: &male.ID, dam: male, wantField: "damId"},
		{name: "own sire", sireID: &self, wantField: "sireId"},
		{name: "own dam", damID: &self, wantField: "damId"},
		{name: "missing dam", damID: &missing, wantField: "damId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckParents(self, tt.sireID, tt.sire, tt.damID, tt.dam)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var v *Violation
			if !errors.As(err, &v) {
				t.Fatalf("expected Violation, got %v", err)
			}
			if v.Field != tt.wantField {
				t.Fatalf("field = %q, want %q", v.Field, tt.wantField)
			}
		})
	}
}

func TestCheckAncestryRejectsCycle(t *testing.T) {
	dogs := mapLoader{}
	root := dogs.add("Root", entity.SexMale, nil, nil)
	child := dogs.add("Child", entity.SexMale, root, nil)
	grandchild := dogs.add("Grandchild", entity.SexMale, child, nil)

	err := CheckAncestry(context.Background(), dogs, root.ID, grandchild, nil)
	var v *Violation
	if !errors.As(err, &v) || v.Field != "sireId" {
		t.Fatalf("expected sireId violation, got %v", err)
	}

	outsider := dogs.add("Outsider", entity.SexMale, nil, nil)
	if err := CheckAncestry(context.Background(), dogs, root.ID, outsider, nil); err != nil {
		t.Fatalf("unrelated sire rejected: %v", err)
	}
}

func assertCOI(t *testing.T, got *Inbreeding, want float64) {
	t.Helper()
	if math.Abs(got.Coefficient-want) > 1e-9 {
		t.Fatalf("coefficient = %v, want %v", got.Coefficient, want)
	}
}

func TestCoefficient(t *testing.T) {
	ctx := context.Background()
	dogs := mapLoader{}
	a := dogs.add("A", entity.SexMale, nil, nil)
	b := dogs.add("B", entity.SexFemale, nil, nil)
	c := dogs.add("C", entity.SexFemale, nil, nil)
	brother := dogs.add("Brother", entity.SexMale, a, b)
	sister := dogs.add("Sister", entity.SexFemale, a, b)
	halfSister := dogs.add("Half Sister", entity.SexFemale, a, c)
	daughter := dogs.add("Daughter", entity.SexFemale, a, c)
	stranger := dogs.add("Stranger", entity.SexFemale, nil, nil)

	t.Run("full siblings", func(t *testing.T) {
		res, err := Coefficient(ctx, dogs, brother, sister, 6)
		if err != nil {
			t.Fatal(err)
		}
		assertCOI(t, res, 0.25)
		if len(res.CommonAncestors) != 2 {
			t.Fatalf("common ancestors = %d, want 2", len(res.CommonAncestors))
		}
	})

	t.Run("half siblings", func(t *testing.T) {
		res, err := Coefficient(ctx, dogs, brother, halfSister, 6)
		if err != nil {
			t.Fatal(err)
		}
		assertCOI(t, res, 0.125)
	})

	t.Run("parent and offspring", func(t *testing.T) {
		res, err := Coefficient(ctx, dogs, a, daughter, 6)
		if err != nil {
			t.Fatal(err)
		}
		assertCOI(t, res, 0.25)
	})

	t.Run("unrelated", func(t *testing.T) {
		res, err := Coefficient(ctx, dogs, brother, stranger, 6)
		if err != nil {
			t.Fatal(err)
		}
		assertCOI(t, res, 0)
	})

	t.Run("depth limit hides shared grandparents", func(t *testing.T) {
		res, err := Coefficient(ctx, dogs, brother, sister, 1)
		if err != nil {
			t.Fatal(err)
		}
		assertCOI(t, res, 0)
	})

	t.Run("recorded dog", func(t *testing.T) {
		pup := dogs.add("Pup", entity.SexMale, brother, sister)
		res, err := DogCoefficient(ctx, dogs, pup, 6)
		if err != nil {
			t.Fatal(err)
		}
		assertCOI(t, res, 0.25)
	})
}
