package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"kennel-registry/internal/data/entity"
	"kennel-registry/internal/data/repository"

	"github.com/google/uuid"
)

func newDog(name string, sex entity.DogSex) *entity.Dog {
	now := time.Now()
	return &entity.Dog{
		Base:           entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		RegisteredName: name,
		Sex:            sex,
		Status:         entity.DogStatusActive,
	}
}

func TestDogSearchAndPaging(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	chip := "985112000123456"
	names := []string{"Cora vom Berg", "Anton vom Berg", "Bruno aus Tal"}
	for _, name := range names {
		d := newDog(name, entity.SexMale)
		if name == "Bruno aus Tal" {
			d.Microchip = &chip
		}
		if err := repo.Dog.Create(ctx, d); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	dogs, err := repo.Dog.FindAll(ctx, 10, 0, entity.DogFilter{Query: "VOM BERG"})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(dogs) != 2 || dogs[0].RegisteredName != "Anton vom Berg" {
		t.Fatalf("expected two sorted matches, got %d", len(dogs))
	}

	dogs, _ = repo.Dog.FindAll(ctx, 10, 0, entity.DogFilter{Query: "12345"})
	if len(dogs) != 1 || dogs[0].RegisteredName != "Bruno aus Tal" {
		t.Fatalf("expected microchip match")
	}

	dogs, _ = repo.Dog.FindAll(ctx, 1, 1, entity.DogFilter{})
	if len(dogs) != 1 || dogs[0].RegisteredName != "Bruno aus Tal" {
		t.Fatalf("expected second page to hold Bruno")
	}
	total, _ := repo.Dog.CountAll(ctx, entity.DogFilter{})
	if total != 3 {
		t.Fatalf("expected 3 dogs, got %d", total)
	}
}

func TestDogUniqueIndexes(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	reg := "SZ 2201234"

	first := newDog("First", entity.SexFemale)
	first.RegistrationNumber = &reg
	if err := repo.Dog.Create(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}

	second := newDog("Second", entity.SexFemale)
	same := reg
	second.RegistrationNumber = &same
	if err := repo.Dog.Create(ctx, second); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected duplicate, got %v", err)
	}

	first.RegisteredName = "First Renamed"
	if err := repo.Dog.Update(ctx, first); err != nil {
		t.Fatalf("update keeping own number: %v", err)
	}
}

func TestDogDeleteDetachesRelations(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	sire := newDog("Sire", entity.SexMale)
	pup := newDog("Pup", entity.SexFemale)
	pup.SireID = &sire.ID
	for _, d := range []*entity.Dog{sire, pup} {
		if err := repo.Dog.Create(ctx, d); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	if err := repo.Dog.Delete(ctx, sire.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, _ := repo.Dog.FindByID(ctx, pup.ID)
	if got == nil || got.SireID != nil {
		t.Fatalf("expected pup kept with sire cleared, got %+v", got)
	}
	if err := repo.Dog.Delete(ctx, sire.ID); err == nil {
		t.Fatalf("expected error deleting a missing dog")
	}
}

func TestFindOffspringOrderingOnSireSide(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	sire := newDog("Sire", entity.SexMale)
	if err := repo.Dog.Create(ctx, sire); err != nil {
		t.Fatalf("create sire: %v", err)
	}
	born := func(s string) *time.Time {
		d, _ := time.Parse("2006-01-02", s)
		return &d
	}
	for _, pup := range []struct {
		name string
		dob  *time.Time
	}{
		{"Zed", born("2020-05-01")},
		{"Amy", born("2021-05-01")},
		{"Bob", born("2020-05-01")},
		{"Cat", nil},
	} {
		d := newDog(pup.name, entity.SexFemale)
		d.SireID = &sire.ID
		d.DateOfBirth = pup.dob
		if err := repo.Dog.Create(ctx, d); err != nil {
			t.Fatalf("create %s: %v", pup.name, err)
		}
	}

	dogs, err := repo.Dog.FindOffspring(ctx, sire.ID, 10)
	if err != nil {
		t.Fatalf("offspring: %v", err)
	}
	want := []string{"Bob", "Zed", "Amy", "Cat"}
	if len(dogs) != len(want) {
		t.Fatalf("expected %d offspring, got %d", len(want), len(dogs))
	}
	for i, name := range want {
		if dogs[i].RegisteredName != name {
			t.Fatalf("position %d: expected %s, got %s", i, name, dogs[i].RegisteredName)
		}
	}

	dogs, err = repo.Dog.FindOffspring(ctx, sire.ID, 3)
	if err != nil {
		t.Fatalf("offspring: %v", err)
	}
	if len(dogs) != 3 || dogs[2].RegisteredName != "Amy" {
		t.Fatalf("expected limit to cut after Amy, got %d", len(dogs))
	}
}
