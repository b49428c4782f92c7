// Package memory holds map-backed implementations of the repository
// interfaces. They serve DB_DRIVER=memory and the test suites, and emulate
// the foreign key and unique index behavior of the postgres schema.
package memory

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"kennel-registry/internal/data/entity"
	"kennel-registry/internal/data/repository"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("not found")

// store is shared by every repository view so deletes can cascade across
// tables under one lock.
type store struct {
	mu          sync.RWMutex
	users       map[uuid.UUID]entity.User
	sessions    map[uuid.UUID]entity.Session
	kennels     map[uuid.UUID]entity.Kennel
	dogs        map[uuid.UUID]entity.Dog
	litters     map[uuid.UUID]entity.Litter
	attachments map[uuid.UUID]entity.Attachment
}

func newStore() *store {
	return &store{
		users:       make(map[uuid.UUID]entity.User),
		sessions:    make(map[uuid.UUID]entity.Session),
		kennels:     make(map[uuid.UUID]entity.Kennel),
		dogs:        make(map[uuid.UUID]entity.Dog),
		litters:     make(map[uuid.UUID]entity.Litter),
		attachments: make(map[uuid.UUID]entity.Attachment),
	}
}

// NewRepository returns a fresh, empty in-memory registry.
func NewRepository() *repository.Repository {
	s := newStore()
	return &repository.Repository{
		User:       &userRepo{s: s},
		Session:    &sessionRepo{s: s},
		Kennel:     &kennelRepo{s: s},
		Dog:        &dogRepo{s: s},
		Litter:     &litterRepo{s: s},
		Attachment: &attachmentRepo{s: s},
	}
}

func duplicate(what, value string) error {
	return fmt.Errorf("%w: %s %q", repository.ErrDuplicate, what, value)
}

func notFound(what string, id uuid.UUID) error {
	return fmt.Errorf("%s %s: %w", what, id.String(), ErrNotFound)
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func ptrContainsFold(s *string, sub string) bool {
	return s != nil && containsFold(*s, sub)
}

func sameID(a *uuid.UUID, b uuid.UUID) bool {
	return a != nil && *a == b
}

func samePtr(a, b *string) bool {
	return a != nil && b != nil && *a == *b
}

// page applies offset and limit the way LIMIT/OFFSET does.
func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit >= 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func sortBy[T any](items []T, less func(a, b T) bool) {
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
}
