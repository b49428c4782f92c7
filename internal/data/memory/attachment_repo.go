package memory

import (
	"context"

	"kennel-registry/internal/data/entity"

	"github.com/google/uuid"
)

type attachmentRepo struct {
	s *store
}

func (r *attachmentRepo) clearPrimary(dogID uuid.UUID, kind entity.AttachmentKind) {
	for id, a := range r.s.attachments {
		if a.DogID == dogID && a.Kind == kind && a.IsPrimary {
			a.IsPrimary = false
			r.s.attachments[id] = a
		}
	}
}

func (r *attachmentRepo) Create(ctx context.Context, att *entity.Attachment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.dogs[att.DogID]; !ok {
		return notFound("dog", att.DogID)
	}
	for _, a := range r.s.attachments {
		if a.StorageKey == att.StorageKey {
			return duplicate("storage key", att.StorageKey)
		}
	}
	if att.IsPrimary {
		r.clearPrimary(att.DogID, att.Kind)
	}
	r.s.attachments[att.ID] = *att
	return nil
}

func (r *attachmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Attachment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.attachments[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *attachmentRepo) FindByDog(ctx context.Context, dogID uuid.UUID, kind entity.AttachmentKind) ([]*entity.Attachment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*entity.Attachment
	for _, a := range r.s.attachments {
		if a.DogID == dogID && a.Kind == kind {
			out = append(out, &a)
		}
	}
	sortBy(out, func(a, b *entity.Attachment) bool {
		if a.IsPrimary != b.IsPrimary {
			return a.IsPrimary
		}
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	return out, nil
}

func (r *attachmentRepo) Update(ctx context.Context, att *entity.Attachment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.attachments[att.ID]
	if !ok {
		return notFound("attachment", att.ID)
	}
	cur.Title = att.Title
	cur.SortOrder = att.SortOrder
	cur.CertificateType = att.CertificateType
	cur.IssuedBy = att.IssuedBy
	cur.IssuedAt = att.IssuedAt
	cur.UpdatedAt = att.UpdatedAt
	r.s.attachments[att.ID] = cur
	return nil
}

func (r *attachmentRepo) SetPrimary(ctx context.Context, att *entity.Attachment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.attachments[att.ID]
	if !ok {
		return notFound("attachment", att.ID)
	}
	r.clearPrimary(cur.DogID, cur.Kind)
	cur.IsPrimary = true
	cur.UpdatedAt = att.UpdatedAt
	r.s.attachments[att.ID] = cur
	att.IsPrimary = true
	return nil
}

func (r *attachmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.attachments[id]; !ok {
		return notFound("attachment", id)
	}
	delete(r.s.attachments, id)
	return nil
}
