package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"kennel-registry/internal/data/entity"
	"kennel-registry/internal/data/repository"
	"kennel-registry/internal/dto/request"
	"kennel-registry/internal/dto/response"
	"kennel-registry/pkg/blob"
	"kennel-registry/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Upload is a file received from a multipart form.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type AttachmentService interface {
	List(ctx context.Context, dogID string, kind entity.AttachmentKind) ([]response.AttachmentResponse, error)
	Upload(ctx context.Context, dogID string, kind entity.AttachmentKind, file Upload, req *request.AttachmentUploadRequest) (*response.AttachmentResponse, error)
	// Open returns the attachment and its content. The caller closes the reader.
	Open(ctx context.Context, id string) (*entity.Attachment, io.ReadCloser, error)
	Update(ctx context.Context, id string, req *request.AttachmentUpdateRequest) (*response.AttachmentResponse, error)
	Delete(ctx context.Context, id string) error
}

type attachmentService struct {
	repo    *repository.Repository
	store   blob.Store
	maxSize int64
	log     *zap.Logger
}

func NewAttachmentService(repo *repository.Repository, store blob.Store, config *utils.Config, log *zap.Logger) AttachmentService {
	return &attachmentService{
		repo:    repo,
		store:   store,
		maxSize: config.Blob.MaxUploadSize,
		log:     log.With(zap.String("service", "attachment")),
	}
}

var allowedContentTypes = map[entity.AttachmentKind][]string{
	entity.AttachmentPhoto:       {"image/jpeg", "image/png", "image/webp", "image/gif"},
	entity.AttachmentCertificate: {"application/pdf", "image/jpeg", "image/png", "image/webp"},
}

func contentTypeAllowed(kind entity.AttachmentKind, contentType string) bool {
	base, _, _ := strings.Cut(contentType, ";")
	base = strings.ToLower(strings.TrimSpace(base))
	for _, ct := range allowedContentTypes[kind] {
		if ct == base {
			return true
		}
	}
	return false
}

var extPattern = regexp.MustCompile(`^\.[a-z0-9]{1,5}$`)

// storageKey places the blob under its dog and kind, keeping a sane
// extension from the uploaded filename.
func storageKey(dogID, attID uuid.UUID, kind entity.AttachmentKind, filename string) string {
	folder := "photos"
	if kind == entity.AttachmentCertificate {
		folder = "certificates"
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !extPattern.MatchString(ext) {
		ext = ""
	}
	return fmt.Sprintf("dogs/%s/%s/%s%s", dogID, folder, attID, ext)
}

func (s *attachmentService) List(ctx context.Context, dogID string, kind entity.AttachmentKind) ([]response.AttachmentResponse, error) {
	dog, err := findDog(ctx, s.repo, dogID)
	if err != nil {
		return nil, err
	}
	atts, err := s.repo.Attachment.FindByDog(ctx, dog.ID, kind)
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	return response.AttachmentsToResponse(atts), nil
}

func (s *attachmentService) Upload(ctx context.Context, dogID string, kind entity.AttachmentKind, file Upload, req *request.AttachmentUploadRequest) (*response.AttachmentResponse, error) {
	req.Normalize()
	if errs := utils.ValidateStruct(req); errs != nil {
		return nil, errs
	}
	dog, err := findDog(ctx, s.repo, dogID)
	if err != nil {
		return nil, err
	}
	if file.Body == nil {
		return nil, utils.NewFieldError("file", "This field is required")
	}
	if !contentTypeAllowed(kind, file.ContentType) {
		return nil, utils.NewFieldError("file", "Unsupported file type "+file.ContentType)
	}
	if s.maxSize > 0 && file.Size > s.maxSize {
		return nil, ErrTooLarge
	}

	issuedAt, err := parseDate("issuedAt", req.IssuedAt)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	att := &entity.Attachment{
		Base:        entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		DogID:       dog.ID,
		Kind:        kind,
		Title:       clean(req.Title),
		ContentType: file.ContentType,
		SortOrder:   req.SortOrder,
		IsPrimary:   req.IsPrimary,
	}
	att.StorageKey = storageKey(dog.ID, att.ID, kind, file.Filename)
	if kind == entity.AttachmentCertificate {
		att.CertificateType = clean(req.CertificateType)
		att.IssuedBy = clean(req.IssuedBy)
		att.IssuedAt = issuedAt
	}

	body := file.Body
	if s.maxSize > 0 {
		body = io.LimitReader(body, s.maxSize+1)
	}
	info, err := s.store.Put(ctx, att.StorageKey, body, att.ContentType)
	if err != nil {
		return nil, fmt.Errorf("store attachment: %w", err)
	}
	if s.maxSize > 0 && info.Size > s.maxSize {
		s.removeBlob(ctx, att.StorageKey)
		return nil, ErrTooLarge
	}
	att.SizeBytes = info.Size

	if err := s.repo.Attachment.Create(ctx, att); err != nil {
		s.removeBlob(ctx, att.StorageKey)
		return nil, fmt.Errorf("create attachment: %w", err)
	}

	s.log.Info("Attachment uploaded",
		zap.String("attachment_id", att.ID.String()),
		zap.String("dog_id", dog.ID.String()),
		zap.String("kind", string(kind)),
		zap.Int64("size", att.SizeBytes))
	resp := response.AttachmentToResponse(att)
	return &resp, nil
}

func (s *attachmentService) removeBlob(ctx context.Context, key string) {
	if _, err := s.store.Delete(ctx, key); err != nil {
		s.log.Warn("Failed to delete attachment blob", zap.Error(err), zap.String("key", key))
	}
}

func (s *attachmentService) find(ctx context.Context, rawID string) (*entity.Attachment, error) {
	id, err := parseID("id", rawID)
	if err != nil {
		return nil, err
	}
	att, err := s.repo.Attachment.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find attachment: %w", err)
	}
	if att == nil {
		return nil, ErrAttachmentNotFound
	}
	return att, nil
}

func (s *attachmentService) Open(ctx context.Context, id string) (*entity.Attachment, io.ReadCloser, error) {
	att, err := s.find(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	_, rc, err := s.store.Get(ctx, att.StorageKey)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			s.log.Warn("Attachment content missing", zap.String("key", att.StorageKey))
			return nil, nil, ErrAttachmentNotFound
		}
		return nil, nil, fmt.Errorf("open attachment: %w", err)
	}
	return att, rc, nil
}

// Update changes metadata. isPrimary=true promotes the attachment; false is
// a no-op since another attachment must be promoted instead.
func (s *attachmentService) Update(ctx context.Context, id string, req *request.AttachmentUpdateRequest) (*response.AttachmentResponse, error) {
	if errs := utils.ValidateStruct(req); errs != nil {
		return nil, errs
	}
	att, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		att.Title = clean(req.Title)
	}
	if req.SortOrder != nil {
		att.SortOrder = *req.SortOrder
	}
	att.UpdatedAt = time.Now()

	if err := s.repo.Attachment.Update(ctx, att); err != nil {
		return nil, fmt.Errorf("update attachment: %w", err)
	}
	if req.IsPrimary != nil && *req.IsPrimary && !att.IsPrimary {
		if err := s.repo.Attachment.SetPrimary(ctx, att); err != nil {
			return nil, fmt.Errorf("set primary attachment: %w", err)
		}
	}

	resp := response.AttachmentToResponse(att)
	return &resp, nil
}

func (s *attachmentService) Delete(ctx context.Context, id string) error {
	att, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Attachment.Delete(ctx, att.ID); err != nil {
		return fmt.Errorf("delete attachment: %w", err)
	}
	s.removeBlob(ctx, att.StorageKey)
	s.log.Info("Attachment deleted", zap.String("attachment_id", att.ID.String()))
	return nil
}
