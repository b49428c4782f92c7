package entity

import (
	"time"

	"github.com/google/uuid"
)

type AttachmentKind string

const (
	AttachmentPhoto       AttachmentKind = "PHOTO"
	AttachmentCertificate AttachmentKind = "CERTIFICATE"
)

// Attachment is a photo or certificate file owned by a dog. At most one
// attachment per dog and kind carries IsPrimary.
type Attachment struct {
	Base
	DogID       uuid.UUID      `db:"dog_id"`
	Kind        AttachmentKind `db:"kind"`
	Title       *string        `db:"title"`
	StorageKey  string         `db:"storage_key"`
	ContentType string         `db:"content_type"`
	SizeBytes   int64          `db:"size_bytes"`
	SortOrder   int            `db:"sort_order"`
	IsPrimary   bool           `db:"is_primary"`

	CertificateType *string    `db:"certificate_type"`
	IssuedBy        *string    `db:"issued_by"`
	IssuedAt        *time.Time `db:"issued_at"`
}
