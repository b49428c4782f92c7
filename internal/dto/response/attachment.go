package response

import (
	"time"

	"kennel-registry/internal/data/entity"
)

type AttachmentResponse struct {
	ID              string                `json:"id"`
	DogID           string                `json:"dogId"`
	Kind            entity.AttachmentKind `json:"kind"`
	Title           *string               `json:"title"`
	ContentType     string                `json:"contentType"`
	SizeBytes       int64                 `json:"sizeBytes"`
	SortOrder       int                   `json:"sortOrder"`
	IsPrimary       bool                  `json:"isPrimary"`
	CertificateType *string               `json:"certificateType,omitempty"`
	IssuedBy        *string               `json:"issuedBy,omitempty"`
	IssuedAt        *string               `json:"issuedAt,omitempty"`
	URL             string                `json:"url"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
}

func AttachmentToResponse(a *entity.Attachment) AttachmentResponse {
	return AttachmentResponse{
		ID:              a.ID.String(),
		DogID:           a.DogID.String(),
		Kind:            a.Kind,
		Title:           a.Title,
		ContentType:     a.ContentType,
		SizeBytes:       a.SizeBytes,
		SortOrder:       a.SortOrder,
		IsPrimary:       a.IsPrimary,
		CertificateType: a.CertificateType,
		IssuedBy:        a.IssuedBy,
		IssuedAt:        formatDate(a.IssuedAt),
		URL:             "/api/attachments/" + a.ID.String() + "/content",
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func AttachmentsToResponse(atts []*entity.Attachment) []AttachmentResponse {
	out := make([]AttachmentResponse, 0, len(atts))
	for _, a := range atts {
		out = append(out, AttachmentToResponse(a))
	}
	return out
}
