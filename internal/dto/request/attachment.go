package request

// AttachmentUploadRequest carries the form fields sent alongside the file
// of a multipart upload.
type AttachmentUploadRequest struct {
	Title           *string `json:"title,omitempty" validate:"omitempty,max=200"`
	SortOrder       int     `json:"sortOrder" validate:"gte=0,lte=10000"`
	IsPrimary       bool    `json:"isPrimary"`
	CertificateType *string `json:"certificateType,omitempty" validate:"omitempty,max=100"`
	IssuedBy        *string `json:"issuedBy,omitempty" validate:"omitempty,max=150"`
	IssuedAt        *string `json:"issuedAt,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type AttachmentUpdateRequest struct {
	Title     *string `json:"title,omitempty" validate:"omitempty,max=200"`
	SortOrder *int    `json:"sortOrder,omitempty" validate:"omitempty,gte=0,lte=10000"`
	IsPrimary *bool   `json:"isPrimary,omitempty"`
}
