package adaptor

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"kennel-registry/internal/data/entity"
	"kennel-registry/internal/dto/request"
	"kennel-registry/internal/usecase"
	"kennel-registry/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// multipartOverhead is allowed on top of the file size limit for the form
// fields and part headers.
const multipartOverhead = 1 << 20

type AttachmentHandler struct {
	service usecase.AttachmentService
	maxSize int64
	log     *zap.Logger
}

func NewAttachmentHandler(service usecase.AttachmentService, maxSize int64, log *zap.Logger) *AttachmentHandler {
	return &AttachmentHandler{
		service: service,
		maxSize: maxSize,
		log:     log.With(zap.String("handler", "attachment")),
	}
}

func (h *AttachmentHandler) list(w http.ResponseWriter, r *http.Request, kind entity.AttachmentKind) {
	atts, err := h.service.List(r.Context(), chi.URLParam(r, "id"), kind)
	if err != nil {
		handleServiceError(w, h.log, err, "list attachments")
		return
	}

	utils.ResponseSuccess(w, "Attachments retrieved successfully", atts)
}

// ListPhotos godoc
// @Summary Photos of a dog
// @Tags attachments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dog ID"
// @Success 200 {object} utils.Response{data=[]response.AttachmentResponse}
// @Failure 404 {object} utils.Response
// @Router /api/dogs/{id}/photos [get]
func (h *AttachmentHandler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, entity.AttachmentPhoto)
}

// ListCertificates godoc
// @Summary Certificates of a dog
// @Tags attachments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dog ID"
// @Success 200 {object} utils.Response{data=[]response.AttachmentResponse}
// @Failure 404 {object} utils.Response
// @Router /api/dogs/{id}/certificates [get]
func (h *AttachmentHandler) ListCertificates(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, entity.AttachmentCertificate)
}

func (h *AttachmentHandler) upload(w http.ResponseWriter, r *http.Request, kind entity.AttachmentKind) {
	if h.maxSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxSize+multipartOverhead)
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.ResponseTooLarge(w, usecase.ErrTooLarge.Error())
			return
		}
		utils.ResponseBadRequest(w, "Invalid multipart form", nil)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.ResponseValidation(w, utils.NewFieldError("file", "This field is required"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		sniff := make([]byte, 512)
		n, _ := io.ReadFull(file, sniff)
		contentType = http.DetectContentType(sniff[:n])
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			handleServiceError(w, h.log, err, "read upload")
			return
		}
	}

	req := request.AttachmentUploadRequest{
		IsPrimary: r.FormValue("isPrimary") == "true",
	}
	if v := r.FormValue("title"); v != "" {
		req.Title = &v
	}
	if v := r.FormValue("sortOrder"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			utils.ResponseValidation(w, utils.NewFieldError("sortOrder", "Must be a number"))
			return
		}
		req.SortOrder = n
	}
	if kind == entity.AttachmentCertificate {
		if v := r.FormValue("certificateType"); v != "" {
			req.CertificateType = &v
		}
		if v := r.FormValue("issuedBy"); v != "" {
			req.IssuedBy = &v
		}
		if v := r.FormValue("issuedAt"); v != "" {
			req.IssuedAt = &v
		}
	}

	upload := usecase.Upload{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Body:        file,
	}
	att, err := h.service.Upload(r.Context(), chi.URLParam(r, "id"), kind, upload, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "upload attachment")
		return
	}

	utils.ResponseCreated(w, "Attachment uploaded successfully", att)
}

// UploadPhoto godoc
// @Summary Upload a photo
// @Tags attachments
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dog ID"
// @Param file formData file true "Image (jpeg, png, webp, gif)"
// @Param title formData string false "Title"
// @Param sortOrder formData int false "Sort order"
// @Param isPrimary formData bool false "Make this the primary photo"
// @Success 201 {object} utils.Response{data=response.AttachmentResponse}
// @Failure 400 {object} utils.Response
// @Failure 413 {object} utils.Response
// @Router /api/dogs/{id}/photos [post]
func (h *AttachmentHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, entity.AttachmentPhoto)
}

// UploadCertificate godoc
// @Summary Upload a certificate
// @Tags attachments
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dog ID"
// @Param file formData file true "PDF or image"
// @Param title formData string false "Title"
// @Param certificateType formData string false "Certificate type"
// @Param issuedBy formData string false "Issuer"
// @Param issuedAt formData string false "Issue date (2006-01-02)"
// @Success 201 {object} utils.Response{data=response.AttachmentResponse}
// @Failure 400 {object} utils.Response
// @Failure 413 {object} utils.Response
// @Router /api/dogs/{id}/certificates [post]
func (h *AttachmentHandler) UploadCertificate(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, entity.AttachmentCertificate)
}

// Content godoc
// @Summary Download attachment content
// @Tags attachments
// @Produce octet-stream
// @Security BearerAuth
// @Param id path string true "Attachment ID"
// @Success 200 {file} file
// @Failure 404 {object} utils.Response
// @Router /api/attachments/{id}/content [get]
func (h *AttachmentHandler) Content(w http.ResponseWriter, r *http.Request) {
	att, rc, err := h.service.Open(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "open attachment")
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", att.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(att.SizeBytes, 10))
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		h.log.Warn("Attachment stream interrupted", zap.Error(err), zap.String("attachment_id", att.ID.String()))
	}
}

// Update godoc
// @Summary Update attachment metadata
// @Tags attachments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Attachment ID"
// @Param payload body request.AttachmentUpdateRequest true "Changes"
// @Success 200 {object} utils.Response{data=response.AttachmentResponse}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /api/attachments/{id} [put]
func (h *AttachmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.AttachmentUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	att, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update attachment")
		return
	}

	utils.ResponseSuccess(w, "Attachment updated successfully", att)
}

// Delete godoc
// @Summary Delete an attachment
// @Tags attachments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Attachment ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /api/attachments/{id} [delete]
func (h *AttachmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete attachment")
		return
	}

	utils.ResponseSuccess(w, "Attachment deleted successfully", nil)
}
