package adaptor

import (
	"net/http"

	"kennel-registry/internal/dto/request"
	"kennel-registry/internal/usecase"
	"kennel-registry/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type KennelHandler struct {
	service usecase.KennelService
	log     *zap.Logger
}

func NewKennelHandler(service usecase.KennelService, log *zap.Logger) *KennelHandler {
	return &KennelHandler{
		service: service,
		log:     log.With(zap.String("handler", "kennel")),
	}
}

// List godoc
// @Summary List kennels
// @Tags kennels
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param perPage query int false "Page size" default(20)
// @Param q query string false "Name, prefix or owner contains"
// @Success 200 {object} utils.Response{data=response.PaginatedResponse[response.KennelResponse]}
// @Router /api/kennels [get]
func (h *KennelHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	kennels, err := h.service.List(r.Context(), request.PaginationFromQuery(query), query.Get("q"))
	if err != nil {
		handleServiceError(w, h.log, err, "list kennels")
		return
	}

	utils.ResponseSuccess(w, "Kennels retrieved successfully", kennels)
}

// Get godoc
// @Summary Get a kennel with its dogs
// @Tags kennels
// @Produce json
// @Security BearerAuth
// @Param id path string true "Kennel ID"
// @Success 200 {object} utils.Response{data=response.KennelDetailResponse}
// @Failure 404 {object} utils.Response
// @Router /api/kennels/{id} [get]
func (h *KennelHandler) Get(w http.ResponseWriter, r *http.Request) {
	kennel, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get kennel")
		return
	}

	utils.ResponseSuccess(w, "Kennel retrieved successfully", kennel)
}

// Create godoc
// @Summary Create a kennel
// @Tags kennels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body request.KennelRequest true "Kennel"
// @Success 201 {object} utils.Response{data=response.KennelResponse}
// @Failure 400 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /api/kennels [post]
func (h *KennelHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.KennelRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	kennel, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create kennel")
		return
	}

	utils.ResponseCreated(w, "Kennel created successfully", kennel)
}

// Update godoc
// @Summary Replace a kennel
// @Tags kennels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Kennel ID"
// @Param payload body request.KennelRequest true "Kennel"
// @Success 200 {object} utils.Response{data=response.KennelResponse}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /api/kennels/{id} [put]
func (h *KennelHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.KennelRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	kennel, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update kennel")
		return
	}

	utils.ResponseSuccess(w, "Kennel updated successfully", kennel)
}

// Delete godoc
// @Summary Delete a kennel
// @Description Dogs and litters of the kennel are kept without a kennel.
// @Tags kennels
// @Produce json
// @Security BearerAuth
// @Param id path string true "Kennel ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /api/kennels/{id} [delete]
func (h *KennelHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete kennel")
		return
	}

	utils.ResponseSuccess(w, "Kennel deleted successfully", nil)
}
