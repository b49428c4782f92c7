package adaptor

import (
	"net/http"

	"kennel-registry/internal/dto/request"
	"kennel-registry/internal/usecase"
	"kennel-registry/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type LitterHandler struct {
	service usecase.LitterService
	log     *zap.Logger
}

func NewLitterHandler(service usecase.LitterService, log *zap.Logger) *LitterHandler {
	return &LitterHandler{
		service: service,
		log:     log.With(zap.String("handler", "litter")),
	}
}

// List godoc
// @Summary List litters
// @Tags litters
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param perPage query int false "Page size" default(20)
// @Param kennelId query string false "Kennel ID"
// @Success 200 {object} utils.Response{data=response.PaginatedResponse[response.LitterResponse]}
// @Router /api/litters [get]
func (h *LitterHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	litters, err := h.service.List(r.Context(), request.PaginationFromQuery(query), query.Get("kennelId"))
	if err != nil {
		handleServiceError(w, h.log, err, "list litters")
		return
	}

	utils.ResponseSuccess(w, "Litters retrieved successfully", litters)
}

// Get godoc
// @Summary Get a litter with its puppies
// @Tags litters
// @Produce json
// @Security BearerAuth
// @Param id path string true "Litter ID"
// @Success 200 {object} utils.Response{data=response.LitterDetailResponse}
// @Failure 404 {object} utils.Response
// @Router /api/litters/{id} [get]
func (h *LitterHandler) Get(w http.ResponseWriter, r *http.Request) {
	litter, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get litter")
		return
	}

	utils.ResponseSuccess(w, "Litter retrieved successfully", litter)
}

// Create godoc
// @Summary Create a litter
// @Tags litters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body request.LitterRequest true "Litter"
// @Success 201 {object} utils.Response{data=response.LitterResponse}
// @Failure 400 {object} utils.Response
// @Router /api/litters [post]
func (h *LitterHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.LitterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	litter, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create litter")
		return
	}

	utils.ResponseCreated(w, "Litter created successfully", litter)
}

// Update godoc
// @Summary Replace a litter
// @Tags litters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Litter ID"
// @Param payload body request.LitterRequest true "Litter"
// @Success 200 {object} utils.Response{data=response.LitterResponse}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /api/litters/{id} [put]
func (h *LitterHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.LitterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	litter, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update litter")
		return
	}

	utils.ResponseSuccess(w, "Litter updated successfully", litter)
}

// Delete godoc
// @Summary Delete a litter
// @Tags litters
// @Produce json
// @Security BearerAuth
// @Param id path string true "Litter ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /api/litters/{id} [delete]
func (h *LitterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete litter")
		return
	}

	utils.ResponseSuccess(w, "Litter deleted successfully", nil)
}
