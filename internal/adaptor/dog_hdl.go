package adaptor

import (
	"net/http"

	"kennel-registry/internal/dto/request"
	"kennel-registry/internal/usecase"
	"kennel-registry/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type DogHandler struct {
	service  usecase.DogService
	pedigree usecase.PedigreeService
	log      *zap.Logger
}

func NewDogHandler(service usecase.DogService, pedigree usecase.PedigreeService, log *zap.Logger) *DogHandler {
	return &DogHandler{
		service:  service,
		pedigree: pedigree,
		log:      log.With(zap.String("handler", "dog")),
	}
}

// List godoc
// @Summary List dogs
// @Tags dogs
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param perPage query int false "Page size" default(20)
// @Param q query string false "Name, call name, registration number or microchip contains"
// @Param sex query string false "Sex" Enums(MALE, FEMALE)
// @Param status query string false "Status" Enums(ACTIVE, BREEDING, RETIRED, DECEASED, TRANSFERRED)
// @Param kennelId query string false "Kennel ID"
// @Success 200 {object} utils.Response{data=response.PaginatedResponse[response.DogSummary]}
// @Failure 400 {object} utils.Response
// @Router /api/dogs [get]
func (h *DogHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := &request.DogListQuery{
		PaginatedRequest: request.PaginationFromQuery(query),
		Query:            query.Get("q"),
		Sex:              query.Get("sex"),
		Status:           query.Get("status"),
		KennelID:         query.Get("kennelId"),
	}

	dogs, err := h.service.List(r.Context(), q)
	if err != nil {
		handleServiceError(w, h.log, err, "list dogs")
		return
	}

	utils.ResponseSuccess(w, "Dogs retrieved successfully", dogs)
}

// Get godoc
// @Summary Get a dog
// @Description Includes sire, dam and kennel summaries.
// @Tags dogs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dog ID"
// @Success 200 {object} utils.Response{data=response.DogResponse}
// @Failure 404 {object} utils.Response
// @Router /api/dogs/{id} [get]
func (h *DogHandler) Get(w http.ResponseWriter, r *http.Request) {
	dog, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get dog")
		return
	}

	utils.ResponseSuccess(w, "Dog retrieved successfully", dog)
}

// Create godoc
// @Summary Register a dog
// @Tags dogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body request.DogRequest true "Dog"
// @Success 201 {object} utils.Response{data=response.DogResponse}
// @Failure 400 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /api/dogs [post]
func (h *DogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.DogRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	dog, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create dog")
		return
	}

	utils.ResponseCreated(w, "Dog created successfully", dog)
}

// Update godoc
// @Summary Replace a dog
// @Tags dogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dog ID"
// @Param payload body request.DogRequest true "Dog"
// @Success 200 {object} utils.Response{data=response.DogResponse}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /api/dogs/{id} [put]
func (h *DogHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.DogRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	dog, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update dog")
		return
	}

	utils.ResponseSuccess(w, "Dog updated successfully", dog)
}

// Delete godoc
// @Summary Delete a dog
// @Description Offspring keep their records with the parent cleared. Attachments are removed.
// @Tags dogs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dog ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /api/dogs/{id} [delete]
func (h *DogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete dog")
		return
	}

	utils.ResponseSuccess(w, "Dog deleted successfully", nil)
}

// Pedigree godoc
// @Summary Three-generation pedigree
// @Tags pedigree
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dog ID"
// @Success 200 {object} utils.Response{data=response.PedigreeResponse}
// @Failure 404 {object} utils.Response
// @Router /api/dogs/{id}/pedigree [get]
func (h *DogHandler) Pedigree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.pedigree.Pedigree(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get pedigree")
		return
	}

	utils.ResponseSuccess(w, "Pedigree retrieved successfully", tree)
}

// Offspring godoc
// @Summary Offspring of a dog
// @Tags pedigree
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dog ID"
// @Success 200 {object} utils.Response{data=[]response.DogSummary}
// @Failure 404 {object} utils.Response
// @Router /api/dogs/{id}/offspring [get]
func (h *DogHandler) Offspring(w http.ResponseWriter, r *http.Request) {
	dogs, err := h.pedigree.Offspring(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get offspring")
		return
	}

	utils.ResponseSuccess(w, "Offspring retrieved successfully", dogs)
}

// Siblings godoc
// @Summary Littermates of a dog
// @Tags pedigree
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dog ID"
// @Success 200 {object} utils.Response{data=[]response.DogSummary}
// @Failure 404 {object} utils.Response
// @Router /api/dogs/{id}/siblings [get]
func (h *DogHandler) Siblings(w http.ResponseWriter, r *http.Request) {
	dogs, err := h.pedigree.Siblings(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get siblings")
		return
	}

	utils.ResponseSuccess(w, "Siblings retrieved successfully", dogs)
}

// Inbreeding godoc
// @Summary Computed inbreeding coefficient
// @Tags pedigree
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dog ID"
// @Success 200 {object} utils.Response{data=response.InbreedingResponse}
// @Failure 404 {object} utils.Response
// @Router /api/dogs/{id}/inbreeding [get]
func (h *DogHandler) Inbreeding(w http.ResponseWriter, r *http.Request) {
	coi, err := h.pedigree.Inbreeding(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "compute inbreeding")
		return
	}

	utils.ResponseSuccess(w, "Inbreeding coefficient computed", coi)
}

// SaveInbreeding godoc
// @Summary Store the computed inbreeding coefficient on the dog
// @Tags pedigree
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dog ID"
// @Success 200 {object} utils.Response{data=response.InbreedingResponse}
// @Failure 404 {object} utils.Response
// @Router /api/dogs/{id}/inbreeding [post]
func (h *DogHandler) SaveInbreeding(w http.ResponseWriter, r *http.Request) {
	coi, err := h.pedigree.SaveInbreeding(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "save inbreeding")
		return
	}

	utils.ResponseSuccess(w, "Inbreeding coefficient saved", coi)
}
