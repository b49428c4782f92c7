package adaptor

import (
	"net/http"
	"strconv"

	"kennel-registry/internal/dto/request"
	"kennel-registry/internal/usecase"
	"kennel-registry/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MemberHandler struct {
	service usecase.MemberService
	log     *zap.Logger
}

func NewMemberHandler(service usecase.MemberService, log *zap.Logger) *MemberHandler {
	return &MemberHandler{
		service: service,
		log:     log.With(zap.String("handler", "member")),
	}
}

// List godoc
// @Summary List members
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param perPage query int false "Page size" default(20)
// @Param q query string false "Name or email contains"
// @Param role query string false "Role" Enums(MEMBER, ADMIN, SUPER_ADMIN)
// @Param isActive query bool false "Activation state"
// @Success 200 {object} utils.Response{data=response.PaginatedResponse[response.UserResponse]}
// @Failure 403 {object} utils.Response
// @Router /api/members [get]
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := &request.MemberListQuery{
		PaginatedRequest: request.PaginationFromQuery(query),
		Query:            query.Get("q"),
		Role:             query.Get("role"),
	}
	if v, err := strconv.ParseBool(query.Get("isActive")); err == nil {
		q.IsActive = &v
	}

	members, err := h.service.List(r.Context(), q)
	if err != nil {
		handleServiceError(w, h.log, err, "list members")
		return
	}

	utils.ResponseSuccess(w, "Members retrieved successfully", members)
}

// Get godoc
// @Summary Get a member
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Success 200 {object} utils.Response{data=response.UserResponse}
// @Failure 404 {object} utils.Response
// @Router /api/members/{id} [get]
func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	member, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get member")
		return
	}

	utils.ResponseSuccess(w, "Member retrieved successfully", member)
}

// Create godoc
// @Summary Create a member
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body request.MemberCreateRequest true "Member"
// @Success 201 {object} utils.Response{data=response.UserResponse}
// @Failure 400 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /api/members [post]
func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.MemberCreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	member, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create member")
		return
	}

	utils.ResponseCreated(w, "Member created successfully", member)
}

// Update godoc
// @Summary Update a member
// @Description Only the fields present are changed. SUPER_ADMIN accounts are protected.
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Param payload body request.MemberUpdateRequest true "Changes"
// @Success 200 {object} utils.Response{data=response.UserResponse}
// @Failure 400 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /api/members/{id} [put]
func (h *MemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.MemberUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	actorID, _ := utils.GetUserIDFromContext(r.Context())
	member, err := h.service.Update(r.Context(), actorID, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update member")
		return
	}

	utils.ResponseSuccess(w, "Member updated successfully", member)
}

// Delete godoc
// @Summary Delete a member
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Success 200 {object} utils.Response
// @Failure 403 {object} utils.Response "protected account or own account"
// @Failure 404 {object} utils.Response
// @Router /api/members/{id} [delete]
func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, _ := utils.GetUserIDFromContext(r.Context())
	if err := h.service.Delete(r.Context(), actorID, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete member")
		return
	}

	utils.ResponseSuccess(w, "Member deleted successfully", nil)
}
