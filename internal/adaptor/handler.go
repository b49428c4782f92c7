package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"kennel-registry/internal/usecase"
	"kennel-registry/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth       *AuthHandler
	Member     *MemberHandler
	Kennel     *KennelHandler
	Dog        *DogHandler
	Litter     *LitterHandler
	Attachment *AttachmentHandler
	Page       *PageHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(service.Auth, config.Session, log),
		Member:     NewMemberHandler(service.Member, log),
		Kennel:     NewKennelHandler(service.Kennel, log),
		Dog:        NewDogHandler(service.Dog, service.Pedigree, log),
		Litter:     NewLitterHandler(service.Litter, log),
		Attachment: NewAttachmentHandler(service.Attachment, config.Blob.MaxUploadSize, log),
		Page:       NewPageHandler(service, config.Session, log),
	}
}

// decodeJSON reads the request body into dst and answers 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

// handleServiceError maps service errors to responses. Anything unknown is
// logged and answered with a generic 500.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var verrs utils.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		log.Debug(operation+" validation failed", zap.Error(err))
		utils.ResponseValidation(w, verrs)

	case errors.Is(err, usecase.ErrNotFound):
		log.Debug(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrConflict):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - invalid credentials")
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, usecase.ErrAccountInactive), errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, usecase.ErrTooLarge):
		utils.ResponseTooLarge(w, err.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
