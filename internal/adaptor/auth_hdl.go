package adaptor

import (
	"net/http"
	"time"

	"kennel-registry/internal/dto/request"
	"kennel-registry/internal/usecase"
	"kennel-registry/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	session utils.SessionConfig
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, session utils.SessionConfig, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		session: session,
		log:     log.With(zap.String("handler", "auth")),
	}
}

func clientInfo(r *http.Request) usecase.ClientInfo {
	return usecase.ClientInfo{UserAgent: r.UserAgent(), IPAddress: r.RemoteAddr}
}

func setSessionCookie(w http.ResponseWriter, cfg utils.SessionConfig, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter, cfg utils.SessionConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Register godoc
// @Summary Register a member account
// @Description The account stays inactive until an admin approves it.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body request.RegisterRequest true "Account"
// @Success 201 {object} utils.Response{data=response.UserResponse}
// @Failure 400 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.Register(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "register")
		return
	}

	utils.ResponseCreated(w, "Registration received. An administrator will activate your account.", user)
}

// Login godoc
// @Summary Log in
// @Description Sets the session cookie and also returns the token for Bearer use.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body request.LoginRequest true "Credentials"
// @Success 200 {object} utils.Response{data=response.AuthResponse}
// @Failure 401 {object} utils.Response
// @Failure 403 {object} utils.Response "account not active"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	auth, err := h.service.Login(r.Context(), &req, clientInfo(r))
	if err != nil {
		handleServiceError(w, h.log, err, "login")
		return
	}

	setSessionCookie(w, h.session, auth.Token, auth.ExpiresAt)
	utils.ResponseSuccess(w, "Login successful", auth)
}

// Logout godoc
// @Summary Log out
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, _ := utils.GetTokenFromContext(r.Context())
	if err := h.service.Logout(r.Context(), token); err != nil {
		handleServiceError(w, h.log, err, "logout")
		return
	}

	clearSessionCookie(w, h.session)
	utils.ResponseSuccess(w, "Logout successful", nil)
}

// Me godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Response{data=response.UserResponse}
// @Failure 401 {object} utils.Response
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	user, err := h.service.Me(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get current user")
		return
	}

	utils.ResponseSuccess(w, "User retrieved successfully", user)
}
