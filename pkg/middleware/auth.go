package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"kennel-registry/internal/data/entity"
	"kennel-registry/internal/data/repository"
	"kennel-registry/pkg/utils"

	"go.uber.org/zap"
)

// sessionToken reads the session cookie, falling back to a bearer token.
func sessionToken(r *http.Request, cookieName string) string {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// AuthSession resolves the request's session to an active user and stores
// the user id, role and token in the context. Requests without a valid
// session pass through anonymous; RequireRole decides what to do with them.
func AuthSession(repo *repository.Repository, cookieName string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r, cookieName)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			session, err := repo.Session.FindValidSession(r.Context(), token)
			if err != nil {
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if session == nil {
				logger.Debug("Invalid or expired session", zap.String("path", r.URL.Path))
				next.ServeHTTP(w, r)
				return
			}

			user, err := repo.User.FindByID(r.Context(), session.UserID)
			if err != nil {
				logger.Error("Failed to load session user",
					zap.Error(err),
					zap.String("user_id", session.UserID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if user == nil || !user.IsActive {
				next.ServeHTTP(w, r)
				return
			}

			ctx := utils.SetUserContext(r.Context(), user.ID, user.Role)
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Gate decides how a request that fails a role check is answered.
type Gate struct {
	Unauthenticated http.HandlerFunc
	Forbidden       http.HandlerFunc
}

// APIGate answers with 401/403 JSON envelopes.
var APIGate = Gate{
	Unauthenticated: func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseUnauthorized(w, "Authentication required")
	},
	Forbidden: func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseForbidden(w, "Insufficient role")
	},
}

// PageGate redirects anonymous visitors to the login form with a callback
// to the requested page, and under-privileged users to fallback.
func PageGate(fallback string) Gate {
	return Gate{
		Unauthenticated: func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, LoginURL(r.URL.RequestURI()), http.StatusSeeOther)
		},
		Forbidden: func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, fallback, http.StatusSeeOther)
		},
	}
}

func LoginURL(callback string) string {
	return "/login?callbackUrl=" + url.QueryEscape(callback)
}

// RequireRole lets the request through only when the context role satisfies
// allowed. Pass entity.UserRole.IsAdmin or entity.UserRole.IsMember.
func RequireRole(allowed func(entity.UserRole) bool, gate Gate, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				gate.Unauthenticated(w, r)
				return
			}

			role, _ := utils.GetRoleFromContext(r.Context())
			if !allowed(role) {
				logger.Warn("Role check failed",
					zap.String("user_id", userID.String()),
					zap.String("role", string(role)),
					zap.String("path", r.URL.Path))
				gate.Forbidden(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
