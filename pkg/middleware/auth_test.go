package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kennel-registry/internal/data/entity"
	"kennel-registry/internal/data/memory"
	"kennel-registry/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap/zaptest"
)

var noContent = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func withRole(r *http.Request, role entity.UserRole) *http.Request {
	return r.WithContext(utils.SetUserContext(r.Context(), uuid.New(), role))
}

func TestRequireRoleAPIGate(t *testing.T) {
	log := zaptest.NewLogger(t)
	admin := RequireRole(entity.UserRole.IsAdmin, APIGate, log)(noContent)

	cases := []struct {
		name string
		role entity.UserRole
		want int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"member", entity.RoleMember, http.StatusForbidden},
		{"admin", entity.RoleAdmin, http.StatusNoContent},
		{"super admin", entity.RoleSuperAdmin, http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/dogs", nil)
			if tc.role != "" {
				req = withRole(req, tc.role)
			}
			rec := httptest.NewRecorder()
			admin.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestRequireRolePageGate(t *testing.T) {
	log := zaptest.NewLogger(t)
	admin := RequireRole(entity.UserRole.IsAdmin, PageGate("/registry"), log)(noContent)

	rec := httptest.NewRecorder()
	admin.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin?tab=members", nil))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if got, want := rec.Header().Get("Location"), "/login?callbackUrl=%2Fadmin%3Ftab%3Dmembers"; got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}

	rec = httptest.NewRecorder()
	admin.ServeHTTP(rec, withRole(httptest.NewRequest(http.MethodGet, "/admin", nil), entity.RoleMember))
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/registry" {
		t.Fatalf("expected member redirect to /registry, got %d %s", rec.Code, rec.Header().Get("Location"))
	}
}

func TestAuthSessionResolvesCookieAndBearer(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()
	now := time.Now()
	user := &entity.User{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Email:    "member@example.com",
		Name:     "Member",
		Role:     entity.RoleMember,
		IsActive: true,
	}
	if err := repo.User.Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
		UserID:     user.ID,
		Token:      utils.GenerateSessionToken(),
		ExpiresAt:  now.Add(time.Hour),
	}
	if err := repo.Session.Create(ctx, session); err != nil {
		t.Fatalf("create session: %v", err)
	}

	var seen uuid.UUID
	handler := AuthSession(repo, "registry_session", zaptest.NewLogger(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = utils.GetUserIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "registry_session", Value: session.Token.String()})
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if seen != user.ID {
		t.Fatalf("expected user from cookie, got %s", seen)
	}

	seen = uuid.Nil
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token.String())
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if seen != user.ID {
		t.Fatalf("expected user from bearer token, got %s", seen)
	}

	seen = uuid.Nil
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+uuid.NewString())
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if seen != uuid.Nil {
		t.Fatalf("expected anonymous request for unknown token")
	}
}

func TestRecoverAnswers500(t *testing.T) {
	h := Recover(zaptest.NewLogger(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
