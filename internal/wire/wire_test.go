package wire

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"kennel-registry/internal/data/memory"
	"kennel-registry/internal/dto/request"
	"kennel-registry/internal/usecase"
	"kennel-registry/pkg/blob"
	"kennel-registry/pkg/utils"

	"go.uber.org/zap/zaptest"
)

type envelope struct {
	Status  bool              `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

type testApp struct {
	t      *testing.T
	app    *App
	admin  string
	member string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	config := &utils.Config{
		App:      utils.AppConfig{Name: "kennel-registry"},
		Session:  utils.SessionConfig{CookieName: "registry_session", TTLHours: 24},
		Blob:     utils.BlobConfig{Driver: "memory", MaxUploadSize: 1 << 20},
		Registry: utils.RegistryConfig{OffspringLimit: 50, COIGenerations: 6},
	}
	log := zaptest.NewLogger(t)
	repo := memory.NewRepository()
	ctx := context.Background()

	if _, err := usecase.SeedSuperAdmin(ctx, repo, utils.SeedConfig{AdminEmail: "root@example.com", AdminPassword: "rootpassword"}, log); err != nil {
		t.Fatalf("seed: %v", err)
	}
	app := Wiring(repo, blob.NewMemory(), config, log)
	if _, err := app.Service.Member.Create(ctx, &request.MemberCreateRequest{
		Email: "member@example.com", Name: "Member", Password: "memberpassword", Role: "MEMBER",
	}); err != nil {
		t.Fatalf("create member: %v", err)
	}

	ta := &testApp{t: t, app: app}
	ta.admin = ta.login("root@example.com", "rootpassword")
	ta.member = ta.login("member@example.com", "memberpassword")
	return ta
}

func (ta *testApp) do(method, path, token string, body any) *httptest.ResponseRecorder {
	ta.t.Helper()
	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			ta.t.Fatalf("marshal: %v", err)
		}
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ta.app.Router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	if data != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
	return env
}

func (ta *testApp) login(email, password string) string {
	ta.t.Helper()
	rec := ta.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password})
	if rec.Code != http.StatusOK {
		ta.t.Fatalf("login %s: %d %s", email, rec.Code, rec.Body.String())
	}
	var auth struct {
		Token string `json:"token"`
	}
	decode(ta.t, rec, &auth)
	return auth.Token
}

func (ta *testApp) createDog(body map[string]any) string {
	ta.t.Helper()
	rec := ta.do(http.MethodPost, "/api/dogs", ta.admin, body)
	if rec.Code != http.StatusCreated {
		ta.t.Fatalf("create dog: %d %s", rec.Code, rec.Body.String())
	}
	var dog struct {
		ID string `json:"id"`
	}
	decode(ta.t, rec, &dog)
	return dog.ID
}

func TestHealthAndMetrics(t *testing.T) {
	ta := newTestApp(t)

	rec := ta.do(http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health: %d", rec.Code)
	}

	rec = ta.do(http.MethodGet, "/metrics", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "kennel_registry_http_requests_total") {
		t.Fatalf("expected request counter in metrics output")
	}
}

func TestPagesRedirectAnonymousToLogin(t *testing.T) {
	ta := newTestApp(t)

	for _, path := range []string{"/admin", "/registry", "/registry/dogs/abc"} {
		rec := ta.do(http.MethodGet, path, "", nil)
		if rec.Code != http.StatusSeeOther {
			t.Fatalf("%s: expected 303, got %d", path, rec.Code)
		}
		want := "/login?callbackUrl=" + url.QueryEscape(path)
		if got := rec.Header().Get("Location"); got != want {
			t.Fatalf("%s: expected redirect to %s, got %s", path, want, got)
		}
	}
}

func TestAdminPageRedirectsMemberToRegistry(t *testing.T) {
	ta := newTestApp(t)

	rec := ta.do(http.MethodGet, "/admin", ta.member, nil)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/registry" {
		t.Fatalf("expected member redirect to /registry, got %d %s", rec.Code, rec.Header().Get("Location"))
	}

	rec = ta.do(http.MethodGet, "/admin", ta.admin, nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Awaiting approval") {
		t.Fatalf("expected admin dashboard, got %d", rec.Code)
	}
}

func TestLoginPageSetsCookieAndRedirects(t *testing.T) {
	ta := newTestApp(t)

	form := url.Values{"email": {"member@example.com"}, "password": {"memberpassword"}, "callbackUrl": {"/registry"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	ta.app.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/registry" {
		t.Fatalf("expected redirect to /registry, got %d %s", rec.Code, rec.Header().Get("Location"))
	}
	var session *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "registry_session" {
			session = c
		}
	}
	if session == nil || session.Value == "" || !session.HttpOnly {
		t.Fatalf("expected http-only session cookie, got %+v", session)
	}

	req = httptest.NewRequest(http.MethodGet, "/registry", nil)
	req.AddCookie(session)
	rec = httptest.NewRecorder()
	ta.app.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected registry page with cookie, got %d", rec.Code)
	}
}

func TestAPIRoleChecks(t *testing.T) {
	ta := newTestApp(t)
	body := map[string]any{"registeredName": "Rex", "sex": "MALE"}

	if rec := ta.do(http.MethodGet, "/api/dogs", "", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous list: expected 401, got %d", rec.Code)
	}
	if rec := ta.do(http.MethodPost, "/api/dogs", ta.member, body); rec.Code != http.StatusForbidden {
		t.Fatalf("member create: expected 403, got %d", rec.Code)
	}
	if rec := ta.do(http.MethodGet, "/api/members", ta.member, nil); rec.Code != http.StatusForbidden {
		t.Fatalf("member list members: expected 403, got %d", rec.Code)
	}
	if rec := ta.do(http.MethodGet, "/api/dogs", ta.member, nil); rec.Code != http.StatusOK {
		t.Fatalf("member list: expected 200, got %d", rec.Code)
	}
	if rec := ta.do(http.MethodPost, "/api/dogs", ta.admin, body); rec.Code != http.StatusCreated {
		t.Fatalf("admin create: expected 201, got %d", rec.Code)
	}
}

func TestDogValidationResponses(t *testing.T) {
	ta := newTestApp(t)
	female := ta.createDog(map[string]any{"registeredName": "Queen", "sex": "FEMALE"})

	rec := ta.do(http.MethodPost, "/api/dogs", ta.admin, map[string]any{"sex": "MALE"})
	env := decode(t, rec, nil)
	if rec.Code != http.StatusBadRequest || env.Errors["registeredName"] == "" {
		t.Fatalf("expected registeredName error, got %d %s", rec.Code, rec.Body.String())
	}

	rec = ta.do(http.MethodPost, "/api/dogs", ta.admin, map[string]any{"registeredName": "Pup", "sex": "MALE", "sireId": female})
	env = decode(t, rec, nil)
	if rec.Code != http.StatusBadRequest || env.Errors["sireId"] == "" {
		t.Fatalf("expected sireId error, got %d %s", rec.Code, rec.Body.String())
	}

	rec = ta.do(http.MethodGet, "/api/dogs/00000000-0000-0000-0000-000000000001", ta.member, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestPedigreeWithMissingDam(t *testing.T) {
	ta := newTestApp(t)
	grandsire := ta.createDog(map[string]any{"registeredName": "Grandsire", "sex": "MALE"})
	sire := ta.createDog(map[string]any{"registeredName": "Sire", "sex": "MALE", "sireId": grandsire})
	pup := ta.createDog(map[string]any{"registeredName": "Pup", "sex": "FEMALE", "sireId": sire})

	rec := ta.do(http.MethodGet, "/api/dogs/"+pup+"/pedigree", ta.member, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("pedigree: %d %s", rec.Code, rec.Body.String())
	}
	type node struct {
		Known          bool   `json:"known"`
		RegisteredName string `json:"registeredName"`
		Sire           *node  `json:"sire"`
		Dam            *node  `json:"dam"`
	}
	var tree struct {
		Tree node `json:"tree"`
	}
	decode(t, rec, &tree)
	if tree.Tree.Dam == nil || tree.Tree.Dam.Known || tree.Tree.Dam.RegisteredName != "Unknown" {
		t.Fatalf("expected unknown dam, got %+v", tree.Tree.Dam)
	}
	if tree.Tree.Sire == nil || tree.Tree.Sire.Sire == nil || tree.Tree.Sire.Sire.RegisteredName != "Grandsire" {
		t.Fatalf("expected grandsire through sire branch")
	}

	rec = ta.do(http.MethodGet, "/registry/dogs/"+pup, ta.member, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("dog page: %d", rec.Code)
	}
	page := rec.Body.String()
	if !strings.Contains(page, "Grandsire") || !strings.Contains(page, `class="unknown"`) {
		t.Fatalf("expected pedigree table with known and unknown ancestors")
	}
}

func TestPhotoUploadAndDownload(t *testing.T) {
	ta := newTestApp(t)
	dog := ta.createDog(map[string]any{"registeredName": "Photogenic", "sex": "FEMALE"})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "head.png")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	png := []byte("\x89PNG\r\n\x1a\n0000")
	part.Write(png)
	mw.WriteField("isPrimary", "true")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/dogs/"+dog+"/photos", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+ta.admin)
	rec := httptest.NewRecorder()
	ta.app.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload: %d %s", rec.Code, rec.Body.String())
	}
	var att struct {
		ID        string `json:"id"`
		URL       string `json:"url"`
		IsPrimary bool   `json:"isPrimary"`
	}
	decode(t, rec, &att)
	if !att.IsPrimary {
		t.Fatalf("expected primary photo")
	}

	rec = ta.do(http.MethodGet, att.URL, ta.member, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("content: %d", rec.Code)
	}
	if rec.Header().Get("Content-Type") != "image/png" || !bytes.Equal(rec.Body.Bytes(), png) {
		t.Fatalf("unexpected content %s %q", rec.Header().Get("Content-Type"), rec.Body.Bytes())
	}

	if rec := ta.do(http.MethodDelete, "/api/attachments/"+att.ID, ta.member, nil); rec.Code != http.StatusForbidden {
		t.Fatalf("member delete: expected 403, got %d", rec.Code)
	}
}

func TestInactiveAccountCannotLogin(t *testing.T) {
	ta := newTestApp(t)

	rec := ta.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "pending@example.com", "name": "Pending", "password": "pendingpass",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", rec.Code, rec.Body.String())
	}

	rec = ta.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "pending@example.com", "password": "pendingpass"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for inactive account, got %d", rec.Code)
	}
}
