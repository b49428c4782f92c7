package adaptor

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"kennel-registry/internal/dto/request"
	"kennel-registry/internal/dto/response"
	"kennel-registry/internal/pedigree"
	"kennel-registry/internal/usecase"
	"kennel-registry/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageFuncs = template.FuncMap{
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
}

// PageHandler serves the server-rendered login, admin and registry pages.
type PageHandler struct {
	service   *usecase.Service
	session   utils.SessionConfig
	templates map[string]*template.Template
	log       *zap.Logger
}

func NewPageHandler(service *usecase.Service, session utils.SessionConfig, log *zap.Logger) *PageHandler {
	pages := []string{"login", "admin", "registry", "dog"}
	templates := make(map[string]*template.Template, len(pages))
	for _, name := range pages {
		templates[name] = template.Must(template.New("layout.html").Funcs(pageFuncs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html"))
	}
	return &PageHandler{
		service:   service,
		session:   session,
		templates: templates,
		log:       log.With(zap.String("handler", "page")),
	}
}

type pageData struct {
	Title    string
	LoggedIn bool
	IsAdmin  bool
	Data     any
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, name, title string, data any) {
	role, ok := utils.GetRoleFromContext(r.Context())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	err := h.templates[name].Execute(w, pageData{
		Title:    title,
		LoggedIn: ok,
		IsAdmin:  ok && role.IsAdmin(),
		Data:     data,
	})
	if err != nil {
		h.log.Error("Failed to render page", zap.Error(err), zap.String("page", name))
	}
}

func (h *PageHandler) fail(w http.ResponseWriter, r *http.Request, err error, operation string) {
	if errors.Is(err, usecase.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	h.log.Error("Failed to "+operation, zap.Error(err))
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

// safeCallback keeps redirects on this site.
func safeCallback(raw string) string {
	if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return "/registry"
	}
	return raw
}

type loginView struct {
	CallbackURL string
	Email       string
	Error       string
}

func (h *PageHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "login", "Sign in", loginView{
		CallbackURL: safeCallback(r.URL.Query().Get("callbackUrl")),
	})
}

func (h *PageHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	view := loginView{
		CallbackURL: safeCallback(r.PostForm.Get("callbackUrl")),
		Email:       r.PostForm.Get("email"),
	}

	req := request.LoginRequest{Email: view.Email, Password: r.PostForm.Get("password")}
	auth, err := h.service.Auth.Login(r.Context(), &req, clientInfo(r))
	if err != nil {
		var verrs utils.ValidationErrors
		status := http.StatusInternalServerError
		switch {
		case errors.As(err, &verrs):
			status, view.Error = http.StatusBadRequest, "Enter your email and password."
		case errors.Is(err, usecase.ErrInvalidCredentials):
			status, view.Error = http.StatusUnauthorized, "Invalid email or password."
		case errors.Is(err, usecase.ErrAccountInactive):
			status, view.Error = http.StatusForbidden, "Your account is awaiting approval."
		default:
			h.log.Error("Failed to login", zap.Error(err))
			view.Error = "Something went wrong. Please try again."
		}
		h.render(w, r, status, "login", "Sign in", view)
		return
	}

	setSessionCookie(w, h.session, auth.Token, auth.ExpiresAt)
	http.Redirect(w, r, view.CallbackURL, http.StatusSeeOther)
}

func (h *PageHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token, ok := utils.GetTokenFromContext(r.Context()); ok {
		if err := h.service.Auth.Logout(r.Context(), token); err != nil {
			h.log.Warn("Failed to revoke session on logout", zap.Error(err))
		}
	}
	clearSessionCookie(w, h.session)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *PageHandler) Admin(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.Dashboard.Counts(r.Context())
	if err != nil {
		h.fail(w, r, err, "load dashboard")
		return
	}
	h.render(w, r, http.StatusOK, "admin", "Administration", counts)
}

type registryView struct {
	Query    string
	Dogs     *response.PaginatedResponse[response.DogSummary]
	PrevPage int
	NextPage int
}

func (h *PageHandler) Registry(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := &request.DogListQuery{
		PaginatedRequest: request.PaginationFromQuery(query),
		Query:            query.Get("q"),
	}
	dogs, err := h.service.Dog.List(r.Context(), q)
	if err != nil {
		h.fail(w, r, err, "list dogs")
		return
	}

	view := registryView{Query: q.Query, Dogs: dogs}
	if q.Page > 1 {
		view.PrevPage = q.Page - 1
	}
	if q.Page < dogs.Pagination.TotalPages {
		view.NextPage = q.Page + 1
	}
	h.render(w, r, http.StatusOK, "registry", "Registry", view)
}

// pedigreeCell is one ancestor in the tabular pedigree, spanning the rows
// of its own ancestors.
type pedigreeCell struct {
	Node    *pedigree.Node
	Rowspan int
}

// pedigreeTable lays out the ancestors of tree (without the dog itself) as
// table rows, parents in the first column.
func pedigreeTable(tree *pedigree.Node) [][]pedigreeCell {
	gens := tree.Rows()
	if len(gens) < 2 {
		return nil
	}
	height := len(gens[len(gens)-1])
	table := make([][]pedigreeCell, height)
	for row := 0; row < height; row++ {
		for g := 1; g < len(gens); g++ {
			span := height / len(gens[g])
			if row%span == 0 {
				table[row] = append(table[row], pedigreeCell{Node: gens[g][row/span], Rowspan: span})
			}
		}
	}
	return table
}

type dogView struct {
	Dog       *response.DogResponse
	Pedigree  [][]pedigreeCell
	Offspring []response.DogSummary
	Siblings  []response.DogSummary
}

func (h *PageHandler) Dog(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx := r.Context()

	dog, err := h.service.Dog.Get(ctx, id)
	if err != nil {
		h.fail(w, r, err, "get dog")
		return
	}
	_, tree, err := h.service.Pedigree.Tree(ctx, id)
	if err != nil {
		h.fail(w, r, err, "build pedigree")
		return
	}
	offspring, err := h.service.Pedigree.Offspring(ctx, id)
	if err != nil {
		h.fail(w, r, err, "list offspring")
		return
	}
	siblings, err := h.service.Pedigree.Siblings(ctx, id)
	if err != nil {
		h.fail(w, r, err, "list siblings")
		return
	}

	h.render(w, r, http.StatusOK, "dog", dog.RegisteredName, dogView{
		Dog:       dog,
		Pedigree:  pedigreeTable(tree),
		Offspring: offspring,
		Siblings:  siblings,
	})
}
