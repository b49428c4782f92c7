package wire

import (
	"net/http"

	"kennel-registry/internal/adaptor"
	"kennel-registry/internal/data/entity"
	"kennel-registry/internal/data/repository"
	"kennel-registry/internal/usecase"
	"kennel-registry/pkg/blob"
	"kennel-registry/pkg/middleware"
	"kennel-registry/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "kennel-registry/docs"
)

// App holds the wired router and the services behind it.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
	Metrics *middleware.Metrics
}

// guards are the role checks shared by every route group.
type guards struct {
	apiMember  func(http.Handler) http.Handler
	apiAdmin   func(http.Handler) http.Handler
	pageMember func(http.Handler) http.Handler
	pageAdmin  func(http.Handler) http.Handler
}

func newGuards(log *zap.Logger) guards {
	pages := middleware.PageGate("/registry")
	return guards{
		apiMember:  middleware.RequireRole(entity.UserRole.IsMember, middleware.APIGate, log),
		apiAdmin:   middleware.RequireRole(entity.UserRole.IsAdmin, middleware.APIGate, log),
		pageMember: middleware.RequireRole(entity.UserRole.IsMember, pages, log),
		pageAdmin:  middleware.RequireRole(entity.UserRole.IsAdmin, pages, log),
	}
}

// Wiring builds services, handlers and routes.
func Wiring(repo *repository.Repository, store blob.Store, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, store, config, logger)
	handler := adaptor.NewHandler(service, config, logger)
	metrics := middleware.NewMetrics("kennel_registry")

	router := setupRouter(handler, repo, metrics, config, logger)

	return &App{
		Router:  router,
		Service: service,
		Metrics: metrics,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	metrics *middleware.Metrics,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.CORS.AllowedOrigins))
	r.Use(metrics.Middleware)
	r.Use(middleware.AuthSession(repo, config.Session.CookieName, logger))

	g := newGuards(logger)

	wireAuth(r, handler.Auth, g)
	wireMember(r, handler.Member, g)
	wireKennel(r, handler.Kennel, g)
	wireDog(r, handler.Dog, handler.Attachment, g)
	wireLitter(r, handler.Litter, g)
	wireAttachment(r, handler.Attachment, g)
	wirePage(r, handler.Page, g)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "OK", nil)
	})
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}
