package wire

import (
	"net/http"

	"kennel-registry/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePage(r chi.Router, pageHandler *adaptor.PageHandler, g guards) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/registry", http.StatusSeeOther)
	})
	r.Get("/login", pageHandler.LoginForm)
	r.Post("/login", pageHandler.Login)
	r.Post("/logout", pageHandler.Logout)

	r.Route("/admin", func(r chi.Router) {
		r.Use(g.pageAdmin)
		r.Get("/", pageHandler.Admin)
	})

	r.Route("/registry", func(r chi.Router) {
		r.Use(g.pageMember)
		r.Get("/", pageHandler.Registry)
		r.Get("/dogs/{id}", pageHandler.Dog)
	})
}
