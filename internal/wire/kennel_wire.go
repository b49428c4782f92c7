package wire

import (
	"kennel-registry/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireKennel(r chi.Router, kennelHandler *adaptor.KennelHandler, g guards) {
	r.Route("/api/kennels", func(r chi.Router) {
		r.Use(g.apiMember)

		r.Get("/", kennelHandler.List)
		r.Get("/{id}", kennelHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(g.apiAdmin)
			r.Post("/", kennelHandler.Create)
			r.Put("/{id}", kennelHandler.Update)
			r.Delete("/{id}", kennelHandler.Delete)
		})
	})
}
