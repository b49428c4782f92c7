package wire

import (
	"kennel-registry/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireLitter(r chi.Router, litterHandler *adaptor.LitterHandler, g guards) {
	r.Route("/api/litters", func(r chi.Router) {
		r.Use(g.apiMember)

		r.Get("/", litterHandler.List)
		r.Get("/{id}", litterHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(g.apiAdmin)
			r.Post("/", litterHandler.Create)
			r.Put("/{id}", litterHandler.Update)
			r.Delete("/{id}", litterHandler.Delete)
		})
	})
}
