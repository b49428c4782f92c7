package wire

import (
	"kennel-registry/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMember(r chi.Router, memberHandler *adaptor.MemberHandler, g guards) {
	r.Route("/api/members", func(r chi.Router) {
		r.Use(g.apiAdmin)

		r.Get("/", memberHandler.List)
		r.Post("/", memberHandler.Create)
		r.Get("/{id}", memberHandler.Get)
		r.Put("/{id}", memberHandler.Update)
		r.Delete("/{id}", memberHandler.Delete)
	})
}
