package wire

import (
	"kennel-registry/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAttachment(r chi.Router, attachmentHandler *adaptor.AttachmentHandler, g guards) {
	r.Route("/api/attachments", func(r chi.Router) {
		r.Use(g.apiMember)

		r.Get("/{id}/content", attachmentHandler.Content)

		r.Group(func(r chi.Router) {
			r.Use(g.apiAdmin)
			r.Put("/{id}", attachmentHandler.Update)
			r.Delete("/{id}", attachmentHandler.Delete)
		})
	})
}
