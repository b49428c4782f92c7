package wire

import (
	"kennel-registry/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireDog mounts the dog routes, including the pedigree views and the
// dog-scoped photo and certificate collections.
func wireDog(r chi.Router, dogHandler *adaptor.DogHandler, attachmentHandler *adaptor.AttachmentHandler, g guards) {
	r.Route("/api/dogs", func(r chi.Router) {
		r.Use(g.apiMember)

		r.Get("/", dogHandler.List)
		r.Get("/{id}", dogHandler.Get)
		r.Get("/{id}/pedigree", dogHandler.Pedigree)
		r.Get("/{id}/offspring", dogHandler.Offspring)
		r.Get("/{id}/siblings", dogHandler.Siblings)
		r.Get("/{id}/inbreeding", dogHandler.Inbreeding)
		r.Get("/{id}/photos", attachmentHandler.ListPhotos)
		r.Get("/{id}/certificates", attachmentHandler.ListCertificates)

		r.Group(func(r chi.Router) {
			r.Use(g.apiAdmin)
			r.Post("/", dogHandler.Create)
			r.Put("/{id}", dogHandler.Update)
			r.Delete("/{id}", dogHandler.Delete)
			r.Post("/{id}/inbreeding", dogHandler.SaveInbreeding)
			r.Post("/{id}/photos", attachmentHandler.UploadPhoto)
			r.Post("/{id}/certificates", attachmentHandler.UploadCertificate)
		})
	})
}
