package wire

import (
	"kennel-registry/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, g guards) {
	r.Post("/api/auth/register", authHandler.Register)
	r.Post("/api/auth/login", authHandler.Login)

	r.With(g.apiMember).Post("/api/auth/logout", authHandler.Logout)
	r.With(g.apiMember).Get("/api/auth/me", authHandler.Me)
}
