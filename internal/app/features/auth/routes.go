// internal/app/features/auth/routes.go
package auth

import (
	sysauth "github.com/dalemusser/studyhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the /api/auth subrouter. Register and login are public;
// /me requires a token.
func Routes(h *Handler, tokens *sysauth.Manager) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)

	r.Group(func(pr chi.Router) {
		pr.Use(tokens.RequireStudent)
		pr.Get("/me", h.HandleMe)
	})

	return r
}
