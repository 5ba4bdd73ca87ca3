// internal/app/features/files/routes.go
package files

import (
	"github.com/dalemusser/studyhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the /api/files subrouter.
func Routes(h *Handler, tokens *auth.Manager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(tokens.RequireStudent)
		pr.Get("/{fileId}", h.HandleDownload)
	})

	return r
}
