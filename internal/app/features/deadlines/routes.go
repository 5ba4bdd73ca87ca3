// internal/app/features/deadlines/routes.go
package deadlines

import (
	"github.com/dalemusser/studyhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the /api/deadlines subrouter. Everything requires a token.
func Routes(h *Handler, tokens *auth.Manager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(tokens.RequireStudent)

		pr.Get("/", h.HandleList)
		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
		pr.Patch("/{id}/status", h.HandleSetStatus)

		pr.Post("/{id}/attachments", h.HandleAddAttachment)
		pr.Delete("/{id}/attachments/{fileId}", h.HandleDeleteAttachment)
	})

	return r
}
