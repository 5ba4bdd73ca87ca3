// internal/app/features/groups/routes.go
package groups

import (
	"github.com/dalemusser/studyhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the /api/groups subrouter. Everything requires a token.
// The invitations and stats routes are registered before /{id} so chi never
// treats those path segments as a group id.
func Routes(h *Handler, tokens *auth.Manager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(tokens.RequireStudent)

		pr.Get("/", h.HandleList)
		pr.Post("/", h.HandleCreate)
		pr.Post("/join", h.HandleJoin)

		pr.Get("/invitations", h.HandleMyInvitations)
		pr.Patch("/invitations/{invId}/respond", h.HandleRespond)
		pr.Get("/stats/dashboard", h.HandleDashboardStats)

		pr.Get("/{id}", h.HandleDetail)
		pr.Delete("/{id}", h.HandleDelete)
		pr.Delete("/{id}/leave", h.HandleLeave)

		pr.Get("/{id}/resources", h.HandleListResources)
		pr.Post("/{id}/share", h.HandleShare)

		pr.Post("/{id}/invite", h.HandleInvite)
		pr.Get("/{id}/invitations", h.HandleGroupInvitations)

		pr.Post("/{id}/files", h.HandleUploadFile)
		pr.Get("/{id}/files", h.HandleListFiles)
		pr.Delete("/{id}/files/{fileId}", h.HandleDeleteFile)
	})

	return r
}
