// internal/app/features/projects/handler.go

// Package projects serves the per-student project CRUD surface with status
// transitions, the share toggle, and embedded attachments.
package projects

import (
	projectstore "github.com/dalemusser/studyhub/internal/app/store/projects"
	"github.com/dalemusser/studyhub/internal/app/system/blob"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the projects feature.
type Handler struct {
	Projects *projectstore.Store
	Blobs    *blob.Store
	Log      *zap.Logger
}

// NewHandler constructs a projects Handler. Called from bootstrap BuildHandler.
func NewHandler(projects *projectstore.Store, blobs *blob.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Projects: projects,
		Blobs:    blobs,
		Log:      logger,
	}
}
