// internal/app/features/notes/handler.go

// Package notes serves the per-student note CRUD surface, including the
// share toggle and embedded attachments.
package notes

import (
	notestore "github.com/dalemusser/studyhub/internal/app/store/notes"
	"github.com/dalemusser/studyhub/internal/app/system/blob"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the notes feature.
type Handler struct {
	Notes *notestore.Store
	Blobs *blob.Store
	Log   *zap.Logger
}

// NewHandler constructs a notes Handler. Called from bootstrap BuildHandler.
func NewHandler(notes *notestore.Store, blobs *blob.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Notes: notes,
		Blobs: blobs,
		Log:   logger,
	}
}
