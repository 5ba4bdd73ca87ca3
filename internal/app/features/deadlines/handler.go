// internal/app/features/deadlines/handler.go

// Package deadlines serves the per-student deadline CRUD surface: dated
// tasks with priority, status transitions, and embedded attachments. The
// reminder emails themselves are sent by the background worker.
package deadlines

import (
	deadlinestore "github.com/dalemusser/studyhub/internal/app/store/deadlines"
	"github.com/dalemusser/studyhub/internal/app/system/blob"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the deadlines feature.
type Handler struct {
	Deadlines *deadlinestore.Store
	Blobs     *blob.Store
	Log       *zap.Logger
}

// NewHandler constructs a deadlines Handler. Called from bootstrap BuildHandler.
func NewHandler(deadlines *deadlinestore.Store, blobs *blob.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Deadlines: deadlines,
		Blobs:     blobs,
		Log:       logger,
	}
}
