// internal/app/features/files/handler.go

// Package files streams stored blobs back to authenticated clients. The
// token may arrive as a ?token= query parameter so browsers can follow
// direct links to attachments.
package files

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dalemusser/studyhub/internal/app/system/blob"
	"github.com/dalemusser/studyhub/internal/app/system/httpjson"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// inlineTypes render in the browser; everything else downloads.
var inlineTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
}

// Handler holds dependencies for file streaming.
type Handler struct {
	Blobs *blob.Store
	Log   *zap.Logger
}

// NewHandler constructs a files Handler. Called from bootstrap BuildHandler.
func NewHandler(blobs *blob.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Blobs: blobs,
		Log:   logger,
	}
}

// HandleDownload handles GET /api/files/{fileId}.
func (h *Handler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "fileId"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid file ID.")
		return
	}

	info, err := h.Blobs.Stat(r.Context(), id)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "File not found.")
			return
		}
		h.Log.Error("blob stat failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not read file.")
		return
	}

	contentType := info.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	disposition := "attachment"
	if inlineTypes[contentType] {
		disposition = "inline"
	}

	stream, err := h.Blobs.Open(id)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "File not found.")
			return
		}
		h.Log.Error("blob open failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not read file.")
		return
	}
	defer stream.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("%s; filename=%q", disposition, url.PathEscape(info.Name)))
	w.Header().Set("Content-Length", strconv.FormatInt(info.Length, 10))

	if _, err := io.Copy(w, stream); err != nil {
		// Headers are already out; nothing to do but log.
		h.Log.Warn("file stream interrupted",
			zap.String("file_id", id.Hex()),
			zap.Error(err))
	}
}
