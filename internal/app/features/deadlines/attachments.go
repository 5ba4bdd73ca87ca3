// internal/app/features/deadlines/attachments.go
package deadlines

import (
	"errors"
	"net/http"

	deadlinestore "github.com/dalemusser/studyhub/internal/app/store/deadlines"
	"github.com/dalemusser/studyhub/internal/app/system/attach"
	"github.com/dalemusser/studyhub/internal/app/system/auth"
	"github.com/dalemusser/studyhub/internal/app/system/httpjson"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleAddAttachment handles POST /api/deadlines/{id}/attachments (multipart).
func (h *Handler) HandleAddAttachment(w http.ResponseWriter, r *http.Request) {
	student, _ := auth.CurrentStudent(r)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "Deadline not found.")
		return
	}

	if _, err := h.Deadlines.GetOwned(r.Context(), id, student.ID); err != nil {
		if errors.Is(err, deadlinestore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "Deadline not found.")
			return
		}
		h.Log.Error("deadline lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not upload attachment.")
		return
	}

	att, err := attach.FromRequest(r, h.Blobs, "deadline", id, student.ID)
	if err != nil {
		if errors.Is(err, attach.ErrNoFile) {
			httpjson.Error(w, http.StatusBadRequest, "No file provided.")
			return
		}
		h.Log.Error("attachment upload failed", zap.Error(err))
		httpjson.Error(w, http.StatusBadRequest, "Could not upload attachment.")
		return
	}

	if _, err := h.Deadlines.PushAttachment(r.Context(), id, student.ID, att); err != nil {
		if delErr := h.Blobs.Delete(att.FileID); delErr != nil {
			h.Log.Warn("orphaned blob cleanup failed", zap.Error(delErr))
		}
		h.Log.Error("attachment append failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not upload attachment.")
		return
	}

	httpjson.Write(w, http.StatusCreated, att)
}

// HandleDeleteAttachment handles DELETE /api/deadlines/{id}/attachments/{fileId}.
func (h *Handler) HandleDeleteAttachment(w http.ResponseWriter, r *http.Request) {
	student, _ := auth.CurrentStudent(r)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "Deadline not found.")
		return
	}
	fileID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "fileId"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "Attachment not found.")
		return
	}

	deadline, err := h.Deadlines.GetOwned(r.Context(), id, student.ID)
	if err != nil {
		if errors.Is(err, deadlinestore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "Deadline not found.")
			return
		}
		h.Log.Error("deadline lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not delete attachment.")
		return
	}

	found := false
	for _, att := range deadline.Attachments {
		if att.FileID == fileID {
			found = true
			break
		}
	}
	if !found {
		httpjson.Error(w, http.StatusNotFound, "Attachment not found.")
		return
	}

	if err := h.Blobs.Delete(fileID); err != nil {
		h.Log.Error("attachment blob delete failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not delete attachment.")
		return
	}

	if _, err := h.Deadlines.PullAttachment(r.Context(), id, student.ID, fileID); err != nil {
		h.Log.Error("attachment pull failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not delete attachment.")
		return
	}

	httpjson.Message(w, "Attachment deleted.")
}
