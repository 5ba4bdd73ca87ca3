// internal/app/features/notes/notes.go
package notes

import (
	"encoding/json"
	"errors"
	"net/http"

	notestore "github.com/dalemusser/studyhub/internal/app/store/notes"
	"github.com/dalemusser/studyhub/internal/app/system/auth"
	"github.com/dalemusser/studyhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/studyhub/internal/app/system/httpjson"
	"github.com/dalemusser/studyhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Subject string `json:"subject"`
}

// HandleList handles GET /api/notes.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	student, _ := auth.CurrentStudent(r)

	notes, err := h.Notes.ListForStudent(r.Context(), student.ID)
	if err != nil {
		h.Log.Error("note list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load notes.")
		return
	}
	httpjson.Write(w, http.StatusOK, notes)
}

// HandleCreate handles POST /api/notes. Content is sanitized before storage
// since clients render it as HTML.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	student, _ := auth.CurrentStudent(r)

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Title == "" {
		httpjson.Error(w, http.StatusBadRequest, "Title is required.")
		return
	}

	note, err := h.Notes.Create(r.Context(), models.Note{
		StudentID: student.ID,
		Title:     req.Title,
		Content:   htmlsanitize.Sanitize(req.Content),
		Subject:   req.Subject,
	})
	if err != nil {
		h.Log.Error("note create failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not create note.")
		return
	}
	httpjson.Write(w, http.StatusCreated, note)
}

// HandleUpdate handles PUT /api/notes/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	student, _ := auth.CurrentStudent(r)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "Note not found.")
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Title == "" {
		httpjson.Error(w, http.StatusBadRequest, "Title is required.")
		return
	}

	note, err := h.Notes.Update(r.Context(), id, student.ID,
		req.Title, htmlsanitize.Sanitize(req.Content), req.Subject)
	if err != nil {
		if errors.Is(err, notestore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "Note not found.")
			return
		}
		h.Log.Error("note update failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not update note.")
		return
	}
	httpjson.Write(w, http.StatusOK, note)
}

// HandleDelete handles DELETE /api/notes/{id}. Attachment blobs are released
// best-effort after the record is gone; a stale blob reference should not
// resurrect the note.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	student, _ := auth.CurrentStudent(r)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "Note not found.")
		return
	}

	note, err := h.Notes.Delete(r.Context(), id, student.ID)
	if err != nil {
		if errors.Is(err, notestore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "Note not found.")
			return
		}
		h.Log.Error("note delete failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not delete note.")
		return
	}

	for _, att := range note.Attachments {
		if err := h.Blobs.Delete(att.FileID); err != nil {
			h.Log.Warn("attachment blob release failed",
				zap.String("note_id", note.ID.Hex()),
				zap.String("file_id", att.FileID.Hex()),
				zap.Error(err))
		}
	}

	httpjson.Message(w, "Note deleted.")
}

// HandleToggleShare handles PATCH /api/notes/{id}/share.
func (h *Handler) HandleToggleShare(w http.ResponseWriter, r *http.Request) {
	student, _ := auth.CurrentStudent(r)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "Note not found.")
		return
	}

	note, err := h.Notes.GetOwned(r.Context(), id, student.ID)
	if err != nil {
		if errors.Is(err, notestore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "Note not found.")
			return
		}
		h.Log.Error("note lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not update note.")
		return
	}

	note, err = h.Notes.SetShared(r.Context(), id, student.ID, !note.IsShared)
	if err != nil {
		h.Log.Error("note share toggle failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not update note.")
		return
	}
	httpjson.Write(w, http.StatusOK, note)
}
