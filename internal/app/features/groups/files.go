// internal/app/features/groups/files.go
package groups

import (
	"errors"
	"net/http"

	groupfilestore "github.com/dalemusser/studyhub/internal/app/store/groupfiles"
	"github.com/dalemusser/studyhub/internal/app/policy/grouppolicy"
	"github.com/dalemusser/studyhub/internal/app/system/attach"
	"github.com/dalemusser/studyhub/internal/app/system/auth"
	"github.com/dalemusser/studyhub/internal/app/system/blob"
	"github.com/dalemusser/studyhub/internal/app/system/httpjson"
	"github.com/dalemusser/studyhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleUploadFile handles POST /api/groups/{id}/files (multipart) —
// member-only upload into the group's file area.
func (h *Handler) HandleUploadFile(w http.ResponseWriter, r *http.Request) {
	student, _ := auth.CurrentStudent(r)

	g, ok := h.loadGroup(w, r)
	if !ok {
		return
	}
	if !grouppolicy.IsMember(g, student.ID) {
		httpjson.Error(w, http.StatusForbidden, "Access denied.")
		return
	}

	att, err := attach.FromRequest(r, h.Blobs, "group", g.ID, student.ID)
	if err != nil {
		if errors.Is(err, attach.ErrNoFile) {
			httpjson.Error(w, http.StatusBadRequest, "No file provided.")
			return
		}
		h.Log.Error("group file upload failed", zap.Error(err))
		httpjson.Error(w, http.StatusBadRequest, "Could not upload file.")
		return
	}

	gf, err := h.GroupFiles.Create(r.Context(), models.GroupFile{
		GroupID:      g.ID,
		FileID:       att.FileID,
		Filename:     att.Filename,
		OriginalName: att.OriginalName,
		Mimetype:     att.Mimetype,
		Size:         att.Size,
		UploadedBy:   student.ID,
	})
	if err != nil {
		if delErr := h.Blobs.Delete(att.FileID); delErr != nil {
			h.Log.Warn("orphaned blob cleanup failed", zap.Error(delErr))
		}
		h.Log.Error("group file record failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not upload file.")
		return
	}

	httpjson.Write(w, http.StatusCreated, gf)
}

// HandleListFiles handles GET /api/groups/{id}/files — member-only, newest
// first, uploader names resolved.
func (h *Handler) HandleListFiles(w http.ResponseWriter, r *http.Request) {
	student, _ := auth.CurrentStudent(r)
	ctx := r.Context()

	g, ok := h.loadGroup(w, r)
	if !ok {
		return
	}
	if !grouppolicy.IsMember(g, student.ID) {
		httpjson.Error(w, http.StatusForbidden, "Access denied.")
		return
	}

	files, err := h.GroupFiles.ListForGroup(ctx, g.ID)
	if err != nil {
		h.Log.Error("group file list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load files.")
		return
	}

	uploaderIDs := make([]primitive.ObjectID, 0, len(files))
	for _, f := range files {
		uploaderIDs = append(uploaderIDs, f.UploadedBy)
	}
	students, err := h.Students.GetByIDs(ctx, uploaderIDs)
	if err != nil {
		h.Log.Error("uploader resolution failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load files.")
		return
	}

	views := make([]groupFileView, 0, len(files))
	for _, f := range files {
		uploader := refFor(f.UploadedBy, students)
		uploader.Email = ""
		views = append(views, groupFileView{
			ID:           f.ID.Hex(),
			GroupID:      f.GroupID.Hex(),
			FileID:       f.FileID.Hex(),
			Filename:     f.Filename,
			OriginalName: f.OriginalName,
			Mimetype:     f.Mimetype,
			Size:         f.Size,
			UploadedBy:   uploader,
			UploadedAt:   f.UploadedAt.UTC().Format(timeLayout),
		})
	}
	httpjson.Write(w, http.StatusOK, views)
}

// HandleDeleteFile handles DELETE /api/groups/{id}/files/{fileId}. Only the
// original uploader may delete, even group admins are refused. The blob
// delete is strict here, unlike the group cascade: a failed release keeps
// the record so the file stays visible and deletable.
func (h *Handler) HandleDeleteFile(w http.ResponseWriter, r *http.Request) {
	student, _ := auth.CurrentStudent(r)

	g, ok := h.loadGroup(w, r)
	if !ok {
		return
	}
	if !grouppolicy.IsMember(g, student.ID) {
		httpjson.Error(w, http.StatusForbidden, "Access denied.")
		return
	}

	fileID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "fileId"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "File not found.")
		return
	}

	gf, err := h.GroupFiles.FindInGroup(r.Context(), g.ID, fileID)
	if err != nil {
		if errors.Is(err, groupfilestore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "File not found.")
			return
		}
		h.Log.Error("group file lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not delete file.")
		return
	}

	if gf.UploadedBy != student.ID {
		httpjson.Error(w, http.StatusForbidden, "Only the uploader can delete this file.")
		return
	}

	if err := h.Blobs.Delete(gf.FileID); err != nil && !errors.Is(err, blob.ErrNotFound) {
		h.Log.Error("group file blob delete failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not delete file.")
		return
	}

	if err := h.GroupFiles.Delete(r.Context(), gf.ID); err != nil {
		h.Log.Error("group file record delete failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not delete file.")
		return
	}

	httpjson.Message(w, "File deleted.")
}
