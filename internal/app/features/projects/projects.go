// internal/app/features/projects/projects.go
package projects

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	projectstore "github.com/dalemusser/studyhub/internal/app/store/projects"
	"github.com/dalemusser/studyhub/internal/app/system/auth"
	"github.com/dalemusser/studyhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/studyhub/internal/app/system/httpjson"
	"github.com/dalemusser/studyhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type projectRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"dueDate"`
}

func validStatus(s string) bool {
	switch s {
	case models.ProjectPending, models.ProjectInProgress, models.ProjectCompleted:
		return true
	}
	return false
}

// HandleList handles GET /api/projects.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	student, _ := auth.CurrentStudent(r)

	projects, err := h.Projects.ListForStudent(r.Context(), student.ID)
	if err != nil {
		h.Log.Error("project list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load projects.")
		return
	}
	httpjson.Write(w, http.StatusOK, projects)
}

// HandleCreate handles POST /api/projects.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	student, _ := auth.CurrentStudent(r)

	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Title == "" {
		httpjson.Error(w, http.StatusBadRequest, "Title is required.")
		return
	}
	if req.Status != "" && !validStatus(req.Status) {
		httpjson.Error(w, http.StatusBadRequest, "Status must be pending, in_progress, or completed.")
		return
	}

	project, err := h.Projects.Create(r.Context(), models.Project{
		StudentID:   student.ID,
		Title:       req.Title,
		Description: htmlsanitize.Sanitize(req.Description),
		Status:      req.Status,
		DueDate:     req.DueDate,
	})
	if err != nil {
		h.Log.Error("project create failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not create project.")
		return
	}
	httpjson.Write(w, http.StatusCreated, project)
}

// HandleUpdate handles PUT /api/projects/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	student, _ := auth.CurrentStudent(r)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "Project not found.")
		return
	}

	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Title == "" {
		httpjson.Error(w, http.StatusBadRequest, "Title is required.")
		return
	}
	if req.Status == "" {
		req.Status = models.ProjectPending
	}
	if !validStatus(req.Status) {
		httpjson.Error(w, http.StatusBadRequest, "Status must be pending, in_progress, or completed.")
		return
	}

	project, err := h.Projects.Update(r.Context(), id, student.ID, projectstore.UpdateFields{
		Title:       req.Title,
		Description: htmlsanitize.Sanitize(req.Description),
		Status:      req.Status,
		DueDate:     req.DueDate,
	})
	if err != nil {
		if errors.Is(err, projectstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "Project not found.")
			return
		}
		h.Log.Error("project update failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not update project.")
		return
	}
	httpjson.Write(w, http.StatusOK, project)
}

// HandleSetStatus handles PATCH /api/projects/{id}/status.
func (h *Handler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	student, _ := auth.CurrentStudent(r)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "Project not found.")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if !validStatus(req.Status) {
		httpjson.Error(w, http.StatusBadRequest, "Status must be pending, in_progress, or completed.")
		return
	}

	project, err := h.Projects.SetStatus(r.Context(), id, student.ID, req.Status)
	if err != nil {
		if errors.Is(err, projectstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "Project not found.")
			return
		}
		h.Log.Error("project status update failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not update project.")
		return
	}
	httpjson.Write(w, http.StatusOK, project)
}

// HandleToggleShare handles PATCH /api/projects/{id}/share.
func (h *Handler) HandleToggleShare(w http.ResponseWriter, r *http.Request) {
	student, _ := auth.CurrentStudent(r)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "Project not found.")
		return
	}

	project, err := h.Projects.GetOwned(r.Context(), id, student.ID)
	if err != nil {
		if errors.Is(err, projectstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "Project not found.")
			return
		}
		h.Log.Error("project lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not update project.")
		return
	}

	project, err = h.Projects.SetShared(r.Context(), id, student.ID, !project.IsShared)
	if err != nil {
		h.Log.Error("project share toggle failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not update project.")
		return
	}
	httpjson.Write(w, http.StatusOK, project)
}

// HandleDelete handles DELETE /api/projects/{id}. Attachment blobs are
// released best-effort once the record is gone.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	student, _ := auth.CurrentStudent(r)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "Project not found.")
		return
	}

	project, err := h.Projects.Delete(r.Context(), id, student.ID)
	if err != nil {
		if errors.Is(err, projectstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "Project not found.")
			return
		}
		h.Log.Error("project delete failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not delete project.")
		return
	}

	for _, att := range project.Attachments {
		if err := h.Blobs.Delete(att.FileID); err != nil {
			h.Log.Warn("attachment blob release failed",
				zap.String("project_id", project.ID.Hex()),
				zap.String("file_id", att.FileID.Hex()),
				zap.Error(err))
		}
	}

	httpjson.Message(w, "Project deleted.")
}
