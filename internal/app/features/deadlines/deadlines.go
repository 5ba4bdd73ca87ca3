// internal/app/features/deadlines/deadlines.go
package deadlines

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	deadlinestore "github.com/dalemusser/studyhub/internal/app/store/deadlines"
	"github.com/dalemusser/studyhub/internal/app/system/auth"
	"github.com/dalemusser/studyhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/studyhub/internal/app/system/httpjson"
	"github.com/dalemusser/studyhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type deadlineRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
}

func validPriority(p string) bool {
	switch p {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
		return true
	}
	return false
}

func validStatus(s string) bool {
	switch s {
	case models.DeadlineUpcoming, models.DeadlineCompleted, models.DeadlineMissed:
		return true
	}
	return false
}

// HandleList handles GET /api/deadlines, soonest due first.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	student, _ := auth.CurrentStudent(r)

	deadlines, err := h.Deadlines.ListForStudent(r.Context(), student.ID)
	if err != nil {
		h.Log.Error("deadline list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load deadlines.")
		return
	}
	httpjson.Write(w, http.StatusOK, deadlines)
}

// HandleCreate handles POST /api/deadlines.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	student, _ := auth.CurrentStudent(r)

	var req deadlineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Title == "" || req.DueDate == nil {
		httpjson.Error(w, http.StatusBadRequest, "Title and due date are required.")
		return
	}
	if req.Priority != "" && !validPriority(req.Priority) {
		httpjson.Error(w, http.StatusBadRequest, "Priority must be low, medium, or high.")
		return
	}

	deadline, err := h.Deadlines.Create(r.Context(), models.Deadline{
		StudentID:   student.ID,
		Title:       req.Title,
		Description: htmlsanitize.Sanitize(req.Description),
		DueDate:     req.DueDate.UTC(),
		Priority:    req.Priority,
	})
	if err != nil {
		h.Log.Error("deadline create failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not create deadline.")
		return
	}
	httpjson.Write(w, http.StatusCreated, deadline)
}

// HandleUpdate handles PUT /api/deadlines/{id}. A changed due date re-arms
// the reminder.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	student, _ := auth.CurrentStudent(r)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "Deadline not found.")
		return
	}

	var req deadlineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Title == "" || req.DueDate == nil {
		httpjson.Error(w, http.StatusBadRequest, "Title and due date are required.")
		return
	}
	if req.Priority == "" {
		req.Priority = models.PriorityMedium
	}
	if !validPriority(req.Priority) {
		httpjson.Error(w, http.StatusBadRequest, "Priority must be low, medium, or high.")
		return
	}
	if req.Status == "" {
		req.Status = models.DeadlineUpcoming
	}
	if !validStatus(req.Status) {
		httpjson.Error(w, http.StatusBadRequest, "Status must be upcoming, completed, or missed.")
		return
	}

	deadline, err := h.Deadlines.Update(r.Context(), id, student.ID, deadlinestore.UpdateFields{
		Title:       req.Title,
		Description: htmlsanitize.Sanitize(req.Description),
		DueDate:     req.DueDate.UTC(),
		Priority:    req.Priority,
		Status:      req.Status,
	})
	if err != nil {
		if errors.Is(err, deadlinestore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "Deadline not found.")
			return
		}
		h.Log.Error("deadline update failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not update deadline.")
		return
	}
	httpjson.Write(w, http.StatusOK, deadline)
}

// HandleSetStatus handles PATCH /api/deadlines/{id}/status.
func (h *Handler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	student, _ := auth.CurrentStudent(r)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "Deadline not found.")
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
		httpjson.Error(w, http.StatusBadRequest, "Status must be upcoming, completed, or missed.")
		return
	}

	deadline, err := h.Deadlines.SetStatus(r.Context(), id, student.ID, req.Status)
	if err != nil {
		if errors.Is(err, deadlinestore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "Deadline not found.")
			return
		}
		h.Log.Error("deadline status update failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not update deadline.")
		return
	}
	httpjson.Write(w, http.StatusOK, deadline)
}

// HandleDelete handles DELETE /api/deadlines/{id}. Attachment blobs are
// released best-effort once the record is gone.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	student, _ := auth.CurrentStudent(r)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "Deadline not found.")
		return
	}

	deadline, err := h.Deadlines.Delete(r.Context(), id, student.ID)
	if err != nil {
		if errors.Is(err, deadlinestore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "Deadline not found.")
			return
		}
		h.Log.Error("deadline delete failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not delete deadline.")
		return
	}

	for _, att := range deadline.Attachments {
		if err := h.Blobs.Delete(att.FileID); err != nil {
			h.Log.Warn("attachment blob release failed",
				zap.String("deadline_id", deadline.ID.Hex()),
				zap.String("file_id", att.FileID.Hex()),
				zap.Error(err))
		}
	}

	httpjson.Message(w, "Deadline deleted.")
}
