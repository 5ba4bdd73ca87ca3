// internal/app/features/groups/shares.go
package groups

import (
	"encoding/json"
	"errors"
	"net/http"

	notestore "github.com/dalemusser/studyhub/internal/app/store/notes"
	projectstore "github.com/dalemusser/studyhub/internal/app/store/projects"
	sharestore "github.com/dalemusser/studyhub/internal/app/store/shares"
	"github.com/dalemusser/studyhub/internal/app/policy/grouppolicy"
	"github.com/dalemusser/studyhub/internal/app/system/auth"
	"github.com/dalemusser/studyhub/internal/app/system/httpjson"
	"github.com/dalemusser/studyhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleShare handles POST /api/groups/{id}/share — share a note or project
// into the group. Any member can share any resource id they hold; only the
// (group, type, resource) triple is checked, via the unique index.
func (h *Handler) HandleShare(w http.ResponseWriter, r *http.Request) {
	student, _ := auth.CurrentStudent(r)

	var req struct {
		ResourceType string `json:"resourceType"`
		ResourceID   string `json:"resourceId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.ResourceType != models.ResourceNote && req.ResourceType != models.ResourceProject {
		httpjson.Error(w, http.StatusBadRequest, "Resource type must be note or project.")
		return
	}
	resourceID, err := primitive.ObjectIDFromHex(req.ResourceID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid resource ID.")
		return
	}

	g, ok := h.loadGroup(w, r)
	if !ok {
		return
	}
	if !grouppolicy.IsMember(g, student.ID) {
		httpjson.Error(w, http.StatusForbidden, "Access denied.")
		return
	}

	share, err := h.Shares.Create(r.Context(), g.ID, req.ResourceType, resourceID, student.ID)
	if err != nil {
		if errors.Is(err, sharestore.ErrDuplicateShare) {
			httpjson.Error(w, http.StatusBadRequest, "Already shared to this group.")
			return
		}
		h.Log.Error("share create failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not share resource.")
		return
	}
	httpjson.Write(w, http.StatusCreated, share)
}

// HandleListResources handles GET /api/groups/{id}/resources — the group's
// shares joined with the underlying note/project and the sharer's name,
// newest first. A share whose resource was deleted still appears, with a
// null resource, so clients can show it as gone.
func (h *Handler) HandleListResources(w http.ResponseWriter, r *http.Request) {
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

	shares, err := h.Shares.ListForGroup(ctx, g.ID)
	if err != nil {
		h.Log.Error("share list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load shared resources.")
		return
	}

	sharerIDs := make([]primitive.ObjectID, 0, len(shares))
	for _, s := range shares {
		sharerIDs = append(sharerIDs, s.SharedBy)
	}
	students, err := h.Students.GetByIDs(ctx, sharerIDs)
	if err != nil {
		h.Log.Error("sharer resolution failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load shared resources.")
		return
	}

	views := make([]shareView, 0, len(shares))
	for _, s := range shares {
		var resource any
		switch s.ResourceType {
		case models.ResourceNote:
			if n, err := h.Notes.GetByID(ctx, s.ResourceID); err == nil {
				resource = n
			} else if !errors.Is(err, notestore.ErrNotFound) {
				h.Log.Error("shared note lookup failed", zap.Error(err))
				httpjson.Error(w, http.StatusInternalServerError, "Could not load shared resources.")
				return
			}
		case models.ResourceProject:
			if p, err := h.Projects.GetByID(ctx, s.ResourceID); err == nil {
				resource = p
			} else if !errors.Is(err, projectstore.ErrNotFound) {
				h.Log.Error("shared project lookup failed", zap.Error(err))
				httpjson.Error(w, http.StatusInternalServerError, "Could not load shared resources.")
				return
			}
		}

		sharer := refFor(s.SharedBy, students)
		sharer.Email = "" // only the name is exposed here
		views = append(views, shareView{
			ID:           s.ID.Hex(),
			GroupID:      s.GroupID.Hex(),
			ResourceType: s.ResourceType,
			ResourceID:   s.ResourceID.Hex(),
			SharedBy:     sharer,
			SharedAt:     s.SharedAt.UTC().Format(timeLayout),
			Resource:     resource,
		})
	}
	httpjson.Write(w, http.StatusOK, views)
}
