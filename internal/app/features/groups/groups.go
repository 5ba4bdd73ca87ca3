// internal/app/features/groups/groups.go
package groups

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dalemusser/studyhub/internal/app/policy/grouppolicy"
	groupstore "github.com/dalemusser/studyhub/internal/app/store/groups"
	"github.com/dalemusser/studyhub/internal/app/system/auth"
	"github.com/dalemusser/studyhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/studyhub/internal/app/system/httpjson"
	"github.com/dalemusser/studyhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleList handles GET /api/groups — the caller's groups, newest first.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	student, _ := auth.CurrentStudent(r)

	gs, err := h.Groups.ListForStudent(r.Context(), student.ID)
	if err != nil {
		h.Log.Error("group list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load groups.")
		return
	}

	views, err := h.groupsToViews(r.Context(), gs)
	if err != nil {
		h.Log.Error("group member resolution failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load groups.")
		return
	}
	httpjson.Write(w, http.StatusOK, views)
}

// HandleCreate handles POST /api/groups.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	student, _ := auth.CurrentStudent(r)

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Name == "" {
		httpjson.Error(w, http.StatusBadRequest, "Group name is required.")
		return
	}

	g, err := h.Groups.Create(r.Context(), req.Name, htmlsanitize.Sanitize(req.Description), student.ID)
	if err != nil {
		h.Log.Error("group create failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not create group.")
		return
	}

	view, err := h.groupToView(r.Context(), g)
	if err != nil {
		h.Log.Error("group member resolution failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not create group.")
		return
	}
	httpjson.Write(w, http.StatusCreated, view)
}

// HandleJoin handles POST /api/groups/join — join by invite code.
func (h *Handler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	student, _ := auth.CurrentStudent(r)

	var req struct {
		InviteCode string `json:"inviteCode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.InviteCode == "" {
		httpjson.Error(w, http.StatusBadRequest, "Invite code is required.")
		return
	}

	g, err := h.Groups.GetByInviteCode(r.Context(), req.InviteCode)
	if err != nil {
		if errors.Is(err, groupstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "Invalid invite code.")
			return
		}
		h.Log.Error("group lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not join group.")
		return
	}

	added, err := h.Groups.AddMember(r.Context(), g.ID, student.ID, models.RoleMember)
	if err != nil {
		h.Log.Error("group join failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not join group.")
		return
	}
	if !added {
		httpjson.Error(w, http.StatusBadRequest,
			fmt.Sprintf("You are already a member of %q.", g.Name))
		return
	}

	g, err = h.Groups.GetByID(r.Context(), g.ID)
	if err != nil {
		h.Log.Error("group reload failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not join group.")
		return
	}
	view, err := h.groupToView(r.Context(), g)
	if err != nil {
		h.Log.Error("group member resolution failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not join group.")
		return
	}
	httpjson.Write(w, http.StatusOK, view)
}

// HandleDashboardStats handles GET /api/groups/stats/dashboard.
func (h *Handler) HandleDashboardStats(w http.ResponseWriter, r *http.Request) {
	student, _ := auth.CurrentStudent(r)

	count, err := h.Groups.CountForStudent(r.Context(), student.ID)
	if err != nil {
		h.Log.Error("group count failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load stats.")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]int64{"count": count})
}

// HandleDetail handles GET /api/groups/{id} — members resolved, member-only.
func (h *Handler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	student, _ := auth.CurrentStudent(r)

	g, ok := h.loadGroup(w, r)
	if !ok {
		return
	}
	if !grouppolicy.IsMember(g, student.ID) {
		httpjson.Error(w, http.StatusForbidden, "Access denied. Not a member.")
		return
	}

	view, err := h.groupToView(r.Context(), g)
	if err != nil {
		h.Log.Error("group member resolution failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load group.")
		return
	}
	httpjson.Write(w, http.StatusOK, view)
}

// HandleDelete handles DELETE /api/groups/{id} — admin only. Dependent
// records are removed files → shares → invitations → group so they never
// outlive their parent. Blob releases are best-effort; record deletions are
// not, and any failed stage surfaces as a 500 instead of a silent partial
// success.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	student, _ := auth.CurrentStudent(r)

	g, ok := h.loadGroup(w, r)
	if !ok {
		return
	}
	if !grouppolicy.IsAdmin(g, student.ID) {
		httpjson.Error(w, http.StatusForbidden, "Only the group admin can delete this group.")
		return
	}

	ctx := r.Context()
	var stageErrs []error

	files, err := h.GroupFiles.ListForGroup(ctx, g.ID)
	if err != nil {
		stageErrs = append(stageErrs, fmt.Errorf("list files: %w", err))
	} else {
		for _, f := range files {
			if err := h.Blobs.Delete(f.FileID); err != nil {
				h.Log.Warn("cascade blob release failed",
					zap.String("group_id", g.ID.Hex()),
					zap.String("file_id", f.FileID.Hex()),
					zap.Error(err))
			}
		}
		if _, err := h.GroupFiles.DeleteByGroup(ctx, g.ID); err != nil {
			stageErrs = append(stageErrs, fmt.Errorf("delete files: %w", err))
		}
	}

	if _, err := h.Shares.DeleteByGroup(ctx, g.ID); err != nil {
		stageErrs = append(stageErrs, fmt.Errorf("delete shares: %w", err))
	}
	if _, err := h.Invitations.DeleteByGroup(ctx, g.ID); err != nil {
		stageErrs = append(stageErrs, fmt.Errorf("delete invitations: %w", err))
	}
	if _, err := h.Groups.Delete(ctx, g.ID); err != nil {
		stageErrs = append(stageErrs, fmt.Errorf("delete group: %w", err))
	}

	if len(stageErrs) > 0 {
		h.Log.Error("group cascade delete incomplete",
			zap.String("group_id", g.ID.Hex()),
			zap.Errors("stages", stageErrs))
		httpjson.Error(w, http.StatusInternalServerError, "Group deletion did not fully complete.")
		return
	}

	httpjson.Message(w, "Group deleted.")
}

// HandleLeave handles DELETE /api/groups/{id}/leave. Leaving a group you
// are not in succeeds silently; see DESIGN.md for the decision.
func (h *Handler) HandleLeave(w http.ResponseWriter, r *http.Request) {
	student, _ := auth.CurrentStudent(r)

	g, ok := h.loadGroup(w, r)
	if !ok {
		return
	}

	if err := h.Groups.RemoveMember(r.Context(), g.ID, student.ID); err != nil {
		h.Log.Error("group leave failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not leave group.")
		return
	}
	httpjson.Message(w, "You have left the group.")
}

// loadGroup parses the {id} URL parameter and loads the group, writing the
// 404 response itself when either step fails.
func (h *Handler) loadGroup(w http.ResponseWriter, r *http.Request) (models.Group, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "Group not found.")
		return models.Group{}, false
	}
	g, err := h.Groups.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, groupstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "Group not found.")
			return models.Group{}, false
		}
		h.Log.Error("group lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load group.")
		return models.Group{}, false
	}
	return g, true
}
