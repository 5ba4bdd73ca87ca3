// internal/app/features/groups/invitations.go
package groups

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	groupstore "github.com/dalemusser/studyhub/internal/app/store/groups"
	invitationstore "github.com/dalemusser/studyhub/internal/app/store/invitations"
	studentstore "github.com/dalemusser/studyhub/internal/app/store/students"
	"github.com/dalemusser/studyhub/internal/app/policy/grouppolicy"
	"github.com/dalemusser/studyhub/internal/app/system/auth"
	"github.com/dalemusser/studyhub/internal/app/system/httpjson"
	"github.com/dalemusser/studyhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleMyInvitations handles GET /api/groups/invitations — the caller's
// pending invitations with group and inviter resolved.
func (h *Handler) HandleMyInvitations(w http.ResponseWriter, r *http.Request) {
	student, _ := auth.CurrentStudent(r)
	ctx := r.Context()

	invs, err := h.Invitations.ListPendingForInvitee(ctx, student.ID)
	if err != nil {
		h.Log.Error("invitation list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load invitations.")
		return
	}

	inviterIDs := make([]primitive.ObjectID, 0, len(invs))
	for _, inv := range invs {
		inviterIDs = append(inviterIDs, inv.InvitedBy, inv.InvitedUser)
	}
	students, err := h.Students.GetByIDs(ctx, inviterIDs)
	if err != nil {
		h.Log.Error("inviter resolution failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load invitations.")
		return
	}

	views := make([]invitationView, 0, len(invs))
	for _, inv := range invs {
		// A group deleted after the invite was sent simply drops off the list.
		g, err := h.Groups.GetByID(ctx, inv.GroupID)
		if err != nil {
			if errors.Is(err, groupstore.ErrNotFound) {
				continue
			}
			h.Log.Error("invitation group lookup failed", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "Could not load invitations.")
			return
		}
		views = append(views, invitationToView(inv, &g, students))
	}
	httpjson.Write(w, http.StatusOK, views)
}

// HandleRespond handles PATCH /api/groups/invitations/{invId}/respond.
//
// The pending status is part of the store filter, so responding twice — or
// responding to someone else's invitation — is indistinguishable from a
// missing invitation and returns 404.
func (h *Handler) HandleRespond(w http.ResponseWriter, r *http.Request) {
	student, _ := auth.CurrentStudent(r)

	invID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "invId"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "Invitation not found or already responded.")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Status != models.InvitationAccepted && req.Status != models.InvitationRejected {
		httpjson.Error(w, http.StatusBadRequest, "Status must be accepted or rejected.")
		return
	}

	inv, err := h.Invitations.Respond(r.Context(), invID, student.ID, req.Status)
	if err != nil {
		if errors.Is(err, invitationstore.ErrNotPending) {
			httpjson.Error(w, http.StatusNotFound, "Invitation not found or already responded.")
			return
		}
		h.Log.Error("invitation respond failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not respond to invitation.")
		return
	}

	if req.Status == models.InvitationAccepted {
		// AddMember's guarded filter keeps accept idempotent with respect to
		// membership; a vanished group is likewise a no-op.
		if _, err := h.Groups.AddMember(r.Context(), inv.GroupID, student.ID, models.RoleMember); err != nil {
			h.Log.Error("membership append after accept failed",
				zap.String("group_id", inv.GroupID.Hex()),
				zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "Could not respond to invitation.")
			return
		}
	}

	httpjson.Write(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Invitation %s.", req.Status),
		"status":  req.Status,
	})
}

// HandleInvite handles POST /api/groups/{id}/invite — admin invites a
// student by email.
func (h *Handler) HandleInvite(w http.ResponseWriter, r *http.Request) {
	student, _ := auth.CurrentStudent(r)
	ctx := r.Context()

	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Email == "" {
		httpjson.Error(w, http.StatusBadRequest, "Email is required.")
		return
	}

	g, ok := h.loadGroup(w, r)
	if !ok {
		return
	}
	if !grouppolicy.IsAdmin(g, student.ID) {
		httpjson.Error(w, http.StatusForbidden, "Only the group admin can invite members.")
		return
	}

	invitee, err := h.Students.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, studentstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound,
				fmt.Sprintf("No student found with email %q.", req.Email))
			return
		}
		h.Log.Error("invitee lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not send invitation.")
		return
	}

	if invitee.ID == student.ID {
		httpjson.Error(w, http.StatusBadRequest, "You cannot invite yourself.")
		return
	}
	if grouppolicy.IsMember(g, invitee.ID) {
		httpjson.Error(w, http.StatusBadRequest,
			fmt.Sprintf("%s is already a member.", invitee.Name))
		return
	}

	inv, err := h.Invitations.Create(ctx, g.ID, student.ID, invitee.ID)
	if err != nil {
		if errors.Is(err, invitationstore.ErrDuplicatePending) {
			httpjson.Error(w, http.StatusBadRequest,
				fmt.Sprintf("A pending invitation already exists for %s.", invitee.Name))
			return
		}
		h.Log.Error("invitation create failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not send invitation.")
		return
	}

	students, err := h.Students.GetByIDs(ctx, []primitive.ObjectID{inv.InvitedBy, inv.InvitedUser})
	if err != nil {
		h.Log.Error("invitation resolution failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not send invitation.")
		return
	}
	httpjson.Write(w, http.StatusCreated, invitationToView(inv, nil, students))
}

// HandleGroupInvitations handles GET /api/groups/{id}/invitations — admin
// sees every invitation for the group regardless of status.
func (h *Handler) HandleGroupInvitations(w http.ResponseWriter, r *http.Request) {
	student, _ := auth.CurrentStudent(r)
	ctx := r.Context()

	g, ok := h.loadGroup(w, r)
	if !ok {
		return
	}
	if !grouppolicy.IsAdmin(g, student.ID) {
		httpjson.Error(w, http.StatusForbidden, "Only the group admin can view invitations.")
		return
	}

	invs, err := h.Invitations.ListForGroup(ctx, g.ID)
	if err != nil {
		h.Log.Error("invitation list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load invitations.")
		return
	}

	ids := make([]primitive.ObjectID, 0, len(invs)*2)
	for _, inv := range invs {
		ids = append(ids, inv.InvitedBy, inv.InvitedUser)
	}
	students, err := h.Students.GetByIDs(ctx, ids)
	if err != nil {
		h.Log.Error("invitation resolution failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load invitations.")
		return
	}

	views := make([]invitationView, 0, len(invs))
	for _, inv := range invs {
		views = append(views, invitationToView(inv, nil, students))
	}
	httpjson.Write(w, http.StatusOK, views)
}
