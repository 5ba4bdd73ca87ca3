// internal/app/features/groups/handler.go

// Package groups serves the study-group surface: membership and invite
// codes, email-resolved invitations, resource shares, and group files.
package groups

import (
	groupfilestore "github.com/dalemusser/studyhub/internal/app/store/groupfiles"
	groupstore "github.com/dalemusser/studyhub/internal/app/store/groups"
	invitationstore "github.com/dalemusser/studyhub/internal/app/store/invitations"
	notestore "github.com/dalemusser/studyhub/internal/app/store/notes"
	projectstore "github.com/dalemusser/studyhub/internal/app/store/projects"
	sharestore "github.com/dalemusser/studyhub/internal/app/store/shares"
	studentstore "github.com/dalemusser/studyhub/internal/app/store/students"
	"github.com/dalemusser/studyhub/internal/app/system/blob"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the groups feature.
type Handler struct {
	Groups      *groupstore.Store
	Students    *studentstore.Store
	Invitations *invitationstore.Store
	Shares      *sharestore.Store
	GroupFiles  *groupfilestore.Store
	Notes       *notestore.Store
	Projects    *projectstore.Store
	Blobs       *blob.Store
	Log         *zap.Logger
}

// NewHandler constructs a groups Handler. Called from bootstrap BuildHandler.
func NewHandler(
	groups *groupstore.Store,
	students *studentstore.Store,
	invitations *invitationstore.Store,
	shares *sharestore.Store,
	groupFiles *groupfilestore.Store,
	notes *notestore.Store,
	projects *projectstore.Store,
	blobs *blob.Store,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Groups:      groups,
		Students:    students,
		Invitations: invitations,
		Shares:      shares,
		GroupFiles:  groupFiles,
		Notes:       notes,
		Projects:    projects,
		Blobs:       blobs,
		Log:         logger,
	}
}
