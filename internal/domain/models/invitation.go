// internal/domain/models/invitation.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Invitation statuses. Pending is the only non-terminal state.
const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
	InvitationRejected = "rejected"
)

// Invitation is an admin-initiated request for a student to join a group.
//
// At most one pending invitation may exist per (group, invitee) pair; the
// uniq_invitations_pending partial index enforces this at the storage level.
type Invitation struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	GroupID     primitive.ObjectID `bson:"group_id" json:"groupId"`
	InvitedBy   primitive.ObjectID `bson:"invited_by" json:"invitedBy"`
	InvitedUser primitive.ObjectID `bson:"invited_user" json:"invitedUser"`
	Status      string             `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
