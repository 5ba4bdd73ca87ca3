// internal/domain/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Membership roles.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Membership is one entry in a group's embedded members list.
type Membership struct {
	StudentID primitive.ObjectID `bson:"student_id" json:"studentId"`
	Role      string             `bson:"role" json:"role"`
	JoinedAt  time.Time          `bson:"joined_at" json:"joinedAt"`
}

// Group is a study group.
//
// NOTE:
//   - Members are embedded on the group document, so membership checks and
//     the duplicate-member guard ride on Mongo's per-document atomicity.
//   - InviteCode is uppercase and unique across all groups
//     (uniq_groups_invite_code index).
type Group struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	CreatedBy   primitive.ObjectID `bson:"created_by" json:"createdBy"`
	InviteCode  string             `bson:"invite_code" json:"inviteCode"`
	Members     []Membership       `bson:"members" json:"members"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
