// internal/domain/models/resourceshare.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Shareable resource types.
const (
	ResourceNote    = "note"
	ResourceProject = "project"
)

// ResourceShare records that a note or project has been shared into a group.
// The (group, type, resource) triple is unique (uniq_shares_triple index);
// shares are never mutated and are removed only by the group delete cascade.
type ResourceShare struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	GroupID      primitive.ObjectID `bson:"group_id" json:"groupId"`
	ResourceType string             `bson:"resource_type" json:"resourceType"`
	ResourceID   primitive.ObjectID `bson:"resource_id" json:"resourceId"`
	SharedBy     primitive.ObjectID `bson:"shared_by" json:"sharedBy"`

	SharedAt time.Time `bson:"shared_at" json:"sharedAt"`
}
