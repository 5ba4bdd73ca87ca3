// internal/domain/models/groupfile.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GroupFile is a file uploaded directly to a group, distinct from
// attachments embedded in notes/projects/deadlines. FileID points at the
// blob store object holding the bytes. Only the uploader may delete it
// (admins included in the restriction); the group delete cascade removes it
// together with its blob.
type GroupFile struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	GroupID      primitive.ObjectID `bson:"group_id" json:"groupId"`
	FileID       primitive.ObjectID `bson:"file_id" json:"fileId"`
	Filename     string             `bson:"filename" json:"filename"`
	OriginalName string             `bson:"original_name" json:"originalName"`
	Mimetype     string             `bson:"mimetype" json:"mimetype"`
	Size         int64              `bson:"size" json:"size"`
	UploadedBy   primitive.ObjectID `bson:"uploaded_by" json:"uploadedBy"`

	UploadedAt time.Time `bson:"uploaded_at" json:"uploadedAt"`
}
