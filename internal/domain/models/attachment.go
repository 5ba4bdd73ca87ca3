// internal/domain/models/attachment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attachment is a file embedded in a note, project, or deadline. It is owned
// by exactly one parent: appended on upload, removed (with its blob) on
// explicit delete or when the parent is deleted.
type Attachment struct {
	FileID       primitive.ObjectID `bson:"file_id" json:"fileId"`
	Filename     string             `bson:"filename" json:"filename"`
	OriginalName string             `bson:"original_name" json:"originalName"`
	Mimetype     string             `bson:"mimetype" json:"mimetype"`
	Size         int64              `bson:"size" json:"size"`

	UploadedAt time.Time `bson:"uploaded_at" json:"uploadedAt"`
}
