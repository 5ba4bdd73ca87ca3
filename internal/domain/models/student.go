// internal/domain/models/student.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Student is the account record for a registered student.
//
// Email is stored lowercased and trimmed and is unique across all students
// (enforced by the uniq_students_email index). The credential hash is never
// serialized into API responses.
type Student struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
