// internal/app/policy/grouppolicy.go

// Package grouppolicy answers membership and role questions about a loaded
// group document. Membership is embedded on the group, so checks are pure
// and need no extra query.
package grouppolicy

import (
	"github.com/dalemusser/studyhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IsMember reports whether the student belongs to the group in any role.
func IsMember(g models.Group, studentID primitive.ObjectID) bool {
	for _, m := range g.Members {
		if m.StudentID == studentID {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the student is an admin of the group.
func IsAdmin(g models.Group, studentID primitive.ObjectID) bool {
	for _, m := range g.Members {
		if m.StudentID == studentID && m.Role == models.RoleAdmin {
			return true
		}
	}
	return false
}
