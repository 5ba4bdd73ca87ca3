package grouppolicy

import (
	"testing"

	"github.com/dalemusser/studyhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMembershipChecks(t *testing.T) {
	admin := primitive.NewObjectID()
	member := primitive.NewObjectID()
	outsider := primitive.NewObjectID()

	g := models.Group{
		ID: primitive.NewObjectID(),
		Members: []models.Membership{
			{StudentID: admin, Role: models.RoleAdmin},
			{StudentID: member, Role: models.RoleMember},
		},
	}

	if !IsMember(g, admin) || !IsMember(g, member) {
		t.Error("admins and members should both count as members")
	}
	if IsMember(g, outsider) {
		t.Error("outsider should not be a member")
	}
	if !IsAdmin(g, admin) {
		t.Error("admin role should pass IsAdmin")
	}
	if IsAdmin(g, member) {
		t.Error("plain member should not pass IsAdmin")
	}
	if IsAdmin(g, outsider) {
		t.Error("outsider should not pass IsAdmin")
	}
}

func TestEmptyGroup(t *testing.T) {
	g := models.Group{ID: primitive.NewObjectID()}
	if IsMember(g, primitive.NewObjectID()) {
		t.Error("group with no members should have no members")
	}
}
