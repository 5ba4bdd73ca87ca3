// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/studyhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateStudent inserts a student. Password is stored as given; tests that
// exercise login hash it themselves.
func (f *Fixtures) CreateStudent(ctx context.Context, name, email string) models.Student {
	f.t.Helper()

	student := models.Student{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     email,
		Password:  "x",
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("students").InsertOne(ctx, student); err != nil {
		f.t.Fatalf("failed to create test student: %v", err)
	}
	return student
}

// CreateGroup inserts a group with the creator as its admin member.
func (f *Fixtures) CreateGroup(ctx context.Context, name, inviteCode string, creator primitive.ObjectID) models.Group {
	f.t.Helper()

	now := time.Now().UTC()
	group := models.Group{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Description: "Test group description",
		CreatedBy:   creator,
		InviteCode:  inviteCode,
		Members: []models.Membership{{
			StudentID: creator,
			Role:      models.RoleAdmin,
			JoinedAt:  now,
		}},
		CreatedAt: now,
	}
	if _, err := f.db.Collection("groups").InsertOne(ctx, group); err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}
	return group
}

// AddGroupMember appends a plain member to an existing group document.
func (f *Fixtures) AddGroupMember(ctx context.Context, groupID, studentID primitive.ObjectID) {
	f.t.Helper()

	_, err := f.db.Collection("groups").UpdateByID(ctx, groupID,
		map[string]any{"$push": map[string]any{"members": models.Membership{
			StudentID: studentID,
			Role:      models.RoleMember,
			JoinedAt:  time.Now().UTC(),
		}}})
	if err != nil {
		f.t.Fatalf("failed to add test group member: %v", err)
	}
}

// CreateNote inserts a note owned by the given student.
func (f *Fixtures) CreateNote(ctx context.Context, studentID primitive.ObjectID, title string) models.Note {
	f.t.Helper()

	now := time.Now().UTC()
	note := models.Note{
		ID:          primitive.NewObjectID(),
		StudentID:   studentID,
		Title:       title,
		Content:     "<p>test content</p>",
		Subject:     "Testing",
		Attachments: []models.Attachment{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("notes").InsertOne(ctx, note); err != nil {
		f.t.Fatalf("failed to create test note: %v", err)
	}
	return note
}

// CreateProject inserts a project owned by the given student.
func (f *Fixtures) CreateProject(ctx context.Context, studentID primitive.ObjectID, title string) models.Project {
	f.t.Helper()

	now := time.Now().UTC()
	project := models.Project{
		ID:          primitive.NewObjectID(),
		StudentID:   studentID,
		Title:       title,
		Description: "Test project description",
		Status:      models.ProjectPending,
		Attachments: []models.Attachment{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("projects").InsertOne(ctx, project); err != nil {
		f.t.Fatalf("failed to create test project: %v", err)
	}
	return project
}

// CreateDeadline inserts an upcoming, unreminded deadline.
func (f *Fixtures) CreateDeadline(ctx context.Context, studentID primitive.ObjectID, title string, due time.Time) models.Deadline {
	f.t.Helper()

	deadline := models.Deadline{
		ID:          primitive.NewObjectID(),
		StudentID:   studentID,
		Title:       title,
		DueDate:     due,
		Priority:    models.PriorityMedium,
		Status:      models.DeadlineUpcoming,
		Attachments: []models.Attachment{},
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := f.db.Collection("deadlines").InsertOne(ctx, deadline); err != nil {
		f.t.Fatalf("failed to create test deadline: %v", err)
	}
	return deadline
}

// CreateInvitation inserts a pending invitation.
func (f *Fixtures) CreateInvitation(ctx context.Context, groupID, invitedBy, invitedUser primitive.ObjectID) models.Invitation {
	f.t.Helper()

	inv := models.Invitation{
		ID:          primitive.NewObjectID(),
		GroupID:     groupID,
		InvitedBy:   invitedBy,
		InvitedUser: invitedUser,
		Status:      models.InvitationPending,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := f.db.Collection("group_invitations").InsertOne(ctx, inv); err != nil {
		f.t.Fatalf("failed to create test invitation: %v", err)
	}
	return inv
}

// CreateShare inserts a resource share.
func (f *Fixtures) CreateShare(ctx context.Context, groupID primitive.ObjectID, resourceType string, resourceID, sharedBy primitive.ObjectID) models.ResourceShare {
	f.t.Helper()

	share := models.ResourceShare{
		ID:           primitive.NewObjectID(),
		GroupID:      groupID,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		SharedBy:     sharedBy,
		SharedAt:     time.Now().UTC(),
	}
	if _, err := f.db.Collection("group_resources").InsertOne(ctx, share); err != nil {
		f.t.Fatalf("failed to create test share: %v", err)
	}
	return share
}
