// internal/app/store/groups/groupstore.go
package groupstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/studyhub/internal/app/system/invitecode"
	"github.com/dalemusser/studyhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrNotFound = errors.New("group not found")

	// ErrCodeExhausted means invite-code generation kept colliding with the
	// unique index; with a 32^6 code space this indicates something is wrong
	// with the index, not bad luck.
	ErrCodeExhausted = errors.New("could not generate a unique invite code")
)

// codeAttempts bounds regeneration retries on invite-code collision.
const codeAttempts = 5

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("groups")}
}

// Create inserts a new group with the creator as its sole admin member and
// a freshly generated invite code. Collisions with the unique invite-code
// index trigger regeneration, so uniqueness is a hard invariant rather than
// best-effort.
func (s *Store) Create(ctx context.Context, name, description string, creator primitive.ObjectID) (models.Group, error) {
	now := time.Now().UTC()
	g := models.Group{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Description: description,
		CreatedBy:   creator,
		Members: []models.Membership{{
			StudentID: creator,
			Role:      models.RoleAdmin,
			JoinedAt:  now,
		}},
		CreatedAt: now,
	}

	for attempt := 0; attempt < codeAttempts; attempt++ {
		g.InviteCode = invitecode.New()
		_, err := s.c.InsertOne(ctx, g)
		if err == nil {
			return g, nil
		}
		if !wafflemongo.IsDup(err) {
			return models.Group{}, err
		}
	}
	return models.Group{}, ErrCodeExhausted
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Group{}, ErrNotFound
		}
		return models.Group{}, err
	}
	return g, nil
}

// GetByInviteCode looks a group up by its code, normalized to uppercase.
func (s *Store) GetByInviteCode(ctx context.Context, code string) (models.Group, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"invite_code": code}).Decode(&g); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Group{}, ErrNotFound
		}
		return models.Group{}, err
	}
	return g, nil
}

// ListForStudent returns the groups the student belongs to, newest first.
func (s *Store) ListForStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.Group, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"members.student_id": studentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	groups := []models.Group{}
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// CountForStudent returns how many groups the student belongs to.
func (s *Store) CountForStudent(ctx context.Context, studentID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"members.student_id": studentID})
}

// AddMember appends a membership entry, guarded against duplicates inside
// the update filter so two concurrent adds for the same student cannot both
// land (Mongo applies the filter and push atomically per document).
// Returns true if the member was added, false if the student was already a
// member or the group no longer exists.
func (s *Store) AddMember(ctx context.Context, groupID, studentID primitive.ObjectID, role string) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{
			"_id":                groupID,
			"members.student_id": bson.M{"$ne": studentID},
		},
		bson.M{"$push": bson.M{"members": models.Membership{
			StudentID: studentID,
			Role:      role,
			JoinedAt:  time.Now().UTC(),
		}}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// RemoveMember pulls the student's membership entry. Removing a non-member
// is a silent no-op (documented policy; see DESIGN.md).
func (s *Store) RemoveMember(ctx context.Context, groupID, studentID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": groupID},
		bson.M{"$pull": bson.M{"members": bson.M{"student_id": studentID}}},
	)
	return err
}

// Delete removes a group by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
