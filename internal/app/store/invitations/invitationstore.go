// internal/app/store/invitations/invitationstore.go
package invitationstore

import (
	"context"
	"errors"
	"time"

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
	// ErrNotPending means no pending invitation matched; it was already
	// answered, never existed, or belongs to someone else.
	ErrNotPending = errors.New("pending invitation not found")

	ErrDuplicatePending = errors.New("a pending invitation for this student already exists")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("group_invitations")}
}

// Create records a pending invitation. The partial unique index on
// (group_id, invited_user) where status is pending rejects a second open
// invite for the same student.
func (s *Store) Create(ctx context.Context, groupID, invitedBy, invitedUser primitive.ObjectID) (models.Invitation, error) {
	inv := models.Invitation{
		ID:          primitive.NewObjectID(),
		GroupID:     groupID,
		InvitedBy:   invitedBy,
		InvitedUser: invitedUser,
		Status:      models.InvitationPending,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, inv); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Invitation{}, ErrDuplicatePending
		}
		return models.Invitation{}, err
	}
	return inv, nil
}

// ListPendingForInvitee returns a student's open invitations, newest first.
func (s *Store) ListPendingForInvitee(ctx context.Context, studentID primitive.ObjectID) ([]models.Invitation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{
		"invited_user": studentID,
		"status":       models.InvitationPending,
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	invs := []models.Invitation{}
	if err := cur.All(ctx, &invs); err != nil {
		return nil, err
	}
	return invs, nil
}

// ListForGroup returns every invitation for a group regardless of status,
// newest first.
func (s *Store) ListForGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.Invitation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"group_id": groupID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	invs := []models.Invitation{}
	if err := cur.All(ctx, &invs); err != nil {
		return nil, err
	}
	return invs, nil
}

// Respond transitions a pending invitation to accepted or rejected and
// returns the updated document. The pending status is part of the update
// filter, so a second response (or a response by the wrong student) finds
// nothing and gets ErrNotPending. This makes respond-once atomic without a
// transaction.
func (s *Store) Respond(ctx context.Context, id, invitee primitive.ObjectID, status string) (models.Invitation, error) {
	var inv models.Invitation
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{
			"_id":          id,
			"invited_user": invitee,
			"status":       models.InvitationPending,
		},
		bson.M{"$set": bson.M{"status": status}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&inv)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Invitation{}, ErrNotPending
		}
		return models.Invitation{}, err
	}
	return inv, nil
}

// DeleteByGroup removes all invitations for a group; used by group cascade
// deletion.
func (s *Store) DeleteByGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"group_id": groupID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
