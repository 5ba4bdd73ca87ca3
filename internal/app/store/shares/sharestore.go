// internal/app/store/shares/sharestore.go
package sharestore

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

// ErrDuplicateShare means the resource is already shared into the group;
// enforced by the unique (group_id, resource_type, resource_id) index.
var ErrDuplicateShare = errors.New("resource is already shared to this group")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("group_resources")}
}

func (s *Store) Create(ctx context.Context, groupID primitive.ObjectID, resourceType string, resourceID, sharedBy primitive.ObjectID) (models.ResourceShare, error) {
	share := models.ResourceShare{
		ID:           primitive.NewObjectID(),
		GroupID:      groupID,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		SharedBy:     sharedBy,
		SharedAt:     time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, share); err != nil {
		if wafflemongo.IsDup(err) {
			return models.ResourceShare{}, ErrDuplicateShare
		}
		return models.ResourceShare{}, err
	}
	return share, nil
}

// ListForGroup returns a group's shares, newest first.
func (s *Store) ListForGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.ResourceShare, error) {
	opts := options.Find().SetSort(bson.D{{Key: "shared_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"group_id": groupID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	shares := []models.ResourceShare{}
	if err := cur.All(ctx, &shares); err != nil {
		return nil, err
	}
	return shares, nil
}

// DeleteByGroup removes all shares for a group; used by group cascade
// deletion.
func (s *Store) DeleteByGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"group_id": groupID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
