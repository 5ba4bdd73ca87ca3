// internal/app/store/groupfiles/groupfilestore.go
package groupfilestore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/studyhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store tracks file metadata for group uploads. The bytes themselves live
// in the blob bucket; this collection carries the group association and
// uploader so listing and access checks never touch GridFS.
type Store struct {
	c *mongo.Collection
}

var ErrNotFound = errors.New("group file not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("group_files")}
}

func (s *Store) Create(ctx context.Context, gf models.GroupFile) (models.GroupFile, error) {
	gf.ID = primitive.NewObjectID()
	gf.UploadedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, gf); err != nil {
		return models.GroupFile{}, err
	}
	return gf, nil
}

// ListForGroup returns a group's files, newest first.
func (s *Store) ListForGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.GroupFile, error) {
	opts := options.Find().SetSort(bson.D{{Key: "uploaded_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"group_id": groupID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	files := []models.GroupFile{}
	if err := cur.All(ctx, &files); err != nil {
		return nil, err
	}
	return files, nil
}

// FindInGroup fetches one file record scoped to a group, so a file id from
// another group resolves to ErrNotFound rather than leaking across groups.
func (s *Store) FindInGroup(ctx context.Context, groupID, fileID primitive.ObjectID) (models.GroupFile, error) {
	var gf models.GroupFile
	err := s.c.FindOne(ctx, bson.M{"_id": fileID, "group_id": groupID}).Decode(&gf)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.GroupFile{}, ErrNotFound
		}
		return models.GroupFile{}, err
	}
	return gf, nil
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByGroup drops all file records for a group. Callers release the
// blobs first (via ListForGroup) since this only clears metadata.
func (s *Store) DeleteByGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"group_id": groupID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
