// internal/app/store/notes/notestore.go
package notestore

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

// Store persists notes. Every mutating or owner-facing read carries the
// student id in its filter, so one student can never touch another's note;
// a wrong owner surfaces as ErrNotFound, not a permission error.
type Store struct {
	c *mongo.Collection
}

var ErrNotFound = errors.New("note not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("notes")}
}

func (s *Store) Create(ctx context.Context, n models.Note) (models.Note, error) {
	now := time.Now().UTC()
	n.ID = primitive.NewObjectID()
	n.CreatedAt = now
	n.UpdatedAt = now
	if n.Attachments == nil {
		n.Attachments = []models.Attachment{}
	}
	if _, err := s.c.InsertOne(ctx, n); err != nil {
		return models.Note{}, err
	}
	return n, nil
}

// ListForStudent returns the student's notes, most recently updated first.
func (s *Store) ListForStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.Note, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"student_id": studentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	notes := []models.Note{}
	if err := cur.All(ctx, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// GetOwned fetches a note only if the student owns it.
func (s *Store) GetOwned(ctx context.Context, id, studentID primitive.ObjectID) (models.Note, error) {
	var n models.Note
	err := s.c.FindOne(ctx, bson.M{"_id": id, "student_id": studentID}).Decode(&n)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Note{}, ErrNotFound
		}
		return models.Note{}, err
	}
	return n, nil
}

// GetByID fetches a note without an ownership check. Used when resolving
// resources shared into a group, where the reader is not the owner.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Note, error) {
	var n models.Note
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&n); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Note{}, ErrNotFound
		}
		return models.Note{}, err
	}
	return n, nil
}

// Update replaces the editable fields and returns the updated note.
func (s *Store) Update(ctx context.Context, id, studentID primitive.ObjectID, title, content, subject string) (models.Note, error) {
	var n models.Note
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "student_id": studentID},
		bson.M{"$set": bson.M{
			"title":      title,
			"content":    content,
			"subject":    subject,
			"updated_at": time.Now().UTC(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&n)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Note{}, ErrNotFound
		}
		return models.Note{}, err
	}
	return n, nil
}

// SetShared flips the sharing flag and returns the updated note.
func (s *Store) SetShared(ctx context.Context, id, studentID primitive.ObjectID, shared bool) (models.Note, error) {
	var n models.Note
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "student_id": studentID},
		bson.M{"$set": bson.M{"is_shared": shared, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&n)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Note{}, ErrNotFound
		}
		return models.Note{}, err
	}
	return n, nil
}

// PushAttachment appends an attachment and returns the updated note.
func (s *Store) PushAttachment(ctx context.Context, id, studentID primitive.ObjectID, att models.Attachment) (models.Note, error) {
	var n models.Note
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "student_id": studentID},
		bson.M{
			"$push": bson.M{"attachments": att},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&n)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Note{}, ErrNotFound
		}
		return models.Note{}, err
	}
	return n, nil
}

// PullAttachment removes the attachment with the given blob id and returns
// the updated note. The caller releases the blob afterward.
func (s *Store) PullAttachment(ctx context.Context, id, studentID, fileID primitive.ObjectID) (models.Note, error) {
	var n models.Note
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "student_id": studentID},
		bson.M{
			"$pull": bson.M{"attachments": bson.M{"file_id": fileID}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&n)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Note{}, ErrNotFound
		}
		return models.Note{}, err
	}
	return n, nil
}

// Delete removes a note and returns the deleted document so the caller can
// release its attachment blobs.
func (s *Store) Delete(ctx context.Context, id, studentID primitive.ObjectID) (models.Note, error) {
	var n models.Note
	err := s.c.FindOneAndDelete(ctx, bson.M{"_id": id, "student_id": studentID}).Decode(&n)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Note{}, ErrNotFound
		}
		return models.Note{}, err
	}
	return n, nil
}
