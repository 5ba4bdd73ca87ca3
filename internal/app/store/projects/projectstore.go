// internal/app/store/projects/projectstore.go
package projectstore

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

// Store persists projects, owner-scoped the same way the note store is.
type Store struct {
	c *mongo.Collection
}

var ErrNotFound = errors.New("project not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("projects")}
}

func (s *Store) Create(ctx context.Context, p models.Project) (models.Project, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = models.ProjectPending
	}
	if p.Attachments == nil {
		p.Attachments = []models.Attachment{}
	}
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// ListForStudent returns the student's projects, most recently updated first.
func (s *Store) ListForStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.Project, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"student_id": studentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	projects := []models.Project{}
	if err := cur.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *Store) GetOwned(ctx context.Context, id, studentID primitive.ObjectID) (models.Project, error) {
	var p models.Project
	err := s.c.FindOne(ctx, bson.M{"_id": id, "student_id": studentID}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Project{}, ErrNotFound
		}
		return models.Project{}, err
	}
	return p, nil
}

// GetByID fetches a project without an ownership check, for group share
// resolution.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Project, error) {
	var p models.Project
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Project{}, ErrNotFound
		}
		return models.Project{}, err
	}
	return p, nil
}

// UpdateFields carries the editable project fields for Update. DueDate nil
// clears the due date.
type UpdateFields struct {
	Title       string
	Description string
	Status      string
	DueDate     *time.Time
}

// Update replaces the editable fields and returns the updated project.
func (s *Store) Update(ctx context.Context, id, studentID primitive.ObjectID, f UpdateFields) (models.Project, error) {
	set := bson.M{
		"title":       f.Title,
		"description": f.Description,
		"status":      f.Status,
		"updated_at":  time.Now().UTC(),
	}
	update := bson.M{"$set": set}
	if f.DueDate != nil {
		set["due_date"] = *f.DueDate
	} else {
		update["$unset"] = bson.M{"due_date": ""}
	}

	var p models.Project
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "student_id": studentID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Project{}, ErrNotFound
		}
		return models.Project{}, err
	}
	return p, nil
}

// SetStatus updates only the status and returns the updated project.
func (s *Store) SetStatus(ctx context.Context, id, studentID primitive.ObjectID, status string) (models.Project, error) {
	var p models.Project
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "student_id": studentID},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Project{}, ErrNotFound
		}
		return models.Project{}, err
	}
	return p, nil
}

// SetShared flips the sharing flag and returns the updated project.
func (s *Store) SetShared(ctx context.Context, id, studentID primitive.ObjectID, shared bool) (models.Project, error) {
	var p models.Project
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "student_id": studentID},
		bson.M{"$set": bson.M{"is_shared": shared, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Project{}, ErrNotFound
		}
		return models.Project{}, err
	}
	return p, nil
}

// PushAttachment appends an attachment and returns the updated project.
func (s *Store) PushAttachment(ctx context.Context, id, studentID primitive.ObjectID, att models.Attachment) (models.Project, error) {
	var p models.Project
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "student_id": studentID},
		bson.M{
			"$push": bson.M{"attachments": att},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Project{}, ErrNotFound
		}
		return models.Project{}, err
	}
	return p, nil
}

// PullAttachment removes the attachment with the given blob id and returns
// the updated project.
func (s *Store) PullAttachment(ctx context.Context, id, studentID, fileID primitive.ObjectID) (models.Project, error) {
	var p models.Project
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "student_id": studentID},
		bson.M{
			"$pull": bson.M{"attachments": bson.M{"file_id": fileID}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Project{}, ErrNotFound
		}
		return models.Project{}, err
	}
	return p, nil
}

// Delete removes a project and returns the deleted document for blob cleanup.
func (s *Store) Delete(ctx context.Context, id, studentID primitive.ObjectID) (models.Project, error) {
	var p models.Project
	err := s.c.FindOneAndDelete(ctx, bson.M{"_id": id, "student_id": studentID}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Project{}, ErrNotFound
		}
		return models.Project{}, err
	}
	return p, nil
}
