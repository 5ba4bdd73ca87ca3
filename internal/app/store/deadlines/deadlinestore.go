// internal/app/store/deadlines/deadlinestore.go
package deadlinestore

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

// Store persists deadlines. Owner-scoped like the note and project stores,
// plus the reminder-sweep queries used by the background worker.
type Store struct {
	c *mongo.Collection
}

var ErrNotFound = errors.New("deadline not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("deadlines")}
}

func (s *Store) Create(ctx context.Context, d models.Deadline) (models.Deadline, error) {
	d.ID = primitive.NewObjectID()
	d.CreatedAt = time.Now().UTC()
	if d.Priority == "" {
		d.Priority = models.PriorityMedium
	}
	if d.Status == "" {
		d.Status = models.DeadlineUpcoming
	}
	if d.Attachments == nil {
		d.Attachments = []models.Attachment{}
	}
	if _, err := s.c.InsertOne(ctx, d); err != nil {
		return models.Deadline{}, err
	}
	return d, nil
}

// ListForStudent returns the student's deadlines, soonest due first.
func (s *Store) ListForStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.Deadline, error) {
	opts := options.Find().SetSort(bson.D{{Key: "due_date", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"student_id": studentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	deadlines := []models.Deadline{}
	if err := cur.All(ctx, &deadlines); err != nil {
		return nil, err
	}
	return deadlines, nil
}

func (s *Store) GetOwned(ctx context.Context, id, studentID primitive.ObjectID) (models.Deadline, error) {
	var d models.Deadline
	err := s.c.FindOne(ctx, bson.M{"_id": id, "student_id": studentID}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Deadline{}, ErrNotFound
		}
		return models.Deadline{}, err
	}
	return d, nil
}

// UpdateFields carries the editable deadline fields for Update.
type UpdateFields struct {
	Title       string
	Description string
	DueDate     time.Time
	Priority    string
	Status      string
}

// Update replaces the editable fields and returns the updated deadline.
// Changing the due date re-arms the reminder so the worker can fire again
// for the new time.
func (s *Store) Update(ctx context.Context, id, studentID primitive.ObjectID, f UpdateFields) (models.Deadline, error) {
	var d models.Deadline
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "student_id": studentID},
		bson.M{"$set": bson.M{
			"title":         f.Title,
			"description":   f.Description,
			"due_date":      f.DueDate,
			"priority":      f.Priority,
			"status":        f.Status,
			"reminder_sent": false,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Deadline{}, ErrNotFound
		}
		return models.Deadline{}, err
	}
	return d, nil
}

// SetStatus updates only the status and returns the updated deadline.
func (s *Store) SetStatus(ctx context.Context, id, studentID primitive.ObjectID, status string) (models.Deadline, error) {
	var d models.Deadline
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "student_id": studentID},
		bson.M{"$set": bson.M{"status": status}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Deadline{}, ErrNotFound
		}
		return models.Deadline{}, err
	}
	return d, nil
}

// PushAttachment appends an attachment and returns the updated deadline.
func (s *Store) PushAttachment(ctx context.Context, id, studentID primitive.ObjectID, att models.Attachment) (models.Deadline, error) {
	var d models.Deadline
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "student_id": studentID},
		bson.M{"$push": bson.M{"attachments": att}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Deadline{}, ErrNotFound
		}
		return models.Deadline{}, err
	}
	return d, nil
}

// PullAttachment removes the attachment with the given blob id and returns
// the updated deadline.
func (s *Store) PullAttachment(ctx context.Context, id, studentID, fileID primitive.ObjectID) (models.Deadline, error) {
	var d models.Deadline
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "student_id": studentID},
		bson.M{"$pull": bson.M{"attachments": bson.M{"file_id": fileID}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Deadline{}, ErrNotFound
		}
		return models.Deadline{}, err
	}
	return d, nil
}

// Delete removes a deadline and returns the deleted document for blob cleanup.
func (s *Store) Delete(ctx context.Context, id, studentID primitive.ObjectID) (models.Deadline, error) {
	var d models.Deadline
	err := s.c.FindOneAndDelete(ctx, bson.M{"_id": id, "student_id": studentID}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Deadline{}, ErrNotFound
		}
		return models.Deadline{}, err
	}
	return d, nil
}

// DueSoon returns unreminded, not-completed deadlines falling inside
// (now, now+window]. Already-due deadlines are skipped rather than reminded
// late.
func (s *Store) DueSoon(ctx context.Context, now time.Time, window time.Duration) ([]models.Deadline, error) {
	cur, err := s.c.Find(ctx, bson.M{
		"reminder_sent": false,
		"status":        bson.M{"$ne": models.DeadlineCompleted},
		"due_date": bson.M{
			"$gt":  now,
			"$lte": now.Add(window),
		},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	deadlines := []models.Deadline{}
	if err := cur.All(ctx, &deadlines); err != nil {
		return nil, err
	}
	return deadlines, nil
}

// MarkReminderSent flags a deadline as reminded. Called after the send
// attempt whether or not delivery succeeded, so a flaky SMTP server cannot
// cause repeat emails.
func (s *Store) MarkReminderSent(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"reminder_sent": true}},
	)
	return err
}
