// internal/app/store/students/studentstore.go
package studentstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/studyhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrNotFound       = errors.New("student not found")
	ErrDuplicateEmail = errors.New("email is already registered")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("students")}
}

// NormalizeEmail lowercases and trims an address; all lookups and writes go
// through it so the unique email index sees one canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Store) Create(ctx context.Context, st models.Student) (models.Student, error) {
	st.ID = primitive.NewObjectID()
	st.Email = NormalizeEmail(st.Email)
	st.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, st); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Student{}, ErrDuplicateEmail
		}
		return models.Student{}, err
	}
	return st, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Student, error) {
	var st models.Student
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&st); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Student{}, ErrNotFound
		}
		return models.Student{}, err
	}
	return st, nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (models.Student, error) {
	var st models.Student
	err := s.c.FindOne(ctx, bson.M{"email": NormalizeEmail(email)}).Decode(&st)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Student{}, ErrNotFound
		}
		return models.Student{}, err
	}
	return st, nil
}

// GetByIDs returns the students for the given ids, keyed by id. Missing ids
// are simply absent from the map; callers resolving display names treat
// that as an empty name rather than an error.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Student, error) {
	out := make(map[primitive.ObjectID]models.Student, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var st models.Student
		if err := cur.Decode(&st); err != nil {
			return nil, err
		}
		out[st.ID] = st
	}
	return out, cur.Err()
}
