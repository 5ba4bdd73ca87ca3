// internal/app/system/blob/blob.go

// Package blob is the content store for uploaded file bytes, backed by a
// GridFS bucket in the application database. The Store is constructed once
// at startup and injected into the handlers that need it.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BucketName is the GridFS bucket holding all uploads.
const BucketName = "uploads"

// ErrNotFound reports that no blob exists with the requested id.
var ErrNotFound = errors.New("blob not found")

// Metadata is tagged onto every stored blob so orphans can be traced back
// to the entity they were uploaded for.
type Metadata struct {
	ContentType string
	EntityType  string // "note", "project", "deadline", "group"
	EntityID    string
	UploadedBy  string
}

// FileInfo describes a stored blob.
type FileInfo struct {
	ID          primitive.ObjectID
	Name        string
	Length      int64
	ContentType string
}

// Store wraps a GridFS bucket.
type Store struct {
	bucket *gridfs.Bucket
	files  *mongo.Collection
}

// New opens the uploads bucket on db.
func New(db *mongo.Database) (*Store, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(BucketName))
	if err != nil {
		return nil, fmt.Errorf("open gridfs bucket: %w", err)
	}
	return &Store{
		bucket: bucket,
		files:  db.Collection(BucketName + ".files"),
	}, nil
}

// Upload streams r into the bucket under filename and returns the new blob
// id. The caller records the id in its own index; a crash between the two
// phases leaves an orphaned blob, not corruption.
func (s *Store) Upload(filename string, r io.Reader, meta Metadata) (primitive.ObjectID, error) {
	opts := options.GridFSUpload().SetMetadata(bson.M{
		"contentType": meta.ContentType,
		"entityType":  meta.EntityType,
		"entityId":    meta.EntityID,
		"uploadedBy":  meta.UploadedBy,
	})

	stream, err := s.bucket.OpenUploadStream(filename, opts)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("open upload stream: %w", err)
	}
	if _, err := io.Copy(stream, r); err != nil {
		_ = stream.Abort()
		return primitive.NilObjectID, fmt.Errorf("write upload stream: %w", err)
	}
	if err := stream.Close(); err != nil {
		return primitive.NilObjectID, fmt.Errorf("close upload stream: %w", err)
	}

	id, ok := stream.FileID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected gridfs file id type %T", stream.FileID)
	}
	return id, nil
}

// Delete removes a blob and its chunks.
func (s *Store) Delete(id primitive.ObjectID) error {
	if err := s.bucket.Delete(id); err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Stat returns the stored metadata for a blob without reading its bytes.
func (s *Store) Stat(ctx context.Context, id primitive.ObjectID) (FileInfo, error) {
	var doc struct {
		ID       primitive.ObjectID `bson:"_id"`
		Length   int64              `bson:"length"`
		Filename string             `bson:"filename"`
		Metadata struct {
			ContentType string `bson:"contentType"`
		} `bson:"metadata"`
	}
	err := s.files.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return FileInfo{}, ErrNotFound
		}
		return FileInfo{}, err
	}
	return FileInfo{
		ID:          doc.ID,
		Name:        doc.Filename,
		Length:      doc.Length,
		ContentType: doc.Metadata.ContentType,
	}, nil
}

// Open returns a reader over a blob's bytes.
func (s *Store) Open(id primitive.ObjectID) (io.ReadCloser, error) {
	stream, err := s.bucket.OpenDownloadStream(id)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return stream, nil
}

// StorageName derives the stored filename from an upload's original name:
// millisecond-timestamp prefix for collision resistance, whitespace
// collapsed to underscores. The original name is kept separately for
// display.
func StorageName(originalName string) string {
	cleaned := strings.Join(strings.Fields(originalName), "_")
	if cleaned == "" {
		cleaned = "file"
	}
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), cleaned)
}
