// internal/app/system/attach/attach.go

// Package attach turns a multipart upload into a stored blob plus the
// attachment metadata the owning record embeds or indexes.
package attach

import (
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/studyhub/internal/app/system/blob"
	"github.com/dalemusser/studyhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxUploadMemory bounds the in-memory portion of multipart parsing;
// larger files spill to temp storage.
const MaxUploadMemory = 32 << 20

// ErrNoFile reports that the request carried no "file" form field.
var ErrNoFile = errors.New("no file provided")

// FromRequest stores the uploaded "file" field in the blob store, tagged
// with the owning entity, and returns the attachment record pointing at it.
func FromRequest(r *http.Request, blobs *blob.Store, entityType string, entityID, uploaderID primitive.ObjectID) (models.Attachment, error) {
	if err := r.ParseMultipartForm(MaxUploadMemory); err != nil {
		return models.Attachment{}, ErrNoFile
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return models.Attachment{}, ErrNoFile
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	storageName := blob.StorageName(header.Filename)

	fileID, err := blobs.Upload(storageName, file, blob.Metadata{
		ContentType: contentType,
		EntityType:  entityType,
		EntityID:    entityID.Hex(),
		UploadedBy:  uploaderID.Hex(),
	})
	if err != nil {
		return models.Attachment{}, err
	}

	return models.Attachment{
		FileID:       fileID,
		Filename:     storageName,
		OriginalName: header.Filename,
		Mimetype:     contentType,
		Size:         header.Size,
		UploadedAt:   time.Now().UTC(),
	}, nil
}
