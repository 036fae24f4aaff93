// Package storage provides file storage for uploaded payment screenshots
// and product images, backed by MongoDB GridFS.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/velora/commerce-system/internal/core/domain"
)

const bucketName = "uploads"

// FileInfo describes a stored upload.
type FileInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// GridFSStore stores uploads in a GridFS bucket. Stored names are uuids so
// client-supplied filenames never reach the database.
type GridFSStore struct {
	bucket *gridfs.Bucket
}

func NewGridFSStore(db *mongo.Database) (*GridFSStore, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(bucketName))
	if err != nil {
		return nil, fmt.Errorf("gridfs bucket: %w", err)
	}
	return &GridFSStore{bucket: bucket}, nil
}

// Save streams r into the bucket and returns the stored file's id.
func (s *GridFSStore) Save(ctx context.Context, contentType string, r io.Reader) (string, error) {
	id := primitive.NewObjectID()
	name := uuid.NewString()

	opts := options.GridFSUpload().SetMetadata(bson.M{"content_type": contentType})
	if err := s.bucket.UploadFromStreamWithID(id, name, r, opts); err != nil {
		return "", fmt.Errorf("gridfs upload: %w", err)
	}
	return id.Hex(), nil
}

// Open returns a reader over the stored file along with its metadata.
// The caller must close the returned stream.
func (s *GridFSStore) Open(ctx context.Context, id string) (io.ReadCloser, *FileInfo, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil, domain.ErrUploadNotFound
	}

	stream, err := s.bucket.OpenDownloadStream(oid)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, nil, domain.ErrUploadNotFound
		}
		return nil, nil, fmt.Errorf("gridfs open: %w", err)
	}

	file := stream.GetFile()
	info := &FileInfo{
		ID:   id,
		Name: file.Name,
		Size: file.Length,
	}
	if file.Metadata != nil {
		var meta struct {
			ContentType string `bson:"content_type"`
		}
		if err := bson.Unmarshal(file.Metadata, &meta); err == nil {
			info.ContentType = meta.ContentType
		}
	}
	return stream, info, nil
}

// Delete removes a stored file.
func (s *GridFSStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUploadNotFound
	}
	if err := s.bucket.Delete(oid); err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return domain.ErrUploadNotFound
		}
		return fmt.Errorf("gridfs delete: %w", err)
	}
	return nil
}
