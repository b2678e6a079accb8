package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"path/filepath"

	"servicehub/models"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// GCSStorage implements StorageService on a Google Cloud Storage (Firebase) bucket.
type GCSStorage struct {
	client     *storage.Client
	bucketName string
}

// NewGCSStorage creates a bucket-backed StorageService. An empty credentialsFile
// uses application default credentials.
func NewGCSStorage(ctx context.Context, credentialsFile, bucketName string) (*GCSStorage, error) {
	if bucketName == "" {
		return nil, errors.New("GCS_BUCKET is not configured")
	}
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &GCSStorage{client: client, bucketName: bucketName}, nil
}

func (s *GCSStorage) UploadImage(ctx context.Context, r io.Reader, filename, folder string) (models.Image, error) {
	objectPath := path.Join(folder, uuid.New().String()+filepath.Ext(filename))
	w := s.client.Bucket(s.bucketName).Object(objectPath).NewWriter(ctx)
	w.ACL = []storage.ACLRule{{Entity: storage.AllUsers, Role: storage.RoleReader}}
	if ext := filepath.Ext(filename); ext != "" {
		w.ObjectAttrs.ContentType = mime.TypeByExtension(ext)
	}

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return models.Image{}, fmt.Errorf("failed to copy file to storage: %w", err)
	}
	if err := w.Close(); err != nil {
		return models.Image{}, fmt.Errorf("failed to close writer: %w", err)
	}

	url := fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucketName, objectPath)
	return models.Image{PublicID: objectPath, URL: url}, nil
}

func (s *GCSStorage) DeleteImage(ctx context.Context, publicID string) error {
	err := s.client.Bucket(s.bucketName).Object(publicID).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *GCSStorage) Close() error {
	return s.client.Close()
}
