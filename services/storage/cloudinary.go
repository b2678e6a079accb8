package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"servicehub/models"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStorage implements StorageService on Cloudinary.
type CloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStorage creates a Cloudinary-backed StorageService.
func NewCloudinaryStorage(cloudName, apiKey, apiSecret string) (*CloudinaryStorage, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryStorage{cld: cld}, nil
}

func (s *CloudinaryStorage) UploadImage(ctx context.Context, r io.Reader, filename, folder string) (models.Image, error) {
	name := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	params := uploader.UploadParams{
		Folder:         folder,
		PublicID:       name,
		UniqueFilename: api.Bool(true),
		ResourceType:   "image",
	}
	result, err := s.cld.Upload.Upload(ctx, r, params)
	if err != nil {
		return models.Image{}, fmt.Errorf("CloudinaryStorage: failed to upload image: %w", err)
	}
	if result.Error.Message != "" {
		return models.Image{}, fmt.Errorf("CloudinaryStorage: upload rejected: %s", result.Error.Message)
	}
	if result.PublicID == "" {
		return models.Image{}, fmt.Errorf("CloudinaryStorage: no public ID returned")
	}
	return models.Image{PublicID: result.PublicID, URL: result.SecureURL}, nil
}

func (s *CloudinaryStorage) DeleteImage(ctx context.Context, publicID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("CloudinaryStorage: failed to delete image: %w", err)
	}
	return nil
}
