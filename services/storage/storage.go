package storage

import (
	"context"
	"io"

	"servicehub/models"
)

// StorageService stores listing pictures and provider logos.
type StorageService interface {
	// UploadImage stores the content under folder and returns its public URL and key.
	UploadImage(ctx context.Context, r io.Reader, filename, folder string) (models.Image, error)
	// DeleteImage removes a stored image by its public ID.
	DeleteImage(ctx context.Context, publicID string) error
}
