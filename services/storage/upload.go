package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"servicehub/models"
	"servicehub/utils"
)

// MaxImageSize is the per-file upload limit.
const MaxImageSize = 5 << 20

// Upload is one file from a multipart form.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// MediaType returns the declared content type, falling back to the file extension.
func (u Upload) MediaType() string {
	if u.ContentType != "" && u.ContentType != "application/octet-stream" {
		return u.ContentType
	}
	return mime.TypeByExtension(strings.ToLower(filepath.Ext(u.Filename)))
}

// ValidateImage rejects non-image files and files over MaxImageSize.
func ValidateImage(u Upload) error {
	if !strings.HasPrefix(u.MediaType(), "image/") {
		return utils.BadRequest("%s is not an image", u.Filename)
	}
	if u.Size > MaxImageSize {
		return utils.BadRequest("%s exceeds the %d MiB limit", u.Filename, MaxImageSize>>20)
	}
	return nil
}

// Store opens the upload and hands it to s.
func Store(ctx context.Context, s StorageService, u Upload, folder string) (models.Image, error) {
	f, err := u.Open()
	if err != nil {
		return models.Image{}, fmt.Errorf("failed to open %s: %w", u.Filename, err)
	}
	defer f.Close()
	img, err := s.UploadImage(ctx, f, u.Filename, folder)
	if err != nil {
		return models.Image{}, fmt.Errorf("failed to upload %s: %w", u.Filename, err)
	}
	return img, nil
}
