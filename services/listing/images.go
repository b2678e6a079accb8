package listing

import (
	"context"

	"servicehub/models"
	"servicehub/services/storage"
	"servicehub/utils"

	"go.uber.org/zap"
)

// validateUploads checks type and size of new files and the resulting image count.
func validateUploads(uploads []storage.Upload, kept int) error {
	if kept+len(uploads) > MaxImages {
		return utils.BadRequest("a listing can have at most %d images", MaxImages)
	}
	for _, u := range uploads {
		if err := storage.ValidateImage(u); err != nil {
			return err
		}
	}
	return nil
}

// uploadAll stores every upload. On failure the images stored so far are removed.
func (s *DefaultListingService) uploadAll(ctx context.Context, uploads []storage.Upload, folder string) ([]models.Image, error) {
	out := make([]models.Image, 0, len(uploads))
	for _, u := range uploads {
		img, err := storage.Store(ctx, s.Storage, u, folder)
		if err != nil {
			s.deleteImages(ctx, out)
			return nil, err
		}
		out = append(out, img)
	}
	return out, nil
}

// deleteImages removes images from storage. Failures are logged only.
func (s *DefaultListingService) deleteImages(ctx context.Context, images []models.Image) {
	for _, img := range images {
		if err := s.Storage.DeleteImage(ctx, img.PublicID); err != nil {
			s.logger.Warn("Failed to delete stored image", zap.String("publicId", img.PublicID), zap.Error(err))
		}
	}
}

// splitImages partitions current into the images named in keep and the rest.
func splitImages(current []models.Image, keep []string) (kept, removed []models.Image) {
	for _, img := range current {
		retained := false
		for _, ref := range keep {
			if img.Matches(ref) {
				retained = true
				break
			}
		}
		if retained {
			kept = append(kept, img)
		} else {
			removed = append(removed, img)
		}
	}
	return kept, removed
}

func folderFor(category string) string {
	return "servicehub/" + category
}
