package listingRepo

import (
	"context"

	"servicehub/models"
)

// ListingRepository stores cab, cleaning and hotel listings in one collection.
type ListingRepository interface {
	Create(ctx context.Context, listing *models.Listing) error
	GetByID(ctx context.Context, id string) (*models.Listing, error)
	// List returns listings matching filter, newest first.
	List(ctx context.Context, filter models.ListingFilter) ([]models.Listing, error)
	Update(ctx context.Context, listing *models.Listing) error
	Delete(ctx context.Context, id string) error
	// CountByCategory returns the number of listings per category.
	CountByCategory(ctx context.Context) (map[string]int64, error)
}
