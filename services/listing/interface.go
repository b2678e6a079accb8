package listing

import (
	"context"
	"net/url"

	listingRepo "servicehub/database/repository/listing"
	providerRepo "servicehub/database/repository/provider"
	"servicehub/models"
	"servicehub/services/storage"

	"go.uber.org/zap"
)

// MaxImages caps the pictures attached to one listing.
const MaxImages = 10

// Form is a create or update request as submitted by the dashboard's FormData.
type Form struct {
	Values url.Values
	Images []storage.Upload
}

type ListingService interface {
	ListListings(ctx context.Context, actor *models.Actor, category string, filter models.ListingFilter, all bool) ([]models.Listing, error)
	GetListing(ctx context.Context, actor *models.Actor, category, id string) (*models.Listing, error)
	CreateListing(ctx context.Context, actor *models.Actor, category string, form Form) (*models.Listing, error)
	UpdateListing(ctx context.Context, actor *models.Actor, category, id string, form Form) (*models.Listing, error)
	DeleteListing(ctx context.Context, actor *models.Actor, category, id string) error
	DeleteProviderListings(ctx context.Context, providerID string) (int, error)
}

// DefaultListingService is the production implementation.
type DefaultListingService struct {
	Repo      listingRepo.ListingRepository
	Providers providerRepo.ProviderRepository
	Storage   storage.StorageService
	logger    *zap.Logger
}

func NewDefaultListingService(repo listingRepo.ListingRepository, providers providerRepo.ProviderRepository, store storage.StorageService, logger *zap.Logger) *DefaultListingService {
	return &DefaultListingService{Repo: repo, Providers: providers, Storage: store, logger: logger}
}
