package provider

import (
	"context"
	"net/url"

	providerRepo "servicehub/database/repository/provider"
	"servicehub/models"
	"servicehub/services/listing"
	"servicehub/services/storage"
	"servicehub/services/user"

	"go.uber.org/zap"
)

// Form is a provider create or update request. Logo is optional.
type Form struct {
	Values url.Values
	Logo   *storage.Upload
}

type ProviderService interface {
	ListProviders(ctx context.Context, actor *models.Actor) ([]models.Provider, error)
	GetProvider(ctx context.Context, id string) (*models.Provider, error)
	CreateProvider(ctx context.Context, actor *models.Actor, form Form) (*models.Provider, error)
	UpdateProvider(ctx context.Context, actor *models.Actor, id string, form Form) (*models.Provider, error)
	DeleteProvider(ctx context.Context, actor *models.Actor, id string) error

	LinkAdmin(ctx context.Context, actor *models.Actor, providerID, userID, email string) (*models.User, error)
	UnlinkAdmin(ctx context.Context, actor *models.Actor, providerID, userID string) error
}

// DefaultProviderService is the production implementation.
type DefaultProviderService struct {
	Repo     providerRepo.ProviderRepository
	Users    user.UserService
	Listings listing.ListingService
	Storage  storage.StorageService
	logger   *zap.Logger
}

func NewDefaultProviderService(
	repo providerRepo.ProviderRepository,
	users user.UserService,
	listings listing.ListingService,
	store storage.StorageService,
	logger *zap.Logger,
) *DefaultProviderService {
	return &DefaultProviderService{Repo: repo, Users: users, Listings: listings, Storage: store, logger: logger}
}
