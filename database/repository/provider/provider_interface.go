package providerRepo

import (
	"context"

	"servicehub/models"
)

// ProviderRepository defines methods for provider data access.
type ProviderRepository interface {
	// Create inserts a new provider record.
	Create(ctx context.Context, provider *models.Provider) error
	// GetByID retrieves a provider by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	// List returns providers ordered by name; activeOnly hides suspended ones.
	List(ctx context.Context, activeOnly bool) ([]models.Provider, error)
	// Update replaces an existing provider record.
	Update(ctx context.Context, provider *models.Provider) error
	// Delete removes a provider record by its ID.
	Delete(ctx context.Context, id string) error
	// Count returns the number of providers.
	Count(ctx context.Context) (int64, error)
}
