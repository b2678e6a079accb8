package userRepo

import (
	"context"

	"servicehub/models"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// List returns users ordered by email; an empty role matches every role.
	List(ctx context.Context, role string) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
	// ListByProvider returns the admins linked to a provider.
	ListByProvider(ctx context.Context, providerID string) ([]models.User, error)
	Count(ctx context.Context) (int64, error)
}
