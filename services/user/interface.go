package user

import (
	"context"

	providerRepo "servicehub/database/repository/provider"
	userRepo "servicehub/database/repository/user"
	"servicehub/models"
	"servicehub/services/auth"

	"go.uber.org/zap"
)

type UserService interface {
	// Identity sync
	SyncUser(ctx context.Context, id *auth.Identity) (*models.User, error)

	// Self service
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, req models.ProfileUpdate) (*models.User, error)

	// Superadmin
	ListUsers(ctx context.Context, role string) ([]models.User, error)
	SetRole(ctx context.Context, actorID, userID, role, providerID string) (*models.User, error)
	SetDisabled(ctx context.Context, actorID, userID string, disabled bool) (*models.User, error)
	DeleteUser(ctx context.Context, actorID, userID string) error
	ResolveUser(ctx context.Context, userID, email string) (*models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo        userRepo.UserRepository
	Providers   providerRepo.ProviderRepository
	superadmins map[string]bool
	logger      *zap.Logger
}

// NewDefaultUserService builds the service. superadminEmails are promoted on sync.
func NewDefaultUserService(repo userRepo.UserRepository, providers providerRepo.ProviderRepository, superadminEmails []string, logger *zap.Logger) *DefaultUserService {
	set := make(map[string]bool, len(superadminEmails))
	for _, e := range superadminEmails {
		set[e] = true
	}
	return &DefaultUserService{Repo: repo, Providers: providers, superadmins: set, logger: logger}
}
