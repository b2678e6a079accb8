package admin

import (
	"context"
	"fmt"

	bookingRepo "servicehub/database/repository/booking"
	listingRepo "servicehub/database/repository/listing"
	providerRepo "servicehub/database/repository/provider"
	userRepo "servicehub/database/repository/user"
)

// PlatformStats is the superadmin dashboard summary.
type PlatformStats struct {
	Providers          int64            `json:"providers"`
	Users              int64            `json:"users"`
	ListingsByCategory map[string]int64 `json:"listingsByCategory"`
	BookingsByStatus   map[string]int64 `json:"bookingsByStatus"`
}

type AdminService interface {
	Stats(ctx context.Context) (*PlatformStats, error)
}

type DefaultAdminService struct {
	providers providerRepo.ProviderRepository
	users     userRepo.UserRepository
	listings  listingRepo.ListingRepository
	bookings  bookingRepo.BookingRepository
}

func NewDefaultAdminService(
	providers providerRepo.ProviderRepository,
	users userRepo.UserRepository,
	listings listingRepo.ListingRepository,
	bookings bookingRepo.BookingRepository,
) *DefaultAdminService {
	return &DefaultAdminService{providers: providers, users: users, listings: listings, bookings: bookings}
}

func (s *DefaultAdminService) Stats(ctx context.Context) (*PlatformStats, error) {
	var (
		out PlatformStats
		err error
	)
	if out.Providers, err = s.providers.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count providers: %w", err)
	}
	if out.Users, err = s.users.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if out.ListingsByCategory, err = s.listings.CountByCategory(ctx); err != nil {
		return nil, fmt.Errorf("failed to count listings: %w", err)
	}
	if out.BookingsByStatus, err = s.bookings.CountByStatus(ctx); err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}
	return &out, nil
}
