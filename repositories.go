package main

import (
	"context"
	"fmt"

	"servicehub/config"
	"servicehub/database"
	bookingRepo "servicehub/database/repository/booking"
	contactRepo "servicehub/database/repository/contact"
	listingRepo "servicehub/database/repository/listing"
	"servicehub/database/repository/memory"
	providerRepo "servicehub/database/repository/provider"
	settingsRepo "servicehub/database/repository/settings"
	userRepo "servicehub/database/repository/user"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type repositories struct {
	providers providerRepo.ProviderRepository
	users     userRepo.UserRepository
	listings  listingRepo.ListingRepository
	bookings  bookingRepo.BookingRepository
	contacts  contactRepo.ContactRepository
	settings  settingsRepo.SettingsRepository
}

type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

// openRepositories returns the repositories for the configured driver. The Mongo
// client is nil with the memory driver.
func openRepositories(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*repositories, *mongo.Client, error) {
	if cfg.DatabaseDriver == "memory" {
		logger.Warn("Using in-memory storage; data is lost on restart")
		store := memory.NewStore()
		return &repositories{
			providers: store.Providers,
			users:     store.Users,
			listings:  store.Listings,
			bookings:  store.Bookings,
			contacts:  store.Contacts,
			settings:  store.Settings,
		}, nil, nil
	}

	client, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	db := client.Database(cfg.DatabaseName)

	providers := providerRepo.NewMongoProviderRepo(db)
	users := userRepo.NewMongoUserRepo(db)
	listings := listingRepo.NewMongoListingRepo(db)
	bookings := bookingRepo.NewMongoBookingRepo(db)
	contacts := contactRepo.NewMongoContactRepo(db)

	for _, ix := range []indexer{providers, users, listings, bookings, contacts} {
		if err := ix.EnsureIndexes(ctx); err != nil {
			return nil, nil, fmt.Errorf("failed to ensure indexes: %w", err)
		}
	}
	logger.Info("Connected to MongoDB", zap.String("database", cfg.DatabaseName))

	return &repositories{
		providers: providers,
		users:     users,
		listings:  listings,
		bookings:  bookings,
		contacts:  contacts,
		settings:  settingsRepo.NewMongoSettingsRepo(db),
	}, client, nil
}
