package admin

import (
	"context"
	"testing"

	"servicehub/database/repository/memory"
	"servicehub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Providers.Create(ctx, &models.Provider{ID: "p1", Name: "A", Type: models.ProviderTypeHotel}))
	require.NoError(t, store.Users.Create(ctx, &models.User{ID: "u1", Email: "a@example.com"}))
	require.NoError(t, store.Users.Create(ctx, &models.User{ID: "u2", Email: "b@example.com"}))
	require.NoError(t, store.Listings.Create(ctx, &models.Listing{ID: "l1", Category: models.CategoryHotel}))
	require.NoError(t, store.Listings.Create(ctx, &models.Listing{ID: "l2", Category: models.CategoryCab}))
	require.NoError(t, store.Listings.Create(ctx, &models.Listing{ID: "l3", Category: models.CategoryCab}))
	require.NoError(t, store.Bookings.Create(ctx, &models.Booking{ID: "b1", Reference: "SH-1", Status: models.BookingPending}))

	svc := NewDefaultAdminService(store.Providers, store.Users, store.Listings, store.Bookings)
	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Providers)
	assert.Equal(t, int64(2), stats.Users)
	assert.Equal(t, int64(2), stats.ListingsByCategory[models.CategoryCab])
	assert.Equal(t, int64(1), stats.BookingsByStatus[models.BookingPending])
}
