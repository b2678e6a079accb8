package memory

import (
	"context"
	"testing"
	"time"

	"servicehub/database/repository"
	"servicehub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingRepoFilterAndPaging(t *testing.T) {
	ctx := context.Background()
	repo := NewListingRepo()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	seed := []models.Listing{
		{ID: "a", Category: models.CategoryHotel, ProviderID: "p1", Name: "Sea View", City: "Nairobi", Active: true, CreatedAt: base},
		{ID: "b", Category: models.CategoryHotel, ProviderID: "p2", Name: "City Inn", City: "Mombasa", Active: false, CreatedAt: base.Add(time.Hour)},
		{ID: "c", Category: models.CategoryCab, ProviderID: "p1", Name: "Sedan", City: "nairobi", Active: true, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "d", Category: models.CategoryHotel, ProviderID: "p1", Name: "Garden Lodge", Description: "sea breeze", City: "Nairobi", Active: true, CreatedAt: base.Add(3 * time.Hour)},
	}
	for i := range seed {
		require.NoError(t, repo.Create(ctx, &seed[i]))
	}

	hotels, err := repo.List(ctx, models.ListingFilter{Category: models.CategoryHotel, ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, hotels, 2)
	assert.Equal(t, "d", hotels[0].ID, "newest first")

	byCity, err := repo.List(ctx, models.ListingFilter{City: "NAIROBI"})
	require.NoError(t, err)
	assert.Len(t, byCity, 3)

	search, err := repo.List(ctx, models.ListingFilter{Query: "sea"})
	require.NoError(t, err)
	assert.Len(t, search, 2)

	page, err := repo.List(ctx, models.ListingFilter{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "c", page[0].ID)

	empty, err := repo.List(ctx, models.ListingFilter{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, empty)

	counts, err := repo.CountByCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts[models.CategoryHotel])
	assert.Equal(t, int64(1), counts[models.CategoryCab])
}

func TestListingRepoReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewListingRepo()
	l := &models.Listing{ID: "x", Images: []models.Image{{PublicID: "1"}}, Hotel: &models.HotelDetails{Rooms: 2}}
	require.NoError(t, repo.Create(ctx, l))

	got, err := repo.GetByID(ctx, "x")
	require.NoError(t, err)
	got.Images[0].PublicID = "changed"
	got.Hotel.Rooms = 9

	again, err := repo.GetByID(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, "1", again.Images[0].PublicID)
	assert.Equal(t, 2, again.Hotel.Rooms)
}

func TestRepositoriesReportNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	_, err := s.Providers.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = s.Users.GetByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, s.Listings.Delete(ctx, "missing"), repository.ErrNotFound)
	assert.ErrorIs(t, s.Bookings.Update(ctx, &models.Booking{ID: "missing"}), repository.ErrNotFound)
	_, err = s.Settings.Get(ctx)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepoUniqueEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepo()
	require.NoError(t, repo.Create(ctx, &models.User{ID: "1", Email: "a@example.com"}))
	err := repo.Create(ctx, &models.User{ID: "2", Email: "A@example.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	u, err := repo.GetByEmail(ctx, "A@EXAMPLE.COM")
	require.NoError(t, err)
	assert.Equal(t, "1", u.ID)
}

func TestBookingRepoListExpired(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepo()
	now := time.Now()

	require.NoError(t, repo.Create(ctx, &models.Booking{ID: "old", Reference: "R1", Status: models.BookingPending,
		Payment: models.PaymentInfo{Status: models.PaymentUnpaid}, ExpiresAt: now.Add(-time.Minute)}))
	require.NoError(t, repo.Create(ctx, &models.Booking{ID: "fresh", Reference: "R2", Status: models.BookingPending,
		Payment: models.PaymentInfo{Status: models.PaymentUnpaid}, ExpiresAt: now.Add(time.Minute)}))
	require.NoError(t, repo.Create(ctx, &models.Booking{ID: "paying", Reference: "R3", Status: models.BookingPending,
		Payment: models.PaymentInfo{Status: models.PaymentProcessing}, ExpiresAt: now.Add(-time.Minute)}))

	expired, err := repo.ListExpired(ctx, now)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, "old", expired[0].ID)

	err = repo.Create(ctx, &models.Booking{ID: "dup", Reference: "R1"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}
