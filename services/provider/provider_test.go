package provider

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"testing"

	"servicehub/database/repository"
	"servicehub/database/repository/memory"
	"servicehub/models"
	"servicehub/services/listing"
	"servicehub/services/storage"
	"servicehub/services/user"
	"servicehub/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var superadmin = &models.Actor{UserID: "root", Role: models.RoleSuperadmin}

type fixture struct {
	svc      *DefaultProviderService
	listings *listing.DefaultListingService
	store    *memory.Store
	files    *storage.MemoryStorage
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := memory.NewStore()
	files := storage.NewMemoryStorage()
	logger := zap.NewNop()
	users := user.NewDefaultUserService(store.Users, store.Providers, nil, logger)
	listings := listing.NewDefaultListingService(store.Listings, store.Providers, files, logger)
	return fixture{
		svc:      NewDefaultProviderService(store.Providers, users, listings, files, logger),
		listings: listings,
		store:    store,
		files:    files,
	}
}

func logo() *storage.Upload {
	data := []byte("png")
	return &storage.Upload{
		Filename:    "logo.png",
		ContentType: "image/png",
		Size:        int64(len(data)),
		Open:        func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(data)), nil },
	}
}

func TestCreateProvider(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateProvider(ctx, &models.Actor{UserID: "a1", Role: models.RoleAdmin}, Form{Values: url.Values{"name": {"X"}, "type": {"cab"}}})
	assert.ErrorIs(t, err, utils.ErrForbidden)

	_, err = f.svc.CreateProvider(ctx, superadmin, Form{Values: url.Values{"name": {"X"}, "type": {"boats"}}})
	assert.ErrorIs(t, err, utils.ErrBadRequest)

	p, err := f.svc.CreateProvider(ctx, superadmin, Form{Values: url.Values{"name": {"Fleet"}, "type": {"cab"}, "email": {"Ops@Fleet.com"}}, Logo: logo()})
	require.NoError(t, err)
	assert.Equal(t, models.ProviderStatusActive, p.Status)
	assert.Equal(t, "ops@fleet.com", p.Email)
	require.NotNil(t, p.Logo)
	assert.True(t, f.files.Has(p.Logo.PublicID))
}

func TestUpdateProviderPermissions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, err := f.svc.CreateProvider(ctx, superadmin, Form{Values: url.Values{"name": {"Fleet"}, "type": {"cab"}}, Logo: logo()})
	require.NoError(t, err)
	oldLogo := p.Logo.PublicID

	owner := &models.Actor{UserID: "a1", Role: models.RoleAdmin, ProviderID: p.ID}
	stranger := &models.Actor{UserID: "a2", Role: models.RoleAdmin, ProviderID: "other"}

	_, err = f.svc.UpdateProvider(ctx, stranger, p.ID, Form{Values: url.Values{"name": {"Mine"}}})
	assert.ErrorIs(t, err, utils.ErrForbidden)

	updated, err := f.svc.UpdateProvider(ctx, owner, p.ID, Form{Values: url.Values{"phone": {"+254700000000"}, "status": {"suspended"}}, Logo: logo()})
	require.NoError(t, err)
	assert.Equal(t, "+254700000000", updated.Phone)
	assert.Equal(t, models.ProviderStatusActive, updated.Status, "admins cannot change status")
	assert.False(t, f.files.Has(oldLogo))
	assert.True(t, f.files.Has(updated.Logo.PublicID))

	suspended, err := f.svc.UpdateProvider(ctx, superadmin, p.ID, Form{Values: url.Values{"status": {"suspended"}}})
	require.NoError(t, err)
	assert.Equal(t, models.ProviderStatusSuspended, suspended.Status)

	public, err := f.svc.ListProviders(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, public)
	all, err := f.svc.ListProviders(ctx, superadmin)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestLinkAndUnlinkAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, err := f.svc.CreateProvider(ctx, superadmin, Form{Values: url.Values{"name": {"Fleet"}, "type": {"cab"}}})
	require.NoError(t, err)
	require.NoError(t, f.store.Users.Create(ctx, &models.User{ID: "u1", Email: "driver@example.com", Role: models.RoleUser}))

	u, err := f.svc.LinkAdmin(ctx, superadmin, p.ID, "", "driver@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, u.Role)
	assert.Equal(t, p.ID, u.ProviderID)

	stored, err := f.svc.GetProvider(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, stored.AdminUserIDs)

	assert.ErrorIs(t, f.svc.UnlinkAdmin(ctx, superadmin, "other", "u1"), utils.ErrBadRequest)
	require.NoError(t, f.svc.UnlinkAdmin(ctx, superadmin, p.ID, "u1"))

	u2, err := f.store.Users.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, u2.Role)
	assert.Empty(t, u2.ProviderID)
	stored, _ = f.svc.GetProvider(ctx, p.ID)
	assert.Empty(t, stored.AdminUserIDs)
}

func TestDeleteProviderCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, err := f.svc.CreateProvider(ctx, superadmin, Form{Values: url.Values{"name": {"Fleet"}, "type": {"cab"}}, Logo: logo()})
	require.NoError(t, err)
	require.NoError(t, f.store.Users.Create(ctx, &models.User{ID: "u1", Email: "driver@example.com", Role: models.RoleUser}))
	_, err = f.svc.LinkAdmin(ctx, superadmin, p.ID, "u1", "")
	require.NoError(t, err)

	admin := &models.Actor{UserID: "u1", Role: models.RoleAdmin, ProviderID: p.ID}
	_, err = f.listings.CreateListing(ctx, admin, models.CategoryCab, listing.Form{Values: url.Values{
		"name": {"Sedan"}, "vehicleType": {"sedan"}, "seats": {"4"}, "baseFare": {"3"},
	}})
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.DeleteProvider(ctx, admin, p.ID), utils.ErrForbidden)
	require.NoError(t, f.svc.DeleteProvider(ctx, superadmin, p.ID))

	_, err = f.svc.GetProvider(ctx, p.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	remaining, _ := f.store.Listings.List(ctx, models.ListingFilter{})
	assert.Empty(t, remaining)
	u, _ := f.store.Users.GetByID(ctx, "u1")
	assert.Equal(t, models.RoleUser, u.Role)
	assert.Equal(t, 0, f.files.Len())
}
