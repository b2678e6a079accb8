package notification

import (
	"context"
	"sync"
	"testing"
	"time"

	"servicehub/database/repository/memory"
	"servicehub/models"
	"servicehub/services/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type sentEmail struct {
	to, subject string
}

type fakeEmail struct {
	mu   sync.Mutex
	sent []sentEmail
}

func (f *fakeEmail) SendEmail(_ context.Context, to, _, subject, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentEmail{to: to, subject: subject})
	return nil
}

type fakePush struct {
	mu     sync.Mutex
	tokens []string
	roles  []string
}

func (f *fakePush) SendPush(_ context.Context, token, _, _ string, data map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, token)
	f.roles = append(f.roles, data["role"])
	return nil
}

func setup(t *testing.T) (*DefaultNotificationService, *memory.Store, *fakeEmail, *fakePush) {
	t.Helper()
	store := memory.NewStore()
	settingsSvc := settings.NewDefaultSettingsService(store.Settings, nil, 15, zap.NewNop())
	email, push := &fakeEmail{}, &fakePush{}
	svc := NewDefaultNotificationService(store.Bookings, store.Contacts, store.Users, settingsSvc, email, push, zap.NewNop())
	return svc, store, email, push
}

func TestNotifyBookingStatus(t *testing.T) {
	svc, store, email, push := setup(t)
	ctx := context.Background()

	require.NoError(t, store.Users.Create(ctx, &models.User{ID: "u1", Email: "guest@example.com", Role: models.RoleUser, FCMToken: "tok-user"}))
	require.NoError(t, store.Users.Create(ctx, &models.User{ID: "a1", Email: "admin@example.com", Role: models.RoleAdmin, ProviderID: "p1", FCMToken: "tok-admin"}))
	require.NoError(t, store.Users.Create(ctx, &models.User{ID: "a2", Email: "quiet@example.com", Role: models.RoleAdmin, ProviderID: "p1"}))
	require.NoError(t, store.Bookings.Create(ctx, &models.Booking{
		ID: "b1", Reference: "SH-ABC123", ProviderID: "p1", UserID: "u1", ListingName: "Sea View",
		Status:    models.BookingConfirmed,
		Contact:   models.ContactInfo{Name: "Guest", Email: "guest@example.com"},
		CreatedAt: time.Now(),
	}))

	require.NoError(t, svc.NotifyBookingStatus(ctx, "b1", models.BookingConfirmed))

	require.Len(t, email.sent, 1)
	assert.Equal(t, "guest@example.com", email.sent[0].to)
	assert.Contains(t, email.sent[0].subject, "SH-ABC123")
	assert.ElementsMatch(t, []string{"tok-user", "tok-admin"}, push.tokens)
	assert.ElementsMatch(t, []string{models.RoleUser, models.RoleAdmin}, push.roles)
}

func TestNotifyBookingStatusUnknownBooking(t *testing.T) {
	svc, _, _, _ := setup(t)
	assert.Error(t, svc.NotifyBookingStatus(context.Background(), "missing", models.BookingConfirmed))
}

func TestNotifyNewContact(t *testing.T) {
	svc, store, email, _ := setup(t)
	ctx := context.Background()
	require.NoError(t, store.Contacts.Create(ctx, &models.Contact{ID: "c1", Name: "Ann", Email: "ann@example.com", Subject: "Hello", Message: "Hi"}))

	// No support email configured yet.
	require.NoError(t, svc.NotifyNewContact(ctx, "c1"))
	assert.Empty(t, email.sent)

	s := models.DefaultSettings()
	s.SupportEmail = "support@example.com"
	require.NoError(t, store.Settings.Save(ctx, &s))

	require.NoError(t, svc.NotifyNewContact(ctx, "c1"))
	require.Len(t, email.sent, 1)
	assert.Equal(t, "support@example.com", email.sent[0].to)
	assert.Contains(t, email.sent[0].subject, "Hello")
}

func TestNoopSenders(t *testing.T) {
	logger := zap.NewNop()
	assert.IsType(t, &LogEmailSender{}, NewEmailSender("", "", "", logger))
	assert.IsType(t, &LogPushSender{}, NewPushSender(nil, logger))
	assert.NoError(t, NewEmailSender("", "", "", logger).SendEmail(context.Background(), "a@b.c", "", "s", "", ""))
	assert.NoError(t, NewPushSender(nil, logger).SendPush(context.Background(), "t", "title", "", nil))
}
