package booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"servicehub/database/repository"
	"servicehub/database/repository/memory"
	"servicehub/models"
	"servicehub/services/payment"
	"servicehub/services/settings"
	"servicehub/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordedEvent struct {
	bookingID, status string
}

type recordingEnqueuer struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *recordingEnqueuer) BookingStatusChanged(_ context.Context, bookingID, status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{bookingID, status})
}

func (r *recordingEnqueuer) ContactReceived(context.Context, string) {}

var (
	guest     = &models.Actor{UserID: "u1", Role: models.RoleUser}
	stranger  = &models.Actor{UserID: "u2", Role: models.RoleUser}
	hotelAdm  = &models.Actor{UserID: "a1", Role: models.RoleAdmin, ProviderID: "p1"}
	fixedTime = time.Date(2024, 12, 1, 10, 0, 0, 0, time.UTC)
)

type fixture struct {
	svc       *DefaultBookingService
	store     *memory.Store
	redis     *miniredis.Miniredis
	events    *recordingEnqueuer
	processor *payment.SimulatedProcessor
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := memory.NewStore()
	logger := zap.NewNop()
	st := models.DefaultSettings()
	st.ServiceFeePercent = 10
	st.TaxPercent = 5
	require.NoError(t, store.Settings.Save(ctx, &st))

	require.NoError(t, store.Users.Create(ctx, &models.User{ID: "u1", Email: "guest@example.com", DisplayName: "Guest", Role: models.RoleUser}))
	require.NoError(t, store.Listings.Create(ctx, &models.Listing{
		ID: "hotel-1", Category: models.CategoryHotel, ProviderID: "p1", Name: "Sea View", Price: 100, Currency: "USD", Active: true,
		Hotel: &models.HotelDetails{PricePerNight: 100, MaxGuestsPerRoom: 2, Rooms: 3},
	}))
	require.NoError(t, store.Listings.Create(ctx, &models.Listing{
		ID: "clean-1", Category: models.CategoryCleaning, ProviderID: "p2", Name: "Deep clean", Price: 20, Currency: "USD", Active: true,
		Cleaning: &models.CleaningDetails{PricePerHour: 20, MinHours: 3},
	}))
	require.NoError(t, store.Listings.Create(ctx, &models.Listing{
		ID: "cab-1", Category: models.CategoryCab, ProviderID: "p3", Name: "Sedan", Price: 5, Currency: "USD", Active: true,
		Cab: &models.CabDetails{VehicleType: "sedan", Seats: 4, BaseFare: 5, PricePerKm: 1.5},
	}))
	require.NoError(t, store.Listings.Create(ctx, &models.Listing{
		ID: "hidden", Category: models.CategoryHotel, ProviderID: "p1", Name: "Closed", Price: 1, Active: false,
		Hotel: &models.HotelDetails{PricePerNight: 1, MaxGuestsPerRoom: 1, Rooms: 1},
	}))

	events := &recordingEnqueuer{}
	processor := payment.NewSimulatedProcessor(0, logger)
	svc := NewDefaultBookingService(
		store.Bookings, store.Listings, store.Users,
		NewRedisSessionStore(client, 30*time.Minute),
		settings.NewDefaultSettingsService(store.Settings, nil, 15, logger),
		processor, events, logger,
	)
	svc.now = func() time.Time { return fixedTime }
	return fixture{svc: svc, store: store, redis: mr, events: events, processor: processor}
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestHotelWizardDatesGate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, err := f.svc.StartSession(ctx, guest, "hotel-1")
	require.NoError(t, err)
	assert.Equal(t, models.StepDates, session.Step)
	assert.Equal(t, "guest@example.com", session.Contact.Email)
	assert.True(t, f.redis.Exists(utils.SessionPrefix+session.SessionID))

	_, err = f.svc.NextStep(ctx, guest, session.SessionID)
	assert.ErrorIs(t, err, ErrMissingDates)

	_, err = f.svc.UpdateSession(ctx, guest, session.SessionID, models.SessionUpdate{CheckIn: strPtr("2025-01-01")})
	require.NoError(t, err)
	_, err = f.svc.NextStep(ctx, guest, session.SessionID)
	assert.ErrorIs(t, err, ErrMissingDates)

	got, err := f.svc.GetSession(ctx, guest, session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StepDates, got.Step)

	updated, err := f.svc.UpdateSession(ctx, guest, session.SessionID, models.SessionUpdate{CheckOut: strPtr("2025-01-04")})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Hotel.Nights)
	assert.Equal(t, 300.0, updated.Quote.Subtotal)
	assert.Equal(t, 345.0, updated.Quote.Total)

	advanced, err := f.svc.NextStep(ctx, guest, session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StepGuests, advanced.Step)
}

func TestHotelWizardRecomputesOnEveryValidPair(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	session, err := f.svc.StartSession(ctx, guest, "hotel-1")
	require.NoError(t, err)

	s, err := f.svc.UpdateSession(ctx, guest, session.SessionID, models.SessionUpdate{CheckIn: strPtr("2025-01-01"), CheckOut: strPtr("2025-01-02")})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Hotel.Nights)

	s, err = f.svc.UpdateSession(ctx, guest, session.SessionID, models.SessionUpdate{CheckOut: strPtr("2025-01-08"), Rooms: intPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, 7, s.Hotel.Nights)
	assert.Equal(t, 1400.0, s.Quote.Subtotal)

	s, err = f.svc.UpdateSession(ctx, guest, session.SessionID, models.SessionUpdate{CheckOut: strPtr("2024-12-31")})
	require.NoError(t, err)
	assert.Equal(t, 0, s.Hotel.Nights)
	assert.Equal(t, 0.0, s.Quote.Total)
	_, err = f.svc.NextStep(ctx, guest, session.SessionID)
	assert.ErrorIs(t, err, ErrInvalidDates)
}

func TestHotelWizardRejectsPastCheckIn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	session, err := f.svc.StartSession(ctx, guest, "hotel-1")
	require.NoError(t, err)

	_, err = f.svc.UpdateSession(ctx, guest, session.SessionID, models.SessionUpdate{CheckIn: strPtr("2024-11-01"), CheckOut: strPtr("2024-11-03")})
	require.NoError(t, err)
	_, err = f.svc.NextStep(ctx, guest, session.SessionID)
	assert.ErrorIs(t, err, ErrPastDate)
}

func completeHotelSession(t *testing.T, f fixture) *models.BookingSession {
	t.Helper()
	ctx := context.Background()
	session, err := f.svc.StartSession(ctx, guest, "hotel-1")
	require.NoError(t, err)
	id := session.SessionID

	_, err = f.svc.UpdateSession(ctx, guest, id, models.SessionUpdate{CheckIn: strPtr("2025-01-01"), CheckOut: strPtr("2025-01-04")})
	require.NoError(t, err)
	_, err = f.svc.NextStep(ctx, guest, id)
	require.NoError(t, err)

	_, err = f.svc.UpdateSession(ctx, guest, id, models.SessionUpdate{Guests: intPtr(5), Rooms: intPtr(2)})
	require.NoError(t, err)
	_, err = f.svc.NextStep(ctx, guest, id)
	assert.ErrorIs(t, err, ErrCapacity)
	_, err = f.svc.UpdateSession(ctx, guest, id, models.SessionUpdate{Guests: intPtr(4)})
	require.NoError(t, err)
	_, err = f.svc.NextStep(ctx, guest, id)
	require.NoError(t, err)

	_, err = f.svc.UpdateSession(ctx, guest, id, models.SessionUpdate{Email: strPtr("")})
	require.NoError(t, err)
	_, err = f.svc.NextStep(ctx, guest, id)
	assert.ErrorIs(t, err, ErrMissingContact)
	_, err = f.svc.UpdateSession(ctx, guest, id, models.SessionUpdate{Email: strPtr("Guest@Example.com"), SpecialRequests: strPtr("late arrival")})
	require.NoError(t, err)
	final, err := f.svc.NextStep(ctx, guest, id)
	require.NoError(t, err)
	require.Equal(t, models.StepConfirm, final.Step)
	return final
}

func TestHotelWizardConfirmCreatesPendingBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	session := completeHotelSession(t, f)

	b, err := f.svc.ConfirmSession(ctx, guest, session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, b.Status)
	assert.Equal(t, models.PaymentUnpaid, b.Payment.Status)
	assert.Equal(t, "p1", b.ProviderID)
	assert.Regexp(t, `^SH-[0-9A-F]{8}$`, b.Reference)
	assert.Equal(t, 3, b.Hotel.Nights)
	assert.Equal(t, 2, b.Hotel.Rooms)
	assert.Equal(t, 600.0, b.Amount.Subtotal)
	assert.Equal(t, 690.0, b.Amount.Total)
	assert.Equal(t, "guest@example.com", b.Contact.Email)
	assert.Equal(t, fixedTime.Add(15*time.Minute), b.ExpiresAt)

	_, err = f.svc.GetSession(ctx, guest, session.SessionID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	stored, err := f.store.Bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.Reference, stored.Reference)
}

func TestWizardBackConfirmAndOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	session, err := f.svc.StartSession(ctx, guest, "hotel-1")
	require.NoError(t, err)

	_, err = f.svc.PreviousStep(ctx, guest, session.SessionID)
	assert.ErrorIs(t, err, ErrFirstStep)
	_, err = f.svc.ConfirmSession(ctx, guest, session.SessionID)
	assert.ErrorIs(t, err, ErrNotAtConfirm)

	_, err = f.svc.GetSession(ctx, stranger, session.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, f.svc.CancelSession(ctx, guest, session.SessionID))
	_, err = f.svc.GetSession(ctx, guest, session.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = f.svc.StartSession(ctx, guest, "hidden")
	assert.ErrorIs(t, err, ErrListingUnavailable)
	_, err = f.svc.StartSession(ctx, guest, "missing")
	assert.ErrorIs(t, err, ErrListingUnavailable)
}

func TestWizardStepBack(t *testing.T) {
	f := newFixture(t)
	session := completeHotelSession(t, f)
	back, err := f.svc.PreviousStep(context.Background(), guest, session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StepDetails, back.Step)
}

func TestCleaningWizard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	session, err := f.svc.StartSession(ctx, guest, "clean-1")
	require.NoError(t, err)
	assert.Equal(t, models.StepSchedule, session.Step)
	assert.Equal(t, 3.0, session.Cleaning.Hours)
	assert.Equal(t, 60.0, session.Quote.Subtotal)

	_, err = f.svc.NextStep(ctx, guest, session.SessionID)
	assert.ErrorIs(t, err, ErrMissingSchedule)

	hours := 2.0
	s, err := f.svc.UpdateSession(ctx, guest, session.SessionID, models.SessionUpdate{
		Date: strPtr("2024-12-05"), StartTime: strPtr("9am"), Hours: &hours, Address: strPtr("1 Main St"),
	})
	require.NoError(t, err)
	assert.Equal(t, 60.0, s.Quote.Subtotal, "minimum hours apply")
	_, err = f.svc.NextStep(ctx, guest, session.SessionID)
	assert.ErrorIs(t, err, ErrStartTime)

	_, err = f.svc.UpdateSession(ctx, guest, session.SessionID, models.SessionUpdate{StartTime: strPtr("09:00")})
	require.NoError(t, err)
	_, err = f.svc.NextStep(ctx, guest, session.SessionID)
	require.NoError(t, err)
	_, err = f.svc.NextStep(ctx, guest, session.SessionID)
	require.NoError(t, err)

	b, err := f.svc.ConfirmSession(ctx, guest, session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryCleaning, b.Kind)
	assert.Equal(t, "1 Main St", b.Cleaning.Address)
}

func TestCabWizardPassengerLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	session, err := f.svc.StartSession(ctx, guest, "cab-1")
	require.NoError(t, err)
	assert.Equal(t, models.StepRoute, session.Step)

	pickup := fixedTime.Add(2 * time.Hour)
	distance := 10.0
	s, err := f.svc.UpdateSession(ctx, guest, session.SessionID, models.SessionUpdate{
		Pickup: strPtr("Airport"), Dropoff: strPtr("Hotel"), PickupTime: &pickup, Passengers: intPtr(6), DistanceKm: &distance,
	})
	require.NoError(t, err)
	assert.Equal(t, 20.0, s.Quote.Subtotal)

	_, err = f.svc.NextStep(ctx, guest, session.SessionID)
	assert.ErrorIs(t, err, ErrPassengers)
	_, err = f.svc.UpdateSession(ctx, guest, session.SessionID, models.SessionUpdate{Passengers: intPtr(2)})
	require.NoError(t, err)
	next, err := f.svc.NextStep(ctx, guest, session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StepDetails, next.Step)
}

func TestBookRide(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := models.RideRequest{
		ListingID: "cab-1", Pickup: "Airport", Dropoff: "CBD",
		PickupTime: fixedTime.Add(time.Hour), Passengers: 2, DistanceKm: 10,
	}
	b, err := f.svc.BookRide(ctx, guest, req)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryCab, b.Kind)
	assert.Equal(t, "guest@example.com", b.Contact.Email)
	assert.Equal(t, 23.0, b.Amount.Total)

	req.PickupTime = fixedTime.Add(-time.Hour)
	_, err = f.svc.BookRide(ctx, guest, req)
	assert.ErrorIs(t, err, ErrPickupInPast)

	req.PickupTime = fixedTime.Add(time.Hour)
	req.ListingID = "hotel-1"
	_, err = f.svc.BookRide(ctx, guest, req)
	assert.ErrorIs(t, err, utils.ErrBadRequest)
}

func bookHotel(t *testing.T, f fixture) *models.Booking {
	t.Helper()
	session := completeHotelSession(t, f)
	b, err := f.svc.ConfirmSession(context.Background(), guest, session.SessionID)
	require.NoError(t, err)
	return b
}

func TestPayByCardSimulatedThenCancelRefunds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := bookHotel(t, f)

	_, err := f.svc.Pay(ctx, stranger, b.ID, models.PaymentCard)
	assert.ErrorIs(t, err, ErrNotYourBooking)
	_, err = f.svc.Pay(ctx, guest, b.ID, "bitcoin")
	assert.ErrorIs(t, err, utils.ErrBadRequest)

	paid, err := f.svc.Pay(ctx, guest, b.ID, models.PaymentCard)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, paid.Status)
	assert.Equal(t, models.PaymentPaid, paid.Payment.Status)
	assert.NotEmpty(t, paid.Payment.IntentID)

	_, err = f.svc.Pay(ctx, guest, b.ID, models.PaymentCard)
	assert.ErrorIs(t, err, ErrAlreadyPaid)

	confirmed, err := f.svc.ConfirmPayment(ctx, guest, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, confirmed.Payment.Status)

	cancelled, err := f.svc.CancelBooking(ctx, guest, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, cancelled.Status)
	assert.Equal(t, models.PaymentRefunded, cancelled.Payment.Status)

	charge, err := f.processor.GetCharge(ctx, paid.Payment.IntentID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentRefunded, charge.Status)

	_, err = f.svc.CancelBooking(ctx, guest, b.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	assert.Equal(t, []recordedEvent{{b.ID, models.BookingConfirmed}, {b.ID, models.BookingCancelled}}, f.events.events)
}

// pendingProcessor leaves card charges processing until succeed is called.
type pendingProcessor struct {
	mu      sync.Mutex
	charges map[string]string
	created int
	refunds int
}

func newPendingProcessor() *pendingProcessor {
	return &pendingProcessor{charges: make(map[string]string)}
}

func (p *pendingProcessor) CreateCharge(_ context.Context, req models.PaymentRequest) (*models.PaymentResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.created++
	id := fmt.Sprintf("pi_%s_%d", req.BookingID, p.created)
	p.charges[id] = models.PaymentProcessing
	return &models.PaymentResult{IntentID: id, ClientSecret: id + "_secret", Status: models.PaymentProcessing}, nil
}

func (p *pendingProcessor) GetCharge(_ context.Context, intentID string) (*models.PaymentResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return &models.PaymentResult{IntentID: intentID, ClientSecret: intentID + "_secret", Status: p.charges[intentID]}, nil
}

func (p *pendingProcessor) Refund(_ context.Context, intentID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.refunds++
	p.charges[intentID] = models.PaymentRefunded
	return nil
}

func (p *pendingProcessor) CancelCharge(_ context.Context, intentID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.charges[intentID] != models.PaymentProcessing {
		return fmt.Errorf("charge %s is %s", intentID, p.charges[intentID])
	}
	p.charges[intentID] = models.PaymentFailed
	return nil
}

func (p *pendingProcessor) succeed(intentID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.charges[intentID] = models.PaymentPaid
}

func TestPayWhileProcessingReusesIntent(t *testing.T) {
	f := newFixture(t)
	proc := newPendingProcessor()
	f.svc.Processor = proc
	ctx := context.Background()
	b := bookHotel(t, f)

	first, err := f.svc.Pay(ctx, guest, b.ID, models.PaymentCard)
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, first.Status)
	assert.Equal(t, models.PaymentProcessing, first.Payment.Status)

	again, err := f.svc.Pay(ctx, guest, b.ID, models.PaymentCard)
	require.NoError(t, err)
	assert.Equal(t, first.Payment.IntentID, again.Payment.IntentID)
	assert.Equal(t, first.Payment.ClientSecret, again.Payment.ClientSecret)
	assert.Equal(t, 1, proc.created)

	_, err = f.svc.Pay(ctx, guest, b.ID, models.PaymentCash)
	assert.ErrorIs(t, err, ErrPaymentInProgress)

	proc.succeed(first.Payment.IntentID)
	paid, err := f.svc.Pay(ctx, guest, b.ID, models.PaymentCard)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, paid.Status)
	assert.Equal(t, models.PaymentPaid, paid.Payment.Status)
	assert.Equal(t, 1, proc.created)
}

func TestCancelWhileProcessingCancelsIntent(t *testing.T) {
	f := newFixture(t)
	proc := newPendingProcessor()
	f.svc.Processor = proc
	ctx := context.Background()
	b := bookHotel(t, f)

	started, err := f.svc.Pay(ctx, guest, b.ID, models.PaymentCard)
	require.NoError(t, err)

	cancelled, err := f.svc.CancelBooking(ctx, guest, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, cancelled.Status)
	assert.Equal(t, models.PaymentFailed, cancelled.Payment.Status)

	charge, err := proc.GetCharge(ctx, started.Payment.IntentID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentFailed, charge.Status)

	after, err := f.svc.ConfirmPayment(ctx, guest, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, after.Status)
	assert.Equal(t, models.PaymentFailed, after.Payment.Status)
	assert.Zero(t, proc.refunds)
}

func TestLateChargeOnCancelledBookingIsRefunded(t *testing.T) {
	f := newFixture(t)
	proc := newPendingProcessor()
	f.svc.Processor = proc
	ctx := context.Background()
	b := bookHotel(t, f)

	started, err := f.svc.Pay(ctx, guest, b.ID, models.PaymentCard)
	require.NoError(t, err)
	proc.succeed(started.Payment.IntentID)

	cancelled, err := f.svc.CancelBooking(ctx, guest, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, cancelled.Status)
	assert.Equal(t, models.PaymentProcessing, cancelled.Payment.Status)

	settled, err := f.svc.ConfirmPayment(ctx, guest, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, settled.Status)
	assert.Equal(t, models.PaymentRefunded, settled.Payment.Status)
	assert.Equal(t, 1, proc.refunds)

	stored, err := f.store.Bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentRefunded, stored.Payment.Status)

	_, err = f.svc.ConfirmPayment(ctx, guest, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, proc.refunds)
}

func TestPayCashConfirmsUnpaid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := bookHotel(t, f)

	paid, err := f.svc.Pay(ctx, guest, b.ID, models.PaymentCash)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, paid.Status)
	assert.Equal(t, models.PaymentUnpaid, paid.Payment.Status)
	assert.Equal(t, models.PaymentCash, paid.Payment.Method)

	_, err = f.svc.ConfirmPayment(ctx, guest, b.ID)
	assert.ErrorIs(t, err, ErrNoPaymentIntent)
}

func TestPayAfterWindowFails(t *testing.T) {
	f := newFixture(t)
	b := bookHotel(t, f)
	f.svc.now = func() time.Time { return fixedTime.Add(time.Hour) }

	_, err := f.svc.Pay(context.Background(), guest, b.ID, models.PaymentCard)
	assert.ErrorIs(t, err, ErrPaymentWindow)
}

func TestAdminStatusTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := bookHotel(t, f)

	_, err := f.svc.SetStatus(ctx, &models.Actor{UserID: "a9", Role: models.RoleAdmin, ProviderID: "p2"}, b.ID, models.BookingConfirmed)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	_, err = f.svc.SetStatus(ctx, hotelAdm, b.ID, models.BookingCompleted)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.ErrorIs(t, err, utils.ErrConflict)

	_, err = f.svc.SetStatus(ctx, hotelAdm, b.ID, "lost")
	assert.ErrorIs(t, err, utils.ErrBadRequest)

	confirmed, err := f.svc.SetStatus(ctx, hotelAdm, b.ID, models.BookingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, confirmed.Status)
	completed, err := f.svc.SetStatus(ctx, hotelAdm, b.ID, models.BookingCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCompleted, completed.Status)

	_, err = f.svc.CancelBooking(ctx, guest, b.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	list, err := f.svc.ListProviderBookings(ctx, hotelAdm, "ignored", "")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	got, err := f.svc.GetBooking(ctx, hotelAdm, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
	_, err = f.svc.GetBooking(ctx, stranger, b.ID)
	assert.ErrorIs(t, err, ErrNotYourBooking)
}

func TestExpirePending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	expiring := bookHotel(t, f)
	kept := bookHotel(t, f)
	_, err := f.svc.Pay(ctx, guest, kept.ID, models.PaymentCash)
	require.NoError(t, err)

	n, err := f.svc.ExpirePending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	f.svc.now = func() time.Time { return fixedTime.Add(16 * time.Minute) }
	n, err = f.svc.ExpirePending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := f.store.Bookings.GetByID(ctx, expiring.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, got.Status)
	got, err = f.store.Bookings.GetByID(ctx, kept.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, got.Status)

	mine, err := f.svc.ListMyBookings(ctx, guest)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}
