package booking

import (
	"context"
	"time"

	bookingRepo "servicehub/database/repository/booking"
	listingRepo "servicehub/database/repository/listing"
	userRepo "servicehub/database/repository/user"
	"servicehub/models"
	"servicehub/services/payment"
	"servicehub/services/settings"
	"servicehub/services/tasks"

	"go.uber.org/zap"
)

// WizardService drives the step-by-step booking forms.
type WizardService interface {
	StartSession(ctx context.Context, actor *models.Actor, listingID string) (*models.BookingSession, error)
	GetSession(ctx context.Context, actor *models.Actor, sessionID string) (*models.BookingSession, error)
	UpdateSession(ctx context.Context, actor *models.Actor, sessionID string, update models.SessionUpdate) (*models.BookingSession, error)
	NextStep(ctx context.Context, actor *models.Actor, sessionID string) (*models.BookingSession, error)
	PreviousStep(ctx context.Context, actor *models.Actor, sessionID string) (*models.BookingSession, error)
	ConfirmSession(ctx context.Context, actor *models.Actor, sessionID string) (*models.Booking, error)
	CancelSession(ctx context.Context, actor *models.Actor, sessionID string) error
}

// BookingService manages bookings after they are created.
type BookingService interface {
	BookRide(ctx context.Context, actor *models.Actor, req models.RideRequest) (*models.Booking, error)
	ListMyBookings(ctx context.Context, actor *models.Actor) ([]models.Booking, error)
	GetBooking(ctx context.Context, actor *models.Actor, id string) (*models.Booking, error)
	CancelBooking(ctx context.Context, actor *models.Actor, id string) (*models.Booking, error)
	ListProviderBookings(ctx context.Context, actor *models.Actor, providerID, status string) ([]models.Booking, error)
	SetStatus(ctx context.Context, actor *models.Actor, id, status string) (*models.Booking, error)

	Pay(ctx context.Context, actor *models.Actor, id, method string) (*models.Booking, error)
	ConfirmPayment(ctx context.Context, actor *models.Actor, id string) (*models.Booking, error)
	ExpirePending(ctx context.Context) (int, error)
}

// DefaultBookingService implements WizardService and BookingService.
type DefaultBookingService struct {
	Bookings  bookingRepo.BookingRepository
	Listings  listingRepo.ListingRepository
	Users     userRepo.UserRepository
	Sessions  SessionStore
	Settings  settings.SettingsService
	Processor payment.Processor
	Events    tasks.Enqueuer
	logger    *zap.Logger
	now       func() time.Time
}

func NewDefaultBookingService(
	bookings bookingRepo.BookingRepository,
	listings listingRepo.ListingRepository,
	users userRepo.UserRepository,
	sessions SessionStore,
	settingsSvc settings.SettingsService,
	processor payment.Processor,
	events tasks.Enqueuer,
	logger *zap.Logger,
) *DefaultBookingService {
	return &DefaultBookingService{
		Bookings:  bookings,
		Listings:  listings,
		Users:     users,
		Sessions:  sessions,
		Settings:  settingsSvc,
		Processor: processor,
		Events:    events,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}
