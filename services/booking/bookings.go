package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"servicehub/models"
	"servicehub/utils"

	"go.uber.org/zap"
)

func paymentWindow(st *models.Settings) time.Duration {
	minutes := st.PaymentWindowMinutes
	if minutes < 1 {
		minutes = models.DefaultSettings().PaymentWindowMinutes
	}
	return time.Duration(minutes) * time.Minute
}

// BookRide books a cab in one request.
func (s *DefaultBookingService) BookRide(ctx context.Context, actor *models.Actor, req models.RideRequest) (*models.Booking, error) {
	l, err := s.bookableListing(ctx, req.ListingID)
	if err != nil {
		return nil, err
	}
	if l.Category != models.CategoryCab {
		return nil, utils.BadRequest("listing %s is not a cab service", l.ID)
	}
	st, err := s.Settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	ride := &models.RideTrip{
		Pickup:     strings.TrimSpace(req.Pickup),
		Dropoff:    strings.TrimSpace(req.Dropoff),
		PickupTime: req.PickupTime.UTC(),
		Passengers: req.Passengers,
		DistanceKm: req.DistanceKm,
	}
	if ride.Passengers == 0 {
		ride.Passengers = 1
	}
	if err := checkRoute(ride, l.Cab, s.now()); err != nil {
		return nil, err
	}

	contact := req.Contact
	contact.Email = strings.ToLower(strings.TrimSpace(contact.Email))
	if u, err := s.Users.GetByID(ctx, actor.UserID); err == nil {
		if contact.Name == "" {
			contact.Name = u.DisplayName
		}
		if contact.Email == "" {
			contact.Email = u.Email
		}
		if contact.Phone == "" {
			contact.Phone = u.Phone
		}
	}
	if err := checkContact(contact); err != nil {
		return nil, err
	}

	amount := Price(Subtotal(l, nil, nil, ride), currencyOf(l, st), st)
	b := s.newBooking(l, actor.UserID, amount, contact, st)
	b.Ride = ride
	if err := s.Bookings.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	utils.IncBookingCreated(b.Kind)
	s.logger.Info("Ride booked", zap.String("bookingId", b.ID), zap.String("reference", b.Reference))
	return b, nil
}

func (s *DefaultBookingService) ListMyBookings(ctx context.Context, actor *models.Actor) ([]models.Booking, error) {
	bookings, err := s.Bookings.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// GetBooking is visible to the booking's user and the provider's admins.
func (s *DefaultBookingService) GetBooking(ctx context.Context, actor *models.Actor, id string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	if b.UserID != actor.UserID && !actor.Manages(b.ProviderID) {
		return nil, ErrNotYourBooking
	}
	return b, nil
}

func (s *DefaultBookingService) CancelBooking(ctx context.Context, actor *models.Actor, id string) (*models.Booking, error) {
	b, err := s.GetBooking(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, b, models.BookingCancelled, actor.UserID)
}

func (s *DefaultBookingService) ListProviderBookings(ctx context.Context, actor *models.Actor, providerID, status string) ([]models.Booking, error) {
	if !actor.IsSuperadmin() {
		providerID = actor.ProviderID
	}
	if providerID == "" {
		return nil, utils.BadRequest("providerId is required")
	}
	if !actor.Manages(providerID) {
		return nil, utils.Forbidden("not an admin of this provider")
	}
	bookings, err := s.Bookings.ListByProvider(ctx, providerID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list provider bookings: %w", err)
	}
	return bookings, nil
}

// SetStatus moves a booking along pending → confirmed → completed, or cancels it.
func (s *DefaultBookingService) SetStatus(ctx context.Context, actor *models.Actor, id, status string) (*models.Booking, error) {
	switch status {
	case models.BookingConfirmed, models.BookingCompleted, models.BookingCancelled:
	default:
		return nil, utils.BadRequest("status must be confirmed, completed or cancelled")
	}
	b, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	if !actor.Manages(b.ProviderID) {
		return nil, utils.Forbidden("not an admin of this provider")
	}
	return s.transition(ctx, b, status, actor.UserID)
}

// ExpirePending cancels pending bookings whose payment window closed.
func (s *DefaultBookingService) ExpirePending(ctx context.Context) (int, error) {
	expired, err := s.Bookings.ListExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to list expired bookings: %w", err)
	}
	n := 0
	for i := range expired {
		if _, err := s.transition(ctx, &expired[i], models.BookingCancelled, "system"); err != nil {
			s.logger.Warn("Failed to expire booking", zap.String("bookingId", expired[i].ID), zap.Error(err))
			continue
		}
		n++
	}
	return n, nil
}

// transition applies a status change, refunding paid card bookings on cancellation.
func (s *DefaultBookingService) transition(ctx context.Context, b *models.Booking, to, by string) (*models.Booking, error) {
	if !models.CanTransition(b.Status, to) {
		return nil, fmt.Errorf("%s -> %s: %w", b.Status, to, ErrInvalidTransition)
	}
	if to == models.BookingCancelled && b.Payment.Method == models.PaymentCard && b.Payment.Status == models.PaymentPaid {
		if err := s.Processor.Refund(ctx, b.Payment.IntentID); err != nil {
			return nil, fmt.Errorf("failed to refund booking %s: %w", b.ID, err)
		}
		b.Payment.Status = models.PaymentRefunded
	}
	if to == models.BookingCancelled && b.Payment.Method == models.PaymentCard && b.Payment.Status == models.PaymentProcessing {
		// A charge that already succeeded cannot be cancelled; settle refunds it when it is read back.
		if err := s.Processor.CancelCharge(ctx, b.Payment.IntentID); err != nil {
			s.logger.Warn("Failed to cancel card payment", zap.String("bookingId", b.ID), zap.Error(err))
		} else {
			b.Payment.Status = models.PaymentFailed
		}
	}
	b.Status = to
	b.UpdatedAt = s.now()
	if err := s.Bookings.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}
	s.logger.Info("Booking status changed", zap.String("bookingId", b.ID), zap.String("status", to), zap.String("by", by))
	s.Events.BookingStatusChanged(ctx, b.ID, to)
	return b, nil
}
