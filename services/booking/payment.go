package booking

import (
	"context"
	"fmt"

	"servicehub/models"
	"servicehub/utils"

	"go.uber.org/zap"
)

// Pay settles a pending booking. Cash confirms immediately and is collected on site;
// card goes through the payment processor.
func (s *DefaultBookingService) Pay(ctx context.Context, actor *models.Actor, id, method string) (*models.Booking, error) {
	b, err := s.ownBooking(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if b.Payment.Status == models.PaymentPaid {
		return nil, ErrAlreadyPaid
	}
	if b.Status != models.BookingPending {
		return nil, fmt.Errorf("cannot pay a %s booking: %w", b.Status, ErrInvalidTransition)
	}
	if s.now().After(b.ExpiresAt) {
		return nil, ErrPaymentWindow
	}
	if b.Payment.Status == models.PaymentProcessing && b.Payment.IntentID != "" {
		if method != models.PaymentCard {
			return nil, ErrPaymentInProgress
		}
		// Reuse the open intent so the client keeps a single client secret.
		return s.refreshCharge(ctx, b, actor.UserID)
	}

	switch method {
	case models.PaymentCash:
		b.Payment = models.PaymentInfo{Method: models.PaymentCash, Status: models.PaymentUnpaid}
		return s.transition(ctx, b, models.BookingConfirmed, actor.UserID)
	case models.PaymentCard:
	default:
		return nil, utils.BadRequest("method must be card or cash")
	}

	if b.Amount.Total <= 0 {
		return nil, ErrNothingToCharge
	}
	res, err := s.Processor.CreateCharge(ctx, models.PaymentRequest{
		BookingID:   b.ID,
		Reference:   b.Reference,
		UserID:      b.UserID,
		Amount:      b.Amount.Total,
		Currency:    b.Amount.Currency,
		Email:       b.Contact.Email,
		Description: fmt.Sprintf("%s %s", b.Reference, b.ListingName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start card payment: %w", err)
	}
	b.Payment = models.PaymentInfo{
		Method:       models.PaymentCard,
		Status:       res.Status,
		IntentID:     res.IntentID,
		ClientSecret: res.ClientSecret,
	}
	s.logger.Info("Card payment started", zap.String("bookingId", b.ID), zap.String("status", res.Status))
	return s.settle(ctx, b, actor.UserID)
}

// ConfirmPayment re-reads the processor's view of the card charge.
func (s *DefaultBookingService) ConfirmPayment(ctx context.Context, actor *models.Actor, id string) (*models.Booking, error) {
	b, err := s.ownBooking(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if b.Payment.Method != models.PaymentCard || b.Payment.IntentID == "" {
		return nil, ErrNoPaymentIntent
	}
	if b.Payment.Status == models.PaymentPaid || b.Payment.Status == models.PaymentRefunded {
		return b, nil
	}
	return s.refreshCharge(ctx, b, actor.UserID)
}

func (s *DefaultBookingService) refreshCharge(ctx context.Context, b *models.Booking, by string) (*models.Booking, error) {
	res, err := s.Processor.GetCharge(ctx, b.Payment.IntentID)
	if err != nil {
		return nil, fmt.Errorf("failed to read card payment: %w", err)
	}
	b.Payment.Status = res.Status
	if res.ClientSecret != "" {
		b.Payment.ClientSecret = res.ClientSecret
	}
	return s.settle(ctx, b, by)
}

// settle persists the payment state and confirms the booking once paid.
// A charge that lands after the booking was cancelled is refunded.
func (s *DefaultBookingService) settle(ctx context.Context, b *models.Booking, by string) (*models.Booking, error) {
	if b.Payment.Status == models.PaymentPaid {
		switch b.Status {
		case models.BookingPending:
			return s.transition(ctx, b, models.BookingConfirmed, by)
		case models.BookingCancelled:
			if err := s.Processor.Refund(ctx, b.Payment.IntentID); err != nil {
				return nil, fmt.Errorf("failed to refund booking %s: %w", b.ID, err)
			}
			b.Payment.Status = models.PaymentRefunded
			s.logger.Info("Late card payment refunded", zap.String("bookingId", b.ID))
		}
	}
	b.UpdatedAt = s.now()
	if err := s.Bookings.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}
	return b, nil
}

func (s *DefaultBookingService) ownBooking(ctx context.Context, actor *models.Actor, id string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	if b.UserID != actor.UserID {
		return nil, ErrNotYourBooking
	}
	return b, nil
}
