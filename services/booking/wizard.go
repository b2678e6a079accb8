package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"servicehub/database/repository"
	"servicehub/models"
	"servicehub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultBookingService) StartSession(ctx context.Context, actor *models.Actor, listingID string) (*models.BookingSession, error) {
	l, err := s.bookableListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	st, err := s.Settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	session := &models.BookingSession{
		SessionID: uuid.New().String(),
		UserID:    actor.UserID,
		ListingID: l.ID,
		Kind:      l.Category,
		Step:      models.WizardSteps[l.Category][0],
		CreatedAt: now,
		UpdatedAt: now,
	}
	switch l.Category {
	case models.CategoryHotel:
		session.Hotel = &models.HotelStay{Guests: 1, Rooms: 1}
	case models.CategoryCleaning:
		session.Cleaning = &models.CleaningVisit{Hours: l.Cleaning.MinHours}
	case models.CategoryCab:
		session.Ride = &models.RideTrip{Passengers: 1}
	}
	if u, err := s.Users.GetByID(ctx, actor.UserID); err == nil {
		session.Contact = models.ContactInfo{Name: u.DisplayName, Email: u.Email, Phone: u.Phone}
	}
	refreshQuote(session, l, st)

	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	s.logger.Debug("Booking session started", zap.String("sessionId", session.SessionID), zap.String("kind", session.Kind))
	return session, nil
}

func (s *DefaultBookingService) GetSession(ctx context.Context, actor *models.Actor, sessionID string) (*models.BookingSession, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != actor.UserID {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// UpdateSession merges data and recomputes the quote. It never moves the step.
func (s *DefaultBookingService) UpdateSession(ctx context.Context, actor *models.Actor, sessionID string, update models.SessionUpdate) (*models.BookingSession, error) {
	session, l, st, err := s.loadSession(ctx, actor, sessionID)
	if err != nil {
		return nil, err
	}
	applyUpdate(session, update)
	refreshQuote(session, l, st)
	return session, s.save(ctx, session)
}

// NextStep advances only when the current step's requirements hold.
func (s *DefaultBookingService) NextStep(ctx context.Context, actor *models.Actor, sessionID string) (*models.BookingSession, error) {
	session, l, st, err := s.loadSession(ctx, actor, sessionID)
	if err != nil {
		return nil, err
	}
	steps := models.WizardSteps[session.Kind]
	idx := stepIndex(session.Kind, session.Step)
	if idx == len(steps)-1 {
		return nil, utils.Conflict("already at the last step")
	}
	if err := checkStep(session.Step, session, l, s.now()); err != nil {
		return nil, err
	}
	session.Step = steps[idx+1]
	refreshQuote(session, l, st)
	return session, s.save(ctx, session)
}

func (s *DefaultBookingService) PreviousStep(ctx context.Context, actor *models.Actor, sessionID string) (*models.BookingSession, error) {
	session, err := s.GetSession(ctx, actor, sessionID)
	if err != nil {
		return nil, err
	}
	idx := stepIndex(session.Kind, session.Step)
	if idx <= 0 {
		return nil, ErrFirstStep
	}
	session.Step = models.WizardSteps[session.Kind][idx-1]
	return session, s.save(ctx, session)
}

// ConfirmSession turns a completed session into a pending booking and drops the session.
func (s *DefaultBookingService) ConfirmSession(ctx context.Context, actor *models.Actor, sessionID string) (*models.Booking, error) {
	session, l, st, err := s.loadSession(ctx, actor, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != models.StepConfirm {
		return nil, ErrNotAtConfirm
	}
	now := s.now()
	for _, step := range models.WizardSteps[session.Kind] {
		if err := checkStep(step, session, l, now); err != nil {
			return nil, err
		}
	}
	refreshQuote(session, l, st)

	b := s.newBooking(l, actor.UserID, *session.Quote, session.Contact, st)
	b.Hotel, b.Cleaning, b.Ride = session.Hotel, session.Cleaning, session.Ride
	if err := s.Bookings.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	if err := s.Sessions.Delete(ctx, session.SessionID); err != nil {
		s.logger.Warn("Failed to delete confirmed session", zap.String("sessionId", session.SessionID), zap.Error(err))
	}
	utils.IncBookingCreated(b.Kind)
	s.logger.Info("Booking created", zap.String("bookingId", b.ID), zap.String("reference", b.Reference), zap.String("kind", b.Kind))
	return b, nil
}

func (s *DefaultBookingService) CancelSession(ctx context.Context, actor *models.Actor, sessionID string) error {
	if _, err := s.GetSession(ctx, actor, sessionID); err != nil {
		return err
	}
	return s.Sessions.Delete(ctx, sessionID)
}

func (s *DefaultBookingService) loadSession(ctx context.Context, actor *models.Actor, sessionID string) (*models.BookingSession, *models.Listing, *models.Settings, error) {
	session, err := s.GetSession(ctx, actor, sessionID)
	if err != nil {
		return nil, nil, nil, err
	}
	l, err := s.bookableListing(ctx, session.ListingID)
	if err != nil {
		return nil, nil, nil, err
	}
	st, err := s.Settings.GetSettings(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	return session, l, st, nil
}

func (s *DefaultBookingService) save(ctx context.Context, session *models.BookingSession) error {
	session.UpdatedAt = s.now()
	return s.Sessions.Save(ctx, session)
}

func (s *DefaultBookingService) bookableListing(ctx context.Context, listingID string) (*models.Listing, error) {
	l, err := s.Listings.GetByID(ctx, listingID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrListingUnavailable
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load listing: %w", err)
	}
	if !l.Active {
		return nil, ErrListingUnavailable
	}
	switch {
	case l.Category == models.CategoryHotel && l.Hotel != nil,
		l.Category == models.CategoryCleaning && l.Cleaning != nil,
		l.Category == models.CategoryCab && l.Cab != nil:
		return l, nil
	}
	return nil, ErrListingUnavailable
}

func (s *DefaultBookingService) newBooking(l *models.Listing, userID string, amount models.Amount, contact models.ContactInfo, st *models.Settings) *models.Booking {
	now := s.now()
	return &models.Booking{
		ID:          uuid.New().String(),
		Reference:   newReference(),
		Kind:        l.Category,
		ListingID:   l.ID,
		ListingName: l.Name,
		ProviderID:  l.ProviderID,
		UserID:      userID,
		Status:      models.BookingPending,
		Payment:     models.PaymentInfo{Status: models.PaymentUnpaid},
		Amount:      amount,
		Contact:     contact,
		CreatedAt:   now,
		UpdatedAt:   now,
		ExpiresAt:   now.Add(paymentWindow(st)),
	}
}

func newReference() string {
	return "SH-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}
