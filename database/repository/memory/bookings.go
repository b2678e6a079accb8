package memory

import (
	"context"
	"fmt"
	"time"

	"servicehub/database/repository"
	bookingRepo "servicehub/database/repository/booking"
	"servicehub/models"
)

var _ bookingRepo.BookingRepository = (*BookingRepo)(nil)

type BookingRepo struct {
	t table[models.Booking]
}

func NewBookingRepo() *BookingRepo {
	return &BookingRepo{t: newTable[models.Booking]()}
}

func cloneBooking(b models.Booking) models.Booking {
	if b.Hotel != nil {
		h := *b.Hotel
		b.Hotel = &h
	}
	if b.Cleaning != nil {
		c := *b.Cleaning
		b.Cleaning = &c
	}
	if b.Ride != nil {
		r := *b.Ride
		b.Ride = &r
	}
	// Not persisted by the Mongo repository either.
	b.Payment.ClientSecret = ""
	return b
}

func (r *BookingRepo) Create(_ context.Context, b *models.Booking) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if _, ok := r.t.rows[b.ID]; ok {
		return fmt.Errorf("booking %s: %w", b.ID, repository.ErrDuplicate)
	}
	for _, existing := range r.t.rows {
		if existing.Reference == b.Reference {
			return fmt.Errorf("booking reference %s: %w", b.Reference, repository.ErrDuplicate)
		}
	}
	r.t.rows[b.ID] = cloneBooking(*b)
	return nil
}

func (r *BookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	b, ok := r.t.rows[id]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", id, repository.ErrNotFound)
	}
	b = cloneBooking(b)
	return &b, nil
}

func (r *BookingRepo) GetByReference(_ context.Context, reference string) (*models.Booking, error) {
	found := r.t.filter(func(b models.Booking) bool { return b.Reference == reference })
	if len(found) == 0 {
		return nil, fmt.Errorf("booking reference %s: %w", reference, repository.ErrNotFound)
	}
	b := cloneBooking(found[0])
	return &b, nil
}

func (r *BookingRepo) list(keep func(models.Booking) bool) []models.Booking {
	out := r.t.filter(keep)
	sortNewestFirst(out, func(b models.Booking) time.Time { return b.CreatedAt })
	for i := range out {
		out[i] = cloneBooking(out[i])
	}
	return out
}

func (r *BookingRepo) ListByUser(_ context.Context, userID string) ([]models.Booking, error) {
	return r.list(func(b models.Booking) bool { return b.UserID == userID }), nil
}

func (r *BookingRepo) ListByProvider(_ context.Context, providerID, status string) ([]models.Booking, error) {
	return r.list(func(b models.Booking) bool {
		return b.ProviderID == providerID && (status == "" || b.Status == status)
	}), nil
}

func (r *BookingRepo) ListExpired(_ context.Context, t time.Time) ([]models.Booking, error) {
	return r.list(func(b models.Booking) bool {
		return b.Status == models.BookingPending && (b.Payment.Status == models.PaymentUnpaid || b.Payment.Status == models.PaymentFailed) && b.ExpiresAt.Before(t)
	}), nil
}

func (r *BookingRepo) Update(_ context.Context, b *models.Booking) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if _, ok := r.t.rows[b.ID]; !ok {
		return fmt.Errorf("booking %s: %w", b.ID, repository.ErrNotFound)
	}
	r.t.rows[b.ID] = cloneBooking(*b)
	return nil
}

func (r *BookingRepo) CountByStatus(_ context.Context) (map[string]int64, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	out := map[string]int64{}
	for _, b := range r.t.rows {
		out[b.Status]++
	}
	return out, nil
}
