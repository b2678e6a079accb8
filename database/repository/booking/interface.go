package bookingRepo

import (
	"context"
	"time"

	"servicehub/models"
)

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetByReference(ctx context.Context, reference string) (*models.Booking, error)
	// ListByUser returns a user's bookings, newest first.
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	// ListByProvider returns a provider's bookings, newest first; empty status matches all.
	ListByProvider(ctx context.Context, providerID, status string) ([]models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error
	// ListExpired returns pending bookings, unpaid or with a failed charge, whose payment window closed before t.
	ListExpired(ctx context.Context, t time.Time) ([]models.Booking, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}
