package payment

import (
	"context"
	"errors"
	"math"

	"servicehub/models"
)

// ErrUnknownIntent is returned when the processor has no record of an intent.
var ErrUnknownIntent = errors.New("unknown payment intent")

// Processor charges and refunds bookings paid by card.
type Processor interface {
	// CreateCharge starts a card charge. The returned status is one of the
	// models.Payment* constants.
	CreateCharge(ctx context.Context, req models.PaymentRequest) (*models.PaymentResult, error)
	// GetCharge re-reads the charge state.
	GetCharge(ctx context.Context, intentID string) (*models.PaymentResult, error)
	Refund(ctx context.Context, intentID string) error
	// CancelCharge abandons a charge that has not succeeded yet.
	CancelCharge(ctx context.Context, intentID string) error
}

// MinorUnits converts a major-unit amount to cents.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
