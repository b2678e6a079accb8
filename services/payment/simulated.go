package payment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"servicehub/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SimulatedProcessor approves every card charge after Delay. It stands in for
// Stripe when STRIPE_KEY is not configured.
type SimulatedProcessor struct {
	Delay  time.Duration
	logger *zap.Logger

	mu      sync.Mutex
	charges map[string]string
}

func NewSimulatedProcessor(delay time.Duration, logger *zap.Logger) *SimulatedProcessor {
	return &SimulatedProcessor{Delay: delay, logger: logger, charges: make(map[string]string)}
}

func (p *SimulatedProcessor) CreateCharge(ctx context.Context, req models.PaymentRequest) (*models.PaymentResult, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("invalid payment amount %.2f", req.Amount)
	}
	if p.Delay > 0 {
		select {
		case <-time.After(p.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	id := "pi_sim_" + uuid.New().String()
	p.mu.Lock()
	p.charges[id] = models.PaymentPaid
	p.mu.Unlock()

	p.logger.Info("Card payment simulated", zap.String("intent", id), zap.String("booking", req.BookingID), zap.Float64("amount", req.Amount))
	return &models.PaymentResult{IntentID: id, Status: models.PaymentPaid}, nil
}

func (p *SimulatedProcessor) GetCharge(_ context.Context, intentID string) (*models.PaymentResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	status, ok := p.charges[intentID]
	if !ok {
		return nil, fmt.Errorf("%s: %w", intentID, ErrUnknownIntent)
	}
	return &models.PaymentResult{IntentID: intentID, Status: status}, nil
}

func (p *SimulatedProcessor) Refund(_ context.Context, intentID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.charges[intentID]; !ok {
		return fmt.Errorf("%s: %w", intentID, ErrUnknownIntent)
	}
	p.charges[intentID] = models.PaymentRefunded
	return nil
}

// CancelCharge fails once the charge has been paid, like a succeeded PaymentIntent.
func (p *SimulatedProcessor) CancelCharge(_ context.Context, intentID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	status, ok := p.charges[intentID]
	if !ok {
		return fmt.Errorf("%s: %w", intentID, ErrUnknownIntent)
	}
	if status != models.PaymentProcessing {
		return fmt.Errorf("cannot cancel a %s charge %s", status, intentID)
	}
	p.charges[intentID] = models.PaymentFailed
	return nil
}
