package payment

import (
	"context"
	"fmt"
	"strings"

	"servicehub/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"
)

// StripeProcessor charges cards through Stripe PaymentIntents.
type StripeProcessor struct {
	sc     *client.API
	logger *zap.Logger
}

func NewStripeProcessor(key string, logger *zap.Logger) *StripeProcessor {
	return &StripeProcessor{sc: client.New(key, nil), logger: logger}
}

func (p *StripeProcessor) CreateCharge(ctx context.Context, req models.PaymentRequest) (*models.PaymentResult, error) {
	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(MinorUnits(req.Amount)),
		Currency:    stripe.String(strings.ToLower(req.Currency)),
		Description: stripe.String(req.Description),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	if req.Email != "" {
		params.ReceiptEmail = stripe.String(req.Email)
	}
	params.Context = ctx
	params.AddMetadata("bookingId", req.BookingID)
	params.AddMetadata("reference", req.Reference)
	params.AddMetadata("userId", req.UserID)

	pi, err := p.sc.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: failed to create payment intent: %w", err)
	}
	p.logger.Info("payment intent created", zap.String("intent", pi.ID), zap.String("booking", req.BookingID))
	return &models.PaymentResult{
		IntentID:     pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       mapIntentStatus(pi),
	}, nil
}

func (p *StripeProcessor) GetCharge(ctx context.Context, intentID string) (*models.PaymentResult, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	pi, err := p.sc.PaymentIntents.Get(intentID, params)
	if err != nil {
		if se, ok := err.(*stripe.Error); ok && se.HTTPStatusCode == 404 {
			return nil, fmt.Errorf("stripe: %s: %w", intentID, ErrUnknownIntent)
		}
		return nil, fmt.Errorf("stripe: failed to get payment intent: %w", err)
	}
	return &models.PaymentResult{IntentID: pi.ID, ClientSecret: pi.ClientSecret, Status: mapIntentStatus(pi)}, nil
}

func (p *StripeProcessor) Refund(ctx context.Context, intentID string) error {
	params := &stripe.RefundParams{PaymentIntent: stripe.String(intentID)}
	params.Context = ctx
	if _, err := p.sc.Refunds.New(params); err != nil {
		return fmt.Errorf("stripe: failed to refund %s: %w", intentID, err)
	}
	p.logger.Info("payment refunded", zap.String("intent", intentID))
	return nil
}

func (p *StripeProcessor) CancelCharge(ctx context.Context, intentID string) error {
	params := &stripe.PaymentIntentCancelParams{}
	params.Context = ctx
	if _, err := p.sc.PaymentIntents.Cancel(intentID, params); err != nil {
		return fmt.Errorf("stripe: failed to cancel %s: %w", intentID, err)
	}
	p.logger.Info("payment intent cancelled", zap.String("intent", intentID))
	return nil
}

func mapIntentStatus(pi *stripe.PaymentIntent) string {
	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		return models.PaymentPaid
	case stripe.PaymentIntentStatusCanceled:
		return models.PaymentFailed
	case stripe.PaymentIntentStatusRequiresPaymentMethod:
		if pi.LastPaymentError != nil {
			return models.PaymentFailed
		}
		return models.PaymentProcessing
	default:
		return models.PaymentProcessing
	}
}
