package models

// PaymentRequest is what the payment processor needs to charge a booking.
type PaymentRequest struct {
	BookingID   string
	Reference   string
	UserID      string
	Amount      float64
	Currency    string
	Email       string
	Description string
}

// PaymentResult is the processor's view of a charge.
type PaymentResult struct {
	IntentID     string
	ClientSecret string
	Status       string
}
