package models

import "time"

// Booking statuses.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

// Payment methods and statuses.
const (
	PaymentCard = "card"
	PaymentCash = "cash"

	PaymentUnpaid     = "unpaid"
	PaymentProcessing = "processing"
	PaymentPaid       = "paid"
	PaymentFailed     = "failed"
	PaymentRefunded   = "refunded"
)

// DateLayout is the wire format of calendar dates (check-in, cleaning day).
const DateLayout = "2006-01-02"

// Booking is a reservation of a listing by a user.
type Booking struct {
	ID          string         `bson:"id" json:"id"`
	Reference   string         `bson:"reference" json:"reference"`
	Kind        string         `bson:"kind" json:"kind"`
	ListingID   string         `bson:"listingId" json:"listingId"`
	ListingName string         `bson:"listingName" json:"listingName"`
	ProviderID  string         `bson:"providerId" json:"providerId"`
	UserID      string         `bson:"userId" json:"userId"`
	Status      string         `bson:"status" json:"status"`
	Payment     PaymentInfo    `bson:"payment" json:"payment"`
	Amount      Amount         `bson:"amount" json:"amount"`
	Hotel       *HotelStay     `bson:"hotel,omitempty" json:"hotel,omitempty"`
	Cleaning    *CleaningVisit `bson:"cleaning,omitempty" json:"cleaning,omitempty"`
	Ride        *RideTrip      `bson:"ride,omitempty" json:"ride,omitempty"`
	Contact     ContactInfo    `bson:"contact" json:"contact"`
	CreatedAt   time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time      `bson:"updatedAt" json:"updatedAt"`
	ExpiresAt   time.Time      `bson:"expiresAt" json:"expiresAt"`
}

type PaymentInfo struct {
	Method       string `bson:"method,omitempty" json:"method,omitempty"`
	Status       string `bson:"status" json:"status"`
	IntentID     string `bson:"intentId,omitempty" json:"intentId,omitempty"`
	ClientSecret string `bson:"-" json:"clientSecret,omitempty"`
}

// Amount is a priced quote. All values are in major units, rounded to cents.
type Amount struct {
	Subtotal   float64 `bson:"subtotal" json:"subtotal"`
	ServiceFee float64 `bson:"serviceFee" json:"serviceFee"`
	Tax        float64 `bson:"tax" json:"tax"`
	Total      float64 `bson:"total" json:"totalAmount"`
	Currency   string  `bson:"currency" json:"currency"`
}

type HotelStay struct {
	CheckIn  string `bson:"checkIn" json:"checkIn"`
	CheckOut string `bson:"checkOut" json:"checkOut"`
	Nights   int    `bson:"nights" json:"nights"`
	Guests   int    `bson:"guests" json:"guests"`
	Rooms    int    `bson:"rooms" json:"rooms"`
}

type CleaningVisit struct {
	Date      string  `bson:"date" json:"date"`
	StartTime string  `bson:"startTime" json:"startTime"`
	Hours     float64 `bson:"hours" json:"hours"`
	Address   string  `bson:"address" json:"address"`
}

type RideTrip struct {
	Pickup     string    `bson:"pickup" json:"pickup"`
	Dropoff    string    `bson:"dropoff" json:"dropoff"`
	PickupTime time.Time `bson:"pickupTime" json:"pickupTime"`
	Passengers int       `bson:"passengers" json:"passengers"`
	DistanceKm float64   `bson:"distanceKm" json:"distanceKm"`
}

type ContactInfo struct {
	Name            string `bson:"name" json:"name"`
	Email           string `bson:"email" json:"email"`
	Phone           string `bson:"phone" json:"phone,omitempty"`
	SpecialRequests string `bson:"specialRequests" json:"specialRequests,omitempty"`
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to string) bool {
	switch from {
	case BookingPending:
		return to == BookingConfirmed || to == BookingCancelled
	case BookingConfirmed:
		return to == BookingCompleted || to == BookingCancelled
	}
	return false
}

// BookingStatusEvent is the payload of booking notifications.
type BookingStatusEvent struct {
	BookingID string `json:"bookingId"`
	Status    string `json:"status"`
}

// ContactEvent is the payload of new-contact notifications.
type ContactEvent struct {
	ContactID string `json:"contactId"`
}
