package models

import "time"

// Wizard steps.
const (
	StepDates    = "dates"
	StepGuests   = "guests"
	StepSchedule = "schedule"
	StepRoute    = "route"
	StepDetails  = "details"
	StepConfirm  = "confirm"
)

// WizardSteps lists the ordered steps of each booking kind.
var WizardSteps = map[string][]string{
	CategoryHotel:    {StepDates, StepGuests, StepDetails, StepConfirm},
	CategoryCleaning: {StepSchedule, StepDetails, StepConfirm},
	CategoryCab:      {StepRoute, StepDetails, StepConfirm},
}

// BookingSession holds wizard state between steps. It lives in Redis only.
type BookingSession struct {
	SessionID string         `json:"sessionId"`
	UserID    string         `json:"userId"`
	ListingID string         `json:"listingId"`
	Kind      string         `json:"kind"`
	Step      string         `json:"step"`
	Hotel     *HotelStay     `json:"hotel,omitempty"`
	Cleaning  *CleaningVisit `json:"cleaning,omitempty"`
	Ride      *RideTrip      `json:"ride,omitempty"`
	Contact   ContactInfo    `json:"contact"`
	Quote     *Amount        `json:"quote,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// SessionUpdate carries the fields a client may set on any step. Nil means unchanged.
type SessionUpdate struct {
	CheckIn         *string    `json:"checkIn"`
	CheckOut        *string    `json:"checkOut"`
	Guests          *int       `json:"guests"`
	Rooms           *int       `json:"rooms"`
	Date            *string    `json:"date"`
	StartTime       *string    `json:"startTime"`
	Hours           *float64   `json:"hours"`
	Address         *string    `json:"address"`
	Pickup          *string    `json:"pickup"`
	Dropoff         *string    `json:"dropoff"`
	PickupTime      *time.Time `json:"pickupTime"`
	Passengers      *int       `json:"passengers"`
	DistanceKm      *float64   `json:"distanceKm"`
	Name            *string    `json:"name"`
	Email           *string    `json:"email"`
	Phone           *string    `json:"phone"`
	SpecialRequests *string    `json:"specialRequests"`
}

// RideRequest is the single-shot cab booking body.
type RideRequest struct {
	ListingID  string      `json:"listingId" binding:"required"`
	Pickup     string      `json:"pickup" binding:"required"`
	Dropoff    string      `json:"dropoff" binding:"required"`
	PickupTime time.Time   `json:"pickupTime" binding:"required"`
	Passengers int         `json:"passengers"`
	DistanceKm float64     `json:"distanceKm"`
	Contact    ContactInfo `json:"contact"`
}
