package booking

import (
	"fmt"

	"servicehub/database/repository"
	"servicehub/utils"
)

// Step validation errors.
var (
	ErrMissingDates    = utils.Unprocessable("checkIn and checkOut are required")
	ErrDateFormat      = utils.Unprocessable("dates must use the YYYY-MM-DD format")
	ErrInvalidDates    = utils.Unprocessable("checkOut must be after checkIn")
	ErrPastDate        = utils.Unprocessable("date cannot be in the past")
	ErrGuests          = utils.Unprocessable("guests and rooms must be at least 1")
	ErrRoomsExceeded   = utils.Unprocessable("not enough rooms available")
	ErrCapacity        = utils.Unprocessable("too many guests for the selected rooms")
	ErrMissingSchedule = utils.Unprocessable("date, startTime, hours and address are required")
	ErrStartTime       = utils.Unprocessable("startTime must use the HH:MM format")
	ErrMissingRoute    = utils.Unprocessable("pickup, dropoff and pickupTime are required")
	ErrPickupInPast    = utils.Unprocessable("pickupTime must be in the future")
	ErrPassengers      = utils.Unprocessable("passengers exceed the vehicle's seats")
	ErrDistance        = utils.Unprocessable("distanceKm cannot be negative")
	ErrMissingContact  = utils.Unprocessable("contact name and email are required")
	ErrContactEmail    = utils.Unprocessable("contact email is not a valid address")
)

// Flow errors.
var (
	ErrSessionNotFound    = fmt.Errorf("booking session: %w", repository.ErrNotFound)
	ErrFirstStep          = utils.Conflict("already at the first step")
	ErrNotAtConfirm       = utils.Conflict("booking session is not at the confirm step")
	ErrListingUnavailable = utils.Unprocessable("listing is not available for booking")
	ErrInvalidTransition  = utils.Conflict("booking status transition not allowed")
	ErrAlreadyPaid        = utils.Conflict("booking is already paid")
	ErrPaymentWindow      = utils.Conflict("payment window has closed")
	ErrNoPaymentIntent    = utils.Conflict("booking has no card payment in progress")
	ErrPaymentInProgress  = utils.Conflict("a card payment is already in progress")
	ErrNothingToCharge    = utils.Unprocessable("booking total is zero")
	ErrNotYourBooking     = utils.Forbidden("booking belongs to another user")
)
