package booking

import (
	"net/mail"
	"strings"
	"time"

	"servicehub/models"
)

// applyUpdate merges the fields relevant to the session's kind.
func applyUpdate(s *models.BookingSession, u models.SessionUpdate) {
	switch s.Kind {
	case models.CategoryHotel:
		setStr(&s.Hotel.CheckIn, u.CheckIn)
		setStr(&s.Hotel.CheckOut, u.CheckOut)
		setInt(&s.Hotel.Guests, u.Guests)
		setInt(&s.Hotel.Rooms, u.Rooms)
	case models.CategoryCleaning:
		setStr(&s.Cleaning.Date, u.Date)
		setStr(&s.Cleaning.StartTime, u.StartTime)
		setStr(&s.Cleaning.Address, u.Address)
		if u.Hours != nil {
			s.Cleaning.Hours = *u.Hours
		}
	case models.CategoryCab:
		setStr(&s.Ride.Pickup, u.Pickup)
		setStr(&s.Ride.Dropoff, u.Dropoff)
		setInt(&s.Ride.Passengers, u.Passengers)
		if u.PickupTime != nil {
			s.Ride.PickupTime = u.PickupTime.UTC()
		}
		if u.DistanceKm != nil {
			s.Ride.DistanceKm = *u.DistanceKm
		}
	}
	setStr(&s.Contact.Name, u.Name)
	setStr(&s.Contact.Email, u.Email)
	setStr(&s.Contact.Phone, u.Phone)
	setStr(&s.Contact.SpecialRequests, u.SpecialRequests)
	s.Contact.Email = strings.ToLower(s.Contact.Email)
}

func setStr(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// checkStep validates the requirements of one wizard step.
func checkStep(step string, s *models.BookingSession, l *models.Listing, now time.Time) error {
	switch step {
	case models.StepDates:
		return checkDates(s.Hotel, now)
	case models.StepGuests:
		return checkGuests(s.Hotel, l.Hotel)
	case models.StepSchedule:
		return checkSchedule(s.Cleaning, now)
	case models.StepRoute:
		return checkRoute(s.Ride, l.Cab, now)
	case models.StepDetails:
		return checkContact(s.Contact)
	}
	return nil
}

func checkDates(h *models.HotelStay, now time.Time) error {
	if _, err := Nights(h.CheckIn, h.CheckOut); err != nil {
		return err
	}
	if h.CheckIn < now.Format(models.DateLayout) {
		return ErrPastDate
	}
	return nil
}

func checkGuests(h *models.HotelStay, d *models.HotelDetails) error {
	if h.Guests < 1 || h.Rooms < 1 {
		return ErrGuests
	}
	if h.Rooms > d.Rooms {
		return ErrRoomsExceeded
	}
	if h.Guests > h.Rooms*d.MaxGuestsPerRoom {
		return ErrCapacity
	}
	return nil
}

func checkSchedule(c *models.CleaningVisit, now time.Time) error {
	if c.Date == "" || c.StartTime == "" || c.Hours <= 0 || c.Address == "" {
		return ErrMissingSchedule
	}
	if _, err := time.Parse(models.DateLayout, c.Date); err != nil {
		return ErrDateFormat
	}
	if _, err := time.Parse("15:04", c.StartTime); err != nil {
		return ErrStartTime
	}
	if c.Date < now.Format(models.DateLayout) {
		return ErrPastDate
	}
	return nil
}

func checkRoute(r *models.RideTrip, cab *models.CabDetails, now time.Time) error {
	if r.Pickup == "" || r.Dropoff == "" || r.PickupTime.IsZero() {
		return ErrMissingRoute
	}
	if !r.PickupTime.After(now) {
		return ErrPickupInPast
	}
	if r.Passengers < 1 || r.Passengers > cab.Seats {
		return ErrPassengers
	}
	if r.DistanceKm < 0 {
		return ErrDistance
	}
	return nil
}

func checkContact(c models.ContactInfo) error {
	if c.Name == "" || c.Email == "" {
		return ErrMissingContact
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return ErrContactEmail
	}
	return nil
}

// refreshQuote recomputes nights and the quote from the current session data.
// Incomplete data yields a zero quote.
func refreshQuote(s *models.BookingSession, l *models.Listing, st *models.Settings) {
	if s.Hotel != nil {
		nights, err := Nights(s.Hotel.CheckIn, s.Hotel.CheckOut)
		if err != nil {
			nights = 0
		}
		s.Hotel.Nights = nights
	}
	amount := Price(Subtotal(l, s.Hotel, s.Cleaning, s.Ride), currencyOf(l, st), st)
	s.Quote = &amount
}

func currencyOf(l *models.Listing, st *models.Settings) string {
	if l.Currency != "" {
		return l.Currency
	}
	return st.Currency
}

func stepIndex(kind, step string) int {
	for i, s := range models.WizardSteps[kind] {
		if s == step {
			return i
		}
	}
	return -1
}
