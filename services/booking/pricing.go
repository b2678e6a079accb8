package booking

import (
	"math"
	"time"

	"servicehub/models"
)

// Nights returns the number of nights between two YYYY-MM-DD dates.
func Nights(checkIn, checkOut string) (int, error) {
	if checkIn == "" || checkOut == "" {
		return 0, ErrMissingDates
	}
	in, err := time.Parse(models.DateLayout, checkIn)
	if err != nil {
		return 0, ErrDateFormat
	}
	out, err := time.Parse(models.DateLayout, checkOut)
	if err != nil {
		return 0, ErrDateFormat
	}
	if !out.After(in) {
		return 0, ErrInvalidDates
	}
	return int(out.Sub(in).Hours() / 24), nil
}

// Subtotal is the price of the booked service before fee and tax.
func Subtotal(l *models.Listing, hotel *models.HotelStay, cleaning *models.CleaningVisit, ride *models.RideTrip) float64 {
	switch l.Category {
	case models.CategoryHotel:
		if l.Hotel == nil || hotel == nil {
			return 0
		}
		return float64(hotel.Nights) * float64(hotel.Rooms) * l.Hotel.PricePerNight
	case models.CategoryCleaning:
		if l.Cleaning == nil || cleaning == nil {
			return 0
		}
		return math.Max(cleaning.Hours, l.Cleaning.MinHours) * l.Cleaning.PricePerHour
	case models.CategoryCab:
		if l.Cab == nil || ride == nil {
			return 0
		}
		return l.Cab.BaseFare + ride.DistanceKm*l.Cab.PricePerKm
	}
	return 0
}

// Price applies the platform fee and tax to subtotal.
func Price(subtotal float64, currency string, s *models.Settings) models.Amount {
	sub := roundCents(subtotal)
	fee := roundCents(subtotal * s.ServiceFeePercent / 100)
	tax := roundCents(subtotal * s.TaxPercent / 100)
	return models.Amount{
		Subtotal:   sub,
		ServiceFee: fee,
		Tax:        tax,
		Total:      roundCents(sub + fee + tax),
		Currency:   currency,
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
