package listing

import (
	"encoding/json"
	"math"
	"net/url"
	"strconv"
	"strings"

	"servicehub/models"
	"servicehub/utils"
)

// formReader reads typed values out of url.Values, remembering the first parse error.
type formReader struct {
	values url.Values
	err    error
}

func (f *formReader) has(key string) bool {
	_, ok := f.values[key]
	return ok
}

func (f *formReader) str(key string, dst *string) {
	if f.has(key) {
		*dst = strings.TrimSpace(f.values.Get(key))
	}
}

func (f *formReader) num(key string, dst *float64) {
	if !f.has(key) || f.err != nil {
		return
	}
	raw := strings.TrimSpace(f.values.Get(key))
	if raw == "" {
		*dst = 0
		return
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		f.err = utils.BadRequest("%s must be a number", key)
		return
	}
	*dst = v
}

func (f *formReader) whole(key string, dst *int) {
	if !f.has(key) || f.err != nil {
		return
	}
	raw := strings.TrimSpace(f.values.Get(key))
	if raw == "" {
		*dst = 0
		return
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		f.err = utils.BadRequest("%s must be a whole number", key)
		return
	}
	*dst = v
}

func (f *formReader) flag(key string, dst *bool) {
	if !f.has(key) || f.err != nil {
		return
	}
	v, err := strconv.ParseBool(strings.TrimSpace(f.values.Get(key)))
	if err != nil {
		f.err = utils.BadRequest("%s must be true or false", key)
		return
	}
	*dst = v
}

// list accepts a JSON array, repeated fields or a comma-separated string.
func (f *formReader) list(key string, dst *[]string) {
	if !f.has(key) || f.err != nil {
		return
	}
	raw := f.values[key]
	if len(raw) == 1 {
		parsed, err := ParseList(raw[0])
		if err != nil {
			f.err = utils.BadRequest("%s must be a list", key)
			return
		}
		*dst = parsed
		return
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	*dst = out
}

// ParseList parses "a, b" or `["a","b"]` into a trimmed list without empty items.
func ParseList(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	var items []string
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return nil, err
		}
	} else {
		items = strings.Split(raw, ",")
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out, nil
}

// applyForm copies form fields onto l. Absent fields leave l unchanged.
func applyForm(l *models.Listing, values url.Values) error {
	f := &formReader{values: values}

	f.str("name", &l.Name)
	f.str("description", &l.Description)
	f.str("location", &l.Location)
	f.str("city", &l.City)
	f.str("currency", &l.Currency)
	f.num("price", &l.Price)
	f.flag("active", &l.Active)
	l.Currency = strings.ToUpper(l.Currency)

	switch l.Category {
	case models.CategoryCab:
		if l.Cab == nil {
			l.Cab = &models.CabDetails{Seats: 4}
		}
		f.str("vehicleType", &l.Cab.VehicleType)
		f.str("model", &l.Cab.Model)
		f.str("plateNumber", &l.Cab.PlateNumber)
		f.whole("seats", &l.Cab.Seats)
		f.num("baseFare", &l.Cab.BaseFare)
		f.num("pricePerKm", &l.Cab.PricePerKm)
		if !f.has("price") && l.Price == 0 {
			l.Price = l.Cab.BaseFare
		}
	case models.CategoryHotel:
		if l.Hotel == nil {
			l.Hotel = &models.HotelDetails{MaxGuestsPerRoom: 2, Rooms: 1}
		}
		f.whole("stars", &l.Hotel.Stars)
		f.num("pricePerNight", &l.Hotel.PricePerNight)
		f.whole("maxGuestsPerRoom", &l.Hotel.MaxGuestsPerRoom)
		f.whole("rooms", &l.Hotel.Rooms)
		f.list("amenities", &l.Hotel.Amenities)
		f.str("checkInTime", &l.Hotel.CheckInTime)
		f.str("checkOutTime", &l.Hotel.CheckOutTime)
		if !f.has("price") && l.Price == 0 {
			l.Price = l.Hotel.PricePerNight
		}
	case models.CategoryCleaning:
		if l.Cleaning == nil {
			l.Cleaning = &models.CleaningDetails{MinHours: 1}
		}
		f.num("pricePerHour", &l.Cleaning.PricePerHour)
		f.num("minHours", &l.Cleaning.MinHours)
		f.list("serviceAreas", &l.Cleaning.ServiceAreas)
		f.list("includes", &l.Cleaning.Includes)
		if !f.has("price") && l.Price == 0 {
			l.Price = l.Cleaning.PricePerHour
		}
	}
	return f.err
}

func validateListing(l *models.Listing) error {
	if l.Name == "" {
		return utils.BadRequest("name is required")
	}
	if l.Price <= 0 {
		return utils.BadRequest("price must be greater than 0")
	}
	if len(l.Currency) != 3 {
		return utils.BadRequest("currency must be a 3-letter ISO code")
	}
	switch l.Category {
	case models.CategoryCab:
		if l.Cab.VehicleType == "" {
			return utils.BadRequest("vehicleType is required")
		}
		if l.Cab.Seats < 1 {
			return utils.BadRequest("seats must be at least 1")
		}
		if l.Cab.BaseFare < 0 || l.Cab.PricePerKm < 0 {
			return utils.BadRequest("fares cannot be negative")
		}
	case models.CategoryHotel:
		if l.Hotel.PricePerNight <= 0 {
			return utils.BadRequest("pricePerNight must be greater than 0")
		}
		if l.Hotel.Rooms < 1 {
			return utils.BadRequest("rooms must be at least 1")
		}
		if l.Hotel.MaxGuestsPerRoom < 1 {
			return utils.BadRequest("maxGuestsPerRoom must be at least 1")
		}
		if l.Hotel.Stars < 0 || l.Hotel.Stars > 5 {
			return utils.BadRequest("stars must be between 0 and 5")
		}
	case models.CategoryCleaning:
		if l.Cleaning.PricePerHour <= 0 {
			return utils.BadRequest("pricePerHour must be greater than 0")
		}
		if l.Cleaning.MinHours < 0 {
			return utils.BadRequest("minHours cannot be negative")
		}
	}
	return nil
}
