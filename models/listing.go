package models

import "time"

// Listing categories. Each maps to one public REST collection.
const (
	CategoryCab      = "cab"
	CategoryCleaning = "cleaning"
	CategoryHotel    = "hotel"
)

func ValidCategory(c string) bool {
	switch c {
	case CategoryCab, CategoryCleaning, CategoryHotel:
		return true
	}
	return false
}

// Image is a stored picture. PublicID is the storage backend key.
type Image struct {
	PublicID string `bson:"publicId" json:"publicId"`
	URL      string `bson:"url" json:"url"`
}

// Matches reports whether ref names this image by URL or public ID.
func (i Image) Matches(ref string) bool {
	return ref != "" && (ref == i.URL || ref == i.PublicID)
}

// Listing is a bookable service: a cab, a cleaning package or a hotel.
type Listing struct {
	ID          string           `bson:"id" json:"id"`
	Category    string           `bson:"category" json:"category"`
	ProviderID  string           `bson:"providerId" json:"providerId"`
	Name        string           `bson:"name" json:"name"`
	Description string           `bson:"description" json:"description,omitempty"`
	Location    string           `bson:"location" json:"location,omitempty"`
	City        string           `bson:"city" json:"city,omitempty"`
	Price       float64          `bson:"price" json:"price"`
	Currency    string           `bson:"currency" json:"currency"`
	Images      []Image          `bson:"images" json:"images"`
	Active      bool             `bson:"active" json:"active"`
	Rating      float64          `bson:"rating" json:"rating,omitempty"`
	Cab         *CabDetails      `bson:"cab,omitempty" json:"cab,omitempty"`
	Hotel       *HotelDetails    `bson:"hotel,omitempty" json:"hotel,omitempty"`
	Cleaning    *CleaningDetails `bson:"cleaning,omitempty" json:"cleaning,omitempty"`
	CreatedAt   time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time        `bson:"updatedAt" json:"updatedAt"`
}

type CabDetails struct {
	VehicleType string  `bson:"vehicleType" json:"vehicleType"`
	Model       string  `bson:"model" json:"model,omitempty"`
	PlateNumber string  `bson:"plateNumber" json:"plateNumber,omitempty"`
	Seats       int     `bson:"seats" json:"seats"`
	BaseFare    float64 `bson:"baseFare" json:"baseFare"`
	PricePerKm  float64 `bson:"pricePerKm" json:"pricePerKm"`
}

type HotelDetails struct {
	Stars            int      `bson:"stars" json:"stars,omitempty"`
	PricePerNight    float64  `bson:"pricePerNight" json:"pricePerNight"`
	MaxGuestsPerRoom int      `bson:"maxGuestsPerRoom" json:"maxGuestsPerRoom"`
	Rooms            int      `bson:"rooms" json:"rooms"`
	Amenities        []string `bson:"amenities" json:"amenities,omitempty"`
	CheckInTime      string   `bson:"checkInTime" json:"checkInTime,omitempty"`
	CheckOutTime     string   `bson:"checkOutTime" json:"checkOutTime,omitempty"`
}

type CleaningDetails struct {
	PricePerHour float64  `bson:"pricePerHour" json:"pricePerHour"`
	MinHours     float64  `bson:"minHours" json:"minHours"`
	ServiceAreas []string `bson:"serviceAreas" json:"serviceAreas,omitempty"`
	Includes     []string `bson:"includes" json:"includes,omitempty"`
}

// ListingFilter narrows listing queries. Zero values mean "any".
type ListingFilter struct {
	Category   string
	ProviderID string
	City       string
	Query      string
	ActiveOnly bool
	Limit      int
	Offset     int
}
