package models

import "time"

// Provider types.
const (
	ProviderTypeCleaning = "cleaning"
	ProviderTypeHotel    = "hotel"
	ProviderTypeCab      = "cab"
	ProviderTypeMulti    = "multi"
)

// Provider statuses.
const (
	ProviderStatusActive    = "active"
	ProviderStatusSuspended = "suspended"
)

// Provider is a business (cleaning company, hotel operator, cab fleet) that owns listings.
type Provider struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Type         string    `bson:"type" json:"type"`
	Email        string    `bson:"email" json:"email,omitempty"`
	Phone        string    `bson:"phone" json:"phone,omitempty"`
	Address      string    `bson:"address" json:"address,omitempty"`
	Description  string    `bson:"description" json:"description,omitempty"`
	Logo         *Image    `bson:"logo,omitempty" json:"logo,omitempty"`
	Status       string    `bson:"status" json:"status"`
	AdminUserIDs []string  `bson:"adminUserIds" json:"adminUserIds,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Offers reports whether the provider may own listings of the given category.
func (p Provider) Offers(category string) bool {
	return p.Type == ProviderTypeMulti || p.Type == category
}

// HasAdmin reports whether userID is linked to the provider as an admin.
func (p Provider) HasAdmin(userID string) bool {
	for _, id := range p.AdminUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func ValidProviderType(t string) bool {
	switch t {
	case ProviderTypeCleaning, ProviderTypeHotel, ProviderTypeCab, ProviderTypeMulti:
		return true
	}
	return false
}
