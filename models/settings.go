package models

import "time"

// Settings are the platform-wide knobs edited from the superadmin dashboard.
type Settings struct {
	SiteName             string    `bson:"siteName" json:"siteName"`
	SupportEmail         string    `bson:"supportEmail" json:"supportEmail"`
	SupportPhone         string    `bson:"supportPhone" json:"supportPhone"`
	Currency             string    `bson:"currency" json:"currency"`
	ServiceFeePercent    float64   `bson:"serviceFeePercent" json:"serviceFeePercent"`
	TaxPercent           float64   `bson:"taxPercent" json:"taxPercent"`
	PaymentWindowMinutes int       `bson:"paymentWindowMinutes" json:"paymentWindowMinutes"`
	MaintenanceMode      bool      `bson:"maintenanceMode" json:"maintenanceMode"`
	UpdatedAt            time.Time `bson:"updatedAt" json:"updatedAt"`
	UpdatedBy            string    `bson:"updatedBy" json:"updatedBy,omitempty"`
}

// DefaultSettings are served until a superadmin saves the first document.
func DefaultSettings() Settings {
	return Settings{
		SiteName:             "ServiceHub",
		Currency:             "USD",
		ServiceFeePercent:    0,
		TaxPercent:           0,
		PaymentWindowMinutes: 15,
	}
}
