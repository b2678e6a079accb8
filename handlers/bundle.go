package handlers

import (
	"servicehub/middleware"
	"servicehub/services/settings"
)

// HandlerBundle groups all endpoint handlers and the middleware they share.
type HandlerBundle struct {
	Authn       *middleware.Authenticator
	SettingsSvc settings.SettingsService

	Auth       *AuthHandler
	Listings   *ListingHandler
	Providers  *ProviderHandler
	Superadmin *SuperadminHandler
	Bookings   *BookingHandler
	Contacts   *ContactHandler
	Settings   *SettingsHandler
	Health     *HealthHandler
}
