package routes

import (
	"time"

	"servicehub/handlers"
	"servicehub/middleware"
	"servicehub/models"
	"servicehub/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Options are the router settings taken from configuration.
type Options struct {
	AllowedOrigins    []string
	MaxRequestsPerMin int
	// TrustedProxies may set X-Forwarded-For. Empty trusts no proxy.
	TrustedProxies []string
}

// listingRoutes binds each catalogue path to its category.
var listingRoutes = []struct {
	path     string
	category string
}{
	{"/api/cab-services", models.CategoryCab},
	{"/api/cleaning", models.CategoryCleaning},
	{"/api/hotels", models.CategoryHotel},
}

// RegisterAuthRoutes registers identity sync and profile endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		// The token is verified but the user may not exist yet.
		api.POST("/sync", hb.Authn.Identify(), hb.Auth.Sync)

		protected := api.Group("")
		protected.Use(hb.Authn.Auth())
		protected.GET("/me", hb.Auth.Me)
		protected.PUT("/me", hb.Auth.UpdateMe)
		protected.POST("/logout", hb.Auth.Logout)
	}
}

// RegisterListingRoutes registers the cab, cleaning and hotel catalogues.
func RegisterListingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	for _, lr := range listingRoutes {
		api := r.Group(lr.path)

		public := api.Group("")
		public.Use(hb.Authn.OptionalAuth())
		public.GET("", hb.Listings.List(lr.category))
		public.GET("/:id", hb.Listings.Get(lr.category))

		admin := api.Group("")
		admin.Use(hb.Authn.Auth(), middleware.RequireRole(models.RoleAdmin))
		admin.POST("", hb.Listings.Create(lr.category))
		admin.PUT("/:id", hb.Listings.Update(lr.category))
		admin.DELETE("/:id", hb.Listings.Delete(lr.category))
	}
}

// RegisterProviderRoutes registers provider management endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/providers")
	{
		public := api.Group("")
		public.Use(hb.Authn.OptionalAuth())
		public.GET("", hb.Providers.List)
		public.GET("/:id", hb.Providers.Get)

		admin := api.Group("")
		admin.Use(hb.Authn.Auth(), middleware.RequireRole(models.RoleAdmin))
		admin.PUT("/:id", hb.Providers.Update)

		super := api.Group("")
		super.Use(hb.Authn.Auth(), middleware.RequireRole(models.RoleSuperadmin))
		super.POST("", hb.Providers.Create)
		super.DELETE("/:id", hb.Providers.Delete)
		super.POST("/:id/admins", hb.Providers.LinkAdmin)
		super.DELETE("/:id/admins/:userId", hb.Providers.UnlinkAdmin)
	}
}

// RegisterSuperadminRoutes registers user management and statistics.
func RegisterSuperadminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/superadmin")
	{
		api.Use(hb.Authn.Auth(), middleware.RequireRole(models.RoleSuperadmin))
		api.GET("/users", hb.Superadmin.ListUsers)
		api.PUT("/users/:id/role", hb.Superadmin.SetRole)
		api.PUT("/users/:id/disable", hb.Superadmin.SetDisabled)
		api.DELETE("/users/:id", hb.Superadmin.DeleteUser)
		api.GET("/stats", hb.Superadmin.Stats)
	}
}

// RegisterBookingRoutes sets up the booking wizards, bookings and payment.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	guard := []gin.HandlerFunc{hb.Authn.Auth(), middleware.Maintenance(hb.SettingsSvc)}

	r.POST("/api/book-ride", append(guard, hb.Bookings.BookRide)...)

	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.Use(guard...)
		bookingGroup.POST("/sessions", hb.Bookings.StartSession)
		bookingGroup.GET("/sessions/:sessionID", hb.Bookings.GetSession)
		bookingGroup.PUT("/sessions/:sessionID", hb.Bookings.UpdateSession)
		bookingGroup.POST("/sessions/:sessionID/next", hb.Bookings.NextStep)
		bookingGroup.POST("/sessions/:sessionID/back", hb.Bookings.PreviousStep)
		bookingGroup.POST("/sessions/:sessionID/confirm", hb.Bookings.ConfirmSession)
		bookingGroup.DELETE("/sessions/:sessionID", hb.Bookings.CancelSession)

		bookingGroup.GET("", hb.Bookings.ListMine)
		bookingGroup.GET("/:id", hb.Bookings.Get)
		bookingGroup.POST("/:id/cancel", hb.Bookings.Cancel)
		bookingGroup.POST("/:id/pay", hb.Bookings.Pay)
		bookingGroup.POST("/:id/pay/confirm", hb.Bookings.ConfirmPayment)
	}

	adminGroup := r.Group("/api/admin/bookings")
	{
		adminGroup.Use(hb.Authn.Auth(), middleware.RequireRole(models.RoleAdmin), middleware.Maintenance(hb.SettingsSvc))
		adminGroup.GET("", hb.Bookings.ListProvider)
		adminGroup.PUT("/:id/status", hb.Bookings.SetStatus)
	}
}

// RegisterContactRoutes registers the contact form and its inbox.
func RegisterContactRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/contacts")
	{
		api.POST("", hb.Contacts.Submit)

		inbox := api.Group("")
		inbox.Use(hb.Authn.Auth(), middleware.RequireRole(models.RoleSuperadmin))
		inbox.GET("", hb.Contacts.List)
		inbox.PUT("/:id/status", hb.Contacts.SetStatus)
		inbox.DELETE("/:id", hb.Contacts.Delete)
	}
}

// RegisterSettingsRoutes registers platform settings.
func RegisterSettingsRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/settings")
	{
		api.GET("", hb.Settings.Get)
		api.PUT("", hb.Authn.Auth(), middleware.RequireRole(models.RoleSuperadmin), hb.Settings.Update)
	}
}

// RegisterHealthRoute registers health-check and metrics endpoints.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, opts Options, logger *zap.Logger) {
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		logger.Warn("Invalid trusted proxies, trusting none", zap.Strings("proxies", opts.TrustedProxies), zap.Error(err))
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(cors.New(corsConfig(opts.AllowedOrigins)))
	r.Use(utils.ErrorHandler(), utils.RequestLogger(logger), utils.MetricsMiddleware())
	r.Use(middleware.RateLimitMiddleware(opts.MaxRequestsPerMin))

	RegisterHealthRoute(r, hb)
	RegisterAuthRoutes(r, hb)
	RegisterListingRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterSuperadminRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterContactRoutes(r, hb)
	RegisterSettingsRoutes(r, hb)
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
