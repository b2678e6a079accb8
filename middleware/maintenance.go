package middleware

import (
	"net/http"

	"servicehub/models"
	"servicehub/services/settings"
	"servicehub/utils"

	"github.com/gin-gonic/gin"
)

// Maintenance rejects mutating requests from everyone but superadmins while the
// platform is in maintenance mode.
func Maintenance(settingsSvc settings.SettingsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}
		if c.GetString(CtxRole) != models.RoleSuperadmin && settingsSvc.InMaintenance(c.Request.Context()) {
			c.Header("Retry-After", "600")
			utils.JSONError(c, http.StatusServiceUnavailable, "Service under maintenance", "bookings are temporarily disabled")
			return
		}
		c.Next()
	}
}
