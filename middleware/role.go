package middleware

import (
	"net/http"
	"strings"

	"servicehub/models"
	"servicehub/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole lets through users holding one of roles. Superadmins pass any admin check.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles)+1)
	for _, r := range roles {
		allowed[r] = true
	}
	if allowed[models.RoleAdmin] {
		allowed[models.RoleSuperadmin] = true
	}
	return func(c *gin.Context) {
		role := c.GetString(CtxRole)
		if role == "" {
			utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
			return
		}
		if !allowed[role] {
			utils.JSONError(c, http.StatusForbidden, "Access denied", "requires role "+strings.Join(roles, " or "))
			return
		}
		c.Next()
	}
}
