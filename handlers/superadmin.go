package handlers

import (
	"net/http"

	"servicehub/middleware"
	"servicehub/services/admin"
	"servicehub/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SuperadminHandler serves user management and platform statistics.
type SuperadminHandler struct {
	Users user.UserService
	Admin admin.AdminService
}

func NewSuperadminHandler(users user.UserService, adminSvc admin.AdminService) *SuperadminHandler {
	return &SuperadminHandler{Users: users, Admin: adminSvc}
}

func (h *SuperadminHandler) ListUsers(c *gin.Context) {
	out, err := h.Users.ListUsers(c.Request.Context(), c.Query("role"))
	if err != nil {
		respondError(c, err, "Failed to list users")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *SuperadminHandler) SetRole(c *gin.Context) {
	var req struct {
		Role       string `json:"role" binding:"required"`
		ProviderID string `json:"providerId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badInput(c, err)
		return
	}
	u, err := h.Users.SetRole(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("id"), req.Role, req.ProviderID)
	if err != nil {
		respondError(c, err, "Failed to change role")
		return
	}
	getLogger(c).Info("User role changed", zap.String("userId", u.ID), zap.String("role", u.Role))
	c.JSON(http.StatusOK, gin.H{"user": u})
}

func (h *SuperadminHandler) SetDisabled(c *gin.Context) {
	var req struct {
		Disabled *bool `json:"disabled" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badInput(c, err)
		return
	}
	u, err := h.Users.SetDisabled(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("id"), *req.Disabled)
	if err != nil {
		respondError(c, err, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

func (h *SuperadminHandler) DeleteUser(c *gin.Context) {
	if err := h.Users.DeleteUser(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

func (h *SuperadminHandler) Stats(c *gin.Context) {
	stats, err := h.Admin.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load statistics")
		return
	}
	c.JSON(http.StatusOK, stats)
}
