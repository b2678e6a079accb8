package handlers

import (
	"net/http"

	"servicehub/middleware"
	"servicehub/models"
	"servicehub/services/auth"
	"servicehub/services/user"
	"servicehub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves identity sync and the caller's own profile.
type AuthHandler struct {
	Users user.UserService
	Authn *middleware.Authenticator
}

func NewAuthHandler(users user.UserService, authn *middleware.Authenticator) *AuthHandler {
	return &AuthHandler{Users: users, Authn: authn}
}

// Sync creates or refreshes the backend user for the verified token.
func (h *AuthHandler) Sync(c *gin.Context) {
	id, ok := c.Get(middleware.CtxIdentity)
	identity, _ := id.(*auth.Identity)
	if !ok || identity == nil {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}
	u, err := h.Users.SyncUser(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err, "Failed to sync user")
		return
	}
	getLogger(c).Info("User synced", zap.String("userId", u.ID), zap.String("role", u.Role))
	c.JSON(http.StatusOK, gin.H{"user": u})
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.Users.GetUserByID(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		respondError(c, err, "Failed to load profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

// UpdateMe changes the caller's display name, phone, photo or FCM token.
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var req models.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badInput(c, err)
		return
	}
	u, err := h.Users.UpdateProfile(c.Request.Context(), c.GetString(middleware.CtxUserID), req)
	if err != nil {
		respondError(c, err, "Failed to update profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

// Logout forgets the cached token so the next request re-verifies it.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Authn.Forget(c.Request.Context(), c.GetString(middleware.CtxTokenHash)); err != nil {
		getLogger(c).Warn("Failed to drop cached token", zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
