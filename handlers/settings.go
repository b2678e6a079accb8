package handlers

import (
	"net/http"

	"servicehub/middleware"
	"servicehub/models"
	"servicehub/services/settings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SettingsHandler struct {
	Settings settings.SettingsService
}

func NewSettingsHandler(svc settings.SettingsService) *SettingsHandler {
	return &SettingsHandler{Settings: svc}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	s, err := h.Settings.GetSettings(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load settings")
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SettingsHandler) Update(c *gin.Context) {
	var req models.Settings
	if err := c.ShouldBindJSON(&req); err != nil {
		badInput(c, err)
		return
	}
	s, err := h.Settings.UpdateSettings(c.Request.Context(), req, c.GetString(middleware.CtxUserID))
	if err != nil {
		respondError(c, err, "Failed to save settings")
		return
	}
	getLogger(c).Info("Settings updated", zap.String("by", s.UpdatedBy), zap.Bool("maintenance", s.MaintenanceMode))
	c.JSON(http.StatusOK, s)
}
