package handlers

import (
	"net/http"

	"servicehub/middleware"
	"servicehub/services/provider"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProviderHandler serves provider CRUD and admin linking.
type ProviderHandler struct {
	Providers provider.ProviderService
}

func NewProviderHandler(svc provider.ProviderService) *ProviderHandler {
	return &ProviderHandler{Providers: svc}
}

func (h *ProviderHandler) List(c *gin.Context) {
	out, err := h.Providers.ListProviders(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		respondError(c, err, "Failed to list providers")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *ProviderHandler) Get(c *gin.Context) {
	p, err := h.Providers.GetProvider(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get provider")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProviderHandler) Create(c *gin.Context) {
	form, ok := providerForm(c)
	if !ok {
		return
	}
	p, err := h.Providers.CreateProvider(c.Request.Context(), middleware.ActorFrom(c), form)
	if err != nil {
		respondError(c, err, "Failed to create provider")
		return
	}
	getLogger(c).Info("Provider created", zap.String("id", p.ID))
	c.JSON(http.StatusCreated, p)
}

func (h *ProviderHandler) Update(c *gin.Context) {
	form, ok := providerForm(c)
	if !ok {
		return
	}
	p, err := h.Providers.UpdateProvider(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), form)
	if err != nil {
		respondError(c, err, "Failed to update provider")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProviderHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.Providers.DeleteProvider(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		respondError(c, err, "Failed to delete provider")
		return
	}
	getLogger(c).Info("Provider deleted", zap.String("id", id))
	c.JSON(http.StatusOK, gin.H{"message": "Provider deleted"})
}

// LinkAdmin makes a user, identified by userId or email, an admin of the provider.
func (h *ProviderHandler) LinkAdmin(c *gin.Context) {
	var req struct {
		UserID string `json:"userId"`
		Email  string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badInput(c, err)
		return
	}
	u, err := h.Providers.LinkAdmin(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), req.UserID, req.Email)
	if err != nil {
		respondError(c, err, "Failed to link admin")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

func (h *ProviderHandler) UnlinkAdmin(c *gin.Context) {
	if err := h.Providers.UnlinkAdmin(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), c.Param("userId")); err != nil {
		respondError(c, err, "Failed to unlink admin")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Admin unlinked"})
}

func providerForm(c *gin.Context) (provider.Form, bool) {
	values, files, err := parseForm(c)
	if err != nil {
		badInput(c, err)
		return provider.Form{}, false
	}
	form := provider.Form{Values: values}
	if logos := files["logo"]; len(logos) > 0 {
		logo := toUpload(logos[0])
		form.Logo = &logo
	}
	return form, true
}
