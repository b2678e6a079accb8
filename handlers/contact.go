package handlers

import (
	"net/http"

	"servicehub/models"
	"servicehub/services/contact"

	"github.com/gin-gonic/gin"
)

// ContactHandler serves the public contact form and its superadmin inbox.
type ContactHandler struct {
	Contacts contact.ContactService
}

func NewContactHandler(svc contact.ContactService) *ContactHandler {
	return &ContactHandler{Contacts: svc}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var msg models.Contact
	if err := c.ShouldBindJSON(&msg); err != nil {
		badInput(c, err)
		return
	}
	saved, err := h.Contacts.Submit(c.Request.Context(), msg)
	if err != nil {
		respondError(c, err, "Failed to send message")
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (h *ContactHandler) List(c *gin.Context) {
	out, err := h.Contacts.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err, "Failed to list messages")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *ContactHandler) SetStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badInput(c, err)
		return
	}
	msg, err := h.Contacts.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err, "Failed to update message")
		return
	}
	c.JSON(http.StatusOK, msg)
}

func (h *ContactHandler) Delete(c *gin.Context) {
	if err := h.Contacts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete message")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message deleted"})
}
