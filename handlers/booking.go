package handlers

import (
	"net/http"

	"servicehub/middleware"
	"servicehub/models"
	"servicehub/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the booking wizards, bookings and their payment.
type BookingHandler struct {
	Wizard   booking.WizardService
	Bookings booking.BookingService
}

func NewBookingHandler(wizard booking.WizardService, bookings booking.BookingService) *BookingHandler {
	return &BookingHandler{Wizard: wizard, Bookings: bookings}
}

// StartSession opens a wizard for the given listing.
func (h *BookingHandler) StartSession(c *gin.Context) {
	var input struct {
		ListingID string `json:"listingId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badInput(c, err)
		return
	}
	session, err := h.Wizard.StartSession(c.Request.Context(), middleware.ActorFrom(c), input.ListingID)
	if err != nil {
		respondError(c, err, "Failed to start booking session")
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (h *BookingHandler) GetSession(c *gin.Context) {
	session, err := h.Wizard.GetSession(c.Request.Context(), middleware.ActorFrom(c), c.Param("sessionID"))
	if err != nil {
		respondError(c, err, "Failed to get booking session")
		return
	}
	c.JSON(http.StatusOK, session)
}

// UpdateSession merges step data and returns the refreshed quote.
func (h *BookingHandler) UpdateSession(c *gin.Context) {
	var update models.SessionUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		badInput(c, err)
		return
	}
	session, err := h.Wizard.UpdateSession(c.Request.Context(), middleware.ActorFrom(c), c.Param("sessionID"), update)
	if err != nil {
		respondError(c, err, "Failed to update booking session")
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *BookingHandler) NextStep(c *gin.Context) {
	session, err := h.Wizard.NextStep(c.Request.Context(), middleware.ActorFrom(c), c.Param("sessionID"))
	if err != nil {
		respondError(c, err, "Cannot continue to the next step")
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *BookingHandler) PreviousStep(c *gin.Context) {
	session, err := h.Wizard.PreviousStep(c.Request.Context(), middleware.ActorFrom(c), c.Param("sessionID"))
	if err != nil {
		respondError(c, err, "Cannot go back")
		return
	}
	c.JSON(http.StatusOK, session)
}

// ConfirmSession turns a completed wizard into a pending booking.
func (h *BookingHandler) ConfirmSession(c *gin.Context) {
	b, err := h.Wizard.ConfirmSession(c.Request.Context(), middleware.ActorFrom(c), c.Param("sessionID"))
	if err != nil {
		respondError(c, err, "Failed to confirm booking")
		return
	}
	getLogger(c).Info("Booking created", zap.String("id", b.ID), zap.String("reference", b.Reference))
	c.JSON(http.StatusCreated, b)
}

func (h *BookingHandler) CancelSession(c *gin.Context) {
	if err := h.Wizard.CancelSession(c.Request.Context(), middleware.ActorFrom(c), c.Param("sessionID")); err != nil {
		respondError(c, err, "Failed to cancel booking session")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking session cancelled"})
}

// BookRide books a cab in one request.
func (h *BookingHandler) BookRide(c *gin.Context) {
	var req models.RideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badInput(c, err)
		return
	}
	b, err := h.Bookings.BookRide(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		respondError(c, err, "Failed to book ride")
		return
	}
	getLogger(c).Info("Ride booked", zap.String("id", b.ID), zap.String("reference", b.Reference))
	c.JSON(http.StatusCreated, b)
}

func (h *BookingHandler) ListMine(c *gin.Context) {
	out, err := h.Bookings.ListMyBookings(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		respondError(c, err, "Failed to list bookings")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.Bookings.GetBooking(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get booking")
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	b, err := h.Bookings.CancelBooking(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to cancel booking")
		return
	}
	c.JSON(http.StatusOK, b)
}

// Pay starts payment by card or records a cash booking.
func (h *BookingHandler) Pay(c *gin.Context) {
	var req struct {
		Method string `json:"method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badInput(c, err)
		return
	}
	b, err := h.Bookings.Pay(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), req.Method)
	if err != nil {
		respondError(c, err, "Payment failed")
		return
	}
	c.JSON(http.StatusOK, b)
}

// ConfirmPayment re-reads the card payment from the processor.
func (h *BookingHandler) ConfirmPayment(c *gin.Context) {
	b, err := h.Bookings.ConfirmPayment(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to confirm payment")
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListProvider lists the bookings of the caller's provider. Superadmins pass ?providerId=.
func (h *BookingHandler) ListProvider(c *gin.Context) {
	out, err := h.Bookings.ListProviderBookings(c.Request.Context(), middleware.ActorFrom(c), c.Query("providerId"), c.Query("status"))
	if err != nil {
		respondError(c, err, "Failed to list provider bookings")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *BookingHandler) SetStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badInput(c, err)
		return
	}
	b, err := h.Bookings.SetStatus(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err, "Failed to update booking status")
		return
	}
	getLogger(c).Info("Booking status changed", zap.String("id", b.ID), zap.String("status", b.Status))
	c.JSON(http.StatusOK, b)
}
