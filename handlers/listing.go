package handlers

import (
	"net/http"
	"strconv"

	"servicehub/middleware"
	"servicehub/models"
	"servicehub/services/listing"
	"servicehub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListingHandler serves the cab, cleaning and hotel catalogues. Each route is
// bound to one category.
type ListingHandler struct {
	Listings listing.ListingService
}

func NewListingHandler(svc listing.ListingService) *ListingHandler {
	return &ListingHandler{Listings: svc}
}

func queryInt(c *gin.Context, key string) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", key+" must be a non-negative integer")
		return 0, false
	}
	return n, true
}

func (h *ListingHandler) List(category string) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, ok := queryInt(c, "limit")
		if !ok {
			return
		}
		offset, ok := queryInt(c, "offset")
		if !ok {
			return
		}
		filter := models.ListingFilter{
			ProviderID: c.Query("providerId"),
			City:       c.Query("city"),
			Query:      c.Query("q"),
			Limit:      limit,
			Offset:     offset,
		}
		all := c.Query("all") == "true"
		out, err := h.Listings.ListListings(c.Request.Context(), middleware.ActorFrom(c), category, filter, all)
		if err != nil {
			respondError(c, err, "Failed to list "+category+" listings")
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func (h *ListingHandler) Get(category string) gin.HandlerFunc {
	return func(c *gin.Context) {
		l, err := h.Listings.GetListing(c.Request.Context(), middleware.ActorFrom(c), category, c.Param("id"))
		if err != nil {
			respondError(c, err, "Failed to get listing")
			return
		}
		c.JSON(http.StatusOK, l)
	}
}

func (h *ListingHandler) Create(category string) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, ok := listingForm(c)
		if !ok {
			return
		}
		l, err := h.Listings.CreateListing(c.Request.Context(), middleware.ActorFrom(c), category, form)
		if err != nil {
			respondError(c, err, "Failed to create listing")
			return
		}
		getLogger(c).Info("Listing created", zap.String("id", l.ID), zap.String("category", category))
		c.JSON(http.StatusCreated, l)
	}
}

func (h *ListingHandler) Update(category string) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, ok := listingForm(c)
		if !ok {
			return
		}
		l, err := h.Listings.UpdateListing(c.Request.Context(), middleware.ActorFrom(c), category, c.Param("id"), form)
		if err != nil {
			respondError(c, err, "Failed to update listing")
			return
		}
		c.JSON(http.StatusOK, l)
	}
}

func (h *ListingHandler) Delete(category string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := h.Listings.DeleteListing(c.Request.Context(), middleware.ActorFrom(c), category, id); err != nil {
			respondError(c, err, "Failed to delete listing")
			return
		}
		getLogger(c).Info("Listing deleted", zap.String("id", id), zap.String("category", category))
		c.JSON(http.StatusOK, gin.H{"message": "Listing deleted"})
	}
}

func listingForm(c *gin.Context) (listing.Form, bool) {
	values, files, err := parseForm(c)
	if err != nil {
		badInput(c, err)
		return listing.Form{}, false
	}
	return listing.Form{Values: values, Images: toUploads(files["images"])}, true
}
