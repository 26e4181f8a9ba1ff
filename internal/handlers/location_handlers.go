package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bookhive-app/bookhive-golang/internal/users"
)

//
// --- Delivery Location Handlers ---
//

// GetLocation is the handler for GET /v1/location
func (h *Handlers) GetLocation(c *gin.Context) {
	loc, err := h.Locations.Get(c.Request.Context(), currentUserID(c))
	if err != nil {
		if errors.Is(err, users.ErrNoLocation) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No location found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch location"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"location": loc})
}

// SaveLocationInput holds the delivery location fields the settings screen
// submits, either typed in or pre-filled from a reverse geocode.
type SaveLocationInput struct {
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
	Pincode string `json:"pincode" binding:"required"`
}

// SaveLocation is the handler for PUT /v1/location
func (h *Handlers) SaveLocation(c *gin.Context) {
	var input SaveLocationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.Locations.Save(c.Request.Context(), currentUserID(c), input.City, input.State, input.Pincode)
	if err != nil {
		h.Log.Error().Err(err).Msg("location save failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save location"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Location saved"})
}

// ReverseGeocode is the handler for GET /v1/location/reverse?lat=&lon=
// A provider failure is degraded info, not an error the client should block
// on: the response carries empty fields and a notice instead.
func (h *Handlers) ReverseGeocode(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lon query parameters are required"})
		return
	}

	address, err := h.Geo.Reverse(c.Request.Context(), lat, lon)
	if err != nil {
		h.Log.Warn().Err(err).Msg("reverse geocode failed")
		c.JSON(http.StatusOK, gin.H{
			"address": nil,
			"notice":  "Could not fetch geocode",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"address": address})
}
