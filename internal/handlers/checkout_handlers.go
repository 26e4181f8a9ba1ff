package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookhive-app/bookhive-golang/internal/checkout"
	"github.com/bookhive-app/bookhive-golang/internal/models"
)

//
// --- Checkout Handlers (Buy / Rent) ---
//

func modeFromPath(c *gin.Context) (models.Mode, bool) {
	mode := models.Mode(c.Param("mode"))
	if !mode.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Checkout mode must be 'buy' or 'rent'"})
		return "", false
	}
	return mode, true
}

// GetCheckout is the handler for GET /v1/checkout/:mode
// It runs the flow's Loading state: the delivery location and the aggregated
// cart snapshot are fetched concurrently, and either may fail without
// blocking Ready.
func (h *Handlers) GetCheckout(c *gin.Context) {
	mode, ok := modeFromPath(c)
	if !ok {
		return
	}
	uid := currentUserID(c)

	flow := checkout.NewFlow(mode, h.Cart, h.Locations)
	summary := flow.Load(c.Request.Context(), uid)

	c.JSON(http.StatusOK, gin.H{
		"state":   flow.State(),
		"summary": summary,
		"qrUrl":   "/v1/checkout/qr",
	})
}

// ConfirmCheckout is the handler for POST /v1/checkout/:mode/confirm
// Confirmation is a transient acknowledgment: no payment call happens, the
// flow completes, and the client navigates back to the dashboard.
func (h *Handlers) ConfirmCheckout(c *gin.Context) {
	mode, ok := modeFromPath(c)
	if !ok {
		return
	}
	uid := currentUserID(c)

	flow := checkout.NewFlow(mode, h.Cart, h.Locations)
	flow.Load(c.Request.Context(), uid)

	message, err := flow.Confirm()
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Checkout is not ready to confirm"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"state":    flow.State(),
		"message":  message,
		"redirect": "/Dashboard",
	})
}

// PaymentQR is the handler for GET /v1/checkout/qr
// It serves the static payment QR image both flows display.
func (h *Handlers) PaymentQR(c *gin.Context) {
	png, err := checkout.PaymentQR(h.Payment.QRPayload)
	if err != nil {
		h.Log.Error().Err(err).Msg("payment QR encoding failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render payment QR"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
