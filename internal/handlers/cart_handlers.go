package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookhive-app/bookhive-golang/internal/cart"
	"github.com/bookhive-app/bookhive-golang/internal/models"
)

//
// --- Cart Handlers ---
//
// Every mutation handler re-fetches the full snapshot after the write and
// answers with it, so the client never has to patch local state and the
// totals it shows always correspond to some consistent store snapshot.
//

// CartResponse is the snapshot-plus-aggregates payload every cart endpoint
// returns.
type CartResponse struct {
	Items  []models.CartItem `json:"items"`
	Totals cart.Totals       `json:"totals"`
}

// snapshotResponse lists the cart fresh from the store and computes the
// aggregates from that snapshot.
func (h *Handlers) snapshotResponse(c *gin.Context, uid int64) (CartResponse, bool) {
	items, err := h.Cart.List(c.Request.Context(), uid)
	if err != nil {
		h.Log.Error().Err(err).Int64("user_id", uid).Msg("cart snapshot fetch failed")
		// "Cart unknown", not "cart empty": the client keeps whatever it
		// showed last.
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Cart is currently unavailable"})
		return CartResponse{}, false
	}
	if items == nil {
		items = []models.CartItem{}
	}
	return CartResponse{Items: items, Totals: cart.Aggregate(items)}, true
}

// GetCart is the handler for GET /v1/cart
func (h *Handlers) GetCart(c *gin.Context) {
	uid := currentUserID(c)

	res, ok := h.snapshotResponse(c, uid)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, res)
}

// AddToCartInput defines the JSON for adding a book to the cart.
type AddToCartInput struct {
	BookID string      `json:"bookId" binding:"required"`
	Mode   models.Mode `json:"mode" binding:"required"`
}

// AddToCart is the handler for POST /v1/cart/items
// It snapshots the book's descriptive fields into a new cart row. Adding the
// same book twice creates two rows.
func (h *Handlers) AddToCart(c *gin.Context) {
	uid := currentUserID(c)

	var input AddToCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	if !input.Mode.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mode must be 'buy' or 'rent'"})
		return
	}

	book, err := h.getBookByID(c.Request.Context(), input.BookID)
	if err != nil {
		if errors.Is(err, errBookNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
			return
		}
		h.Log.Error().Err(err).Str("book_id", input.BookID).Msg("book lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up book"})
		return
	}

	id, err := h.Cart.Add(c.Request.Context(), uid, book.Snapshot(), input.Mode)
	if err != nil {
		h.Log.Error().Err(err).Msg("add to cart failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to add item to cart"})
		return
	}

	res, ok := h.snapshotResponse(c, uid)
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"itemId": id,
		"items":  res.Items,
		"totals": res.Totals,
	})
}

// UpdateCartQuantityInput defines the JSON for the +/- quantity controls.
type UpdateCartQuantityInput struct {
	Delta int `json:"delta" binding:"required"`
}

// UpdateCartQuantity is the handler for PATCH /v1/cart/items/:id
// A delta that would push the quantity below 1 is a no-op, mirroring the
// disabled minus button at quantity 1.
func (h *Handlers) UpdateCartQuantity(c *gin.Context) {
	uid := currentUserID(c)
	itemID := c.Param("id")

	var input UpdateCartQuantityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.Cart.UpdateQuantity(c.Request.Context(), uid, itemID, input.Delta)
	if err != nil {
		if errors.Is(err, cart.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in cart"})
			return
		}
		h.Log.Error().Err(err).Str("item_id", itemID).Msg("quantity update failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to update quantity"})
		return
	}

	res, ok := h.snapshotResponse(c, uid)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, res)
}

// RemoveCartItem is the handler for DELETE /v1/cart/items/:id
// Removal is idempotent: deleting an id that is already gone still succeeds,
// so two views racing on the same row never show a spurious failure.
func (h *Handlers) RemoveCartItem(c *gin.Context) {
	uid := currentUserID(c)
	itemID := c.Param("id")

	if err := h.Cart.Remove(c.Request.Context(), uid, itemID); err != nil {
		h.Log.Error().Err(err).Str("item_id", itemID).Msg("cart item removal failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to remove item"})
		return
	}

	res, ok := h.snapshotResponse(c, uid)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, res)
}
