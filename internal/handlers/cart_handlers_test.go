package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhive-app/bookhive-golang/internal/cart"
	"github.com/bookhive-app/bookhive-golang/internal/models"
)

// memCartStore is an in-memory cart.Store for handler tests.
type memCartStore struct {
	items  []models.CartItem
	nextID int
	broken bool
}

func (m *memCartStore) List(_ context.Context, userID int64) ([]models.CartItem, error) {
	if m.broken {
		return nil, cart.ErrStoreUnavailable
	}
	var out []models.CartItem
	for _, item := range m.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *memCartStore) Add(_ context.Context, userID int64, snap models.BookSnapshot, mode models.Mode) (string, error) {
	m.nextID++
	item := models.CartItem{
		ID:       "item-" + strconv.Itoa(m.nextID),
		UserID:   userID,
		Title:    snap.Title,
		Author:   snap.Author,
		ImageURL: snap.ImageURL,
		Price:    snap.Price,
		Rent:     snap.Rent,
		Mode:     mode,
		Genre:    snap.Genre,
		Quantity: 1,
	}
	m.items = append(m.items, item)
	return item.ID, nil
}

func (m *memCartStore) UpdateQuantity(_ context.Context, userID int64, id string, delta int) error {
	for i, item := range m.items {
		if item.ID == id && item.UserID == userID {
			if item.Quantity+delta >= 1 {
				m.items[i].Quantity += delta
			}
			return nil
		}
	}
	return cart.ErrItemNotFound
}

func (m *memCartStore) Remove(_ context.Context, userID int64, id string) error {
	for i, item := range m.items {
		if item.ID == id && item.UserID == userID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return nil
}

const testUserID int64 = 42

func newCartRouter(store cart.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := &Handlers{Cart: store, Log: zerolog.Nop()}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", testUserID)
		c.Next()
	})
	r.GET("/v1/cart", h.GetCart)
	r.PATCH("/v1/cart/items/:id", h.UpdateCartQuantity)
	r.DELETE("/v1/cart/items/:id", h.RemoveCartItem)
	return r
}

func seedItem(store *memCartStore, price, rent int64, qty int) models.CartItem {
	id, _ := store.Add(context.Background(), testUserID, models.BookSnapshot{
		Title: "Seeded",
		Price: decimal.NewFromInt(price),
		Rent:  decimal.NewFromInt(rent),
	}, models.ModeBuy)
	store.items[len(store.items)-1].Quantity = qty
	for i := range store.items {
		if store.items[i].ID == id {
			return store.items[i]
		}
	}
	return models.CartItem{}
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetCartReturnsSnapshotWithTotals(t *testing.T) {
	store := &memCartStore{}
	seedItem(store, 399, 150, 1)
	seedItem(store, 199, 80, 3)
	r := newCartRouter(store)

	w := doRequest(t, r, http.MethodGet, "/v1/cart", "")
	require.Equal(t, http.StatusOK, w.Code)

	var res CartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Len(t, res.Items, 2)
	assert.Equal(t, "996", res.Totals.TotalBuyAmount.String())
}

func TestGetCartEmptyIsZeroTotalsNotError(t *testing.T) {
	r := newCartRouter(&memCartStore{})

	w := doRequest(t, r, http.MethodGet, "/v1/cart", "")
	require.Equal(t, http.StatusOK, w.Code)

	var res CartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Empty(t, res.Items)
	assert.True(t, res.Totals.TotalBuyAmount.IsZero())
	assert.True(t, res.Totals.DepositAmount.IsZero())
}

func TestGetCartStoreDownIs503(t *testing.T) {
	r := newCartRouter(&memCartStore{broken: true})

	w := doRequest(t, r, http.MethodGet, "/v1/cart", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "Cart is currently unavailable")
}

func TestUpdateQuantityRespondsWithFreshSnapshot(t *testing.T) {
	store := &memCartStore{}
	item := seedItem(store, 250, 100, 2)
	r := newCartRouter(store)

	w := doRequest(t, r, http.MethodPatch, "/v1/cart/items/"+item.ID, `{"delta": 1}`)
	require.Equal(t, http.StatusOK, w.Code)

	var res CartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res.Items, 1)
	assert.Equal(t, 3, res.Items[0].Quantity)
	assert.Equal(t, "750", res.Totals.TotalBuyAmount.String())
}

func TestUpdateQuantityBelowFloorIsNoOp(t *testing.T) {
	store := &memCartStore{}
	item := seedItem(store, 250, 100, 1)
	r := newCartRouter(store)

	w := doRequest(t, r, http.MethodPatch, "/v1/cart/items/"+item.ID, `{"delta": -1}`)
	require.Equal(t, http.StatusOK, w.Code)

	var res CartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res.Items, 1)
	assert.Equal(t, 1, res.Items[0].Quantity)
}

func TestUpdateQuantityMissingItemIs404(t *testing.T) {
	r := newCartRouter(&memCartStore{})

	w := doRequest(t, r, http.MethodPatch, "/v1/cart/items/nope", `{"delta": 1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Item not found in cart")
}

func TestRemoveCartItemTwiceSucceeds(t *testing.T) {
	store := &memCartStore{}
	item := seedItem(store, 250, 100, 1)
	r := newCartRouter(store)

	first := doRequest(t, r, http.MethodDelete, "/v1/cart/items/"+item.ID, "")
	require.Equal(t, http.StatusOK, first.Code)

	// The row is gone; a second delete is still a success.
	second := doRequest(t, r, http.MethodDelete, "/v1/cart/items/"+item.ID, "")
	require.Equal(t, http.StatusOK, second.Code)

	var res CartResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &res))
	assert.Empty(t, res.Items)
}
