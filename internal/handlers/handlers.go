package handlers

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/bookhive-app/bookhive-golang/internal/ai"
	"github.com/bookhive-app/bookhive-golang/internal/auth"
	"github.com/bookhive-app/bookhive-golang/internal/cart"
	"github.com/bookhive-app/bookhive-golang/internal/chat"
	"github.com/bookhive-app/bookhive-golang/internal/config"
	"github.com/bookhive-app/bookhive-golang/internal/geo"
	"github.com/bookhive-app/bookhive-golang/internal/users"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	DB        *sql.DB
	Cart      cart.Store
	Locations *users.LocationStore
	Chats     *chat.Store
	AI        *ai.Service
	Geo       *geo.Client
	Tokens    *auth.Tokens
	Payment   config.PaymentConfig
	Log       zerolog.Logger
}

// currentUserID reads the user ID set by the auth middleware.
func currentUserID(c *gin.Context) int64 {
	raw, _ := c.Get("userID")
	id, _ := raw.(int64)
	return id
}
