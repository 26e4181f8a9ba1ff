package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/bookhive-app/bookhive-golang/internal/handlers"
	"github.com/bookhive-app/bookhive-golang/internal/middleware"
)

// SetupRouter wires every endpoint onto a gin engine. The allowOrigin is the
// mobile app's dev server origin; "*" opens it up for local testing.
func SetupRouter(h *handlers.Handlers, allowOrigin string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if allowOrigin == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = []string{allowOrigin}
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	v1 := router.Group("/v1")
	{
		// --- Ping Route (Public) ---
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Auth Routes (Public) ---
		v1.POST("/register", h.Register)
		v1.POST("/login", h.Login)

		// --- Public Catalog Routes ---
		v1.GET("/books", h.GetBooks)
		v1.GET("/books/:id", h.GetBook)

		// --- Protected Routes (Login Required) ---
		auth := v1.Group("/")
		auth.Use(middleware.AuthMiddleware(h.Tokens))
		{
			// --- Profile Routes ---
			auth.GET("/profile/me", h.GetProfile)
			auth.PATCH("/profile/me", h.UpdateProfile)

			// --- Cart Routes ---
			auth.GET("/cart", h.GetCart)
			auth.POST("/cart/items", h.AddToCart)
			auth.PATCH("/cart/items/:id", h.UpdateCartQuantity)
			auth.DELETE("/cart/items/:id", h.RemoveCartItem)

			// --- Checkout Routes ---
			auth.GET("/checkout/:mode", h.GetCheckout)
			auth.POST("/checkout/:mode/confirm", h.ConfirmCheckout)
			auth.GET("/checkout/qr", h.PaymentQR)

			// --- Delivery Location Routes ---
			auth.GET("/location", h.GetLocation)
			auth.PUT("/location", h.SaveLocation)
			auth.GET("/location/reverse", h.ReverseGeocode)

			// --- Notification Routes ---
			auth.GET("/notifications", h.GetNotifications)

			// --- BookHive Buddy Chat Routes ---
			chat := auth.Group("/chat/sessions")
			{
				chat.GET("/", h.ListChatSessions)
				chat.POST("/", h.CreateChatSession)
				chat.POST("/:id/messages", h.SendChatMessage)
				chat.PATCH("/:id", h.RenameChatSession)
				chat.POST("/:id/archive", h.ArchiveChatSession)
				chat.POST("/:id/unarchive", h.UnarchiveChatSession)
				chat.DELETE("/:id", h.DeleteChatSession)
			}
		}

		// --- Admin-Only Routes ---
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(h.Tokens))
		admin.Use(middleware.AdminMiddleware(h.DB))
		{
			admin.POST("/books", h.CreateBook)
			admin.PUT("/books/:id", h.UpdateBook)
			admin.DELETE("/books/:id", h.DeleteBook)

			admin.POST("/notifications", h.CreateNotification)
		}
	}

	return router
}
