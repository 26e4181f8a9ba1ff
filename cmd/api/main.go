package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/bookhive-app/bookhive-golang/internal/ai"
	"github.com/bookhive-app/bookhive-golang/internal/auth"
	"github.com/bookhive-app/bookhive-golang/internal/cart"
	"github.com/bookhive-app/bookhive-golang/internal/chat"
	"github.com/bookhive-app/bookhive-golang/internal/config"
	"github.com/bookhive-app/bookhive-golang/internal/database"
	"github.com/bookhive-app/bookhive-golang/internal/geo"
	"github.com/bookhive-app/bookhive-golang/internal/handlers"
	"github.com/bookhive-app/bookhive-golang/internal/logger"
	"github.com/bookhive-app/bookhive-golang/internal/routes"
	"github.com/bookhive-app/bookhive-golang/internal/users"
)

func main() {
	// 0. --- Load Environment Variables (.env) ---
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("bookhive-api", "info")
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.New("bookhive-api", cfg.App.LogLevel)

	// 1. --- Database Connection ---
	db, err := database.Open(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// 2. --- Redis Connection (chat session storage) ---
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	// 3. --- AI Service Initialization (BookHive Buddy) ---
	if cfg.Gemini.APIKey == "" {
		log.Fatal().Msg("BOOKHIVE_GEMINI_API_KEY is not set")
	}
	aiService, err := ai.NewService(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize AI service")
	}
	defer aiService.Close()

	// --- Application Setup ---
	app := &handlers.Handlers{
		DB:        db,
		Cart:      cart.NewSQLStore(db),
		Locations: users.NewLocationStore(db),
		Chats:     chat.NewStore(rdb),
		AI:        aiService,
		Geo:       geo.NewClient(cfg.Geocode.BaseURL),
		Tokens:    auth.NewTokens(cfg.JWT.Secret),
		Payment:   cfg.Payment,
		Log:       log,
	}

	// --- Router Setup ---
	router := routes.SetupRouter(app, cfg.App.AllowOrigin)

	// --- Start Server ---
	log.Info().Str("port", cfg.App.Port).Msg("starting BookHive API server")
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
