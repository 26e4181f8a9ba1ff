package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every BookHive environment variable.
const EnvPrefix = "BOOKHIVE"

// Config holds everything the API and the seed tool read from the
// environment. main() loads a .env file first, so local development only
// needs a flat file next to the binary.
type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	Redis   RedisConfig
	Gemini  GeminiConfig
	Geocode GeocodeConfig
	Payment PaymentConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// LoadDB reads just the database settings, for tools that never serve HTTP.
func LoadDB() (DBConfig, error) {
	var cfg DBConfig
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return DBConfig{}, fmt.Errorf("parsing database config: %w", err)
	}
	return cfg, nil
}

type AppConfig struct {
	Port     string `envconfig:"BOOKHIVE_APP_PORT" default:"8080"`
	LogLevel string `envconfig:"BOOKHIVE_LOG_LEVEL" default:"info"`
	// Origin of the mobile dev client allowed through CORS.
	AllowOrigin string `envconfig:"BOOKHIVE_ALLOW_ORIGIN" default:"http://localhost:8081"`
}

type DBConfig struct {
	DSN          string `envconfig:"BOOKHIVE_DB_DSN" required:"true"`
	MaxOpenConns int    `envconfig:"BOOKHIVE_DB_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns int    `envconfig:"BOOKHIVE_DB_MAX_IDLE_CONNS" default:"25"`
}

type JWTConfig struct {
	Secret string `envconfig:"BOOKHIVE_JWT_SECRET" required:"true"`
}

type RedisConfig struct {
	Addr     string `envconfig:"BOOKHIVE_REDIS_ADDR" default:"127.0.0.1:6379"`
	Password string `envconfig:"BOOKHIVE_REDIS_PASSWORD"`
	DB       int    `envconfig:"BOOKHIVE_REDIS_DB" default:"0"`
}

type GeminiConfig struct {
	APIKey string `envconfig:"BOOKHIVE_GEMINI_API_KEY"`
	Model  string `envconfig:"BOOKHIVE_GEMINI_MODEL" default:"gemini-2.0-flash"`
}

type GeocodeConfig struct {
	// Reverse-geocoding endpoint, Nominatim-compatible JSON API.
	BaseURL string `envconfig:"BOOKHIVE_GEOCODE_BASE_URL" default:"https://nominatim.openstreetmap.org"`
}

type PaymentConfig struct {
	// Static payload encoded into the checkout QR image. The app shows the
	// code and a confirmation button; no payment call happens server-side.
	QRPayload string `envconfig:"BOOKHIVE_PAYMENT_QR_PAYLOAD" default:"upi://pay?pa=bookhive@upi&pn=BookHive"`
}
