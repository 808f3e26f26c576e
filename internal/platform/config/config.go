package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// JWTSecret validates bearer tokens issued by the diocese identity
	// service; this application never issues tokens itself.
	JWTSecret string

	// OpsTokenHash is the bcrypt hash of the operator token guarding the
	// admin routes (reconciliation, contra audit). Empty disables them.
	OpsTokenHash string

	// AllowNegativeBalance switches overdrawing accounts from a hard
	// rejection to a warning on the write result.
	AllowNegativeBalance bool

	// ReferenceMaxRetries bounds the retries of a reference number claim
	// before surfacing a concurrency conflict.
	ReferenceMaxRetries int

	// ReferencePrefix is the default scope prefix for generated reference
	// numbers when the caller gives none.
	ReferencePrefix string

	PosthogAPIKey string
	PosthogHost   string

	// RateLimit is a limiter format string like "100-M" (100 requests per minute).
	RateLimit string

	JWTExpiryDuration time.Duration
	JWTIssuer         string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "parish-ledger-app")
	viper.SetDefault("OPS_TOKEN_HASH", "")
	viper.SetDefault("ALLOW_NEGATIVE_BALANCE", false)
	viper.SetDefault("REFERENCE_MAX_RETRIES", 3)
	viper.SetDefault("REFERENCE_PREFIX", "TXN")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_HOST", "https://app.posthog.com")
	viper.SetDefault("RATE_LIMIT", "300-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.OpsTokenHash = viper.GetString("OPS_TOKEN_HASH")
	if cfg.OpsTokenHash == "" {
		log.Println("Warning: OPS_TOKEN_HASH not set. Admin routes are disabled.")
	}

	cfg.AllowNegativeBalance = viper.GetBool("ALLOW_NEGATIVE_BALANCE")

	cfg.ReferenceMaxRetries = viper.GetInt("REFERENCE_MAX_RETRIES")
	if cfg.ReferenceMaxRetries <= 0 {
		cfg.ReferenceMaxRetries = 3
	}

	cfg.ReferencePrefix = viper.GetString("REFERENCE_PREFIX")

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PosthogHost = viper.GetString("POSTHOG_HOST")

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
