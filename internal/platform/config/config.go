package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// ReversalWindow is how long after posting a journal transaction stays
	// reversible. Zero disables the window check.
	ReversalWindow time.Duration

	// ReconEpsilon is the absolute float-vs-GL delta below which reconciliation
	// treats a variance as rounding noise.
	ReconEpsilon decimal.Decimal
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
	viper.SetDefault("JWT_ISSUER", "branchledger")
	viper.SetDefault("REVERSAL_WINDOW", "720h") // 30 days
	viper.SetDefault("RECON_EPSILON", "0.01")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	jwtExpiry, err := time.ParseDuration(viper.GetString("JWT_EXPIRY_DURATION"))
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRY_DURATION %q, defaulting to 1h\n", viper.GetString("JWT_EXPIRY_DURATION"))
		jwtExpiry = time.Hour
	}
	cfg.JWTExpiryDuration = jwtExpiry

	reversalWindow, err := time.ParseDuration(viper.GetString("REVERSAL_WINDOW"))
	if err != nil {
		log.Printf("Warning: invalid REVERSAL_WINDOW %q, defaulting to 720h\n", viper.GetString("REVERSAL_WINDOW"))
		reversalWindow = 720 * time.Hour
	}
	cfg.ReversalWindow = reversalWindow

	epsilon, err := decimal.NewFromString(viper.GetString("RECON_EPSILON"))
	if err != nil {
		log.Printf("Warning: invalid RECON_EPSILON %q, defaulting to 0.01\n", viper.GetString("RECON_EPSILON"))
		epsilon = decimal.New(1, -2)
	}
	cfg.ReconEpsilon = epsilon

	return cfg, nil
}
