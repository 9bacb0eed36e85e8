package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/restobook/restobook/internal/core/domain"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// VATRate is the fraction applied to order totals (0.16 = 16%).
	VATRate decimal.Decimal

	// AccountRoles maps ledger roles to concrete account ids. Unset roles
	// fall back to their role key literal via Normalized().
	AccountRoles domain.AccountRoleMap

	// Cron schedules for the back-office jobs.
	LowStockSchedule     string
	SalesSummarySchedule string

	// External OAuth provider for back-office sign-in.
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

// LoadConfig loads configuration from environment variables and a .env file
// if present. Environment variables win over .env values.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "12h")
	viper.SetDefault("JWT_ISSUER", "restobook")
	viper.SetDefault("VAT_RATE", "0.16")
	viper.SetDefault("ACCOUNT_CASH", "")
	viper.SetDefault("ACCOUNT_BANK", "")
	viper.SetDefault("ACCOUNT_SALES", "")
	viper.SetDefault("ACCOUNT_VAT_OUTPUT", "")
	viper.SetDefault("ACCOUNT_AR", "")
	viper.SetDefault("ACCOUNT_AP", "")
	viper.SetDefault("LOW_STOCK_SCHEDULE", "0 6 * * *")
	viper.SetDefault("SALES_SUMMARY_SCHEDULE", "30 23 * * *")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiry, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiry = 12 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiry)
	}
	cfg.JWTExpiryDuration = jwtExpiry
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	vatStr := viper.GetString("VAT_RATE")
	vatRate, err := decimal.NewFromString(vatStr)
	if err != nil || vatRate.IsNegative() {
		return nil, fmt.Errorf("invalid VAT_RATE %q: must be a non-negative decimal", vatStr)
	}
	cfg.VATRate = vatRate

	cfg.AccountRoles = domain.AccountRoleMap{
		Cash:      viper.GetString("ACCOUNT_CASH"),
		Bank:      viper.GetString("ACCOUNT_BANK"),
		Sales:     viper.GetString("ACCOUNT_SALES"),
		VATOutput: viper.GetString("ACCOUNT_VAT_OUTPUT"),
		AR:        viper.GetString("ACCOUNT_AR"),
		AP:        viper.GetString("ACCOUNT_AP"),
	}.Normalized()

	cfg.LowStockSchedule = viper.GetString("LOW_STOCK_SCHEDULE")
	cfg.SalesSummarySchedule = viper.GetString("SALES_SUMMARY_SCHEDULE")

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google sign-in will not function.")
	}

	return cfg, nil
}
