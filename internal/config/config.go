package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	apperrors "github.com/DASatizabal/personal-budget-manager-sub001/internal/errors"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/validator"
)

// Config holds application configuration
type Config struct {
	Env string `validate:"required,oneof=development production test"`

	// Projection
	BankChannel    string  `validate:"channel_code"`
	ForecastMonths int     `validate:"min=1,max=120"`
	HorizonDays    int     `validate:"min=1,max=3650"`
	AsOf           string  `validate:"iso_date"`
	MonthlyExtra   float64 `validate:"min=0"`
	MaxMonths      int     `validate:"min=1,max=1200"`
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env: getEnv("ENV", "development"),

		BankChannel:    getEnv("BANK_CHANNEL", "C"),
		ForecastMonths: getEnvInt("FORECAST_MONTHS", 12),
		HorizonDays:    getEnvInt("HORIZON_DAYS", 90),
		AsOf:           getEnv("AS_OF", ""),
		MonthlyExtra:   getEnvFloat("PAYOFF_MONTHLY_EXTRA", 0),
		MaxMonths:      getEnvInt("PAYOFF_MAX_MONTHS", 360),
	}

	if err := validator.Struct(config); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrConfigInvalid, err)
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// Today returns the as-of date every engine call is anchored to: the AS_OF
// override when set, otherwise the current local calendar day.
func (c *Config) Today() time.Time {
	if c.AsOf != "" {
		if t, err := time.Parse("2006-01-02", c.AsOf); err == nil {
			return t
		}
	}
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Printf("Warning: invalid %s value '%s', falling back to %d\n", key, value, defaultValue)
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Printf("Warning: invalid %s value '%s', falling back to %.2f\n", key, value, defaultValue)
	}
	return defaultValue
}
