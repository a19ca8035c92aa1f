package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port            string
	BackendAPIURL   string
	AuthCookieName  string
	AllowedOrigins  string
	Environment     string // development, staging, production
	TaxRate         string // decimal string, e.g. "0.1925"
	PaymentConfirm  time.Duration
	UpstreamTimeout time.Duration
}

// Load loads configuration from environment variables and validates for production
func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		BackendAPIURL:   getEnv("BACKEND_API_URL", "http://localhost:8000/api"),
		AuthCookieName:  getEnv("AUTH_COOKIE_NAME", "agri_token"),
		AllowedOrigins:  getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		TaxRate:         getEnv("TAX_RATE", "0.1925"),
		PaymentConfirm:  getDuration("PAYMENT_CONFIRM_DELAY", 3*time.Second),
		UpstreamTimeout: getDuration("UPSTREAM_TIMEOUT", 10*time.Second),
	}

	// Validate production configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	return cfg
}

// Validate checks configuration for security and correctness
func (c *Config) Validate() error {
	if c.BackendAPIURL == "" {
		return fmt.Errorf("BACKEND_API_URL must be set")
	}

	if c.IsProduction() {
		if c.BackendAPIURL == "http://localhost:8000/api" {
			return fmt.Errorf("BACKEND_API_URL must point at the real backend in production")
		}

		// Warn about non-HTTPS origins in production
		if c.AllowedOrigins != "" {
			log.Println("WARNING: Ensure ALLOWED_ORIGINS uses HTTPS in production")
		}
	}

	if _, err := strconv.ParseFloat(c.TaxRate, 64); err != nil {
		return fmt.Errorf("TAX_RATE must be a decimal number (got %q)", c.TaxRate)
	}

	return nil
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "dev" || c.Environment == ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("invalid duration for %s: %q, using default %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
