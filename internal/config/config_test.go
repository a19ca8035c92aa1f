package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestConfig_IsProduction(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		expected    bool
	}{
		{"production", "production", true},
		{"prod", "prod", true},
		{"development", "development", false},
		{"dev", "dev", false},
		{"staging", "staging", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Environment: tt.environment}
			if got := cfg.IsProduction(); got != tt.expected {
				t.Errorf("IsProduction() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		expected    bool
	}{
		{"development", "development", true},
		{"dev", "dev", true},
		{"empty", "", true},
		{"production", "production", false},
		{"prod", "prod", false},
		{"staging", "staging", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Environment: tt.environment}
			if got := cfg.IsDevelopment(); got != tt.expected {
				t.Errorf("IsDevelopment() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name          string
		config        Config
		wantError     bool
		errorContains string
	}{
		{
			name: "valid_development",
			config: Config{
				BackendAPIURL: "http://localhost:8000/api",
				Environment:   "development",
				TaxRate:       "0.1925",
			},
			wantError: false,
		},
		{
			name: "missing_backend_url",
			config: Config{
				Environment: "development",
				TaxRate:     "0.1925",
			},
			wantError:     true,
			errorContains: "BACKEND_API_URL must be set",
		},
		{
			name: "production_with_localhost_backend",
			config: Config{
				BackendAPIURL: "http://localhost:8000/api",
				Environment:   "production",
				TaxRate:       "0.1925",
			},
			wantError:     true,
			errorContains: "real backend",
		},
		{
			name: "production_with_real_backend",
			config: Config{
				BackendAPIURL: "https://api.example.com",
				Environment:   "production",
				TaxRate:       "0.1925",
			},
			wantError: false,
		},
		{
			name: "garbage_tax_rate",
			config: Config{
				BackendAPIURL: "http://localhost:8000/api",
				Environment:   "development",
				TaxRate:       "nineteen percent",
			},
			wantError:     true,
			errorContains: "TAX_RATE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantError {
				if err == nil {
					t.Fatal("Expected validation error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errorContains) {
					t.Errorf("Error %q does not contain %q", err.Error(), tt.errorContains)
				}
			} else if err != nil {
				t.Errorf("Expected no error, got: %v", err)
			}
		})
	}
}

func TestGetEnv(t *testing.T) {
	os.Setenv("TEST_CONFIG_KEY", "custom")
	defer os.Unsetenv("TEST_CONFIG_KEY")

	if got := getEnv("TEST_CONFIG_KEY", "default"); got != "custom" {
		t.Errorf("getEnv() = %q, want %q", got, "custom")
	}
	if got := getEnv("TEST_CONFIG_MISSING", "default"); got != "default" {
		t.Errorf("getEnv() = %q, want %q", got, "default")
	}
}

func TestGetDuration(t *testing.T) {
	os.Setenv("TEST_CONFIG_DURATION", "250ms")
	os.Setenv("TEST_CONFIG_BAD_DURATION", "soon")
	defer os.Unsetenv("TEST_CONFIG_DURATION")
	defer os.Unsetenv("TEST_CONFIG_BAD_DURATION")

	if got := getDuration("TEST_CONFIG_DURATION", time.Second); got != 250*time.Millisecond {
		t.Errorf("getDuration() = %v, want 250ms", got)
	}
	if got := getDuration("TEST_CONFIG_BAD_DURATION", time.Second); got != time.Second {
		t.Errorf("getDuration() with bad value = %v, want fallback 1s", got)
	}
	if got := getDuration("TEST_CONFIG_NO_DURATION", 3*time.Second); got != 3*time.Second {
		t.Errorf("getDuration() with unset key = %v, want default 3s", got)
	}
}
