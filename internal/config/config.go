package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Provider ProviderConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// ProviderConfig holds configuration for the exchange-rate provider
// adapters. Tokens are never defaulted in source: a provider that needs
// one stays unconfigured until the operator supplies it, either through
// the environment or through the provider-config API.
type ProviderConfig struct {
	// FetchTimeout bounds every outbound provider request.
	FetchTimeout time.Duration

	// BanxicoToken is the SIE API token for the Bank of Mexico. Optional;
	// when empty here, the value stored (encrypted) in provider_config is
	// used, and with neither set the banxico provider is unavailable.
	BanxicoToken string

	// MindicadorBaseURL overrides the mindicador.cl API endpoint.
	MindicadorBaseURL string

	// BCRPLookbackDays is how many days the Bank of Peru adapter looks
	// back for the most recent published observation. Publication gaps of
	// up to five days have been observed.
	BCRPLookbackDays int

	// FernetKey encrypts provider tokens stored in the database. Required
	// only when tokens are managed through the API rather than the
	// environment.
	FernetKey string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	timeout, err := getEnvSeconds("PROVIDER_FETCH_TIMEOUT_SECONDS", 30)
	if err != nil {
		return nil, err
	}

	lookback, err := getEnvInt("BCRP_LOOKBACK_DAYS", 7)
	if err != nil {
		return nil, err
	}
	if lookback < 1 {
		return nil, fmt.Errorf("BCRP_LOOKBACK_DAYS must be at least 1, got %d", lookback)
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/currency_rates.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Provider: ProviderConfig{
			FetchTimeout:      timeout,
			BanxicoToken:      getEnv("BANXICO_TOKEN", ""),
			MindicadorBaseURL: getEnv("MINDICADOR_BASE_URL", ""),
			BCRPLookbackDays:  lookback,
			FernetKey:         getEnv("FERNET_KEY", ""),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvSeconds(key string, defaultSeconds int) (time.Duration, error) {
	n, err := getEnvInt(key, defaultSeconds)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", key, n)
	}
	return time.Duration(n) * time.Second, nil
}
