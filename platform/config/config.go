// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTSecret() string
	GetJWTAlgorithm() string
}

// AuthServiceConfig provides settings needed by the auth service.
type AuthServiceConfig interface {
	JWTConfig
	GetAccessTokenTTL() time.Duration
	GetBcryptCost() int
}

// CatalogConfig provides settings for the external movie catalog client.
type CatalogConfig interface {
	GetKinopoiskBaseURL() string
	GetKinopoiskAPIKey() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSOrigins() []string
}

// =============================================================================
// Config struct
// =============================================================================

// Config holds every runtime setting, loaded once at process start.
type Config struct {
	Env              string
	HTTPAddr         string
	DatabaseURL      string
	DatabaseURLTest  string
	JWTSecret        string
	JWTAlgorithm     string
	AccessTokenTTL   time.Duration
	BcryptCost       int
	KinopoiskAPIKey  string
	KinopoiskBaseURL string
	CORSOrigins      []string
}

var supportedAlgorithms = map[string]bool{
	"HS256": true,
	"HS384": true,
	"HS512": true,
}

// Load reads configuration from the environment (a local .env file is honored
// when present). A missing required variable is a startup failure.
func Load() (*Config, error) {
	_ = godotenv.Load()

	ttlMinutes, err := strconv.Atoi(getEnv("ACCESS_TOKEN_EXPIRE_MINUTES", "15"))
	if err != nil || ttlMinutes <= 0 {
		return nil, fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be a positive integer")
	}

	bcryptCost, err := strconv.Atoi(getEnv("BCRYPT_COST", strconv.Itoa(bcrypt.DefaultCost)))
	if err != nil || bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	cfg := &Config{
		Env:              getEnv("APP_ENV", "development"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		DatabaseURLTest:  getEnv("DATABASE_URL_TEST", ""),
		JWTSecret:        getEnv("SECRET_KEY", ""),
		JWTAlgorithm:     getEnv("ALGORITHM", "HS256"),
		AccessTokenTTL:   time.Duration(ttlMinutes) * time.Minute,
		BcryptCost:       bcryptCost,
		KinopoiskAPIKey:  getEnv("KINOPOISK_API_KEY", ""),
		KinopoiskBaseURL: getEnv("KINOPOISK_BASE_URL", "https://kinopoiskapiunofficial.tech"),
		CORSOrigins:      splitCSV(getEnv("CORS_ORIGINS", "")),
	}

	if cfg.GetDatabaseURL() == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("SECRET_KEY is required")
	}
	if cfg.KinopoiskAPIKey == "" {
		return nil, fmt.Errorf("KINOPOISK_API_KEY is required")
	}
	if !supportedAlgorithms[cfg.JWTAlgorithm] {
		return nil, fmt.Errorf("ALGORITHM must be one of HS256, HS384, HS512")
	}

	return cfg, nil
}

// GetDatabaseURL returns the connection string for the active environment.
// Test mode points at the dedicated test database.
func (c *Config) GetDatabaseURL() string {
	if strings.EqualFold(c.Env, "test") {
		return c.DatabaseURLTest
	}
	return c.DatabaseURL
}

func (c *Config) GetJWTSecret() string             { return c.JWTSecret }
func (c *Config) GetJWTAlgorithm() string          { return c.JWTAlgorithm }
func (c *Config) GetAccessTokenTTL() time.Duration { return c.AccessTokenTTL }
func (c *Config) GetBcryptCost() int               { return c.BcryptCost }
func (c *Config) GetKinopoiskBaseURL() string      { return c.KinopoiskBaseURL }
func (c *Config) GetKinopoiskAPIKey() string       { return c.KinopoiskAPIKey }
func (c *Config) GetHTTPAddr() string              { return c.HTTPAddr }
func (c *Config) GetCORSOrigins() []string         { return c.CORSOrigins }

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}
