// Package config loads process configuration from the environment once at
// startup. Nothing here is re-read at runtime; in particular the signing
// secret is fixed for the life of the process.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultTokenTTL    = 24 * time.Hour
	defaultPort        = "8080"
	defaultMaxPageSize = 100

	// HS256 wants at least a 256-bit secret.
	minSecretBytes = 32
)

type Config struct {
	DatabaseURL string
	JWTSecret   []byte
	TokenTTL    time.Duration
	Port        string
	MaxPageSize int
	CORSOrigin  string
	BcryptCost  int
}

// Load reads and validates the environment. It returns an error rather than
// exiting so cmd/api can decide how to fail.
func Load() (*Config, error) {
	cfg := &Config{
		TokenTTL:    defaultTokenTTL,
		Port:        defaultPort,
		MaxPageSize: defaultMaxPageSize,
		CORSOrigin:  strings.TrimSpace(os.Getenv("CORS_ORIGIN")),
	}

	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if len(secret) < minSecretBytes {
		return nil, fmt.Errorf("JWT_SECRET must be at least %d bytes", minSecretBytes)
	}
	cfg.JWTSecret = []byte(secret)

	if v := strings.TrimSpace(os.Getenv("TOKEN_TTL")); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl <= 0 {
			return nil, fmt.Errorf("invalid TOKEN_TTL %q", v)
		}
		cfg.TokenTTL = ttl
	}

	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		cfg.Port = v
	}

	if v := strings.TrimSpace(os.Getenv("MAX_PAGE_SIZE")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid MAX_PAGE_SIZE %q", v)
		}
		cfg.MaxPageSize = n
	}

	if v := strings.TrimSpace(os.Getenv("BCRYPT_COST")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid BCRYPT_COST %q", v)
		}
		cfg.BcryptCost = n
	}

	return cfg, nil
}
