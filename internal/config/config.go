// Package config loads server settings from the environment.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mmynk/splitmonth/internal/auth"
	"github.com/mmynk/splitmonth/internal/models"
	"github.com/mmynk/splitmonth/pkg/logging"
)

// Config holds the server settings.
type Config struct {
	Port       int
	DBPath     string
	StaticPath string
	JWTSecret  string
	TokenTTL   time.Duration
	LogLevel   slog.Level

	// AdminEmails are made service admins at startup and at signup.
	AdminEmails []string

	// EphemeralSecret is set when JWT_SECRET was empty and a random secret
	// was generated. Tokens then stop working on restart.
	EphemeralSecret bool
}

// Load reads the configuration from environment variables, applying defaults.
func Load() (*Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Port:       8080,
		DBPath:     getEnv(getenv, "DB_PATH", "./data/splitmonth.db"),
		StaticPath: getEnv(getenv, "STATIC_PATH", "../frontend/static"),
		JWTSecret:  getenv("JWT_SECRET"),
		TokenTTL:   auth.DefaultTokenDuration,
		LogLevel:   logging.ParseLevel(getenv("LOG_LEVEL")),
	}

	for _, email := range strings.Split(getenv("ADMIN_EMAILS"), ",") {
		if email = models.NormalizeEmail(email); email != "" {
			cfg.AdminEmails = append(cfg.AdminEmails, email)
		}
	}

	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return nil, fmt.Errorf("invalid PORT %q", v)
		}
		cfg.Port = port
	}

	if v := getenv("TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_TTL %q: %w", v, err)
		}
		if ttl <= 0 {
			return nil, fmt.Errorf("invalid TOKEN_TTL %q: must be positive", v)
		}
		cfg.TokenTTL = ttl
	}

	if cfg.JWTSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		cfg.JWTSecret = secret
		cfg.EphemeralSecret = true
	}

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnv(getenv func(string) string, key, fallback string) string {
	if value := getenv(key); value != "" {
		return value
	}
	return fallback
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate JWT secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
