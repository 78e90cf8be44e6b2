// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/neomorfeo/bookmart/internal/adapter/otel"
)

// Asset backends.
const (
	AssetBackendFS = "fs"
	AssetBackendS3 = "s3"
)

// MinSecretLength is the shortest accepted SESSION_SECRET, in bytes.
const MinSecretLength = 32

var ErrMissingSecret = errors.New("SESSION_SECRET is required")

type Config struct {
	Port            string
	DatabasePath    string
	SessionSecret   string
	SessionTTL      time.Duration
	SecureCookies   bool
	AssetBackend    string
	AssetDir        string
	AssetBaseURL    string
	AssetBucket     string
	LogLevel        slog.Level
	ShutdownTimeout time.Duration
	OTel            otel.Config
}

// Load reads the configuration from environment variables, applying defaults
// and rejecting invalid values.
func Load() (Config, error) {
	cfg := Config{
		Port:          envOrDefault("PORT", "8080"),
		DatabasePath:  envOrDefault("DATABASE_PATH", "bookmart.db"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		AssetBackend:  envOrDefault("ASSET_BACKEND", AssetBackendFS),
		AssetDir:      envOrDefault("ASSET_DIR", "assets"),
		AssetBaseURL:  os.Getenv("ASSET_BASE_URL"),
		AssetBucket:   os.Getenv("ASSET_BUCKET"),
		OTel:          otel.ConfigFromEnv(),
	}

	// The bucket endpoint is the s3 default; see assets.NewS3Store.
	if cfg.AssetBaseURL == "" && cfg.AssetBackend == AssetBackendFS {
		cfg.AssetBaseURL = "/assets"
	}

	var err error
	if cfg.SessionTTL, err = durationOrDefault("SESSION_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = durationOrDefault("SHUTDOWN_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.SecureCookies, err = boolOrDefault("COOKIE_SECURE", false); err != nil {
		return Config{}, err
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(envOrDefault("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks settings that have no usable default.
func (c Config) Validate() error {
	switch {
	case c.SessionSecret == "":
		return ErrMissingSecret
	case len(c.SessionSecret) < MinSecretLength:
		return fmt.Errorf("SESSION_SECRET must be at least %d bytes", MinSecretLength)
	case c.SessionTTL <= 0:
		return errors.New("SESSION_TTL must be positive")
	}

	switch c.AssetBackend {
	case AssetBackendFS:
	case AssetBackendS3:
		if c.AssetBucket == "" {
			return errors.New("ASSET_BUCKET is required for the s3 asset backend")
		}
	default:
		return fmt.Errorf("unsupported ASSET_BACKEND: %q (use %q or %q)", c.AssetBackend, AssetBackendFS, AssetBackendS3)
	}

	return c.OTel.Validate()
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func durationOrDefault(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func boolOrDefault(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
