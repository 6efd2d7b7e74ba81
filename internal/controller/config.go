package controller

import (
	"fmt"
	"strings"
	"time"

	"github.com/jvaz/prdeck/internal/config"
)

// Config carries everything needed to stand up the aggregation stack.
// Hostname, organization, token and user arrive pre-validated from the
// surrounding environment; LoadConfig only checks presence.
type Config struct {
	Hostname      string
	Organization  string
	AccessToken   string
	UserLogin     string
	LogLevel      string
	CacheTTL      time.Duration
	Timeout       time.Duration // per-request bound on upstream calls
	MaxConcurrent int           // in-flight request cap per fan-out level
}

func LoadConfig() (Config, error) {
	cfg := Config{
		Hostname:      config.Hostname(),
		Organization:  config.Organization(),
		AccessToken:   config.AccessToken(),
		UserLogin:     config.UserLogin(),
		LogLevel:      config.LogLevel(),
		MaxConcurrent: config.MaxConcurrent(),
	}

	for key, value := range map[string]string{
		config.KeyHostname:     cfg.Hostname,
		config.KeyOrganization: cfg.Organization,
		config.KeyAccessToken:  cfg.AccessToken,
		config.KeyUserLogin:    cfg.UserLogin,
	} {
		if strings.TrimSpace(value) == "" {
			return Config{}, fmt.Errorf("%s must be set", key)
		}
	}

	ttl, err := parseDuration(config.CacheTTL(), time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", config.KeyCacheTTL, err)
	}
	cfg.CacheTTL = ttl

	timeout, err := parseDuration(config.RequestTimeout(), 30*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", config.KeyRequestTimeout, err)
	}
	cfg.Timeout = timeout

	return cfg, nil
}

func parseDuration(value string, fallback time.Duration) (time.Duration, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback, nil
	}
	return time.ParseDuration(trimmed)
}
