package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Runtime
	Environment string `json:"environment"`
	LogLevel    string `json:"log_level"`

	// Transport: "stdio" (default) or "http"
	Transport string `json:"transport"`
	HTTPHost  string `json:"http_host"`
	HTTPPort  int    `json:"http_port"`

	// Upstream Discovery API
	DiscoveryBaseURL string `json:"discovery_base_url"`
	APIKey           string `json:"api_key"`
	TimeoutSeconds   int    `json:"timeout_seconds"`
}

func Load() (*Config, error) {
	cfg := &Config{
		Environment:      DefaultEnvironment,
		LogLevel:         DefaultLogLevel,
		Transport:        DefaultTransport,
		HTTPHost:         DefaultHTTPHost,
		HTTPPort:         DefaultHTTPPort,
		DiscoveryBaseURL: DefaultDiscoveryBaseURL,
		TimeoutSeconds:   DefaultTimeoutSeconds,
	}

	// Load from JSON config file if specified
	if path := getEnv("X402_CONFIG", ""); path != "" {
		if err := loadJSON(path, cfg); err != nil {
			return nil, err
		}
	}

	// Environment overrides
	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RequestTimeout bounds each outbound upstream call.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c *Config) validate() error {
	if c.Transport != TransportStdio && c.Transport != TransportHTTP {
		return fmt.Errorf("config: unknown transport %q (want %q or %q)", c.Transport, TransportStdio, TransportHTTP)
	}
	if err := ValidateBaseURL(c.DiscoveryBaseURL); err != nil {
		return err
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("config: timeout_seconds must be positive, got %d", c.TimeoutSeconds)
	}
	return nil
}

// ValidateBaseURL checks that raw can serve as the Discovery API base
// URL. Applied to the env/file value and to the --base-url flag alike.
func ValidateBaseURL(raw string) error {
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return fmt.Errorf("config: discovery base URL must be an http(s) URL, got %q", raw)
	}
	return nil
}

func loadJSON(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, cfg)
}

func applyEnvOverrides(cfg *Config) {
	if v := getEnv("X402_ENV", ""); v != "" {
		cfg.Environment = v
	}
	if v := getEnv("X402_LOG_LEVEL", ""); v != "" {
		cfg.LogLevel = v
	}
	if v := getEnv("X402_TRANSPORT", ""); v != "" {
		cfg.Transport = v
	}
	if v := getEnv("X402_HTTP_HOST", ""); v != "" {
		cfg.HTTPHost = v
	}
	if v := getEnv("X402_HTTP_PORT", ""); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.HTTPPort = p
		}
	}
	if v := getEnv("X402_DISCOVERY_BASE_URL", ""); v != "" {
		cfg.DiscoveryBaseURL = strings.TrimRight(v, "/")
	}
	if v := getEnv("X402_API_KEY", ""); v != "" {
		cfg.APIKey = v
	}
	if v := getEnv("X402_TIMEOUT_SECONDS", ""); v != "" {
		if t, err := strconv.Atoi(v); err == nil {
			cfg.TimeoutSeconds = t
		}
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
