// Package config loads client configuration from an optional YAML file with
// environment variable overrides. Environment always wins.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	envBaseURL  = "PEOPLEOPS_BASE_URL"
	envTimeout  = "PEOPLEOPS_TIMEOUT_SECONDS"
	envRate     = "PEOPLEOPS_RATE_PER_SEC"
	envBurst    = "PEOPLEOPS_RATE_BURST"
	envStateDir = "PEOPLEOPS_STATE_DIR"
	envConfig   = "PEOPLEOPS_CONFIG"
)

// Config carries everything the API client and session store need.
type Config struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	RatePerSec     int    `yaml:"rate_per_sec"`
	RateBurst      int    `yaml:"rate_burst"`
	StateDir       string `yaml:"state_dir"`
}

// Default returns the configuration used when nothing is specified.
func Default() Config {
	return Config{
		BaseURL:        "http://localhost:5000",
		TimeoutSeconds: 15,
		RatePerSec:     20,
		RateBurst:      40,
		StateDir:       defaultStateDir(),
	}
}

// Load resolves configuration: defaults, then the YAML file (explicit path,
// $PEOPLEOPS_CONFIG, or ~/.config/peopleops/config.yaml when present), then
// environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(envConfig)
	}
	if path == "" {
		if candidate := filepath.Join(configHome(), "config.yaml"); fileExists(candidate) {
			path = candidate
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Timeout returns the per-request timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c Config) validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("config: base_url is required")
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("config: base_url must be an http(s) URL, got %q", c.BaseURL)
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("config: timeout_seconds must be positive")
	}
	if c.RatePerSec <= 0 || c.RateBurst <= 0 {
		return fmt.Errorf("config: rate_per_sec and rate_burst must be positive")
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(envBaseURL)); v != "" {
		cfg.BaseURL = v
	}
	if v, ok := intEnv(envTimeout); ok {
		cfg.TimeoutSeconds = v
	}
	if v, ok := intEnv(envRate); ok {
		cfg.RatePerSec = v
	}
	if v, ok := intEnv(envBurst); ok {
		cfg.RateBurst = v
	}
	if v := strings.TrimSpace(os.Getenv(envStateDir)); v != "" {
		cfg.StateDir = v
	}
}

func intEnv(key string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func configHome() string {
	if base, err := os.UserConfigDir(); err == nil {
		return filepath.Join(base, "peopleops")
	}
	return ".peopleops"
}

func defaultStateDir() string {
	if v := strings.TrimSpace(os.Getenv(envStateDir)); v != "" {
		return v
	}
	return configHome()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
