// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the service endpoints, client tuning and logging settings.
// It can be loaded from a JSON or YAML file; environment variables override
// file values.
type Config struct {
	// Remote services
	BackendURL  string `json:"backend_url,omitempty" yaml:"backend_url"`   // Resume generation/storage service
	AnalyzerURL string `json:"analyzer_url,omitempty" yaml:"analyzer_url"` // Resume analysis service

	// Client tuning
	BackendTimeout      Duration `json:"backend_timeout,omitempty" yaml:"backend_timeout"`
	AnalyzerTimeout     Duration `json:"analyzer_timeout,omitempty" yaml:"analyzer_timeout"`
	AnalyzerRetryStep   Duration `json:"analyzer_retry_step,omitempty" yaml:"analyzer_retry_step"`
	AnalyzerMaxAttempts int      `json:"analyzer_max_attempts,omitempty" yaml:"analyzer_max_attempts"`
	AnalyzerCooldown    Duration `json:"analyzer_cooldown,omitempty" yaml:"analyzer_cooldown"`

	// Server
	Port int `json:"port,omitempty" yaml:"port"`

	// Logging
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level"`   // debug, info, warn, error
	LogFormat string `json:"log_format,omitempty" yaml:"log_format"` // json or pretty
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BackendURL:          "http://localhost:8080",
		AnalyzerURL:         "http://localhost:8000",
		BackendTimeout:      Seconds(30),
		AnalyzerTimeout:     Seconds(90),
		AnalyzerRetryStep:   Duration{1500 * time.Millisecond},
		AnalyzerMaxAttempts: 2,
		AnalyzerCooldown:    Seconds(8),
		Port:                8081,
		LogLevel:            "info",
		LogFormat:           "json",
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Load builds the effective configuration: the file at path (optional),
// then built-in defaults for anything unset, then environment overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	merged := cfg.MergeWithDefaults(Default())
	if err := merged.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// ApplyEnv overrides fields from environment variables read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("RESUME_API_URL"); v != "" {
		c.BackendURL = v
	}
	if v := getenv("ANALYZER_URL"); v != "" {
		c.AnalyzerURL = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := getenv("LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: PORT must be an integer: %w", err)
		}
		c.Port = port
	}

	durations := []struct {
		env    string
		target *Duration
	}{
		{"BACKEND_TIMEOUT", &c.BackendTimeout},
		{"ANALYZER_TIMEOUT", &c.AnalyzerTimeout},
		{"ANALYZER_RETRY_STEP", &c.AnalyzerRetryStep},
		{"ANALYZER_COOLDOWN", &c.AnalyzerCooldown},
	}
	for _, d := range durations {
		v := getenv(d.env)
		if v == "" {
			continue
		}
		parsed, err := ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config error: %s: %w", d.env, err)
		}
		*d.target = parsed
	}
	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	for name, raw := range map[string]string{"backend_url": c.BackendURL, "analyzer_url": c.AnalyzerURL} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config error: '%s' must be an absolute URL, got %q", name, raw)
		}
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.AnalyzerMaxAttempts < 0 {
		return fmt.Errorf("config error: 'analyzer_max_attempts' must be non-negative")
	}
	if c.BackendTimeout.Duration < 0 || c.AnalyzerTimeout.Duration < 0 {
		return fmt.Errorf("config error: timeouts must be positive")
	}
	if c.AnalyzerRetryStep.Duration < 0 || c.AnalyzerCooldown.Duration < 0 {
		return fmt.Errorf("config error: 'analyzer_retry_step' and 'analyzer_cooldown' must be non-negative")
	}

	switch c.LogFormat {
	case "", "json", "pretty":
	default:
		return fmt.Errorf("config error: 'log_format' must be json or pretty, got %q", c.LogFormat)
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.BackendURL == "" {
		result.BackendURL = defaults.BackendURL
	}
	if result.AnalyzerURL == "" {
		result.AnalyzerURL = defaults.AnalyzerURL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	// Numeric fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.AnalyzerMaxAttempts == 0 {
		result.AnalyzerMaxAttempts = defaults.AnalyzerMaxAttempts
	}
	if result.BackendTimeout.Duration == 0 {
		result.BackendTimeout = defaults.BackendTimeout
	}
	if result.AnalyzerTimeout.Duration == 0 {
		result.AnalyzerTimeout = defaults.AnalyzerTimeout
	}
	if result.AnalyzerRetryStep.Duration == 0 {
		result.AnalyzerRetryStep = defaults.AnalyzerRetryStep
	}
	if result.AnalyzerCooldown.Duration == 0 {
		result.AnalyzerCooldown = defaults.AnalyzerCooldown
	}

	return result
}
