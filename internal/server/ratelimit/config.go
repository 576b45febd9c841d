package ratelimit

import (
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Exact path, or a prefix when it ends in "/"
	Method string        // HTTP method, or AnyMethod
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Environment variables read by LoadConfig.
const (
	EnvEnabled         = "RATE_LIMIT_ENABLED"
	EnvDefaultLimit    = "RATE_LIMIT_DEFAULT_LIMIT"
	EnvDefaultWindow   = "RATE_LIMIT_DEFAULT_WINDOW"
	EnvCleanupInterval = "RATE_LIMIT_CLEANUP_INTERVAL"
	EnvWhitelist       = "RATE_LIMIT_WHITELIST"
	EnvBlacklist       = "RATE_LIMIT_BLACKLIST"
)

// DefaultConfig is the configuration used when nothing is overridden.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Whitelist:       map[string]bool{},
		Blacklist:       map[string]bool{},
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// LoadConfig builds a configuration from DefaultConfig, overridden by the
// RATE_LIMIT_* variables read through getenv. Malformed values are ignored.
func LoadConfig(getenv func(string) string) *Config {
	cfg := DefaultConfig()
	env := envReader(getenv)

	env.boolean(EnvEnabled, &cfg.Enabled)
	if !cfg.Enabled {
		return &Config{Enabled: false}
	}
	env.integer(EnvDefaultLimit, &cfg.DefaultLimit)
	env.duration(EnvDefaultWindow, &cfg.DefaultWindow)
	env.duration(EnvCleanupInterval, &cfg.CleanupInterval)
	cfg.Whitelist = parseIPList(getenv(EnvWhitelist))
	cfg.Blacklist = parseIPList(getenv(EnvBlacklist))
	return cfg
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Calls that spend credits on the remote services
		{Path: "/v1/analyze", Method: "POST", Limit: 10, Window: time.Minute, Burst: 3},
		{Path: "/v1/resumes/generate", Method: "POST", Limit: 10, Window: time.Minute, Burst: 3},

		// Writes
		{Path: "/v1/resumes", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/v1/resumes/", Method: "PUT", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/v1/resumes/", Method: "DELETE", Limit: 60, Window: time.Minute, Burst: 10},

		// Local transforms and reads use the default limit
	}
}

// envReader overwrites a field only when its variable is set and parses.
type envReader func(string) string

func (r envReader) boolean(key string, dst *bool) {
	if v, err := strconv.ParseBool(r(key)); err == nil {
		*dst = v
	}
}

func (r envReader) integer(key string, dst *int) {
	if v, err := strconv.Atoi(r(key)); err == nil {
		*dst = v
	}
}

func (r envReader) duration(key string, dst *time.Duration) {
	if v, err := time.ParseDuration(r(key)); err == nil {
		*dst = v
	}
}

// parseIPList parses a comma or space separated list of addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.FieldsFunc(list, func(r rune) bool { return r == ',' || r == ' ' }) {
		result[ip] = true
	}
	return result
}
