package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"backend_url": "https://api.example.com",
		"analyzer_timeout": "45s",
		"analyzer_retry_step": 2,
		"port": 9000,
		"log_format": "pretty"
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://api.example.com", cfg.BackendURL)
	assert.Equal(t, 45*time.Second, cfg.AnalyzerTimeout.Duration)
	assert.Equal(t, 2*time.Second, cfg.AnalyzerRetryStep.Duration)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "pretty", cfg.LogFormat)
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
backend_url: https://api.example.com
analyzer_url: https://analyze.example.com
backend_timeout: 10s
analyzer_cooldown: 1m
analyzer_max_attempts: 3
log_level: debug
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://analyze.example.com", cfg.AnalyzerURL)
	assert.Equal(t, 10*time.Second, cfg.BackendTimeout.Duration)
	assert.Equal(t, time.Minute, cfg.AnalyzerCooldown.Duration)
	assert.Equal(t, 3, cfg.AnalyzerMaxAttempts)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{ invalid json }`)

	cfg, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_InvalidYAMLDuration(t *testing.T) {
	path := writeFile(t, "config.yml", "backend_timeout: soon\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"RESUME_API_URL":      "https://resume.example.com",
		"ANALYZER_URL":        "https://analyzer.example.com",
		"PORT":                "7000",
		"LOG_LEVEL":           "warn",
		"ANALYZER_RETRY_STEP": "250ms",
		"BACKEND_TIMEOUT":     "5",
	}
	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(func(k string) string { return env[k] }))

	assert.Equal(t, "https://resume.example.com", cfg.BackendURL)
	assert.Equal(t, "https://analyzer.example.com", cfg.AnalyzerURL)
	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 250*time.Millisecond, cfg.AnalyzerRetryStep.Duration)
	assert.Equal(t, 5*time.Second, cfg.BackendTimeout.Duration)
	assert.Equal(t, 90*time.Second, cfg.AnalyzerTimeout.Duration)
}

func TestApplyEnv_Invalid(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(func(k string) string {
		if k == "PORT" {
			return "eighty"
		}
		return ""
	})
	assert.ErrorContains(t, err, "PORT")

	err = cfg.ApplyEnv(func(k string) string {
		if k == "ANALYZER_TIMEOUT" {
			return "forever"
		}
		return ""
	})
	assert.ErrorContains(t, err, "ANALYZER_TIMEOUT")
}

func TestLoad_LayersFileDefaultsAndEnv(t *testing.T) {
	path := writeFile(t, "config.yaml", "analyzer_url: https://from-file.example.com\nport: 9100\n")
	t.Setenv("PORT", "9200")
	t.Setenv("RESUME_API_URL", "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://from-file.example.com", cfg.AnalyzerURL)
	assert.Equal(t, Default().BackendURL, cfg.BackendURL)
	assert.Equal(t, 9200, cfg.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "relative backend url", mutate: func(c *Config) { c.BackendURL = "/api" }, wantErr: "backend_url"},
		{name: "analyzer url without host", mutate: func(c *Config) { c.AnalyzerURL = "http://" }, wantErr: "analyzer_url"},
		{name: "port out of range", mutate: func(c *Config) { c.Port = 70000 }, wantErr: "port"},
		{name: "negative timeout", mutate: func(c *Config) { c.BackendTimeout = Seconds(-1) }, wantErr: "timeouts"},
		{name: "unknown log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: "log_format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{AnalyzerURL: "https://mine.example.com", AnalyzerRetryStep: Seconds(3)}
	merged := cfg.MergeWithDefaults(Default())

	assert.Equal(t, "https://mine.example.com", merged.AnalyzerURL)
	assert.Equal(t, 3*time.Second, merged.AnalyzerRetryStep.Duration)
	assert.Equal(t, Default().BackendURL, merged.BackendURL)
	assert.Equal(t, 2, merged.AnalyzerMaxAttempts)
	assert.Equal(t, "", cfg.BackendURL, "receiver is not modified")
}
