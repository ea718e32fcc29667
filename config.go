package agl

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default service endpoints and timeout.
const (
	DefaultAPIBaseURL     = "http://localhost:3000"
	DefaultEmotionURL     = "http://localhost:8000"
	DefaultDialogueURL    = "http://localhost:8001"
	DefaultMemoryURL      = "http://localhost:3002"
	DefaultTimeoutSeconds = 30.0
)

// Config holds everything the SDK consumes at initialization.
type Config struct {
	// APIKey authenticates every request. Required; an empty key leaves the
	// client un-initialized.
	APIKey string

	APIBaseURL         string
	EmotionServiceURL  string
	DialogueServiceURL string
	MemoryServiceURL   string

	// TimeoutSeconds is attached to every dispatched request.
	TimeoutSeconds float64

	// HTTPClient optionally replaces the default transport on all three
	// service clients. Nil means a per-service *http.Client with the
	// configured timeout.
	HTTPClient Doer

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// DefaultConfig returns a Config with the documented endpoint defaults and
// no API key.
func DefaultConfig() Config {
	return Config{
		APIBaseURL:         DefaultAPIBaseURL,
		EmotionServiceURL:  DefaultEmotionURL,
		DialogueServiceURL: DefaultDialogueURL,
		MemoryServiceURL:   DefaultMemoryURL,
		TimeoutSeconds:     DefaultTimeoutSeconds,
		LogLevel:           slog.LevelInfo,
	}
}

// LoadConfig reads configuration from environment variables, falling back to
// the documented defaults.
func LoadConfig() Config {
	return Config{
		APIKey:             os.Getenv("AGL_API_KEY"),
		APIBaseURL:         getEnv("AGL_API_URL", DefaultAPIBaseURL),
		EmotionServiceURL:  getEnv("AGL_EMOTION_URL", DefaultEmotionURL),
		DialogueServiceURL: getEnv("AGL_DIALOGUE_URL", DefaultDialogueURL),
		MemoryServiceURL:   getEnv("AGL_MEMORY_URL", DefaultMemoryURL),
		TimeoutSeconds:     getEnvFloat("AGL_TIMEOUT", DefaultTimeoutSeconds),
		LogFile:            os.Getenv("AGL_LOG_FILE"),
		LogLevel:           parseLogLevel(getEnv("AGL_LOG_LEVEL", "INFO")),
	}
}

// fileConfig is the YAML shape of a config file; empty fields keep defaults.
type fileConfig struct {
	APIKey      string  `yaml:"api_key"`
	APIURL      string  `yaml:"api_url"`
	EmotionURL  string  `yaml:"emotion_url"`
	DialogueURL string  `yaml:"dialogue_url"`
	MemoryURL   string  `yaml:"memory_url"`
	Timeout     float64 `yaml:"timeout"`
	LogFile     string  `yaml:"log_file"`
	LogLevel    string  `yaml:"log_level"`
}

// LoadConfigFile reads a YAML config file layered over the defaults.
// Environment variables take precedence over file values.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	cfg := DefaultConfig()
	if fc.APIKey != "" {
		cfg.APIKey = fc.APIKey
	}
	if fc.APIURL != "" {
		cfg.APIBaseURL = fc.APIURL
	}
	if fc.EmotionURL != "" {
		cfg.EmotionServiceURL = fc.EmotionURL
	}
	if fc.DialogueURL != "" {
		cfg.DialogueServiceURL = fc.DialogueURL
	}
	if fc.MemoryURL != "" {
		cfg.MemoryServiceURL = fc.MemoryURL
	}
	if fc.Timeout > 0 {
		cfg.TimeoutSeconds = fc.Timeout
	}
	if fc.LogFile != "" {
		cfg.LogFile = fc.LogFile
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = parseLogLevel(fc.LogLevel)
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("AGL_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("AGL_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("AGL_EMOTION_URL"); v != "" {
		cfg.EmotionServiceURL = v
	}
	if v := os.Getenv("AGL_DIALOGUE_URL"); v != "" {
		cfg.DialogueServiceURL = v
	}
	if v := os.Getenv("AGL_MEMORY_URL"); v != "" {
		cfg.MemoryServiceURL = v
	}
	if v := os.Getenv("AGL_TIMEOUT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.TimeoutSeconds = f
		}
	}
	if v := os.Getenv("AGL_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("AGL_LOG_LEVEL"); v != "" {
		cfg.LogLevel = parseLogLevel(v)
	}
}

// withDefaults fills zero-valued endpoint and timeout fields so a caller can
// hand New a Config with only the API key set.
func (c Config) withDefaults() Config {
	if c.APIBaseURL == "" {
		c.APIBaseURL = DefaultAPIBaseURL
	}
	if c.EmotionServiceURL == "" {
		c.EmotionServiceURL = DefaultEmotionURL
	}
	if c.DialogueServiceURL == "" {
		c.DialogueServiceURL = DefaultDialogueURL
	}
	if c.MemoryServiceURL == "" {
		c.MemoryServiceURL = DefaultMemoryURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = DefaultTimeoutSeconds
	}
	return c
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
