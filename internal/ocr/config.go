package ocr

import (
	"os"
	"strconv"
)

// DefaultEndpoint is the OCR.space image parsing endpoint.
const DefaultEndpoint = "https://api.ocr.space/parse/image"

// Config holds the settings of the OCR collaborator. It is passed to
// NewSpaceClient; nothing in the pipeline reads it from global state.
type Config struct {
	APIKey     string
	Endpoint   string
	Language   string
	TimeoutMs  int
	MaxRetries int
	LogCalls   bool
}

// DefaultConfig returns a Config with sensible defaults and no API key.
func DefaultConfig() Config {
	return Config{
		Endpoint:   DefaultEndpoint,
		Language:   "por",
		TimeoutMs:  30000,
		MaxRetries: 1,
	}
}

// Enabled reports whether an API key is configured.
func (c Config) Enabled() bool {
	return c.APIKey != ""
}

// LoadConfig reads OCR configuration from environment variables,
// falling back to defaults for any unset or invalid values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("TIMECARD_OCR_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("TIMECARD_OCR_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("TIMECARD_OCR_LANGUAGE"); v != "" {
		cfg.Language = v
	}
	if v := os.Getenv("TIMECARD_OCR_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("TIMECARD_OCR_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("TIMECARD_OCR_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}

	return cfg
}
