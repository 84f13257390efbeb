package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, "por", cfg.Language)
	assert.False(t, cfg.Enabled())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("TIMECARD_OCR_API_KEY", "k")
	t.Setenv("TIMECARD_OCR_LANGUAGE", "eng")
	t.Setenv("TIMECARD_OCR_TIMEOUT_MS", "1500")
	t.Setenv("TIMECARD_OCR_MAX_RETRIES", "0")
	t.Setenv("TIMECARD_OCR_LOG_CALLS", "true")

	cfg := LoadConfig()

	assert.True(t, cfg.Enabled())
	assert.Equal(t, "eng", cfg.Language)
	assert.Equal(t, 1500, cfg.TimeoutMs)
	assert.Equal(t, 0, cfg.MaxRetries)
	assert.True(t, cfg.LogCalls)
}

func TestLoadConfig_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("TIMECARD_OCR_TIMEOUT_MS", "soon")
	t.Setenv("TIMECARD_OCR_MAX_RETRIES", "-3")

	cfg := LoadConfig()

	assert.Equal(t, 30000, cfg.TimeoutMs)
	assert.Equal(t, 1, cfg.MaxRetries)
}
