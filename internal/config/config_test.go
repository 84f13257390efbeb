package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/timecard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, domain.PolicySegments, cfg.BreakPolicy)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), cfg.FallbackMonth)
	assert.False(t, cfg.OCR.Enabled())
	assert.False(t, cfg.Log)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("TIMECARD_BREAK_POLICY", "Deduct-Break")
	t.Setenv("TIMECARD_FALLBACK_MONTH", "2024-07")
	t.Setenv("TIMECARD_MARKERS", "feriado, vacation ,,")
	t.Setenv("TIMECARD_LOG", "1")
	t.Setenv("TIMECARD_OCR_API_KEY", "abc")

	cfg := FromEnv()

	assert.Equal(t, domain.PolicyDeductBreak, cfg.BreakPolicy)
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), cfg.FallbackMonth)
	assert.Equal(t, []string{"feriado", "vacation"}, cfg.Markers)
	assert.True(t, cfg.Log)
	assert.Equal(t, "abc", cfg.OCR.APIKey)
}

func TestFromEnv_InvalidValuesKeepDefaults(t *testing.T) {
	t.Setenv("TIMECARD_BREAK_POLICY", "lunch")
	t.Setenv("TIMECARD_FALLBACK_MONTH", "July")

	cfg := FromEnv()

	assert.Equal(t, domain.PolicySegments, cfg.BreakPolicy)
	assert.Equal(t, Default().FallbackMonth, cfg.FallbackMonth)
}

func TestLoad_ReadsDotEnvFromWorkingDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("TIMECARD_BREAK_POLICY=deduct-break\n"), 0o600))
	t.Chdir(dir)
	// Register for cleanup; godotenv.Load sets the variable directly.
	t.Setenv("TIMECARD_BREAK_POLICY", "")
	require.NoError(t, os.Unsetenv("TIMECARD_BREAK_POLICY"))

	cfg := Load()

	assert.Equal(t, domain.PolicyDeductBreak, cfg.BreakPolicy)
}

func TestParseBreakPolicy(t *testing.T) {
	p, err := ParseBreakPolicy(" segments ")
	require.NoError(t, err)
	assert.Equal(t, domain.PolicySegments, p)

	_, err = ParseBreakPolicy("none")
	assert.Error(t, err)
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2025-05")
	require.NoError(t, err)
	assert.Equal(t, time.May, m.Month())

	_, err = ParseMonth("05/2025")
	assert.Error(t, err)
}
