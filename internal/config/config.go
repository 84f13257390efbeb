// Package config assembles runtime configuration from .env files and the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/timecard/internal/domain"
	"github.com/alexanderramin/timecard/internal/ocr"
	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	OCR           ocr.Config
	BreakPolicy   domain.BreakPolicy
	FallbackMonth time.Time
	Markers       []string
	Log           bool
}

const monthLayout = "2006-01"

var defaultFallbackMonth = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		OCR:           ocr.DefaultConfig(),
		BreakPolicy:   domain.PolicySegments,
		FallbackMonth: defaultFallbackMonth,
	}
}

// Load reads the first .env file found, then the environment. Invalid
// values keep their defaults.
func Load() Config {
	for _, path := range envPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}
	return FromEnv()
}

// FromEnv reads configuration from environment variables only.
func FromEnv() Config {
	cfg := Default()
	cfg.OCR = ocr.LoadConfig()

	if v := os.Getenv("TIMECARD_BREAK_POLICY"); v != "" {
		if p, err := ParseBreakPolicy(v); err == nil {
			cfg.BreakPolicy = p
		}
	}
	if v := os.Getenv("TIMECARD_FALLBACK_MONTH"); v != "" {
		if m, err := ParseMonth(v); err == nil {
			cfg.FallbackMonth = m
		}
	}
	if v := os.Getenv("TIMECARD_MARKERS"); v != "" {
		for _, m := range strings.Split(v, ",") {
			if m = strings.TrimSpace(m); m != "" {
				cfg.Markers = append(cfg.Markers, m)
			}
		}
	}
	if v := os.Getenv("TIMECARD_LOG"); v != "" {
		cfg.Log, _ = strconv.ParseBool(v)
	}
	return cfg
}

// ParseBreakPolicy validates a policy name.
func ParseBreakPolicy(s string) (domain.BreakPolicy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !domain.ValidBreakPolicies[s] {
		return "", fmt.Errorf("unknown break policy %q (want %s or %s)",
			s, domain.PolicySegments, domain.PolicyDeductBreak)
	}
	return domain.BreakPolicy(s), nil
}

// ParseMonth parses a YYYY-MM month.
func ParseMonth(s string) (time.Time, error) {
	m, err := time.Parse(monthLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q (want YYYY-MM): %w", s, err)
	}
	return m, nil
}

// envPaths returns the .env locations checked by Load, in order.
func envPaths() []string {
	var paths []string
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "timecard", ".env"))
	}
	return paths
}
