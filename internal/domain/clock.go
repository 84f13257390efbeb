package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the day/month/year layout used by punch-card transcripts.
const DateLayout = "02/01/2006"

// TimeOfDay is a wall-clock time expressed as seconds since midnight.
type TimeOfDay int

// ParseTimeOfDay parses an "H:MM" or "HH:MM" token.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	h, m, ok := strings.Cut(s, ":")
	if !ok || len(h) < 1 || len(h) > 2 || len(m) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return TimeOfDay(hour*3600 + minute*60), nil
}

// HoursUntil returns (other - t) in fractional hours.
func (t TimeOfDay) HoursUntil(other TimeOfDay) float64 {
	return float64(other-t) / 3600
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/3600, (int(t)%3600)/60)
}

// ParseDate parses a day/month/year token with one or two digit day and
// month. The result is midnight UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse("2/1/2006", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseableDate, s)
	}
	return d, nil
}
