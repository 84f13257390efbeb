package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/timecard/internal/domain"
)

// ErrNotFound is returned when a requested run does not exist.
var ErrNotFound = errors.New("not found")

// Run is a stored report run with its record totals.
type Run struct {
	ID          string
	GeneratedAt time.Time
	Policy      domain.BreakPolicy
	Skipped     int
	Records     int
	DaysWorked  int
	TotalHours  float64
	FirstDate   string
	LastDate    string
}

// PeriodTotal is one stored weekly or monthly bucket.
type PeriodTotal struct {
	Period     string
	TotalHours float64
	Records    int
}

// Granularity selects weekly or monthly totals.
type Granularity string

const (
	Weekly  Granularity = "week"
	Monthly Granularity = "month"
)

type RunRepo interface {
	List(ctx context.Context) ([]Run, error)
	GetByID(ctx context.Context, id string) (*Run, error)
	Totals(ctx context.Context, runID string, g Granularity) ([]PeriodTotal, error)
	Delete(ctx context.Context, id string) error
}
