package service

import (
	"context"
	"time"

	"github.com/alexanderramin/timecard/internal/report"
)

type ReportService interface {
	BuildReport(ctx context.Context, sources []Source) (*report.Report, error)
}

type WatchService interface {
	// Watch rebuilds the report of every supported file in dir whenever one
	// changes, calling onReport after each rebuild, until ctx is done.
	Watch(ctx context.Context, dir string, onReport func(*report.Report)) error
}

// Notifier delivers a short message to the user outside the terminal.
type Notifier interface {
	Notify(title, body string) error
}

// DefaultDebounce is the quiet period after a file event before a rebuild.
const DefaultDebounce = 250 * time.Millisecond
