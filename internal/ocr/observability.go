package ocr

import (
	"io"
	"log/slog"
)

// CallEvent records metadata about a single OCR invocation.
type CallEvent struct {
	File      string
	LatencyMs int64
	Attempts  int
	Chars     int
	Success   bool
	ErrorCode string
}

// Observer receives events about OCR calls.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes OCR call events as structured log lines.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{logger: slog.New(slog.NewTextHandler(w, nil))}
}

func (o *LogObserver) OnCallComplete(e CallEvent) {
	attrs := []any{
		"file", e.File,
		"latency_ms", e.LatencyMs,
		"attempts", e.Attempts,
	}
	if !e.Success {
		o.logger.Warn("ocr_call", append(attrs, "status", "err:"+e.ErrorCode)...)
		return
	}
	o.logger.Info("ocr_call", append(attrs, "status", "ok", "chars", e.Chars)...)
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
