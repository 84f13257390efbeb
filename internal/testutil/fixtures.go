package testutil

import (
	"context"
	"sync"

	"github.com/alexanderramin/timecard/internal/domain"
)

// Transcript is an OCR-style punch-card transcript covering one working
// week in May 2025 with a holiday on Wednesday.
const Transcript = `CARTAO DE PONTO - MAIO/2025
05/05/2025 08:00 12:00 13:00 17:00
06/05/2025 08:30 12:00 13:00 17:30
07/05/2025 Feriado
08/05/2025 08:00 12:00 13:00 16:00
09/05/2025 07:45 12:00 13:00 17:15
`

// TranscriptTotal is the segments-policy total of Transcript.
const TranscriptTotal = 8 + 8 + 0 + 7 + 8.5

// Table is a hand-typed entry sheet in the semicolon layout.
const Table = `Data;Entrada;Início Intervalo;Fim Intervalo;Saída
12/05/2025;08:00;12:00;13:00;17:00
13/05/2025;Feriado;;;
14/05/2025;09:00;;;18:00
`

// RecordOption customises a RawRecord built by NewRawRecord.
type RecordOption func(*domain.RawRecord)

func WithBreak(start, end string) RecordOption {
	return func(r *domain.RawRecord) {
		r.BreakStart = start
		r.BreakEnd = end
	}
}

func WithSource(name string) RecordOption {
	return func(r *domain.RawRecord) {
		r.Source = name
	}
}

func NonWorking() RecordOption {
	return func(r *domain.RawRecord) {
		r.NonWorking = true
		r.ClockIn, r.BreakStart, r.BreakEnd, r.ClockOut = "", "", "", ""
	}
}

// NewRawRecord builds a record with a 12:00-13:00 break unless overridden.
func NewRawRecord(date, in, out string, opts ...RecordOption) domain.RawRecord {
	r := domain.RawRecord{
		Date:       date,
		ClockIn:    in,
		BreakStart: "12:00",
		BreakEnd:   "13:00",
		ClockOut:   out,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// FakeRecognizer returns canned text per file name and records its calls.
type FakeRecognizer struct {
	Texts map[string]string
	Err   error

	mu    sync.Mutex
	calls []string
}

func (f *FakeRecognizer) Recognize(ctx context.Context, filename string, _ []byte) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, filename)
	f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.Err != nil {
		return "", f.Err
	}
	return f.Texts[filename], nil
}

// Calls returns the file names passed to Recognize, in order.
func (f *FakeRecognizer) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}
