package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/alexanderramin/timecard/internal/domain"
)

// MarkerSet recognises non-working markers such as "Feriado".
type MarkerSet interface {
	IsMarker(word string) bool
}

var (
	timeCell = regexp.MustCompile(`^(\d{1,2}:\d{2})(:\d{2})?$`)
	dateCell = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`)
	isoCell  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
)

// Reader converts table rows into RawRecords.
type Reader struct {
	resolver *ColumnResolver
	markers  MarkerSet
	fallback time.Time
}

// NewReader returns a Reader. fallbackMonth is the month whose days are
// assigned, in row order, to tables without a date column.
func NewReader(resolver *ColumnResolver, markers MarkerSet, fallbackMonth time.Time) *Reader {
	if resolver == nil {
		resolver = DefaultResolver()
	}
	return &Reader{
		resolver: resolver,
		markers:  markers,
		fallback: time.Date(fallbackMonth.Year(), fallbackMonth.Month(), 1, 0, 0, 0, 0, time.UTC),
	}
}

// utf8BOM prefixes spreadsheet "CSV UTF-8" exports.
const utf8BOM = "\ufeff"

// ReadCSV parses CSV input. Comma and semicolon delimiters are accepted.
func (r *Reader) ReadCSV(in io.Reader) ([]domain.RawRecord, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("reading table: %w", err)
	}
	text := strings.TrimPrefix(string(data), utf8BOM)
	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = sniffDelimiter(text)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}
	return r.Rows(rows), nil
}

// Rows converts already-split rows. The first row is treated as a header
// unless it contains a date or time value.
func (r *Reader) Rows(rows [][]string) []domain.RawRecord {
	if len(rows) == 0 {
		return nil
	}

	var cols Columns
	data := rows
	if isHeader(rows[0]) {
		cols = r.resolver.Resolve(rows[0])
		data = rows[1:]
	}

	if cols.Has(FieldDate) {
		return r.named(data, cols)
	}
	return r.fixed(data)
}

func (r *Reader) named(rows [][]string, cols Columns) []domain.RawRecord {
	var out []domain.RawRecord
	for _, row := range rows {
		if blank(row) {
			continue
		}
		rec := domain.RawRecord{
			Date:       normalizeDate(cell(row, cols, FieldDate)),
			ClockIn:    cell(row, cols, FieldClockIn),
			BreakStart: cell(row, cols, FieldBreakStart),
			BreakEnd:   cell(row, cols, FieldBreakEnd),
			ClockOut:   cell(row, cols, FieldClockOut),
		}
		out = append(out, r.finish(rec))
	}
	return out
}

// fixed reads the degraded four-column layout (in 1, out 1, in 2, out 2)
// with synthetic sequential dates.
func (r *Reader) fixed(rows [][]string) []domain.RawRecord {
	var out []domain.RawRecord
	day := 0
	for _, row := range rows {
		if blank(row) {
			continue
		}
		rec := domain.RawRecord{
			Date:       r.fallback.AddDate(0, 0, day).Format(domain.DateLayout),
			ClockIn:    at(row, 0),
			BreakStart: at(row, 1),
			BreakEnd:   at(row, 2),
			ClockOut:   at(row, 3),
			Synthetic:  true,
		}
		day++
		out = append(out, r.finish(rec))
	}
	return out
}

func (r *Reader) finish(rec domain.RawRecord) domain.RawRecord {
	if r.markers != nil && r.markers.IsMarker(rec.ClockIn) {
		rec.NonWorking = true
		rec.ClockIn, rec.BreakStart, rec.BreakEnd, rec.ClockOut = "", "", "", ""
		return rec
	}
	rec.ClockIn = normalizeTime(rec.ClockIn)
	rec.BreakStart = normalizeTime(rec.BreakStart)
	rec.BreakEnd = normalizeTime(rec.BreakEnd)
	rec.ClockOut = normalizeTime(rec.ClockOut)
	return rec
}

func cell(row []string, cols Columns, f Field) string {
	i, ok := cols[f]
	if !ok {
		return ""
	}
	return at(row, i)
}

func at(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func isHeader(row []string) bool {
	for _, c := range row {
		c = strings.TrimSpace(c)
		if timeCell.MatchString(c) || dateCell.MatchString(c) || isoCell.MatchString(c) {
			return false
		}
	}
	return true
}

// normalizeTime drops a seconds suffix ("08:00:00" becomes "08:00").
// Anything else is kept as-is and judged by the hour calculator.
func normalizeTime(s string) string {
	if m := timeCell.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}

// normalizeDate rewrites ISO dates exported by spreadsheets as day/month/year.
func normalizeDate(s string) string {
	if isoCell.MatchString(s) {
		if d, err := time.Parse("2006-01-02", s[:10]); err == nil {
			return d.Format(domain.DateLayout)
		}
	}
	return s
}

func sniffDelimiter(data string) rune {
	line, _, _ := strings.Cut(data, "\n")
	if strings.Count(line, ";") > strings.Count(line, ",") {
		return ';'
	}
	return ','
}
